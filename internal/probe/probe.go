// Package probe implements the host health probe battery. Each probe runs
// one or two commands through the execution abstraction, classifies the
// outcome, and yields exactly one CheckResult. A probe failure degrades its
// own result and never aborts the run.
package probe

import (
	"context"
	"strings"

	"github.com/hamed0406/hostcheck/internal/domain"
	"github.com/hamed0406/hostcheck/internal/target"
)

// Params carries probe-specific settings alongside the execution target.
// Read-only for the duration of a run.
type Params struct {
	Service        string
	CheckPort      int
	ConnectTimeout int // seconds, bounds the tcp_connect probe
}

// Probe is one battery entry: a fixed name, an applicability predicate, and
// the measurement itself.
type Probe struct {
	Name       string
	Applicable func(Params) bool
	Run        func(ctx context.Context, r target.Runner, p Params) domain.CheckResult
}

// Battery returns the probes in the order they execute and report: service
// probes, then resource probes, then network probes.
func Battery() []Probe {
	needService := func(p Params) bool { return p.Service != "" }
	needPort := func(p Params) bool { return p.CheckPort != 0 }
	always := func(Params) bool { return true }

	return []Probe{
		{Name: "service_active", Applicable: needService, Run: ServiceActive},
		{Name: "service_enabled", Applicable: needService, Run: ServiceEnabled},
		{Name: "load_average", Applicable: always, Run: LoadAverage},
		{Name: "disk_usage_root", Applicable: always, Run: DiskUsageRoot},
		{Name: "inode_usage_root", Applicable: always, Run: InodeUsageRoot},
		{Name: "memory_available", Applicable: always, Run: MemoryAvailable},
		{Name: "port_listening", Applicable: needPort, Run: PortListening},
		{Name: "tcp_connect", Applicable: needPort, Run: TCPConnect},
	}
}

func result(name string, status domain.Severity, message string) domain.CheckResult {
	return domain.CheckResult{Name: name, Status: status, Message: message}
}

func firstLine(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line)
}
