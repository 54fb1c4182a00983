package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hamed0406/hostcheck/internal/domain"
	"github.com/hamed0406/hostcheck/internal/target"
)

// Resource probes share one graceful-degradation policy: an unreadable or
// unparseable data source degrades the probe to WARN and the run continues.

// LoadAverage compares the 1-minute load to thresholds derived from the
// detected core count: WARN at 1.5x cores, CRITICAL at 2.0x cores.
func LoadAverage(ctx context.Context, r target.Runner, _ Params) domain.CheckResult {
	const name = "load_average"

	out, code := r.Execute(ctx, "nproc")
	cores, err := strconv.Atoi(firstLine(out))
	if code != 0 || err != nil || cores < 1 {
		return result(name, domain.SeverityWarn,
			"cannot determine core count: "+shortOutput(out))
	}

	out, code = r.Execute(ctx, "cat /proc/loadavg")
	fields := strings.Fields(out)
	if code != 0 || len(fields) == 0 {
		return result(name, domain.SeverityWarn,
			"cannot read load average: "+shortOutput(out))
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return result(name, domain.SeverityWarn,
			"cannot parse load average: "+shortOutput(out))
	}

	warnAt := 1.5 * float64(cores)
	critAt := 2.0 * float64(cores)
	msg := fmt.Sprintf("load1 %.2f with %d cores (warn >= %.2f, critical >= %.2f)",
		load, cores, warnAt, critAt)
	switch {
	case load >= critAt:
		return result(name, domain.SeverityCritical, msg)
	case load >= warnAt:
		return result(name, domain.SeverityWarn, msg)
	default:
		return result(name, domain.SeverityOK, msg)
	}
}

// DiskUsageRoot classifies block usage of the root filesystem.
func DiskUsageRoot(ctx context.Context, r target.Runner, _ Params) domain.CheckResult {
	return dfProbe(ctx, r, "disk_usage_root", "df -P /", "root filesystem")
}

// InodeUsageRoot classifies inode usage of the root filesystem using the
// same thresholds as block usage.
func InodeUsageRoot(ctx context.Context, r target.Runner, _ Params) domain.CheckResult {
	return dfProbe(ctx, r, "inode_usage_root", "df -P -i /", "root filesystem inodes")
}

func dfProbe(ctx context.Context, r target.Runner, name, command, what string) domain.CheckResult {
	out, code := r.Execute(ctx, command)
	if code != 0 {
		return result(name, domain.SeverityWarn,
			fmt.Sprintf("cannot read %s usage: %s", what, shortOutput(out)))
	}
	pct, err := dfUsedPercent(out)
	if err != nil {
		return result(name, domain.SeverityWarn,
			fmt.Sprintf("cannot parse %s usage: %v", what, err))
	}

	msg := fmt.Sprintf("%s %d%% used (warn >= 80%%, critical >= 90%%)", what, pct)
	switch {
	case pct >= 90:
		return result(name, domain.SeverityCritical, msg)
	case pct >= 80:
		return result(name, domain.SeverityWarn, msg)
	default:
		return result(name, domain.SeverityOK, msg)
	}
}

// dfUsedPercent extracts the use-percentage column from POSIX df output.
// The data row is the last non-empty line; column 5 for both block and
// inode listings.
func dfUsedPercent(out string) (int, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	fields := strings.Fields(last)
	if len(fields) < 5 {
		return 0, fmt.Errorf("unexpected df line %q", last)
	}
	raw := strings.TrimSuffix(fields[4], "%")
	pct, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("unexpected percentage %q", fields[4])
	}
	return pct, nil
}

// MemoryAvailable classifies the fraction of memory still available. It
// prefers the "available" column of free(1) and falls back to "free" on
// older procps that lack it.
func MemoryAvailable(ctx context.Context, r target.Runner, _ Params) domain.CheckResult {
	const name = "memory_available"

	out, code := r.Execute(ctx, "free -m")
	if code != 0 {
		return result(name, domain.SeverityWarn,
			"cannot read memory usage: "+shortOutput(out))
	}
	pct, err := memAvailablePercent(out)
	if err != nil {
		return result(name, domain.SeverityWarn,
			fmt.Sprintf("cannot parse memory usage: %v", err))
	}

	msg := fmt.Sprintf("%.1f%% memory available (warn < 15.0%%, critical < 8.0%%)", pct)
	switch {
	case pct < 8.0:
		return result(name, domain.SeverityCritical, msg)
	case pct < 15.0:
		return result(name, domain.SeverityWarn, msg)
	default:
		return result(name, domain.SeverityOK, msg)
	}
}

func memAvailablePercent(out string) (float64, error) {
	var header, mem []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch {
		case header == nil && fields[0] != "Mem:":
			header = fields
		case fields[0] == "Mem:":
			mem = fields[1:]
		}
		if header != nil && mem != nil {
			break
		}
	}
	if header == nil || mem == nil {
		return 0, fmt.Errorf("unexpected free output")
	}

	col := func(label string) int {
		for i, h := range header {
			if h == label {
				return i
			}
		}
		return -1
	}

	totalIdx := col("total")
	availIdx := col("available")
	if availIdx < 0 || availIdx >= len(mem) {
		availIdx = col("free")
	}
	if totalIdx < 0 || totalIdx >= len(mem) || availIdx < 0 || availIdx >= len(mem) {
		return 0, fmt.Errorf("missing total/available columns")
	}

	total, err := strconv.ParseFloat(mem[totalIdx], 64)
	if err != nil || total <= 0 {
		return 0, fmt.Errorf("unexpected total %q", mem[totalIdx])
	}
	avail, err := strconv.ParseFloat(mem[availIdx], 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected available %q", mem[availIdx])
	}
	return avail / total * 100, nil
}

func shortOutput(out string) string {
	s := firstLine(out)
	if s == "" {
		return "no output"
	}
	return s
}
