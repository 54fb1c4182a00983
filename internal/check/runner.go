// Package check orchestrates one probe run: the optional connectivity
// preflight against a remote target, the strictly sequential battery, and
// the exit-code mapping of the aggregated severity.
package check

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/hostcheck/internal/domain"
	"github.com/hamed0406/hostcheck/internal/probe"
	"github.com/hamed0406/hostcheck/internal/target"
)

// Runner drives the battery. It owns the only mutable state of a run, the
// append-only result sequence, and returns it in execution order.
type Runner struct {
	Exec   target.Runner
	Target target.Target
	Logger *zap.Logger
}

func New(exec target.Runner, t target.Target, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Exec: exec, Target: t, Logger: logger}
}

// Run executes the battery. On a remote target it first verifies
// connectivity with a no-op command; if that fails the whole run collapses
// into one synthetic CRITICAL "connectivity" result and no probes execute.
// Probes run one at a time: each command completes before the next begins.
func (r *Runner) Run(ctx context.Context, params probe.Params) []domain.CheckResult {
	if r.Target.Mode == target.ModeSSH {
		if out, code := r.Exec.Execute(ctx, "true"); code != 0 {
			diag := strings.TrimSpace(out)
			if diag == "" {
				diag = fmt.Sprintf("exit status %d", code)
			}
			r.Logger.Warn("preflight_failed",
				zap.String("target", r.Target.Label()),
				zap.Int("exit_code", code),
			)
			return []domain.CheckResult{{
				Name:    "connectivity",
				Status:  domain.SeverityCritical,
				Message: fmt.Sprintf("cannot reach %s: %s", r.Target.Label(), diag),
			}}
		}
		r.Logger.Info("preflight_ok", zap.String("target", r.Target.Label()))
	}

	results := make([]domain.CheckResult, 0, 8)
	for _, p := range probe.Battery() {
		if !p.Applicable(params) {
			continue
		}
		start := time.Now()
		res := p.Run(ctx, r.Exec, params)
		r.Logger.Info("probe_run",
			zap.String("name", p.Name),
			zap.String("status", res.Status.String()),
			zap.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
		)
		results = append(results, res)
	}
	return results
}

// ExitCode maps the overall severity to the process exit status consumed by
// automation: 0 OK, 1 WARN, 2 CRITICAL. Usage errors use 3 and never reach
// this mapping.
func ExitCode(s domain.Severity) int {
	switch s {
	case domain.SeverityCritical:
		return 2
	case domain.SeverityWarn:
		return 1
	default:
		return 0
	}
}
