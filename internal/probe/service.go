package probe

import (
	"context"
	"fmt"

	"github.com/hamed0406/hostcheck/internal/domain"
	"github.com/hamed0406/hostcheck/internal/target"
)

// ServiceActive checks the service manager's active state. Anything other
// than the literal "active" is an outage, so the failure side is CRITICAL,
// including an unreadable state.
func ServiceActive(ctx context.Context, r target.Runner, p Params) domain.CheckResult {
	const name = "service_active"

	out, code := r.Execute(ctx, "systemctl is-active "+target.Quote(p.Service))
	state := firstLine(out)
	if code == 0 && state == "active" {
		return result(name, domain.SeverityOK, fmt.Sprintf("service %s is active", p.Service))
	}
	if state == "" {
		state = "unknown"
	}
	return result(name, domain.SeverityCritical,
		fmt.Sprintf("service %s is %s (want active)", p.Service, state))
}

// ServiceEnabled checks whether the service starts at boot. A disabled or
// unreadable state is a configuration gap, not an outage: WARN.
func ServiceEnabled(ctx context.Context, r target.Runner, p Params) domain.CheckResult {
	const name = "service_enabled"

	out, code := r.Execute(ctx, "systemctl is-enabled "+target.Quote(p.Service))
	state := firstLine(out)
	if code == 0 && state == "enabled" {
		return result(name, domain.SeverityOK, fmt.Sprintf("service %s is enabled", p.Service))
	}
	if state == "" {
		state = "unknown"
	}
	return result(name, domain.SeverityWarn,
		fmt.Sprintf("service %s is %s (want enabled)", p.Service, state))
}
