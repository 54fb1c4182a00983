package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hamed0406/hostcheck/internal/domain"
	"github.com/hamed0406/hostcheck/internal/target"
)

// PortListening checks the socket table for a TCP listener on the configured
// port. No listener, or an unreadable socket table, means the service cannot
// accept connections: CRITICAL.
func PortListening(ctx context.Context, r target.Runner, p Params) domain.CheckResult {
	const name = "port_listening"

	out, code := r.Execute(ctx, "ss -ltn")
	if code != 0 {
		return result(name, domain.SeverityCritical,
			"cannot list listening sockets: "+shortOutput(out))
	}

	suffix := ":" + strconv.Itoa(p.CheckPort)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		// State Recv-Q Send-Q Local:Port Peer:Port
		if len(fields) >= 4 && strings.HasSuffix(fields[3], suffix) {
			return result(name, domain.SeverityOK,
				fmt.Sprintf("port %d has a listener (%s)", p.CheckPort, fields[3]))
		}
	}
	return result(name, domain.SeverityCritical,
		fmt.Sprintf("no listener on port %d", p.CheckPort))
}

// TCPConnect performs a bounded loopback handshake to the configured port.
// The bound comes from the timeout(1) utility; when that utility is absent
// the check is skipped with a WARN rather than risking a hang.
func TCPConnect(ctx context.Context, r target.Runner, p Params) domain.CheckResult {
	const name = "tcp_connect"

	if _, code := r.Execute(ctx, "command -v timeout"); code != 0 {
		return result(name, domain.SeverityWarn,
			"check skipped: timeout utility not available")
	}

	connect := fmt.Sprintf("exec 3<>/dev/tcp/127.0.0.1/%d", p.CheckPort)
	command := fmt.Sprintf("timeout %d bash -c %s", p.ConnectTimeout, target.Quote(connect))
	out, code := r.Execute(ctx, command)
	if code == 0 {
		return result(name, domain.SeverityOK,
			fmt.Sprintf("tcp connect to 127.0.0.1:%d succeeded within %ds", p.CheckPort, p.ConnectTimeout))
	}
	return result(name, domain.SeverityCritical,
		fmt.Sprintf("tcp connect to 127.0.0.1:%d failed: %s", p.CheckPort, shortOutput(out)))
}
