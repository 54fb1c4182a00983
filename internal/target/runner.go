package target

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Runner executes one command on the target and returns its combined
// stdout+stderr and exit status. Spawn failures (binary missing, connection
// refused, auth rejected) surface as a non-zero exit with diagnostic output,
// never as a hang: remote sessions run in batch mode so an interactive
// credential prompt fails immediately.
type Runner interface {
	Execute(ctx context.Context, command string) (string, int)
}

// ShellRunner runs command text through "bash -lc", either directly or
// wrapped in an ssh invocation depending on the target mode.
type ShellRunner struct {
	Target Target
}

func NewRunner(t Target) *ShellRunner {
	return &ShellRunner{Target: t}
}

func (r *ShellRunner) argv(command string) []string {
	if r.Target.Mode == ModeLocal {
		return []string{"bash", "-lc", command}
	}

	args := []string{
		"ssh",
		"-o", "BatchMode=yes",
		"-o", fmt.Sprintf("ConnectTimeout=%d", r.Target.ConnectTimeout),
		"-p", strconv.Itoa(r.Target.SSHPort),
	}
	if r.Target.Identity != "" {
		args = append(args, "-i", r.Target.Identity)
	}
	// The remote shell re-splits its argument, so the command text passes
	// through exactly one quoting layer here.
	return append(args, r.Target.Label(), "bash", "-lc", Quote(command))
}

func (r *ShellRunner) Execute(ctx context.Context, command string) (string, int) {
	argv := r.argv(command)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode()
	}
	// Could not spawn at all (binary not found, permission denied).
	return strings.TrimSpace(string(out) + "\n" + err.Error()), 127
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9@%+=:,./_-]+$`)

// Quote wraps s in single quotes so a shell evaluates it as exactly one
// word. Every value interpolated into command text (service name, port)
// must pass through here exactly once.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
