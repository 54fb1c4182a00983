// Package target abstracts where probe commands run: a local shell or a
// non-interactive SSH session. Probes only see the Runner contract and never
// branch on the mode.
package target

// Mode selects the execution context.
type Mode string

const (
	ModeLocal Mode = "local"
	ModeSSH   Mode = "ssh"
)

// Target describes the execution context. Built once from configuration and
// never mutated afterwards.
type Target struct {
	Mode           Mode
	Host           string
	User           string
	SSHPort        int
	Identity       string // private key path, optional
	ConnectTimeout int    // seconds; bounds SSH connection establishment only
}

// Label is the human-readable target name used in report headers:
// "user@host", "host", or "local".
func (t Target) Label() string {
	switch {
	case t.Mode == ModeLocal:
		return "local"
	case t.User != "":
		return t.User + "@" + t.Host
	default:
		return t.Host
	}
}
