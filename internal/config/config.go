package config

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/hamed0406/hostcheck/internal/target"
)

// Config is the full option surface of a run. Flag names map 1:1 onto the
// yaml keys, so a config file can pre-seed anything a flag can set.
type Config struct {
	Mode      string `yaml:"mode"`
	Host      string `yaml:"host"`
	User      string `yaml:"user"`
	SSHPort   int    `yaml:"port-ssh"`
	Identity  string `yaml:"identity"`
	Service   string `yaml:"service"`
	CheckPort int    `yaml:"check-port"`
	Timeout   int    `yaml:"timeout"` // seconds, bounds SSH connection establishment
	JSON      bool   `yaml:"json"`

	// Ambient settings, env-driven rather than flag-driven.
	LogDir string `yaml:"-"`
	Addr   string `yaml:"-"` // serve mode bind address
}

func Default() Config {
	return Config{
		Mode:    string(target.ModeLocal),
		SSHPort: 22,
		Timeout: 3,
	}
}

// ApplyEnv fills the ambient settings from the environment.
func (c *Config) ApplyEnv() {
	c.LogDir = os.Getenv("HOSTCHECK_LOG_DIR")
	if c.LogDir == "" {
		c.LogDir = "logs"
	}
	c.Addr = os.Getenv("HOSTCHECK_ADDR")
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8080"
	}
}

// LoadFile overlays values from a yaml file onto c. Keys absent from the
// file leave the current value untouched; flags applied afterwards win over
// both.
func LoadFile(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate collects every configuration problem rather than stopping at the
// first one. Any error here is fatal before a single probe runs.
func (c Config) Validate() error {
	var errs error

	switch c.Mode {
	case string(target.ModeLocal), string(target.ModeSSH):
	default:
		errs = multierr.Append(errs, fmt.Errorf("invalid mode %q (want local or ssh)", c.Mode))
	}
	if c.Mode == string(target.ModeSSH) && c.Host == "" {
		errs = multierr.Append(errs, fmt.Errorf("--host is required for ssh mode"))
	}
	if c.SSHPort < 1 || c.SSHPort > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("ssh port %d out of range [1,65535]", c.SSHPort))
	}
	if c.CheckPort != 0 && (c.CheckPort < 1 || c.CheckPort > 65535) {
		errs = multierr.Append(errs, fmt.Errorf("check port %d out of range [1,65535]", c.CheckPort))
	}
	if c.Timeout < 1 {
		errs = multierr.Append(errs, fmt.Errorf("timeout %d must be at least 1 second", c.Timeout))
	}
	return errs
}

// Target builds the immutable execution target for this configuration.
func (c Config) Target() target.Target {
	return target.Target{
		Mode:           target.Mode(c.Mode),
		Host:           c.Host,
		User:           c.User,
		SSHPort:        c.SSHPort,
		Identity:       c.Identity,
		ConnectTimeout: c.Timeout,
	}
}
