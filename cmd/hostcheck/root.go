package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamed0406/hostcheck/internal/check"
	"github.com/hamed0406/hostcheck/internal/config"
	"github.com/hamed0406/hostcheck/internal/logging"
	"github.com/hamed0406/hostcheck/internal/probe"
	"github.com/hamed0406/hostcheck/internal/report"
	"github.com/hamed0406/hostcheck/internal/target"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostcheck",
		Short: "Run a battery of host health probes locally or over SSH",
		Long: `hostcheck runs a fixed battery of system health probes against the local
host or a remote host reachable over SSH, classifies each result as
OK/WARN/CRITICAL, and reports one overall status.

Exit codes: 0 all OK, 1 WARN present, 2 CRITICAL present or the remote
host is unreachable, 3 usage error.`,
		Args:          cobra.NoArgs,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("mode", "local", "Execution mode: local | ssh")
	pf.String("host", "", "Remote host for ssh mode")
	pf.String("user", "", "SSH user")
	pf.Int("port-ssh", 22, "SSH port")
	pf.String("identity", "", "SSH private key path")
	pf.String("service", "", "systemd service to check")
	pf.Int("check-port", 0, "TCP port expected to be listening")
	pf.Int("timeout", 3, "Connect timeout in seconds")
	pf.String("config", "", "YAML config file (flags override it)")

	cmd.Flags().Bool("json", false, "Emit the report as JSON")

	cmd.AddCommand(newServeCommand())
	return cmd
}

// loadConfig layers defaults, the optional config file, explicitly set
// flags, and ambient env settings, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	flags := cmd.Flags()
	if path, _ := flags.GetString("config"); path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("user") {
		cfg.User, _ = flags.GetString("user")
	}
	if flags.Changed("port-ssh") {
		cfg.SSHPort, _ = flags.GetInt("port-ssh")
	}
	if flags.Changed("identity") {
		cfg.Identity, _ = flags.GetString("identity")
	}
	if flags.Changed("service") {
		cfg.Service, _ = flags.GetString("service")
	}
	if flags.Changed("check-port") {
		cfg.CheckPort, _ = flags.GetInt("check-port")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetInt("timeout")
	}
	if flags.Changed("json") {
		cfg.JSON, _ = flags.GetBool("json")
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// validateOrUsage runs config validation; on failure it prints usage
// guidance and returns the usage exit code. No report is produced on this
// path.
func validateOrUsage(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
		return &exitError{code: exitUsage, err: err}
	}
	return nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if err := validateOrUsage(cmd, cfg); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return &exitError{code: exitUsage, err: fmt.Errorf("open log dir: %w", err)}
	}
	defer logger.Sync()

	t := cfg.Target()
	runner := check.New(target.NewRunner(t), t, logger)
	results := runner.Run(cmd.Context(), probe.Params{
		Service:        cfg.Service,
		CheckPort:      cfg.CheckPort,
		ConnectTimeout: cfg.Timeout,
	})
	rep := report.New(t, cfg.Service, results, time.Now())

	if cfg.JSON {
		b, err := rep.JSON()
		if err != nil {
			return &exitError{code: exitCritical, err: err}
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), rep.Text())
	}

	if code := check.ExitCode(rep.Overall); code != exitOK {
		return &exitError{code: code}
	}
	return nil
}
