package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/hostcheck/internal/check"
	"github.com/hamed0406/hostcheck/internal/httpapi"
	"github.com/hamed0406/hostcheck/internal/logging"
	"github.com/hamed0406/hostcheck/internal/probe"
	"github.com/hamed0406/hostcheck/internal/report"
	"github.com/hamed0406/hostcheck/internal/target"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the health report over HTTP",
		Long: `serve exposes the probe battery over HTTP: GET /api/report runs the
battery and returns the JSON report (503 when overall status is critical),
GET /healthz is a plain liveness endpoint.

With --refresh the battery runs in the background on that interval and
requests are answered from the most recent report.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Bind address (default from HOSTCHECK_ADDR)")
	cmd.Flags().Duration("refresh", 0, "Re-run the battery on this interval instead of per request")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if err := validateOrUsage(cmd, cfg); err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Addr
	}
	refresh, _ := cmd.Flags().GetDuration("refresh")

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	defer logger.Sync()

	t := cfg.Target()
	runner := check.New(target.NewRunner(t), t, logger)
	params := probe.Params{
		Service:        cfg.Service,
		CheckPort:      cfg.CheckPort,
		ConnectTimeout: cfg.Timeout,
	}
	build := func(ctx context.Context) report.Report {
		return report.New(t, cfg.Service, runner.Run(ctx, params), time.Now())
	}

	srv := httpapi.NewServer(logger, build)
	if refresh > 0 {
		go srv.Refresh(cmd.Context(), refresh)
	}

	logger.Info("serve_listen",
		zap.String("addr", addr),
		zap.String("target", t.Label()),
		zap.Duration("refresh", refresh),
	)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	return nil
}
