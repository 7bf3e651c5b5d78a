// Package main is the feedme command line client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"feedme/internal/app"
	"feedme/internal/config"
	appctx "feedme/internal/core/context"
	"feedme/internal/infrastructure/remote"
	"feedme/pkg/logger"
)

var (
	// Global flags
	configPath string
	verbose    bool

	env *environment
)

// environment is what every command runs against.
type environment struct {
	cfg      *config.Config
	log      *logger.Logger
	client   *remote.Client
	session  *app.Session
	registry *prometheus.Registry
}

var rootCmd = &cobra.Command{
	Use:          "feedme",
	Short:        "Track meals and the nutrients they add up to",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if !needsBackend(cmd) {
			return nil
		}

		cmd.SetContext(appctx.WithTrace(cmd.Context(), appctx.NewCommandTrace(cmd.CommandPath())))

		var err error
		env, err = newEnvironment(cmd.Context())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		if env != nil {
			env.close(cmd.Context())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/feedme.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(daysCmd, mealCmd, mealsCmd, dishesCmd, ingredientsCmd, pickCmd)
}

// needsBackend is false for the commands cobra adds itself.
func needsBackend(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

func newEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	e := &environment{cfg: cfg, log: log}
	opts := []remote.Option{remote.WithLogger(log)}
	if cfg.Metrics {
		e.registry = prometheus.NewRegistry()
		metrics, err := remote.NewPrometheusMetrics(e.registry)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, remote.WithMetrics(metrics))
	}

	e.client, err = remote.New(remote.Config{
		BaseURL:   cfg.API.URL,
		Timeout:   timeout,
		UserAgent: cfg.API.UserAgent,
	}, opts...)
	if err != nil {
		return nil, err
	}

	e.session = app.NewSession(e.client, log)
	if err := e.session.Initialize(ctx); err != nil {
		e.client.Close()
		return nil, err
	}

	log.WithContext(ctx).Debugw("session ready", "api", cfg.API.URL, "env", cfg.Env)
	return e, nil
}

func (e *environment) close(ctx context.Context) {
	if e.registry != nil {
		logRequestMetrics(ctx, e.log, e.registry)
	}
	e.client.Close()
	_ = e.log.Sync()
}

// logRequestMetrics writes the request counters gathered during the command.
func logRequestMetrics(ctx context.Context, log *logger.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.WithContext(ctx).Warnw("gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			fields := []any{"metric", mf.GetName(), "value", m.GetCounter().GetValue()}
			for _, l := range m.GetLabel() {
				fields = append(fields, l.GetName(), l.GetValue())
			}
			log.WithContext(ctx).Infow("requests", fields...)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
