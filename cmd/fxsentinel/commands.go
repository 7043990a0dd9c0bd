package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fxsentinel/internal/api"
	"fxsentinel/internal/collector"
	"fxsentinel/internal/config"
	"fxsentinel/internal/logger"
	"fxsentinel/internal/metrics"
	"fxsentinel/internal/notifier"
	"fxsentinel/internal/scheduler"
)

// serverOff disables the operations server when used as server.addr.
const serverOff = "off"

var (
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the signal cycle on the configured schedule and serve /healthz and /metrics",
		RunE:  runScheduled,
	}
	onceCmd = &cobra.Command{
		Use:   "once",
		Short: "Run a single signal cycle and exit; exits non-zero if the cycle fails",
		RunE:  runOnce,
	}
)

func newFetcher(c *config.Config) collector.Fetcher {
	switch c.DataSource.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(c.DataSource.BaseURL, c.Proxy)
	case "mock":
		return &collector.MockFetcher{Rate: c.DataSource.MockRate}
	default:
		return collector.NewExchangeRateFetcher(c.DataSource.BaseURL, c.DataSource.APIKey, c.Proxy)
	}
}

func newNotifier(c *config.Config) scheduler.Notifier {
	if !c.Mail.Enabled {
		logger.L().Warn().Msg("mail disabled, alerts will only be printed")
		return nil
	}
	transport := notifier.NewSMTPTransport(c.Mail.Server, c.Mail.Port, c.Mail.Username, c.Mail.Password)
	return notifier.NewEmailNotifier(c.Mail.From, transport)
}

func newScheduler(ctx context.Context, c *config.Config, reg prometheus.Registerer) (*scheduler.Scheduler, *metrics.Metrics) {
	fetcher := newFetcher(c)
	logger.L().Info().
		Str("source", fetcher.Name()).
		Str("pair", c.Pair()).
		Int("points", c.Analysis.Points).
		Msg("data source ready")

	m := metrics.NewMetrics(reg)
	col := collector.NewCollector(fetcher, c.DataSource.Base, c.DataSource.Quote)
	return scheduler.NewScheduler(ctx, col, newNotifier(c), c.Mail.Recipient, c.Analysis.Points, os.Stdout, m), m
}

func runOnce(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched, _ := newScheduler(ctx, cfg, prometheus.NewRegistry())
	_, err := sched.RunCycle(ctx)
	return err
}

func runScheduled(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	sched, m := newScheduler(ctx, cfg, reg)
	if err := sched.Register(cfg.Schedule.Refresh); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	var srv *http.Server
	if cfg.Server.Addr != serverOff {
		gin.SetMode(gin.ReleaseMode)
		srv = &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           api.NewRouter(m, reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.L().Info().Str("addr", srv.Addr).Msg("ops server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	sched.Start()
	if cfg.Schedule.RunOnStart {
		logger.L().Info().Msg("run_on_start enabled, running a cycle now")
		go sched.RunNow()
	}
	logger.L().Info().Str("refresh", cfg.Schedule.Refresh).Msg("fxsentinel running, press Ctrl+C to stop")

	g.Go(func() error {
		<-gctx.Done()
		logger.L().Info().Msg("shutting down")
		sched.Stop()
		if srv == nil {
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
