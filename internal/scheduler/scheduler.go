package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"fxsentinel/internal/collector"
	"fxsentinel/internal/logger"
	"fxsentinel/internal/metrics"
	"fxsentinel/internal/model"
	"fxsentinel/internal/notifier"
	"fxsentinel/internal/strategy"
)

// Notifier delivers one trade alert per call.
type Notifier interface {
	Notify(ctx context.Context, report model.SignalReport, latestClose float64, risk model.RiskLevels, recipient string) error
}

// Scheduler runs the signal cycle on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  Notifier // nil disables alerts
	Recipient string
	Points    int
	Out       io.Writer
	Metrics   *metrics.Metrics
	Ctx       context.Context

	running sync.Mutex
	now     func() time.Time
}

// NewScheduler creates a new Scheduler. A cycle still running when the next
// tick fires causes that tick to be skipped.
func NewScheduler(ctx context.Context, col *collector.Collector, n Notifier, recipient string, points int, out io.Writer, m *metrics.Metrics) *Scheduler {
	cronLog := cron.PrintfLogger(logger.L())
	return &Scheduler{
		Cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.SkipIfStillRunning(cronLog)),
		),
		Collector: col,
		Notifier:  n,
		Recipient: recipient,
		Points:    points,
		Out:       out,
		Metrics:   m,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// Register adds the signal cycle under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("register cycle %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.L().Info().Str("pair", s.Collector.Pair()).Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.L().Info().Msg("scheduler stopped")
}

// RunNow executes one cycle immediately, outside the cron schedule.
func (s *Scheduler) RunNow() {
	s.tick()
}

func (s *Scheduler) tick() {
	if !s.running.TryLock() {
		logger.L().Warn().Msg("previous cycle still running, skipping")
		return
	}
	defer s.running.Unlock()
	// Failures are logged and rendered inside RunCycle.
	_, _ = s.RunCycle(s.Ctx)
}

// RunCycle performs one fetch, evaluate, present and notify pass. Errors are
// contained here: a failed fetch or evaluation is rendered and returned with
// a nil Evaluation. A failed delivery is returned alongside the Evaluation,
// whose decision still stands.
func (s *Scheduler) RunCycle(ctx context.Context) (ev *model.Evaluation, err error) {
	start := s.now()
	pair := s.Collector.Pair()
	log := logger.L().With().
		Str("cycle_id", uuid.NewString()).
		Str("pair", pair).
		Logger()

	defer func() {
		if s.Metrics != nil {
			s.Metrics.ObserveCycle(start, err)
		}
	}()

	rate, err := s.Collector.Collect(ctx)
	if err != nil {
		log.Error().Err(err).Msg("collect rate")
		s.present(notifier.FormatCycleError(pair, err, start))
		return nil, err
	}

	ev, err = strategy.Evaluate(rate, s.Points)
	if err != nil {
		log.Error().Err(err).Float64("rate", rate).Msg("evaluate")
		s.present(notifier.FormatCycleError(pair, err, start))
		return nil, err
	}

	log.Info().
		Str("decision", string(ev.Report.Decision)).
		Int("signals", len(ev.Report.Signals)).
		Float64("stop_loss", ev.Risk.StopLoss).
		Float64("take_profit", ev.Risk.TakeProfit).
		Msg("cycle evaluated")
	if s.Metrics != nil {
		s.Metrics.LastRate.Set(rate)
		s.Metrics.DecisionsTotal.WithLabelValues(string(ev.Report.Decision)).Inc()
	}
	s.present(notifier.FormatConsoleReport(pair, ev, start))

	if s.Notifier == nil {
		s.countNotification(metrics.NotifyDisabled)
		return ev, nil
	}
	if err = s.Notifier.Notify(ctx, ev.Report, ev.Series.Latest(), ev.Risk, s.Recipient); err != nil {
		log.Error().Err(err).Msg("send alert")
		s.countNotification(metrics.NotifyFailed)
		return ev, err
	}
	s.countNotification(metrics.NotifySent)
	return ev, nil
}

func (s *Scheduler) present(text string) {
	if s.Out == nil {
		return
	}
	if _, err := io.WriteString(s.Out, text+"\n"); err != nil {
		logger.L().Warn().Err(err).Msg("write report")
	}
}

func (s *Scheduler) countNotification(result string) {
	if s.Metrics != nil {
		s.Metrics.NotificationsTotal.WithLabelValues(result).Inc()
	}
}
