package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Runner interface {
	Run(ctx context.Context)
}

// Scheduler triggers periodic catalog syncs. An empty cron expression disables it.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
	logger *zap.Logger
}

func New(spec string, runner Runner, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		runner: runner,
		spec:   spec,
		logger: logger,
	}
}

func (s *Scheduler) Enabled() bool {
	return s.spec != ""
}

func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Info("periodic sync disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		s.logger.Info("scheduled sync triggered")
		s.runner.Run(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("periodic sync scheduled", zap.String("spec", s.spec))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
