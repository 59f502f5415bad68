package syncing

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"granteval-go/internal/events"
	"granteval-go/internal/metrics"
	"granteval-go/internal/repositories"
)

// Result is reported to callers as data; a failed sync is not an error.
type Result struct {
	Success bool
	Count   int
	Created int
	Skipped int
	Error   string
}

type Service struct {
	repo      repositories.ProjectRepository
	source    CatalogSource
	notifier  Notifier
	publisher events.Publisher
	logger    *zap.Logger

	group singleflight.Group
}

func NewService(repo repositories.ProjectRepository, source CatalogSource, notifier Notifier, publisher events.Publisher, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Service{
		repo:      repo,
		source:    source,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger.With(zap.String("source", source.Source())),
	}
}

// Sync mirrors the external catalog into the project store. Concurrent
// callers share one in-flight run. The run is detached from the caller's
// cancellation so a dropped request does not abort a half-applied batch.
func (s *Service) Sync(ctx context.Context) Result {
	v, _, shared := s.group.Do("sync", func() (any, error) {
		return s.sync(context.WithoutCancel(ctx)), nil
	})
	if shared {
		s.logger.Debug("joined in-flight sync")
	}
	return v.(Result)
}

// Run is the fire-and-forget form used by the scheduler and start-up
// bootstrap.
func (s *Service) Run(ctx context.Context) {
	res := s.Sync(ctx)
	if !res.Success {
		s.logger.Error("sync failed", zap.String("error", res.Error))
	}
}

func (s *Service) sync(ctx context.Context) Result {
	started := time.Now()
	s.logger.Info("sync started")

	projects, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Error("catalog fetch failed", zap.Error(err))
		metrics.RecordSync("failed", time.Since(started))
		return Result{Success: false, Error: err.Error()}
	}

	var res Result
	written := 0
	for _, project := range projects {
		if project.ExternalID == "" {
			s.logger.Warn("skipping catalog record without id", zap.String("title", project.Title))
			res.Skipped++
			continue
		}

		saved, err := s.repo.Upsert(ctx, project.ToUpsert())
		if err != nil {
			s.logger.Error("project upsert failed; aborting batch",
				zap.String("externalId", project.ExternalID),
				zap.Int("written", written),
				zap.Error(err),
			)
			s.publishIfWritten(written)
			metrics.RecordSync("failed", time.Since(started))
			return Result{Success: false, Error: err.Error()}
		}
		written++
		metrics.IncrementProjectUpsert(saved.Created)
		if saved.Created {
			res.Created++
			s.notifier.SendAlert(project)
		}
	}

	s.publishIfWritten(written)
	metrics.RecordSync("success", time.Since(started))

	res.Success = true
	res.Count = written
	s.logger.Info("sync finished",
		zap.Int("fetched", len(projects)),
		zap.Int("saved", written),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Duration("took", time.Since(started)),
	)
	return res
}

func (s *Service) publishIfWritten(written int) {
	if written > 0 && s.publisher != nil {
		s.publisher.Publish(events.Change{Table: events.TableProjects})
	}
}
