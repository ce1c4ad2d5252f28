package jobs

import (
	"context"
	"time"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type activeEventLister interface {
	ListActive(ctx context.Context) ([]*entities.Event, error)
}

type badgeReevaluator interface {
	ReevaluateBadges(ctx context.Context, eventID uuid.UUID) (*entities.BadgeReevaluation, error)
}

// BadgeReevaluationJob periodically re-runs badge evaluation with ranking
// positions for every active event
type BadgeReevaluationJob struct {
	events   activeEventLister
	badges   badgeReevaluator
	interval time.Duration
	stop     chan struct{}
}

func NewBadgeReevaluationJob(events activeEventLister, badges badgeReevaluator, interval time.Duration) *BadgeReevaluationJob {
	return &BadgeReevaluationJob{
		events:   events,
		badges:   badges,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *BadgeReevaluationJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting badge re-evaluation job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Badge re-evaluation job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Badge re-evaluation job stopped")
			return
		case <-ticker.C:
			j.reevaluateActiveEvents(ctx)
		}
	}
}

func (j *BadgeReevaluationJob) Stop() {
	close(j.stop)
}

func (j *BadgeReevaluationJob) reevaluateActiveEvents(ctx context.Context) {
	events, err := j.events.ListActive(ctx)
	if err != nil {
		logger.Error(ctx, "Error listing active events", zap.Error(err))
		return
	}

	granted := 0
	for _, event := range events {
		result, err := j.badges.ReevaluateBadges(ctx, event.ID)
		if err != nil {
			logger.Error(ctx, "Error re-evaluating badges", zap.String("eventId", event.ID.String()), zap.Error(err))
			continue
		}
		for _, list := range result.Granted {
			granted += len(list)
		}
	}

	if granted > 0 {
		logger.Info(ctx, "Badge re-evaluation granted badges", zap.Int("granted", granted), zap.Int("events", len(events)))
	}
}
