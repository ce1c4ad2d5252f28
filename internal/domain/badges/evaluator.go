package badges

import (
	"context"
	"fmt"
	"time"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/pkg/logger"
	"go.uber.org/zap"
)

// Evaluator decides which catalog badges a user has newly earned.
// It is a pure function of the user's held badges and the supplied context;
// persisting the result is the caller's job.
type Evaluator struct {
	definitions []Definition
	now         func() time.Time
}

// NewEvaluator creates an evaluator over the full catalog. now may be nil.
func NewEvaluator(now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{definitions: Catalog(), now: now}
}

// Evaluate returns the badges c unlocks that user does not hold yet.
// A rule that errors or panics counts as not unlocked and is logged.
func (e *Evaluator) Evaluate(ctx context.Context, user *entities.User, c Context) []entities.BadgeInstance {
	held := make(map[string]struct{})
	if user != nil {
		for _, b := range user.Badges {
			held[b.ID] = struct{}{}
		}
	}

	unlockedAt := e.now()
	var unlocked []entities.BadgeInstance
	for _, def := range e.definitions {
		if _, ok := held[def.ID]; ok {
			continue
		}

		ok, err := safeEvaluate(def, c)
		if err != nil {
			logger.Warn(ctx, "Badge rule failed",
				zap.String("badge", def.ID),
				zap.String("kind", def.Kind.String()),
				zap.Error(err),
			)
			continue
		}
		if ok {
			unlocked = append(unlocked, instanceOf(def, unlockedAt))
			held[def.ID] = struct{}{}
		}
	}
	return unlocked
}

func safeEvaluate(def Definition, c Context) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("badge rule panicked: %v", r)
		}
	}()
	return def.Evaluate(c)
}

func instanceOf(def Definition, at time.Time) entities.BadgeInstance {
	return entities.BadgeInstance{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Emoji:       def.Emoji,
		UnlockedAt:  at,
	}
}

// Descriptors returns the public view of the catalog
func Descriptors() []entities.BadgeDescriptor {
	out := make([]entities.BadgeDescriptor, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, entities.BadgeDescriptor{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Emoji:       d.Emoji,
		})
	}
	return out
}
