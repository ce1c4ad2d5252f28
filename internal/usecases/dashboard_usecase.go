package usecases

import (
	"context"
	"errors"

	"ahorros.backend/internal/domain/badges"
	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/domain/progress"
	"ahorros.backend/internal/domain/ranking"
	"ahorros.backend/internal/domain/repositories"
	"ahorros.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DashboardUsecase serves progress, rankings, badges and admin stats
type DashboardUsecase struct {
	userRepo    repositories.UserRepository
	eventRepo   repositories.EventRepository
	depositRepo repositories.DepositRepository
	aggregator  *progress.Aggregator
	evaluator   *badges.Evaluator
	rankings    RankingCache
	metrics     SavingsMetrics
}

// NewDashboardUsecase creates a new dashboard usecase
func NewDashboardUsecase(
	userRepo repositories.UserRepository,
	eventRepo repositories.EventRepository,
	depositRepo repositories.DepositRepository,
	aggregator *progress.Aggregator,
	evaluator *badges.Evaluator,
	rankings RankingCache,
	metrics SavingsMetrics,
) *DashboardUsecase {
	return &DashboardUsecase{
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		depositRepo: depositRepo,
		aggregator:  aggregator,
		evaluator:   evaluator,
		rankings:    rankings,
		metrics:     metrics,
	}
}

// Dashboard summarises a user's deposits, within one event when eventID is set.
// withUser adds the short user view used by the admin screen.
func (u *DashboardUsecase) Dashboard(ctx context.Context, userID uuid.UUID, eventID *uuid.UUID, withUser bool) (*entities.Dashboard, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	scope, err := u.scope(ctx, eventID)
	if err != nil {
		return nil, err
	}

	deposits, _, err := u.depositRepo.List(ctx, entities.DepositFilter{UserID: &userID, EventID: eventID})
	if err != nil {
		return nil, err
	}

	history := make([]entities.DepositHistoryItem, 0, len(deposits))
	for _, d := range deposits {
		history = append(history, entities.DepositHistoryItem{
			ID:          d.ID,
			Amount:      d.Amount,
			Date:        d.CreatedAt,
			Description: d.Description,
		})
	}

	dashboard := &entities.Dashboard{
		EventID:         eventID,
		ProgressSummary: u.aggregator.Summarize(deposits, scope.Goal),
		DepositHistory:  history,
	}
	if withUser {
		dashboard.User = user.Ref()
	}
	return dashboard, nil
}

// Ranking returns the global ranking, or the ranking of one event's participants
func (u *DashboardUsecase) Ranking(ctx context.Context, eventID *uuid.UUID) ([]entities.RankingEntry, error) {
	scope, err := u.scope(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if cached, ok := u.rankings.Get(ctx, scope.Key()); ok {
		return cached, nil
	}

	entries, err := u.rank(ctx, scope)
	if err != nil {
		return nil, err
	}
	u.rankings.Set(ctx, scope.Key(), entries)
	return entries, nil
}

func (u *DashboardUsecase) rank(ctx context.Context, scope ranking.Scope) ([]entities.RankingEntry, error) {
	users, err := u.userRepo.ListParticipants(ctx, scope.EventID)
	if err != nil {
		return nil, err
	}
	deposits, _, err := u.depositRepo.List(ctx, entities.DepositFilter{EventID: scope.EventID})
	if err != nil {
		return nil, err
	}
	return ranking.Rank(users, deposits, scope), nil
}

// AdminStats returns participant and ledger totals
func (u *DashboardUsecase) AdminStats(ctx context.Context) (*entities.AdminStats, error) {
	totalUsers, err := u.userRepo.CountByRole(ctx, entities.UserRoleUser)
	if err != nil {
		return nil, err
	}
	count, amount, err := u.depositRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	byPlan, err := u.userRepo.CountByPlan(ctx, entities.UserRoleUser)
	if err != nil {
		return nil, err
	}
	if byPlan == nil {
		byPlan = []entities.PlanCount{}
	}

	return &entities.AdminStats{
		TotalUsers:    totalUsers,
		TotalDeposits: count,
		TotalAmount:   amount.Round(2),
		UsersByPlan:   byPlan,
	}, nil
}

// Badges lists the badges a user holds
func (u *DashboardUsecase) Badges(ctx context.Context, userID uuid.UUID) (*entities.BadgeSummary, error) {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	held := user.Badges
	if held == nil {
		held = []entities.BadgeInstance{}
	}
	return &entities.BadgeSummary{Badges: held, TotalBadges: len(held)}, nil
}

// Catalog lists every badge that can be earned
func (u *DashboardUsecase) Catalog() []entities.BadgeDescriptor {
	return badges.Descriptors()
}

// ReevaluateBadges re-runs the evaluator for every participant of an event with
// their current ranking position. Held badges are skipped, so it is safe to repeat.
func (u *DashboardUsecase) ReevaluateBadges(ctx context.Context, eventID uuid.UUID) (*entities.BadgeReevaluation, error) {
	scope, err := u.scope(ctx, &eventID)
	if err != nil {
		return nil, err
	}

	users, err := u.userRepo.ListParticipants(ctx, &eventID)
	if err != nil {
		return nil, err
	}
	deposits, _, err := u.depositRepo.List(ctx, entities.DepositFilter{EventID: &eventID})
	if err != nil {
		return nil, err
	}
	entries := ranking.Rank(users, deposits, scope)

	byUser := make(map[uuid.UUID][]*entities.Deposit)
	for _, d := range deposits {
		byUser[d.UserID] = append(byUser[d.UserID], d)
	}

	out := &entities.BadgeReevaluation{
		EventID:      eventID.String(),
		Participants: len(users),
		Granted:      map[string][]entities.BadgeInstance{},
	}
	for _, user := range users {
		position := ranking.PositionOf(entries, user.ID)
		unlocked := u.evaluator.Evaluate(ctx, user, badges.NewContext(byUser[user.ID], scope.Goal, position))
		if len(unlocked) == 0 {
			continue
		}
		if err := u.userRepo.AppendBadges(ctx, user.ID, unlocked); err != nil {
			return nil, err
		}
		for _, b := range unlocked {
			u.metrics.IncBadge(b.ID)
		}
		out.Granted[user.ID.String()] = unlocked
	}

	logger.Info(ctx, "Badges re-evaluated",
		zap.String("event_id", eventID.String()),
		zap.Int("participants", out.Participants),
		zap.Int("users_granted", len(out.Granted)),
	)
	return out, nil
}

func (u *DashboardUsecase) scope(ctx context.Context, eventID *uuid.UUID) (ranking.Scope, error) {
	if eventID == nil {
		return ranking.Scope{Goal: u.aggregator.DefaultGoal()}, nil
	}
	event, err := u.eventRepo.GetByID(ctx, *eventID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return ranking.Scope{}, domainerrors.NotFound("event not found")
		}
		return ranking.Scope{}, err
	}
	return ranking.Scope{EventID: eventID, Goal: u.aggregator.GoalOr(event.Goal)}, nil
}

func (u *DashboardUsecase) getUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
