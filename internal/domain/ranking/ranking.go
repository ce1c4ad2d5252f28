// Package ranking orders participants by total saved.
package ranking

import (
	"sort"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/internal/domain/progress"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scope restricts a ranking to one event. A nil EventID ranks across all events.
type Scope struct {
	EventID *uuid.UUID
	Goal    decimal.Decimal
}

// Global reports whether the scope spans all events
func (s Scope) Global() bool {
	return s.EventID == nil
}

// Key identifies the scope for caching
func (s Scope) Key() string {
	if s.Global() {
		return "global"
	}
	return s.EventID.String()
}

// Eligible reports whether user takes part in a ranking for scope
func Eligible(user *entities.User, scope Scope) bool {
	if user == nil || !user.IsActive || user.Role != entities.UserRoleUser {
		return false
	}
	if scope.Global() {
		return true
	}
	return user.IsRegisteredFor(*scope.EventID)
}

type tally struct {
	total decimal.Decimal
	count int
}

// Rank orders eligible users by total saved, descending. Equal totals keep the
// order of users and still get distinct consecutive positions. A global
// ranking leaves out users who saved nothing.
func Rank(users []*entities.User, deposits []*entities.Deposit, scope Scope) []entities.RankingEntry {
	tallies := make(map[uuid.UUID]*tally, len(users))
	for _, d := range deposits {
		if d == nil {
			continue
		}
		if !scope.Global() && d.EventID != *scope.EventID {
			continue
		}
		t, ok := tallies[d.UserID]
		if !ok {
			t = &tally{total: decimal.Zero}
			tallies[d.UserID] = t
		}
		t.total = t.total.Add(d.Amount)
		t.count++
	}

	type row struct {
		user *entities.User
		tally
	}
	rows := make([]row, 0, len(users))
	for _, u := range users {
		if !Eligible(u, scope) {
			continue
		}
		r := row{user: u, tally: tally{total: decimal.Zero}}
		if t, ok := tallies[u.ID]; ok {
			r.tally = *t
		}
		if scope.Global() && !r.total.IsPositive() {
			continue
		}
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].total.GreaterThan(rows[j].total)
	})

	out := make([]entities.RankingEntry, 0, len(rows))
	for i, r := range rows {
		out = append(out, entities.RankingEntry{
			Position:        i + 1,
			UserID:          r.user.ID,
			Name:            r.user.Name,
			Phone:           r.user.Phone,
			TotalSaved:      r.total.Round(2),
			DepositCount:    r.count,
			ProgressPercent: progress.Percent(r.total, scope.Goal).Round(2),
		})
	}
	return out
}

// PositionOf returns the 1-based position of userID, or nil when absent
func PositionOf(entries []entities.RankingEntry, userID uuid.UUID) *int {
	for _, e := range entries {
		if e.UserID == userID {
			pos := e.Position
			return &pos
		}
	}
	return nil
}
