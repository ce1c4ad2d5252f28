package handlers

import (
	"context"
	"net/http"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DashboardService is the dashboard usecase as seen by the handler
type DashboardService interface {
	Dashboard(ctx context.Context, userID uuid.UUID, eventID *uuid.UUID, withUser bool) (*entities.Dashboard, error)
	Ranking(ctx context.Context, eventID *uuid.UUID) ([]entities.RankingEntry, error)
	AdminStats(ctx context.Context) (*entities.AdminStats, error)
	Badges(ctx context.Context, userID uuid.UUID) (*entities.BadgeSummary, error)
	Catalog() []entities.BadgeDescriptor
	ReevaluateBadges(ctx context.Context, eventID uuid.UUID) (*entities.BadgeReevaluation, error)
}

// DashboardHandler handles progress, ranking and badge endpoints
type DashboardHandler struct {
	dashboardUsecase DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardUsecase DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// GetMyDashboard returns the caller's progress
// GET /api/dashboard/me?eventId=
func (h *DashboardHandler) GetMyDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.dashboard(c, userID, false)
}

// GetUserDashboard returns another user's progress for the admin screen
// GET /api/dashboard/user/:id?eventId=
func (h *DashboardHandler) GetUserDashboard(c *gin.Context) {
	userID, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}
	h.dashboard(c, userID, true)
}

func (h *DashboardHandler) dashboard(c *gin.Context, userID uuid.UUID, withUser bool) {
	eventID, ok := eventQuery(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardUsecase.Dashboard(c.Request.Context(), userID, eventID, withUser)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dashboard)
}

// GetRanking returns the global ranking or the ranking of ?eventId=
// GET /api/dashboard/ranking
func (h *DashboardHandler) GetRanking(c *gin.Context) {
	eventID, ok := eventQuery(c)
	if !ok {
		return
	}

	entries, err := h.dashboardUsecase.Ranking(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if entries == nil {
		entries = []entities.RankingEntry{}
	}
	response.Success(c, http.StatusOK, entries)
}

// GetAdminStats returns the admin totals
// GET /api/dashboard/admin/stats
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.dashboardUsecase.AdminStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GetMyBadges lists the caller's badges
// GET /api/dashboard/badges/my
func (h *DashboardHandler) GetMyBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.badges(c, userID)
}

// GetUserBadges lists another user's badges
// GET /api/dashboard/badges/user/:id
func (h *DashboardHandler) GetUserBadges(c *gin.Context) {
	userID, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}
	h.badges(c, userID)
}

func (h *DashboardHandler) badges(c *gin.Context, userID uuid.UUID) {
	summary, err := h.dashboardUsecase.Badges(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// GetCatalog lists every badge that can be earned
// GET /api/dashboard/badges/catalog
func (h *DashboardHandler) GetCatalog(c *gin.Context) {
	response.Success(c, http.StatusOK, h.dashboardUsecase.Catalog())
}

// ReevaluateBadges re-runs badge evaluation with ranking positions for an event
// POST /api/events/:eventId/badges/reevaluate
func (h *DashboardHandler) ReevaluateBadges(c *gin.Context) {
	eventID, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}

	result, err := h.dashboardUsecase.ReevaluateBadges(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
