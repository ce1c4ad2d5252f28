package handlers

import (
	"context"
	"net/http"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventService is the event usecase as seen by the handler
type EventService interface {
	ListActive(ctx context.Context) ([]*entities.Event, error)
	GetPrimary(ctx context.Context) (*entities.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Event, error)
	Create(ctx context.Context, adminID uuid.UUID, input *entities.CreateEventInput) (*entities.Event, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateEventInput) (*entities.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (*entities.EventStats, error)
	Register(ctx context.Context, userID, eventID uuid.UUID) ([]uuid.UUID, error)
	Unregister(ctx context.Context, userID, eventID uuid.UUID) ([]uuid.UUID, error)
	ListRegistered(ctx context.Context, userID uuid.UUID) ([]*entities.Event, error)
}

// EventHandler handles event endpoints
type EventHandler struct {
	eventUsecase EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventUsecase EventService) *EventHandler {
	return &EventHandler{eventUsecase: eventUsecase}
}

// ListEvents lists active events
// GET /api/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventUsecase.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if events == nil {
		events = []*entities.Event{}
	}
	response.Success(c, http.StatusOK, events)
}

// GetPrimary returns the primary event
// GET /api/events/primary
func (h *EventHandler) GetPrimary(c *gin.Context) {
	event, err := h.eventUsecase.GetPrimary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, event)
}

// GetEvent returns one event
// GET /api/events/:eventId
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}

	event, err := h.eventUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, event)
}

// CreateEvent creates an event
// POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.CreateEventInput
	if !bindJSON(c, &input) {
		return
	}

	event, err := h.eventUsecase.Create(c.Request.Context(), adminID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, event)
}

// UpdateEvent updates an event
// PUT /api/events/:eventId
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}
	var input entities.UpdateEventInput
	if !bindJSON(c, &input) {
		return
	}

	event, err := h.eventUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, event)
}

// DeleteEvent deletes an event without deposits
// DELETE /api/events/:eventId
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}

	if err := h.eventUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Event deleted")
}

// GetStats returns event totals
// GET /api/events/:eventId/stats
func (h *EventHandler) GetStats(c *gin.Context) {
	id, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}

	stats, err := h.eventUsecase.Stats(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Register joins the caller to an event
// POST /api/events/:eventId/register
func (h *EventHandler) Register(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.register(c, userID)
}

// Unregister removes the caller from an event
// DELETE /api/events/:eventId/unregister
func (h *EventHandler) Unregister(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.unregister(c, userID)
}

// RegisterUser joins another user to an event
// POST /api/events/:eventId/register-user
func (h *EventHandler) RegisterUser(c *gin.Context) {
	var input entities.RegistrationInput
	if !bindJSON(c, &input) {
		return
	}
	h.register(c, input.UserID)
}

// UnregisterUser removes another user from an event
// DELETE /api/events/:eventId/unregister-user
func (h *EventHandler) UnregisterUser(c *gin.Context) {
	var input entities.RegistrationInput
	if !bindJSON(c, &input) {
		return
	}
	h.unregister(c, input.UserID)
}

// ListRegistered lists the caller's events
// GET /api/events/user/registered
func (h *EventHandler) ListRegistered(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	events, err := h.eventUsecase.ListRegistered(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, events)
}

func (h *EventHandler) register(c *gin.Context, userID uuid.UUID) {
	eventID, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}

	registered, err := h.eventUsecase.Register(c.Request.Context(), userID, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Registered for event", registered)
}

func (h *EventHandler) unregister(c *gin.Context, userID uuid.UUID) {
	eventID, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}

	registered, err := h.eventUsecase.Unregister(c.Request.Context(), userID, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Unregistered from event", registered)
}
