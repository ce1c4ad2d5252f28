package handlers

import (
	"context"
	"net/http"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserService is the user usecase as seen by the handler
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	ListUsers(ctx context.Context) ([]*entities.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// UserHandler handles user endpoints
type UserHandler struct {
	userUsecase UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase UserService) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// GetMe returns the caller's profile
// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respondUser(c, userID)
}

// UpdateMe updates the caller's name and plan
// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ListUsers lists participants
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUsecase.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if users == nil {
		users = []*entities.User{}
	}
	response.Success(c, http.StatusOK, users)
}

// GetUser returns one user
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}
	h.respondUser(c, id)
}

// UpdateUser lets an admin edit a user
// PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}
	var input entities.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userUsecase.UpdateUser(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeleteUser removes a user and their ledger
// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.userUsecase.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User deleted")
}

func (h *UserHandler) respondUser(c *gin.Context, id uuid.UUID) {
	user, err := h.userUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
