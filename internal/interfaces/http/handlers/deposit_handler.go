package handlers

import (
	"context"
	"net/http"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/internal/interfaces/http/response"
	"ahorros.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DepositService is the deposit usecase as seen by the handler
type DepositService interface {
	Record(ctx context.Context, adminID uuid.UUID, input *entities.CreateDepositInput) (*entities.DepositResult, error)
	GetReceipt(ctx context.Context, depositID uuid.UUID) (*entities.Receipt, error)
	ListForUser(ctx context.Context, userID uuid.UUID, eventID *uuid.UUID, pagination utils.PaginationParams) (*entities.DepositPage, error)
	ListAll(ctx context.Context, eventID *uuid.UUID, pagination utils.PaginationParams) (*entities.DepositPage, error)
}

// DepositHandler handles deposit endpoints
type DepositHandler struct {
	depositUsecase DepositService
}

// NewDepositHandler creates a new deposit handler
func NewDepositHandler(depositUsecase DepositService) *DepositHandler {
	return &DepositHandler{depositUsecase: depositUsecase}
}

// CreateDeposit records a deposit for a participant
// POST /api/deposits
func (h *DepositHandler) CreateDeposit(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.CreateDepositInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.depositUsecase.Record(c.Request.Context(), adminID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// DownloadReceipt renders and streams a deposit receipt
// GET /api/deposits/:depositId/receipt
func (h *DepositHandler) DownloadReceipt(c *gin.Context) {
	id, ok := pathUUID(c, "depositId", "deposit")
	if !ok {
		return
	}

	receipt, err := h.depositUsecase.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(receipt.FilePath, "recibo_deposito_"+id.String()+".pdf")
}

// ListMine lists the caller's deposits, optionally filtered by ?eventId=
// GET /api/deposits/my
func (h *DepositHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := eventQuery(c)
	if !ok {
		return
	}
	h.respondPage(c)(h.depositUsecase.ListForUser(c.Request.Context(), userID, eventID, pagination(c)))
}

// ListMineByEvent lists the caller's deposits within one event
// GET /api/deposits/my/:eventId
func (h *DepositHandler) ListMineByEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}
	h.respondPage(c)(h.depositUsecase.ListForUser(c.Request.Context(), userID, &eventID, pagination(c)))
}

// ListByUser lists one user's deposits
// GET /api/deposits/user/:id
func (h *DepositHandler) ListByUser(c *gin.Context) {
	userID, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}
	eventID, ok := eventQuery(c)
	if !ok {
		return
	}
	h.respondPage(c)(h.depositUsecase.ListForUser(c.Request.Context(), userID, eventID, pagination(c)))
}

// ListAll lists the whole ledger
// GET /api/deposits
func (h *DepositHandler) ListAll(c *gin.Context) {
	eventID, ok := eventQuery(c)
	if !ok {
		return
	}
	h.respondPage(c)(h.depositUsecase.ListAll(c.Request.Context(), eventID, pagination(c)))
}

func (h *DepositHandler) respondPage(c *gin.Context) func(*entities.DepositPage, error) {
	return func(page *entities.DepositPage, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, page)
	}
}
