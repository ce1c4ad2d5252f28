package handlers

import (
	"strconv"

	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/interfaces/http/middleware"
	"ahorros.backend/internal/interfaces/http/response"
	"ahorros.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathUUID parses the named path parameter, writing a 400 when it is malformed
func pathUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+label+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

// eventQuery reads the optional ?eventId= filter
func eventQuery(c *gin.Context) (*uuid.UUID, bool) {
	id, err := utils.ParseOptionalUUID(c.Query("eventId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid event ID"))
		return nil, false
	}
	return id, true
}

// pagination reads ?page=&limit=. Without a limit every row is returned.
func pagination(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return utils.GetPaginationParams(page, limit)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return uuid.Nil, false
	}
	return userID, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return false
	}
	return true
}
