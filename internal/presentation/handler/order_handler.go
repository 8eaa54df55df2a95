package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"propmedia/internal/application/usecase/abstraction"
	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/presentation"
	"propmedia/pkg/logger"
)

type orderRequest struct {
	Order []string `json:"order"`
}

type OrderHandler struct {
	manager abstraction.CollectionManager
}

func NewOrderHandler(manager abstraction.CollectionManager) *OrderHandler {
	return &OrderHandler{
		manager: manager,
	}
}

// HandleReorder handles PUT /records/:parentId/media/order requests. The
// body lists every media ID of the collection in the desired display order.
func (h *OrderHandler) HandleReorder(c echo.Context) error {
	parentID := c.Param(presentation.ParentIDParam)
	if parentID == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing parent record id")

		return c.NoContent(http.StatusBadRequest)
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		c.Response().Header().Set(presentation.ReasonTag, "invalid request body")

		return c.NoContent(http.StatusBadRequest)
	}

	err := h.manager.Reorder(c.Request().Context(), parentID, req.Order)
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, mediaerr.ErrInvariantViolation):
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusConflict)
	default:
		logger.Error("reorder failed", "parent", parentID, "error", err)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to reorder media. Please try again later.",
		})
	}
}
