package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"propmedia/internal/application/usecase/abstraction"
	"propmedia/internal/presentation"
	"propmedia/pkg/logger"
)

type ListHandler struct {
	manager abstraction.CollectionManager
}

func NewListHandler(manager abstraction.CollectionManager) *ListHandler {
	return &ListHandler{
		manager: manager,
	}
}

// HandleList handles GET /records/:parentId/media requests.
func (h *ListHandler) HandleList(c echo.Context) error {
	parentID := c.Param(presentation.ParentIDParam)
	if parentID == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing parent record id")

		return c.NoContent(http.StatusBadRequest)
	}

	col, err := h.manager.List(c.Request().Context(), parentID)
	if err != nil {
		logger.Error("list failed", "parent", parentID, "error", err)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to list media. Please try again later.",
		})
	}

	return c.JSON(http.StatusOK, col)
}
