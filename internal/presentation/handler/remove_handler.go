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

type RemoveHandler struct {
	manager abstraction.CollectionManager
}

func NewRemoveHandler(manager abstraction.CollectionManager) *RemoveHandler {
	return &RemoveHandler{
		manager: manager,
	}
}

// HandleRemove handles DELETE /records/:parentId/media/:mediaId requests.
func (h *RemoveHandler) HandleRemove(c echo.Context) error {
	parentID := c.Param(presentation.ParentIDParam)
	mediaID := c.Param(presentation.MediaIDParam)
	if parentID == "" || mediaID == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing parent record id or media id")

		return c.NoContent(http.StatusBadRequest)
	}

	result, err := h.manager.RemoveItem(c.Request().Context(), parentID, mediaID)
	if err != nil {
		if errors.Is(err, mediaerr.ErrMediaNotFound) {
			c.Response().Header().Set(presentation.ReasonTag, err.Error())

			return c.NoContent(http.StatusNotFound)
		}

		logger.Error("remove failed", "parent", parentID, "media", mediaID, "error", err)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to remove media. Please try again later.",
		})
	}

	return c.JSON(http.StatusOK, result)
}
