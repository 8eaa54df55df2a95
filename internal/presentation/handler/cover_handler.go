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

type CoverHandler struct {
	manager abstraction.CollectionManager
}

func NewCoverHandler(manager abstraction.CollectionManager) *CoverHandler {
	return &CoverHandler{
		manager: manager,
	}
}

// HandleSetCover handles PUT /records/:parentId/media/:mediaId/cover requests.
func (h *CoverHandler) HandleSetCover(c echo.Context) error {
	parentID := c.Param(presentation.ParentIDParam)
	mediaID := c.Param(presentation.MediaIDParam)
	if parentID == "" || mediaID == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing parent record id or media id")

		return c.NoContent(http.StatusBadRequest)
	}

	err := h.manager.SetCover(c.Request().Context(), parentID, mediaID)
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, mediaerr.ErrMediaNotFound):
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusNotFound)
	case errors.Is(err, mediaerr.ErrInvariantViolation):
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusConflict)
	default:
		logger.Error("set cover failed", "parent", parentID, "media", mediaID, "error", err)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update cover. Please try again later.",
		})
	}
}
