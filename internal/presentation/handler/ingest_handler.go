package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"propmedia/internal/application/usecase/abstraction"
	"propmedia/internal/domain/entity"
	"propmedia/internal/presentation"
	"propmedia/pkg/logger"
)

type IngestHandler struct {
	ingester abstraction.Ingester
}

func NewIngestHandler(ingester abstraction.Ingester) *IngestHandler {
	return &IngestHandler{
		ingester: ingester,
	}
}

// HandleIngest handles POST /records/:parentId/media requests. Files come
// as a multipart batch under the "files" field; the "promote_cover" query
// parameter (default true) controls first-image cover promotion.
func (h *IngestHandler) HandleIngest(c echo.Context) error {
	parentID := c.Param(presentation.ParentIDParam)
	if parentID == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing parent record id")

		return c.NoContent(http.StatusBadRequest)
	}

	userID := c.Request().Header.Get(presentation.UserIDHeader)
	if userID == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing "+presentation.UserIDHeader+" header")

		return c.NoContent(http.StatusBadRequest)
	}

	promote, err := parseBoolQueryParam(c, presentation.PromoteParam, true)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	files, err := readMultipartFiles(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}
	if len(files) == 0 {
		c.Response().Header().Set(presentation.ReasonTag, "no files in request")

		return c.NoContent(http.StatusBadRequest)
	}

	result, err := h.ingester.Ingest(c.Request().Context(), files, parentID, userID, promote)
	if err != nil {
		logger.Error("ingest failed", "parent", parentID, "error", err)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to ingest media. Please try again later.",
		})
	}

	return c.JSON(http.StatusOK, result)
}

func readMultipartFiles(c echo.Context) ([]entity.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.New("invalid multipart form")
	}

	headers := form.File[presentation.FilesField]
	files := make([]entity.File, 0, len(headers))

	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(src)
		closeErr := src.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, closeErr
		}

		files = append(files, entity.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(presentation.TypeKey),
			Size:        int64(len(data)),
			Data:        data,
		})
	}

	return files, nil
}

func parseBoolQueryParam(c echo.Context, name string, def bool) (bool, error) {
	s := c.QueryParam(name)
	if s == "" {
		return def, nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid '%s' value", name)
	}

	return v, nil
}
