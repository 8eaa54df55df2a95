package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"propmedia/internal/domain/repository/blobstore"
)

type storageStatus struct {
	blobstore.StorageInfo
	blobstore.Availability
}

// StorageHandler surfaces local blob store health so clients can warn
// users before an upload fails on a full device.
type StorageHandler struct {
	blobs blobstore.Store
}

func NewStorageHandler(blobs blobstore.Store) *StorageHandler {
	return &StorageHandler{
		blobs: blobs,
	}
}

// HandleStatus handles GET /storage/status requests.
func (h *StorageHandler) HandleStatus(c echo.Context) error {
	ctx := c.Request().Context()

	info, err := h.blobs.StorageInfo(ctx)
	if err != nil {
		// StorageInfo is advisory; degrade to zeros rather than failing.
		info = blobstore.StorageInfo{}
	}

	return c.JSON(http.StatusOK, storageStatus{
		StorageInfo:  info,
		Availability: h.blobs.CheckAvailability(ctx),
	})
}
