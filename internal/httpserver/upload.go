package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/storage"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type UploadHTTP struct {
	Store *storage.FSStore
}

func (h *UploadHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload")

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(l, "upload_error", "field 'file' required", err)
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(l, "upload_error", "cannot read file", err)
	}
	defer f.Close()

	path, err := h.Store.Save(fh.Filename, f)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return badRequest(l, "upload_error", err.Error(), err)
		}
		l.Error("upload_error", "status", 500, "reason", "cannot save file", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save file")
	}

	l.Info("upload_success", "path", path)
	return c.JSON(http.StatusCreated, map[string]string{"path": path})
}
