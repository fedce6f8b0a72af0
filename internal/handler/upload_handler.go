package handler

import (
	"io"
	"net/http"

	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/kluaihom/banana-market-backend/internal/storage"
	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 10 << 20

type UploadHandler struct {
	uploader *storage.Uploader
	farms    service.FarmService
}

func NewUploadHandler(uploader *storage.Uploader, farms service.FarmService) *UploadHandler {
	return &UploadHandler{uploader: uploader, farms: farms}
}

type UploadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) UploadProductImage(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	farm, err := h.farms.GetByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image file is required"))
	}
	if file.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image too large"))
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read image"))
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read image"))
	}

	url, err := h.uploader.UploadProductImage(c.Request().Context(), farm.ID, data, file.Header.Get("Content-Type"))
	if err != nil {
		return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "failed to upload image"))
	}
	return c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
