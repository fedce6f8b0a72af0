package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/kluaihom/banana-market-backend/internal/ai"
	"github.com/kluaihom/banana-market-backend/internal/detectctx"
	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// 8 MiB is plenty for a phone photo and keeps Gemini payloads sane.
const maxDetectImageBytes = 8 << 20

type DetectHandler struct {
	client    *ai.DetectClient
	cultivars service.CultivarService
}

func NewDetectHandler(client *ai.DetectClient, cultivars service.CultivarService) *DetectHandler {
	return &DetectHandler{client: client, cultivars: cultivars}
}

type DetectResponse struct {
	Cultivar   *CultivarResponse `json:"cultivar,omitempty"`
	BananaKey  string            `json:"bananaKey,omitempty"`
	Confidence float64           `json:"confidence,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}

func (h *DetectHandler) Detect(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image file is required"))
	}
	if file.Size > maxDetectImageBytes {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image too large"))
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read image"))
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, maxDetectImageBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read image"))
	}

	ctx := detectctx.WithRID(c.Request().Context(), uuid.NewString())
	det, err := h.client.Detect(ctx, data, file.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, ai.ErrParseFailed) {
			return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "could not understand detection result"))
		}
		return c.JSON(http.StatusBadGateway, NewErrorResponse("upstream_error", "failed to call detector"))
	}
	if det.NoBanana {
		return c.JSON(http.StatusOK, DetectResponse{Reason: "no_banana_detected"})
	}

	cultivar, err := h.cultivars.GetBySlug(ctx, det.BananaKey)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusOK, DetectResponse{
				BananaKey:  det.BananaKey,
				Confidence: det.Confidence,
				Reason:     "unknown_cultivar",
			})
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to look up cultivar"))
	}
	resp := toCultivarResponse(cultivar)
	return c.JSON(http.StatusOK, DetectResponse{
		Cultivar:   &resp,
		BananaKey:  det.BananaKey,
		Confidence: det.Confidence,
	})
}
