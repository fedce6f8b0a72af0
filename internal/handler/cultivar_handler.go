package handler

import (
	"net/http"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type CultivarHandler struct {
	svc service.CultivarService
}

func NewCultivarHandler(svc service.CultivarService) *CultivarHandler {
	return &CultivarHandler{svc: svc}
}

type CultivarResponse struct {
	ID          uint64  `json:"id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	ThaiName    string  `json:"thaiName"`
	Description string  `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

func toCultivarResponse(c *model.Cultivar) CultivarResponse {
	return CultivarResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		ThaiName:    c.ThaiName,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

func (h *CultivarHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch cultivars"))
	}
	resp := make([]CultivarResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toCultivarResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CultivarHandler) GetBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid slug"))
	}
	cultivar, err := h.svc.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toCultivarResponse(cultivar))
}
