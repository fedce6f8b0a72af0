package handler

import (
	"net/http"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileResponse struct {
	UID             string   `json:"uid"`
	DisplayName     string   `json:"displayName"`
	Phone           string   `json:"phone"`
	DeliveryAddress string   `json:"deliveryAddress"`
	Roles           []string `json:"roles"`
	LastSeen        *string  `json:"lastSeen,omitempty"`
}

func toProfileResponse(p *model.UserProfile, roles []model.Role) ProfileResponse {
	resp := ProfileResponse{
		UID:             p.UID,
		DisplayName:     p.DisplayName,
		Phone:           p.Phone,
		DeliveryAddress: p.DeliveryAddress,
		Roles:           make([]string, 0, len(roles)),
	}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, string(r))
	}
	if p.LastSeen != nil {
		val := p.LastSeen.Format(time.RFC3339)
		resp.LastSeen = &val
	}
	return resp
}

func (h *ProfileHandler) GetMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	profile, roles, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile, roles))
}

type UpdateProfileRequest struct {
	DisplayName     string `json:"displayName"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"deliveryAddress"`
}

func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	profile, err := h.svc.Update(c.Request().Context(), uid, req.DisplayName, req.Phone, req.DeliveryAddress)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile, nil))
}

// Heartbeat always answers 204; the write is best-effort.
func (h *ProfileHandler) Heartbeat(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	h.svc.Heartbeat(c.Request().Context(), uid)
	return c.NoContent(http.StatusNoContent)
}
