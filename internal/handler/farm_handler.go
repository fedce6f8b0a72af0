package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type FarmHandler struct {
	svc service.FarmService
}

func NewFarmHandler(svc service.FarmService) *FarmHandler {
	return &FarmHandler{svc: svc}
}

type FarmPublicResponse struct {
	ID           uint64  `json:"id"`
	FarmName     string  `json:"farmName"`
	FarmLocation string  `json:"farmLocation"`
	Description  string  `json:"description,omitempty"`
	Rating       float64 `json:"rating"`
	TotalReviews int64   `json:"totalReviews"`
	TotalSales   float64 `json:"totalSales"`
	IsVerified   bool    `json:"isVerified"`
	LastSeen     *string `json:"lastSeen,omitempty"`
}

func toFarmPublicResponse(f *model.FarmProfile) FarmPublicResponse {
	return FarmPublicResponse{
		ID:           f.ID,
		FarmName:     f.FarmName,
		FarmLocation: f.FarmLocation,
		Description:  f.Description,
		Rating:       f.Rating,
		TotalReviews: f.TotalReviews,
		TotalSales:   f.TotalSales,
		IsVerified:   f.IsVerified,
	}
}

type UpgradeToFarmRequest struct {
	FarmName     string `json:"farmName"`
	FarmLocation string `json:"farmLocation"`
}

func (h *FarmHandler) UpgradeToFarm(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpgradeToFarmRequest
	_ = c.Bind(&req)
	farm, err := h.svc.UpgradeToFarm(c.Request().Context(), uid, req.FarmName, req.FarmLocation)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toFarmPublicResponse(farm))
}

func (h *FarmHandler) GetMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	farm, err := h.svc.GetByOwner(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFarmPublicResponse(farm))
}

type UpdateFarmRequest struct {
	FarmName     string `json:"farmName"`
	FarmLocation string `json:"farmLocation"`
	Description  string `json:"description"`
}

func (h *FarmHandler) UpdateMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpdateFarmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	farm, err := h.svc.UpdateProfile(c.Request().Context(), uid, req.FarmName, req.FarmLocation, req.Description)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFarmPublicResponse(farm))
}

type PublicFarmResponse struct {
	Farm     FarmPublicResponse `json:"farm"`
	Products []ProductResponse  `json:"products"`
}

func (h *FarmHandler) GetPublic(c echo.Context) error {
	farmID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid farm id"))
	}
	pub, err := h.svc.GetPublic(c.Request().Context(), farmID)
	if err != nil {
		return writeServiceError(c, err)
	}
	farmResp := toFarmPublicResponse(&pub.Farm)
	if pub.LastSeen != nil {
		val := pub.LastSeen.Format(time.RFC3339)
		farmResp.LastSeen = &val
	}
	resp := PublicFarmResponse{
		Farm:     farmResp,
		Products: make([]ProductResponse, 0, len(pub.Products)),
	}
	for i := range pub.Products {
		resp.Products = append(resp.Products, toProductResponse(&pub.Products[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type DashboardStatsResponse struct {
	ActiveProducts int64   `json:"activeProducts"`
	TotalOrders    int64   `json:"totalOrders"`
	PendingOrders  int64   `json:"pendingOrders"`
	TotalSales     float64 `json:"totalSales"`
}

func (h *FarmHandler) DashboardStats(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	stats, err := h.svc.DashboardStats(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, DashboardStatsResponse{
		ActiveProducts: stats.ActiveProducts,
		TotalOrders:    stats.TotalOrders,
		PendingOrders:  stats.PendingOrders,
		TotalSales:     stats.TotalSales,
	})
}
