package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

type ReserveRequest struct {
	Quantity        int64  `json:"quantity"`
	Note            string `json:"note"`
	UseSavedProfile bool   `json:"useSavedProfile"`
	ReceiverName    string `json:"receiverName"`
	ReceiverPhone   string `json:"receiverPhone"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type ReservationResponse struct {
	ID              uint64  `json:"id"`
	BuyerUID        string  `json:"buyerUid"`
	ProductID       uint64  `json:"productId"`
	FarmID          uint64  `json:"farmId"`
	Quantity        int64   `json:"quantity"`
	TotalPrice      float64 `json:"totalPrice"`
	ReceiverName    string  `json:"receiverName"`
	ReceiverPhone   string  `json:"receiverPhone"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Note            string  `json:"note,omitempty"`
	Status          string  `json:"status"`
	CancelReason    string  `json:"cancelReason,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

type ReservationWithProductResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Product     *ProductResponse    `json:"product,omitempty"`
}

func toReservationResponse(r *model.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		BuyerUID:        r.BuyerUID,
		ProductID:       r.ProductID,
		FarmID:          r.FarmID,
		Quantity:        r.Quantity,
		TotalPrice:      r.TotalPrice,
		ReceiverName:    r.ReceiverName,
		ReceiverPhone:   r.ReceiverPhone,
		DeliveryAddress: r.DeliveryAddress,
		Note:            r.Note,
		Status:          string(r.Status),
		CancelReason:    r.CancelReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ReservationHandler) Reserve(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	var req ReserveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	res, err := h.svc.Reserve(c.Request().Context(), uid, service.ReserveInput{
		ProductID:       productID,
		Quantity:        req.Quantity,
		Note:            req.Note,
		UseSavedProfile: req.UseSavedProfile,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toReservationResponse(res))
}

func (h *ReservationHandler) Confirm(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid reservation id"))
	}
	order, err := h.svc.Confirm(c.Request().Context(), id, uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid reservation id"))
	}
	var req CancelRequest
	_ = c.Bind(&req)
	res, err := h.svc.Cancel(c.Request().Context(), id, uid, req.Reason)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(res))
}

func (h *ReservationHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListByBuyer(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch reservations"))
	}
	return c.JSON(http.StatusOK, toReservationWithProductResponses(list))
}

func (h *ReservationHandler) ListFarmPending(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListPendingForFarm(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationWithProductResponses(list))
}

func toReservationWithProductResponses(list []service.ReservationWithProduct) []ReservationWithProductResponse {
	resp := make([]ReservationWithProductResponse, 0, len(list))
	for _, row := range list {
		item := ReservationWithProductResponse{
			Reservation: toReservationResponse(&row.Reservation),
		}
		if row.Product != nil {
			p := toProductResponse(row.Product)
			item.Product = &p
		}
		resp = append(resp, item)
	}
	return resp
}
