package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type OrderResponse struct {
	ID              uint64  `json:"id"`
	OrderNumber     string  `json:"orderNumber"`
	BuyerUID        string  `json:"buyerUid"`
	FarmID          uint64  `json:"farmId"`
	ProductID       uint64  `json:"productId"`
	Quantity        int64   `json:"quantity"`
	TotalPrice      float64 `json:"totalPrice"`
	ReceiverName    string  `json:"receiverName"`
	ReceiverPhone   string  `json:"receiverPhone"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Note            string  `json:"note,omitempty"`
	Status          string  `json:"status"`
	Carrier         string  `json:"carrier,omitempty"`
	TrackingNumber  string  `json:"trackingNumber,omitempty"`
	ConfirmedAt     string  `json:"confirmedAt"`
	ShippedAt       *string `json:"shippedAt,omitempty"`
	DeliveredAt     *string `json:"deliveredAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

type OrderWithProductResponse struct {
	Order   OrderResponse    `json:"order"`
	Product *ProductResponse `json:"product,omitempty"`
}

func toOrderResponse(o *model.Order) OrderResponse {
	var shippedAt, deliveredAt *string
	if o.ShippedAt != nil {
		val := o.ShippedAt.Format(time.RFC3339)
		shippedAt = &val
	}
	if o.DeliveredAt != nil {
		val := o.DeliveredAt.Format(time.RFC3339)
		deliveredAt = &val
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerUID:        o.BuyerUID,
		FarmID:          o.FarmID,
		ProductID:       o.ProductID,
		Quantity:        o.Quantity,
		TotalPrice:      o.TotalPrice,
		ReceiverName:    o.ReceiverName,
		ReceiverPhone:   o.ReceiverPhone,
		DeliveryAddress: o.DeliveryAddress,
		Note:            o.Note,
		Status:          string(o.Status),
		Carrier:         o.Carrier,
		TrackingNumber:  o.TrackingNumber,
		ConfirmedAt:     o.ConfirmedAt.Format(time.RFC3339),
		ShippedAt:       shippedAt,
		DeliveredAt:     deliveredAt,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
	}
}

type ShipRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
}

func (h *OrderHandler) Ship(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	var req ShipRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	order, err := h.svc.Ship(c.Request().Context(), id, uid, req.Carrier, req.TrackingNumber)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) ConfirmDelivery(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	order, err := h.svc.ConfirmDelivery(c.Request().Context(), id, uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListByBuyer(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
	}
	return c.JSON(http.StatusOK, toOrderWithProductResponses(list))
}

func (h *OrderHandler) ListFarm(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListForFarm(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderWithProductResponses(list))
}

func toOrderWithProductResponses(list []service.OrderWithProduct) []OrderWithProductResponse {
	resp := make([]OrderWithProductResponse, 0, len(list))
	for _, row := range list {
		item := OrderWithProductResponse{Order: toOrderResponse(&row.Order)}
		if row.Product != nil {
			p := toProductResponse(row.Product)
			item.Product = &p
		}
		resp = append(resp, item)
	}
	return resp
}
