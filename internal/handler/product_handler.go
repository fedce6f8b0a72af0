package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type ProductResponse struct {
	ID                uint64  `json:"id"`
	FarmID            uint64  `json:"farmId"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	ProductType       string  `json:"productType"`
	PricePerUnit      float64 `json:"pricePerUnit"`
	AvailableQuantity int64   `json:"availableQuantity"`
	Unit              string  `json:"unit"`
	HarvestDate       string  `json:"harvestDate"`
	ExpiryDate        *string `json:"expiryDate,omitempty"`
	IsActive          bool    `json:"isActive"`
	ImageURL          *string `json:"imageUrl,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}

type ProductDetailResponse struct {
	Product ProductResponse     `json:"product"`
	Images  []string            `json:"images"`
	Farm    *FarmPublicResponse `json:"farm,omitempty"`
}

type ProductRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ProductType  string   `json:"productType"`
	PricePerUnit float64  `json:"pricePerUnit"`
	Quantity     int64    `json:"quantity"`
	Unit         string   `json:"unit"`
	HarvestDate  string   `json:"harvestDate"`
	ExpiryDate   *string  `json:"expiryDate"`
	ImageURL     *string  `json:"imageUrl"`
	ImageURLs    []string `json:"imageUrls"`
}

const dateLayout = "2006-01-02"

func (req *ProductRequest) toInput() (service.ProductInput, error) {
	in := service.ProductInput{
		Name:         req.Name,
		Description:  req.Description,
		ProductType:  req.ProductType,
		PricePerUnit: req.PricePerUnit,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		ImageURL:     req.ImageURL,
		ImageURLs:    req.ImageURLs,
	}
	if req.HarvestDate != "" {
		d, err := time.Parse(dateLayout, req.HarvestDate)
		if err != nil {
			return in, err
		}
		in.HarvestDate = d
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		d, err := time.Parse(dateLayout, *req.ExpiryDate)
		if err != nil {
			return in, err
		}
		in.ExpiryDate = &d
	}
	return in, nil
}

func (h *ProductHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid date format"))
	}
	product, err := h.svc.Create(c.Request().Context(), uid, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *ProductHandler) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid date format"))
	}
	product, err := h.svc.Update(c.Request().Context(), uid, id, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	if err := h.svc.Delete(c.Request().Context(), uid, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) ToggleActive(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	active, err := h.svc.ToggleActive(c.Request().Context(), uid, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"isActive": active})
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	detail, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := ProductDetailResponse{
		Product: toProductResponse(&detail.Product),
		Images:  make([]string, 0, len(detail.Images)),
	}
	for _, img := range detail.Images {
		resp.Images = append(resp.Images, img.ImageURL)
	}
	if detail.Farm != nil {
		farmResp := toFarmPublicResponse(detail.Farm)
		resp.Farm = &farmResp
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	products, total, err := h.svc.ListMarket(c.Request().Context(), limit, offset, c.QueryParam("type"), c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch products"))
	}
	resp := ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    total,
	}
	for i := range products {
		resp.Products = append(resp.Products, toProductResponse(&products[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	products, err := h.svc.ListOwn(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func toProductResponse(p *model.Product) ProductResponse {
	var expiry *string
	if p.ExpiryDate != nil {
		val := p.ExpiryDate.Format(dateLayout)
		expiry = &val
	}
	return ProductResponse{
		ID:                p.ID,
		FarmID:            p.FarmID,
		Name:              p.Name,
		Description:       p.Description,
		ProductType:       string(p.ProductType),
		PricePerUnit:      p.PricePerUnit,
		AvailableQuantity: p.AvailableQuantity,
		Unit:              p.Unit,
		HarvestDate:       p.HarvestDate.Format(dateLayout),
		ExpiryDate:        expiry,
		IsActive:          p.IsActive,
		ImageURL:          p.ImageURL,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}
