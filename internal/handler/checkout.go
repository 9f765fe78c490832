package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"parfumpos/internal/apierror"
	"parfumpos/internal/checkout"
	"parfumpos/internal/dto"
	"parfumpos/internal/middleware"
	"parfumpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const searchCacheTTL = 5 * time.Minute

// CheckoutHandler drives the cashier flow: item search, pending carts,
// payment and voiding.
type CheckoutHandler struct {
	svc service.CheckoutService
	rdb *redis.Client
	seq checkout.Sequencer
}

func NewCheckoutHandler(svc service.CheckoutService, rdb *redis.Client) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, rdb: rdb}
}

// Search godoc
// @Summary      Search sellable items by name or product code
// @Tags         checkout
// @Produce      json
// @Param        q  query     string  true  "Search query"
// @Success      200  {object}  dto.SearchResponse
// @Security     BearerAuth
// @Router       /v1/checkout/search [get]
func (h *CheckoutHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, dto.SearchResponse{Data: []dto.SearchItem{}})
		return
	}
	ctx := c.Request.Context()
	cacheKey := "search:" + strings.ToLower(query)

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.SearchResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// A token per cache miss: only the latest concurrent query for the same
	// key is allowed to fill the cache, so a slow stale result never
	// overwrites a fresher one.
	token := h.seq.Next()

	items, err := h.svc.Search(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Search failed"))
		return
	}
	resp := dto.SearchResponse{Data: items}

	if h.seq.Latest(token) {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, searchCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Open a pending transaction from a batch of selected items
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateTransactionRequest  true  "Transaction payload"
// @Success      201      {object}  dto.Mutation
// @Failure      422      {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/checkout/transactions [post]
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cashierID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}
	resp, err := h.svc.CreatePending(c.Request.Context(), cashierID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Transaction created", resp))
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Transaction not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPending returns open carts, optionally scoped to one outlet.
func (h *CheckoutHandler) ListPending(c *gin.Context) {
	var outletID *uuid.UUID
	if raw := c.Query("outlet_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid outlet_id"))
			return
		}
		outletID = &id
	}
	list, err := h.svc.ListPending(c.Request.Context(), outletID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list transactions"))
		return
	}
	c.JSON(http.StatusOK, dto.PendingTransactionsResponse{Data: list})
}

// Pay godoc
// @Summary      Settle a pending transaction
// @Description  Applies the optional discount, validates the tendered amount and
// @Description  deducts stock atomically. Payment is all-or-nothing.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Transaction ID"
// @Param        request  body      dto.PayTransactionRequest   true  "Payment payload"
// @Success      200      {object}  dto.Mutation
// @Failure      422      {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/checkout/transactions/{id}/pay [post]
func (h *CheckoutHandler) Pay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.PayTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Pay(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK("Payment accepted", resp))
}

func (h *CheckoutHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Void(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK("Transaction voided", nil))
}
