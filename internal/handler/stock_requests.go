package handler

import (
	"errors"
	"net/http"

	"parfumpos/internal/apierror"
	"parfumpos/internal/dto"
	"parfumpos/internal/middleware"
	"parfumpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockRequestsHandler struct{ svc service.StockRequestService }

func NewStockRequestsHandler(svc service.StockRequestService) *StockRequestsHandler {
	return &StockRequestsHandler{svc: svc}
}

// Create godoc
// @Summary      Submit a stock request
// @Tags         stock-requests
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateStockRequestRequest  true  "Stock request payload"
// @Success      201      {object}  dto.Mutation
// @Failure      422      {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/stock-requests [post]
func (h *StockRequestsHandler) Create(c *gin.Context) {
	var req dto.CreateStockRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Stock request submitted", resp))
}

func (h *StockRequestsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Stock request not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockRequestsHandler) List(c *gin.Context) {
	var filter dto.StockRequestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list stock requests"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Review approves or rejects a pending request. Only warehouse staff and
// admins reach this route.
func (h *StockRequestsHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.ReviewStockRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	reviewerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}
	resp, err := h.svc.Review(c.Request.Context(), id, reviewerID, req)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyReviewed) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK("Stock request reviewed", resp))
}
