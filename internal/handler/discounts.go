package handler

import (
	"net/http"
	"strconv"

	"parfumpos/internal/apierror"
	"parfumpos/internal/dto"
	"parfumpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DiscountsHandler struct{ svc service.DiscountService }

func NewDiscountsHandler(svc service.DiscountService) *DiscountsHandler {
	return &DiscountsHandler{svc: svc}
}

func (h *DiscountsHandler) Create(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Discount created", resp))
}

func (h *DiscountsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Discount not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DiscountsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	resp, err := h.svc.List(c.Request.Context(), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list discounts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListActive returns only discounts currently inside their validity window.
// Outlet cashiers use this to populate the checkout discount picker.
func (h *DiscountsHandler) ListActive(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list discounts"))
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.DiscountResponse]{Data: list})
}

func (h *DiscountsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK("Discount updated", resp))
}

func (h *DiscountsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK("Discount deactivated", nil))
}
