package handler

import (
	"net/http"

	"parfumpos/internal/apierror"
	"parfumpos/internal/dto"
	"parfumpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BundlingsHandler struct{ svc service.BundlingService }

func NewBundlingsHandler(svc service.BundlingService) *BundlingsHandler {
	return &BundlingsHandler{svc: svc}
}

// Create godoc
// @Summary      Create a bundling
// @Tags         bundlings
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateBundlingRequest  true  "Bundling payload"
// @Success      201      {object}  dto.Mutation
// @Failure      422      {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/bundlings [post]
func (h *BundlingsHandler) Create(c *gin.Context) {
	var req dto.CreateBundlingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Bundling created", resp))
}

func (h *BundlingsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Bundling not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BundlingsHandler) List(c *gin.Context) {
	var filter dto.BundlingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list bundlings"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BundlingsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.CreateBundlingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK("Bundling updated", resp))
}

func (h *BundlingsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK("Bundling deleted", nil))
}
