package handler

import (
	"net/http"

	"parfumpos/internal/apierror"
	"parfumpos/internal/dto"
	"parfumpos/internal/middleware"
	"parfumpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlendsHandler struct{ svc service.BlendService }

func NewBlendsHandler(svc service.BlendService) *BlendsHandler {
	return &BlendsHandler{svc: svc}
}

// Create godoc
// @Summary      Record a blend production run
// @Description  Consumes material stock and credits the result variant atomically.
// @Tags         blends
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateBlendRequest  true  "Blend payload"
// @Success      201      {object}  dto.Mutation
// @Failure      422      {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/blends [post]
func (h *BlendsHandler) Create(c *gin.Context) {
	var req dto.CreateBlendRequest
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
	c.JSON(http.StatusCreated, dto.OK("Blend recorded", resp))
}

func (h *BlendsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Blend not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BlendsHandler) List(c *gin.Context) {
	var filter dto.BlendFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list blends"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
