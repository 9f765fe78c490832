package handler

import (
	"net/http"
	"strconv"

	"parfumpos/internal/apierror"
	"parfumpos/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary godoc
// @Summary      Operational snapshot for the admin dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Security     BearerAuth
// @Router       /v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesChart returns daily revenue points for the last N days (default 7).
func (h *DashboardHandler) SalesChart(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	resp, err := h.svc.SalesChart(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build sales chart"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
