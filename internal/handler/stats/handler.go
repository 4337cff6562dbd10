package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazaclinic/booking-api/internal/handler"
	"github.com/nazaclinic/booking-api/internal/middleware"
	"github.com/nazaclinic/booking-api/internal/service/stats"
)

type Handler struct {
	stats *stats.Service
}

func NewHandler(statsSvc *stats.Service) *Handler {
	return &Handler{stats: statsSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	r.GET("/admin/stats", auth.RequireAdmin(), h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
