package blockedslot

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/handler"
	"github.com/nazaclinic/booking-api/internal/middleware"
	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/service/booking"
)

type Handler struct {
	booking *booking.Service
}

func NewHandler(bookingSvc *booking.Service) *Handler {
	return &Handler{booking: bookingSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	admin := r.Group("/admin", auth.RequireAdmin())
	admin.POST("/block-slot", h.BlockSlot)
	admin.GET("/blocked-slots", h.ListBlockedSlots)
	admin.DELETE("/blocked-slots/:id", h.DeleteBlockedSlot)
}

func (h *Handler) BlockSlot(c *gin.Context) {
	var req model.BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date"))
		return
	}
	start, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start time"))
		return
	}
	end, err := model.ParseTimeOfDay(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end time"))
		return
	}

	slot, err := h.booking.BlockSlot(c.Request.Context(), date, model.TimeSlot{Start: start, End: end}, req.Reason)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(slot))
}

func (h *Handler) ListBlockedSlots(c *gin.Context) {
	var date model.Date
	if d := c.Query("date"); d != "" {
		parsed, err := model.ParseDate(d)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date"))
			return
		}
		date = parsed
	}

	slots, err := h.booking.ListBlockedSlots(c.Request.Context(), date)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) DeleteBlockedSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid blocked slot ID"))
		return
	}

	if err := h.booking.DeleteBlockedSlot(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
