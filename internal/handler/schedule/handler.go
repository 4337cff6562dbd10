package schedule

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nazaclinic/booking-api/internal/handler"
	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/service/availability"
	"github.com/nazaclinic/booking-api/internal/service/schedule"
)

type Handler struct {
	schedule     *schedule.Service
	availability *availability.Service
}

func NewHandler(scheduleSvc *schedule.Service, availabilitySvc *availability.Service) *Handler {
	return &Handler{schedule: scheduleSvc, availability: availabilitySvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/treatments", h.ListTreatments)
	r.GET("/schedule", h.GetSchedule)
	r.GET("/slots/:date/:treatmentId", h.GetSlots)
}

func (h *Handler) ListTreatments(c *gin.Context) {
	c.JSON(http.StatusOK, h.schedule.Treatments())
}

func (h *Handler) GetSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, h.schedule.Week())
}

// GetSlots returns the day's candidate slots for a treatment. With showAll
// every slot carries a booked flag; otherwise only free slots come back.
func (h *Handler) GetSlots(c *gin.Context) {
	date, err := model.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date"))
		return
	}

	treatmentID, err := strconv.Atoi(c.Param("treatmentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid treatment ID"))
		return
	}

	open, err := h.schedule.IsDayOpen(date)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	if !open {
		c.JSON(http.StatusOK, gin.H{
			"available": false,
			"message":   "Clinic is closed on this day",
			"slots":     []model.SlotWithStatus{},
		})
		return
	}

	treatment, err := h.schedule.Treatment(treatmentID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	candidates := h.schedule.GenerateSlots(treatment.DurationMinutes)

	if c.Query("showAll") == "true" {
		slots, err := h.availability.AnnotateSlots(c.Request.Context(), date, candidates)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"available": true, "slots": slots})
		return
	}

	slots, err := h.availability.AvailableSlots(c.Request.Context(), date, candidates)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "slots": slots})
}
