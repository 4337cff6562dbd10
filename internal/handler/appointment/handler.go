package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/handler"
	"github.com/nazaclinic/booking-api/internal/middleware"
	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/service/booking"
	"github.com/nazaclinic/booking-api/internal/service/patient"
	"github.com/nazaclinic/booking-api/internal/service/stats"
)

type Handler struct {
	booking  *booking.Service
	patients *patient.Service
	stats    *stats.Service
}

func NewHandler(bookingSvc *booking.Service, patientSvc *patient.Service, statsSvc *stats.Service) *Handler {
	return &Handler{booking: bookingSvc, patients: patientSvc, stats: statsSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	r.POST("/appointments", auth.RequirePatient(), h.BookAppointment)
	r.GET("/patient/appointments", auth.RequirePatient(), h.ListOwnAppointments)

	admin := r.Group("/admin", auth.RequireAdmin())
	admin.GET("/appointments", h.ListAppointments)
	admin.POST("/appointments", h.CreateAppointment)
	admin.PATCH("/appointments/:id", h.UpdateAppointment)
	admin.DELETE("/appointments/:id", h.DeleteAppointment)
}

// BookAppointment books a slot for the authenticated patient. The patient
// record already exists from phone auth; its identity comes from the token.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patientID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("please login first"))
		return
	}

	pat, err := h.patients.Get(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	input, err := bookingInput(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	input.Patient = *pat
	input.TreatmentID = req.TreatmentID
	input.Notes = req.Notes
	input.CreatedBy = model.CreatorPatient

	appointment, err := h.booking.Book(c.Request.Context(), input)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.stats.Invalidate()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) ListOwnAppointments(c *gin.Context) {
	patientID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("please login first"))
		return
	}

	appointments, err := h.booking.ListPatientAppointments(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	if d := c.Query("date"); d != "" {
		date, err := model.ParseDate(d)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date"))
			return
		}
		filters.Date = date
	}
	if s := c.Query("status"); s != "" {
		filters.Status = model.AppointmentStatus(s)
	}

	appointments, err := h.booking.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// CreateAppointment is the admin's manual booking path: it carries the
// patient's contact and may set any known status directly.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.AdminCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	input, err := bookingInput(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	input.Patient = model.Patient{Phone: req.PatientPhone, Name: req.PatientName}
	input.TreatmentID = req.TreatmentID
	input.Notes = req.Notes
	input.CreatedBy = model.CreatorAdmin
	input.Status = model.AppointmentStatus(req.Status)

	appointment, err := h.booking.Book(c.Request.Context(), input)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.stats.Invalidate()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointment, err := h.booking.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.stats.Invalidate()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.booking.DeleteAppointment(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	h.stats.Invalidate()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func bookingInput(date, start, end string) (booking.BookingInput, error) {
	var input booking.BookingInput

	d, err := model.ParseDate(date)
	if err != nil {
		return input, err
	}
	startTime, err := model.ParseTimeOfDay(start)
	if err != nil {
		return input, err
	}
	endTime, err := model.ParseTimeOfDay(end)
	if err != nil {
		return input, err
	}

	input.Date = d
	input.Slot = model.TimeSlot{Start: startTime, End: endTime}
	return input, nil
}
