package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazaclinic/booking-api/internal/handler"
	"github.com/nazaclinic/booking-api/internal/middleware"
	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/service/auth"
	"github.com/nazaclinic/booking-api/internal/service/patient"
)

type Handler struct {
	patients *patient.Service
	auth     *auth.Service
}

func NewHandler(patientSvc *patient.Service, authSvc *auth.Service) *Handler {
	return &Handler{patients: patientSvc, auth: authSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	r.POST("/patient/auth", h.Authenticate)
	r.GET("/admin/patients", authMw.RequireAdmin(), h.ListPatients)
}

// Authenticate registers or logs in a patient by phone and returns a token
// for the booking endpoints.
func (h *Handler) Authenticate(c *gin.Context) {
	var req model.PatientAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("phone and name are required"))
		return
	}

	pat, err := h.patients.Authenticate(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	token, err := h.auth.IssuePatientToken(pat)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"token":   token,
		"patient": pat,
	})
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.patients.ListWithStats(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}
