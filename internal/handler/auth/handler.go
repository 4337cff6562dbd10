package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazaclinic/booking-api/internal/handler"
	"github.com/nazaclinic/booking-api/internal/middleware"
	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/service/auth"
)

type Handler struct {
	auth *auth.Service
}

func NewHandler(authSvc *auth.Service) *Handler {
	return &Handler{auth: authSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	r.POST("/admin/login", h.Login)
	r.GET("/admin/check", authMw.Optional(), h.Check)
	r.POST("/admin/change-password", authMw.RequireAdmin(), h.ChangePassword)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	token, admin, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid credentials"))
			return
		}
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"name":   admin.Name,
	})
}

// Check reports whether the caller holds a valid admin token; anonymous
// callers get authenticated=false, not an error.
func (h *Handler) Check(c *gin.Context) {
	role := c.GetString(middleware.ContextSubjectRole)
	if role != auth.RoleAdmin {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"name":          c.GetString(middleware.ContextSubjectName),
	})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	adminID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("admin access required"))
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("current password is incorrect"))
			return
		}
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
