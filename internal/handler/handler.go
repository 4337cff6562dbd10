package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nazaclinic/booking-api/pkg/errors"
)

func NewSuccessResponse(data interface{}) gin.H {
	return gin.H{"status": "success", "data": data}
}

func NewErrorResponse(message string) gin.H {
	return gin.H{"status": "error", "message": message}
}

// statusFor maps each recoverable error kind to its own HTTP status so the
// presentation layer can render a specific message; nothing collapses into
// a generic failure.
func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.CodeUnknownTreatment, apperrors.CodeClinicClosed:
		return http.StatusBadRequest
	case apperrors.CodeSlotUnavailable, apperrors.CodeInvalidTransition:
		return http.StatusConflict
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// RespondError writes the error with its mapped status and code.
func RespondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	status := statusFor(code)

	resp := gin.H{"status": "error", "message": err.Error()}
	if code != "" {
		resp["code"] = code
	}
	c.JSON(status, resp)
}
