package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridwanfathin/gst-invoice-service/internal/model"
	"github.com/ridwanfathin/gst-invoice-service/internal/repository"
	"github.com/ridwanfathin/gst-invoice-service/internal/service"
)

// HTTP status codes as constants for consistency
const (
	StatusOK                    = http.StatusOK
	StatusBadRequest            = http.StatusBadRequest
	StatusNotFound              = http.StatusNotFound
	StatusRequestEntityTooLarge = http.StatusRequestEntityTooLarge
	StatusUnprocessableEntity   = http.StatusUnprocessableEntity
	StatusInternalServerError   = http.StatusInternalServerError
	StatusServiceUnavailable    = http.StatusServiceUnavailable
)

// Common error messages
const (
	ErrInvalidInput      = "Invalid input format"
	ErrInvalidID         = "Invalid ID provided"
	ErrResourceNotFound  = "Resource not found"
	ErrInternalServer    = "Internal server error"
	ErrFileTooLarge      = "File size exceeds limit"
	ErrFileProcessing    = "Failed to process file"
	ErrRenderFailed      = "Failed to generate invoice document"
	ErrServiceBusy       = "Service is busy, please retry"
	ErrProfileNotFound   = "Company profile not found"
	ErrUnsupportedLogo   = "Logo must be a PNG, JPEG, GIF or WebP image"
	ErrValidationFailure = "Validation failed"
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, message string, details ...model.ErrorDetail) {
	response := model.ErrorResponse{
		Status:  http.StatusText(statusCode),
		Message: message,
		Details: details,
	}
	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...model.ErrorDetail) {
	respondWithError(c, StatusBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, StatusNotFound, message)
}

// respondTooLarge sends a 413 Request Entity Too Large response
func respondTooLarge(c *gin.Context, message string) {
	respondWithError(c, StatusRequestEntityTooLarge, message)
}

// respondUnprocessableEntity sends a 422 Unprocessable Entity response
func respondUnprocessableEntity(c *gin.Context, message string, details ...model.ErrorDetail) {
	respondWithError(c, StatusUnprocessableEntity, message, details...)
}

// respondInternalServerError sends a 500 Internal Server Error response
func respondInternalServerError(c *gin.Context, message string) {
	respondWithError(c, StatusInternalServerError, message)
}

// respondOK sends a 200 OK response with data
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(StatusOK, data)
}

// newErrorDetail creates a new error detail
func newErrorDetail(field, message string) model.ErrorDetail {
	return model.ErrorDetail{
		Field:   field,
		Message: message,
	}
}

// respondServiceError maps service and repository errors to HTTP responses.
// Unrecognised errors are logged and answered with 500 and fallback.
func respondServiceError(c *gin.Context, event string, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		respondNotFound(c, ErrProfileNotFound)
	case errors.Is(err, repository.ErrInvalidProfileID):
		respondBadRequest(c, ErrInvalidID, newErrorDetail("id", "must be 1-64 letters, digits, '-' or '_'"))
	case errors.Is(err, service.ErrLogoTooLarge):
		respondTooLarge(c, ErrFileTooLarge)
	case errors.Is(err, service.ErrInvalidLogo):
		respondUnprocessableEntity(c, ErrUnsupportedLogo)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		logError(c, event, err, map[string]interface{}{"error_type": "timeout"})
		respondWithError(c, StatusServiceUnavailable, ErrServiceBusy)
	default:
		logError(c, event, err, map[string]interface{}{"error_type": "service_error"})
		respondInternalServerError(c, fallback)
	}
}
