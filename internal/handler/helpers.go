package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ridwanfathin/gst-invoice-service/internal/model"
)

// errFileTooLarge is returned by readFormFile when the upload exceeds its limit
var errFileTooLarge = errors.New("file too large")

// getPathParam retrieves a path parameter and validates it's not empty
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := strings.TrimSpace(c.Param(paramName))
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// getFormFile retrieves a file from multipart form data
func getFormFile(c *gin.Context, fieldName string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(fieldName)
	if err != nil {
		return nil, nil, fmt.Errorf("no %s provided", fieldName)
	}
	return file, header, nil
}

// readFormFile reads an optional upload, returning nil when the field is
// absent and errFileTooLarge past limit bytes.
func readFormFile(c *gin.Context, fieldName string, limit int64) ([]byte, error) {
	file, _, err := getFormFile(c, fieldName)
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fieldName, err)
	}
	if int64(len(data)) > limit {
		return nil, errFileTooLarge
	}
	return data, nil
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return err
	}
	return nil
}

// isMultipart reports whether the request carries multipart form data
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// buildValidationErrors converts binding errors to ErrorDetail slice
func buildValidationErrors(err error) []model.ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []model.ErrorDetail{newErrorDetail("body", err.Error())}
	}

	details := make([]model.ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, newErrorDetail(fieldPath(fe), validationMessage(fe)))
	}
	return details
}

// fieldPath drops the top level struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gst_rate":
		return "must be one of 0, 5, 18, 40"
	case "discount_type":
		return "must be one of none, percentage, fixed"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// logError logs a handler failure through the request scoped logger
func logError(c *gin.Context, event string, err error, fields map[string]interface{}) {
	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("event", event).
		Str("path", c.Request.URL.Path).
		Fields(fields).
		Msg("request failed")
}

// setAttachment sets Content-Disposition so browsers download name
func setAttachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, safeFilename(name)))
}

// safeFilename keeps letters, digits, dot, dash and underscore
func safeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "invoice.pdf"
	}
	return b.String()
}
