package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxLoggedBody caps how much of a textual body is attached to a log event
const maxLoggedBody = 1000

// sensitiveFields contains patterns for fields that should be redacted
var sensitiveFields = []string{
	"password",
	"token",
	"api_key",
	"apikey",
	"api-key",
	"secret",
	"authorization",
	"auth",
	"bearer",
	"credential",
	"access_token",
	"refresh_token",
	"session",
	"cookie",
}

// sensitiveHeaderPatterns contains regex patterns for sensitive headers
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)bearer`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)session`),
}

// responseWriter is a custom response writer to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	Logger zerolog.Logger
	// LogBodies attaches redacted request and response bodies at debug level
	LogBodies bool
}

// RequestResponseLogger emits one structured event per request. Headers and
// JSON bodies are redacted; binary bodies (PDFs, logo uploads) are
// summarised by content type and size.
func RequestResponseLogger(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if config.LogBodies && c.Request.Body != nil && isTextual(c.ContentType()) {
			requestBody, _ = io.ReadAll(c.Request.Body)
			// Restore the body for the next handler
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		var captured *responseWriter
		if config.LogBodies {
			captured = &responseWriter{
				ResponseWriter: c.Writer,
				body:           bytes.NewBufferString(""),
			}
			c.Writer = captured
		}

		// Handlers reach the request scoped logger through zerolog.Ctx
		reqLogger := config.Logger.With().Str("request_id", c.GetString(RequestIDKey)).Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		evt := config.Logger.Info()
		switch {
		case status >= 500:
			evt = config.Logger.Error()
		case status >= 400:
			evt = config.Logger.Warn()
		}

		evt = evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", latency).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent())

		if requestID := c.GetString(RequestIDKey); requestID != "" {
			evt = evt.Str("request_id", requestID)
		}
		if q := c.Request.URL.RawQuery; q != "" {
			evt = evt.Str("query", q)
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("error", c.Errors.String())
		}

		if config.LogBodies && config.Logger.GetLevel() <= zerolog.DebugLevel {
			evt = evt.Interface("headers", redactHeaders(c.Request.Header))
			if len(requestBody) > 0 {
				evt = evt.Interface("request_body", parseAndRedactBody(requestBody))
			} else if c.Request.ContentLength > 0 {
				evt = evt.Str("request_body", summarise(c.ContentType(), c.Request.ContentLength))
			}
			if captured != nil && captured.body.Len() > 0 {
				ct := c.Writer.Header().Get("Content-Type")
				if isTextual(ct) {
					evt = evt.Interface("response_body", parseAndRedactBody(captured.body.Bytes()))
				} else {
					evt = evt.Str("response_body", summarise(ct, int64(captured.body.Len())))
				}
			}
		}

		evt.Msg("http_request")
	}
}

func isTextual(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasPrefix(mediaType, "text/")
}

func summarise(contentType string, size int64) string {
	if contentType == "" {
		contentType = "unknown"
	}
	return fmt.Sprintf("[%s, %d bytes]", contentType, size)
}

// redactHeaders redacts sensitive headers
func redactHeaders(headers map[string][]string) map[string]string {
	redacted := make(map[string]string)
	for key, values := range headers {
		if isSensitiveHeader(key) {
			redacted[key] = "[REDACTED]"
		} else {
			redacted[key] = strings.Join(values, ", ")
		}
	}
	return redacted
}

// isSensitiveHeader checks if a header name is sensitive
func isSensitiveHeader(headerName string) bool {
	for _, pattern := range sensitiveHeaderPatterns {
		if pattern.MatchString(headerName) {
			return true
		}
	}
	return false
}

// parseAndRedactBody parses JSON body and redacts sensitive fields
func parseAndRedactBody(body []byte) interface{} {
	var jsonBody interface{}
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		// If not JSON, return truncated string
		bodyStr := string(body)
		if len(bodyStr) > maxLoggedBody {
			bodyStr = bodyStr[:maxLoggedBody] + "... (truncated)"
		}
		return bodyStr
	}

	redactSensitiveFields(jsonBody)
	return jsonBody
}

// redactSensitiveFields recursively redacts sensitive fields in JSON data
func redactSensitiveFields(data interface{}) {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if isSensitiveField(key) {
				v[key] = "[REDACTED]"
			} else {
				redactSensitiveFields(value)
			}
		}
	case []interface{}:
		for _, item := range v {
			redactSensitiveFields(item)
		}
	}
}

// isSensitiveField checks if a field name is sensitive
func isSensitiveField(fieldName string) bool {
	lowerField := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lowerField, sensitive) {
			return true
		}
	}
	return false
}
