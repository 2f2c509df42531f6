package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/monitoring"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/views"
)

// APIPrefix marks the JSON endpoints; everything else answers with HTML.
const APIPrefix = "/app/api"

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, APIPrefix)
}

// RequestID middleware adds a unique request ID to each request and forwards
// it to upstream calls made with the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(models.RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(models.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if path == "/health" || strings.HasPrefix(path, "/static/") {
			return
		}
		if raw != "" {
			path = path + "?" + raw
		}

		attrs := []any{
			"request_id", c.GetString(models.RequestIDKey),
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if user := session.User(c); user != nil {
			attrs = append(attrs, "user_id", user.ID)
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("HTTP Request", attrs...)
			return
		}
		logger.Info("HTTP Request", attrs...)
	}
}

// Metrics records inbound request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		monitoring.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// ErrorHandler provides centralized error handling for errors handlers
// attached with c.Error but did not answer themselves.
func ErrorHandler(logger *slog.Logger, cookies *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		logger.Error("Request error",
			"request_id", c.GetString(models.RequestIDKey),
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		if c.Writer.Written() {
			return
		}

		if isAPI(c) {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(models.MsgGeneric))
			return
		}
		c.HTML(http.StatusInternalServerError, "error",
			views.NewPage(c, cookies, "Error", &views.ErrorData{Message: models.MsgGeneric}))
	}
}

// Recovery turns a panic in a handler or template into the error page.
func Recovery(logger *slog.Logger, cookies *session.Cookies) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic",
			"request_id", c.GetString(models.RequestIDKey),
			"panic", recovered,
			"path", c.Request.URL.Path,
		)
		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse(models.MsgGeneric))
			return
		}
		c.HTML(http.StatusInternalServerError, "error",
			views.NewPage(c, cookies, "Error", &views.ErrorData{Message: models.MsgGeneric}))
		c.Abort()
	})
}

// SecurityHeaders middleware adds security headers. The policy allows the
// Tailwind CDN script and remote event images.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy",
			"default-src 'self'; script-src 'self' 'unsafe-inline' https://cdn.tailwindcss.com; "+
				"style-src 'self' 'unsafe-inline'; img-src 'self' data: https:")
		c.Next()
	}
}
