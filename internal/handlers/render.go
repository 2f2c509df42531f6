package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/views"
)

var now = time.Now

const MsgInvalidForm = "Please fix the errors in the form"

func render(c *gin.Context, ck *session.Cookies, status int, page, title string, data any) {
	c.HTML(status, page, views.NewPage(c, ck, title, data))
}

// statusOf picks the response status for a failed service call.
func statusOf(err error) int {
	if errors.Is(err, services.ErrRSVPInFlight) {
		return http.StatusConflict
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsNetwork() || apiErr.Status >= http.StatusInternalServerError {
			return http.StatusBadGateway
		}
		return apiErr.Status
	}
	if errors.Is(err, models.ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, models.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// renderFailure shows the not-found page for missing resources and the error
// page for everything else.
func renderFailure(c *gin.Context, ck *session.Cookies, err error, fallback string) {
	if errors.Is(err, models.ErrNotFound) {
		render(c, ck, http.StatusNotFound, "not_found", "Not Found", nil)
		return
	}
	render(c, ck, statusOf(err), "error", "Error", &views.ErrorData{Message: models.MessageOf(err, fallback)})
}

// fieldOf returns the form field a validation error belongs to, if any.
func fieldOf(err error) (string, string, bool) {
	var verr *models.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return verr.Field, verr.Message, true
	}
	return "", "", false
}

// bindForm binds the posted form into v and returns the per-field messages.
// Binding failures that are not validation errors land under "form".
func bindForm(c *gin.Context, v any) map[string]string {
	errs := map[string]string{}
	if err := c.ShouldBind(v); err != nil {
		if fields := models.FieldErrors(err); len(fields) > 0 {
			return fields
		}
		errs["form"] = MsgInvalidForm
	}
	return errs
}

// absoluteURL resolves path against the address the request came in on.
func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + path
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
