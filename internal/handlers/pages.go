package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/middleware"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/views"
)

func Home(es *services.EventService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := &views.HomeData{}
		featured, err := es.Featured(c.Request.Context())
		if err != nil {
			data.Err = models.MessageOf(err, "Failed to load events")
		}
		data.Featured = featured
		render(c, ck, http.StatusOK, "home", "Home", data)
	}
}

// NotFound is the fallback for unmatched routes.
func NotFound(ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, middleware.APIPrefix) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(models.ErrNotFound.Error()))
			return
		}
		render(c, ck, http.StatusNotFound, "not_found", "Not Found", nil)
	}
}

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "eventhub-web",
		})
	}
}

// ToggleTheme flips the theme cookie and returns to the page it came from.
func ToggleTheme(ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck.ToggleTheme(c)
		redirect(c, helpers.SafeRedirect(c.PostForm("next"), "/"))
	}
}
