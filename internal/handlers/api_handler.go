package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/ui"
)

// ListEventsJSON serves one page of events for the given filters.
func ListEventsJSON(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing := listingFor(c, es)
		listing.Apply(c.Request.URL.Query())
		if err := listing.Fetch(c.Request.Context()); err != nil {
			c.JSON(statusOf(err), models.ErrorResponse(models.MessageOf(err, "Failed to fetch events")))
			return
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(listing.Events(), listing.Pagination()))
	}
}

// DeleteEventJSON deletes an event for the page script, which then drops
// the card from the list it is showing.
func DeleteEventJSON(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := listingFor(c, es).DeleteEvent(c.Request.Context(), id); err != nil {
			c.JSON(statusOf(err), models.ErrorResponse(models.MessageOf(err, msgDeleteFailed)))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"id": id}, models.MsgEventDeleted))
	}
}

type strengthRequest struct {
	Password string `json:"password"`
}

type strengthResponse struct {
	helpers.PasswordStrength
	Percent int      `json:"percent"`
	Bars    []string `json:"bars"`
}

// PasswordStrength scores a password for the register form meter.
func PasswordStrength() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req strengthRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}
		s := helpers.CheckPasswordStrength(req.Password)
		bars := make([]string, 4)
		for i := range bars {
			bars[i] = ui.StrengthBar(s.Score, i)
		}
		c.JSON(http.StatusOK, models.SuccessResponse(strengthResponse{
			PasswordStrength: s,
			Percent:          s.Percent(),
			Bars:             bars,
		}, ""))
	}
}
