package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/ui"
)

const msgRSVPFailed = "Failed to update RSVP"

// ToggleRSVP creates or cancels the caller's RSVP and returns to the event.
func ToggleRSVP(rs *services.RSVPService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		_, msg, err := rs.Toggle(c.Request.Context(), session.Token(c), id, c.PostForm("intent"))
		if err != nil {
			ck.Error(c, models.MessageOf(err, msgRSVPFailed))
		} else {
			ck.Success(c, msg)
		}
		redirect(c, "/events/"+id)
	}
}

// rsvpView is the RSVP panel as the event page script redraws it.
type rsvpView struct {
	*services.RSVPState
	CanRSVP        bool   `json:"canRSVP"`
	IsFull         bool   `json:"isFull"`
	SpotsRemaining int    `json:"spotsRemaining"`
	Intent         string `json:"intent"`
	Label          string `json:"label"`
	ButtonClass    string `json:"buttonClass"`
}

func newRSVPView(st *services.RSVPState) *rsvpView {
	if st == nil {
		return nil
	}
	intent := services.IntentCreate
	if st.HasRSVP {
		intent = services.IntentCancel
	}
	return &rsvpView{
		RSVPState:      st,
		CanRSVP:        st.CanRSVP(),
		IsFull:         st.IsFull(),
		SpotsRemaining: st.SpotsRemaining(),
		Intent:         intent,
		Label:          ui.RSVPLabel(st.HasRSVP, st.IsFull()),
		ButtonClass:    ui.RSVPButton(st.HasRSVP),
	}
}

// ToggleRSVPJSON is the JSON flavour used by the event page script. The
// reconciled state is returned whenever it could be loaded.
func ToggleRSVPJSON(rs *services.RSVPService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, msg, err := rs.Toggle(c.Request.Context(), session.Token(c), c.Param("id"), c.PostForm("intent"))
		if err != nil {
			res := models.ErrorResponse(models.MessageOf(err, msgRSVPFailed))
			if view := newRSVPView(state); view != nil {
				res.Data = view
			}
			c.JSON(statusOf(err), res)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(newRSVPView(state), msg))
	}
}
