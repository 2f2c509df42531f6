package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/views"
)

func Dashboard(ds *services.DashboardService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := ds.Dashboard(c.Request.Context(), session.Token(c))
		if err != nil {
			status := statusOf(err)
			if errors.Is(err, models.ErrUnauthorized) {
				ck.ClearToken(c)
			}
			render(c, ck, status, "dashboard", "Dashboard", &views.DashboardData{
				Err: models.MessageOf(err, "Failed to load dashboard"),
			})
			return
		}
		render(c, ck, http.StatusOK, "dashboard", "Dashboard", &views.DashboardData{Dashboard: dash})
	}
}

func profileInput(u *models.User) models.ProfileInput {
	if u == nil {
		return models.ProfileInput{}
	}
	return models.ProfileInput{Name: u.Name, Bio: u.Bio, Avatar: u.Avatar}
}

func Profile(ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, ck, http.StatusOK, "profile", "Profile", &views.ProfileData{
			Input: profileInput(session.User(c)),
			Edit:  c.Query("edit") != "",
		})
	}
}

// UpdateProfile sends the edited fields and refreshes the session user.
func UpdateProfile(u *services.UserService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ProfileInput
		errs := bindForm(c, &input)
		status := http.StatusUnprocessableEntity

		if len(errs) == 0 {
			st := session.Current(c)
			updated, err := u.UpdateProfile(c.Request.Context(), st.Token, st.User, input)
			if err == nil {
				session.Set(c, &session.State{User: updated, Token: st.Token})
				ck.Success(c, models.MsgProfileUpdated)
				redirect(c, "/profile")
				return
			}
			if field, msg, ok := fieldOf(err); ok {
				errs[field] = msg
			} else {
				ck.Error(c, models.MessageOf(err, "Failed to update profile"))
			}
			status = statusOf(err)
		}

		render(c, ck, status, "profile", "Profile", &views.ProfileData{Input: input, Errors: errs, Edit: true})
	}
}
