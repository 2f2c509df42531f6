package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/views"
)

const afterLogin = "/dashboard"

// tokenExpiry reads the expiry from the token; zero when it has none.
func tokenExpiry(v *helpers.TokenVerifier, token string) time.Time {
	claims, err := v.ValidateToken(token)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

func LoginPage(ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, ck, http.StatusOK, "login", "Login", &views.AuthFormData{Next: c.Query("next")})
	}
}

// Login authenticates against the API and stores the token cookie.
func Login(u *services.UserService, v *helpers.TokenVerifier, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		errs := bindForm(c, &input)
		next := c.PostForm("next")
		form := &views.AuthFormData{Email: input.Email, Next: next, Errors: errs}

		if len(errs) > 0 {
			render(c, ck, http.StatusUnprocessableEntity, "login", "Login", form)
			return
		}

		payload, err := u.Login(c.Request.Context(), input)
		if err != nil {
			ck.Error(c, models.MessageOf(err, models.MsgLoginFailed))
			render(c, ck, statusOf(err), "login", "Login", form)
			return
		}

		ck.SetToken(c, payload.Token, tokenExpiry(v, payload.Token))
		ck.Success(c, models.MsgLogin)
		redirect(c, helpers.SafeRedirect(next, afterLogin))
	}
}

func RegisterPage(ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, ck, http.StatusOK, "register", "Register", &views.AuthFormData{Next: c.Query("next")})
	}
}

func Register(u *services.UserService, v *helpers.TokenVerifier, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.RegisterInput
		errs := bindForm(c, &input)
		next := c.PostForm("next")
		form := &views.AuthFormData{
			Name:     input.Name,
			Email:    input.Email,
			Next:     next,
			Errors:   errs,
			Strength: helpers.CheckPasswordStrength(input.Password),
		}

		if len(errs) > 0 {
			render(c, ck, http.StatusUnprocessableEntity, "register", "Register", form)
			return
		}

		payload, err := u.Register(c.Request.Context(), input)
		if err != nil {
			if field, msg, ok := fieldOf(err); ok {
				errs[field] = msg
			} else {
				ck.Error(c, models.MessageOf(err, models.MsgRegisterFailed))
			}
			render(c, ck, statusOf(err), "register", "Register", form)
			return
		}

		ck.SetToken(c, payload.Token, tokenExpiry(v, payload.Token))
		ck.Success(c, models.MsgRegister)
		redirect(c, helpers.SafeRedirect(next, afterLogin))
	}
}

// Logout handler
func Logout(ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck.ClearToken(c)
		session.Set(c, &session.State{})
		ck.Success(c, models.MsgLogout)
		redirect(c, "/")
	}
}
