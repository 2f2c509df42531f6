package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/session"
)

// Rehydrator resolves a token to its user.
type Rehydrator interface {
	Me(ctx context.Context, token string) (*models.User, error)
}

// Session restores the auth session from the token cookie. Expired, rejected
// or mismatched tokens are cleared and the request continues anonymously.
func Session(users Rehydrator, verifier *helpers.TokenVerifier, cookies *session.Cookies, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			logger.Debug("Dropping session token", "error", err)
			cookies.ClearToken(c)
			c.Next()
			return
		}

		user, err := users.Me(c.Request.Context(), token)
		if err != nil {
			logger.Info("Session rehydration failed",
				"request_id", c.GetString(models.RequestIDKey),
				"error", err,
			)
			cookies.ClearToken(c)
			c.Next()
			return
		}

		// a token naming another user is not trusted for this one
		if claims.Owner() != "" && !claims.IsOwner(user.ID) {
			logger.Warn("Session token owner mismatch",
				"request_id", c.GetString(models.RequestIDKey),
				"token_owner", claims.Owner(),
				"user_id", user.ID,
			)
			cookies.ClearToken(c)
			c.Next()
			return
		}

		session.Set(c, &session.State{User: user, Token: token})
		c.Next()
	}
}

// RequireAuth sends anonymous visitors to the login page, remembering where
// they were going.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.Current(c).IsAuthenticated() {
			c.Next()
			return
		}
		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.MsgUnauthorized))
			return
		}
		c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// GuestOnly keeps signed-in users away from the login and register pages.
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.Current(c).IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, helpers.SafeRedirect(c.Query("next"), "/dashboard"))
			c.Abort()
			return
		}
		c.Next()
	}
}
