package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeUsers struct {
	user  *models.User
	err   error
	calls int
}

func (f *fakeUsers) Me(ctx context.Context, token string) (*models.User, error) {
	f.calls++
	return f.user, f.err
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := helpers.TokenClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return s
}

func sessionEngine(users Rehydrator) (*gin.Engine, *session.State) {
	cookies := session.NewCookies(false)
	var seen session.State
	r := gin.New()
	r.Use(Session(users, helpers.NewTokenVerifier(nil), cookies, discard))
	r.GET("/", func(c *gin.Context) {
		seen = *session.Current(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func withToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: token})
	return req
}

func clearedToken(w *httptest.ResponseRecorder) bool {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.TokenCookie && ck.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestSessionRehydratesUser(t *testing.T) {
	users := &fakeUsers{user: &models.User{ID: "u1", Name: "Ama"}}
	r, seen := sessionEngine(users)
	token := signToken(t, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withToken(token))

	assert.Equal(t, 1, users.calls)
	assert.True(t, seen.IsAuthenticated())
	assert.Equal(t, token, seen.Token)
	assert.False(t, clearedToken(w))
}

func TestSessionDropsExpiredTokenWithoutCallingAPI(t *testing.T) {
	users := &fakeUsers{user: &models.User{ID: "u1"}}
	r, seen := sessionEngine(users)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withToken(signToken(t, time.Now().Add(-time.Hour))))

	assert.Zero(t, users.calls)
	assert.False(t, seen.IsAuthenticated())
	assert.True(t, clearedToken(w))
}

func TestSessionClearsRejectedToken(t *testing.T) {
	users := &fakeUsers{err: &models.APIError{Status: http.StatusUnauthorized}}
	r, seen := sessionEngine(users)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withToken(signToken(t, time.Now().Add(time.Hour))))

	assert.False(t, seen.IsAuthenticated())
	assert.True(t, clearedToken(w))
}

func TestSessionClearsTokenOfAnotherUser(t *testing.T) {
	users := &fakeUsers{user: &models.User{ID: "u2"}}
	r, seen := sessionEngine(users)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withToken(signToken(t, time.Now().Add(time.Hour))))

	assert.Equal(t, 1, users.calls)
	assert.False(t, seen.IsAuthenticated())
	assert.True(t, clearedToken(w))
}

func TestRequireAuthRedirectsToLogin(t *testing.T) {
	r := gin.New()
	r.GET("/dashboard", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET(APIPrefix+"/me", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?next=%2Fdashboard", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, APIPrefix+"/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	var fromCtx string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		fromCtx = models.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc", fromCtx)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	r := gin.New()
	r.POST(APIPrefix+"/login", RateLimit(rl, session.NewCookies(false)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, APIPrefix+"/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitRedirectsForms(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	r := gin.New()
	r.POST("/login", RateLimit(rl, session.NewCookies(false)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(10, 1)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	rl.Allow("a")
	clock = clock.Add(limiterIdle + time.Second)
	rl.Allow("b")

	assert.Equal(t, 1, rl.Cleanup())
	assert.Equal(t, 1, rl.Len())
}

func TestRecoveryRendersErrorPage(t *testing.T) {
	renderer, err := views.New(nil)
	require.NoError(t, err)

	cookies := session.NewCookies(false)
	r := gin.New()
	r.HTMLRender = renderer
	r.Use(RequestID(), Recovery(discard, cookies))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Reload Page")
	assert.Contains(t, w.Body.String(), "Go Home")
}

func TestErrorHandlerAnswersUnhandledErrors(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(discard, session.NewCookies(false)))
	r.GET(APIPrefix+"/x", func(c *gin.Context) { _ = c.Error(errors.New("kaput")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, APIPrefix+"/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), models.MsgGeneric)
}
