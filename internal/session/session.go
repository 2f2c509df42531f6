package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
)

const (
	TokenCookie = "access_token"
	ThemeCookie = "theme"
	FlashCookie = "flash"
	// ZoneCookie is written by the page script with the browser's
	// timezone offset.
	ZoneCookie = "tz_offset"

	ThemeLight = "light"
	ThemeDark  = "dark"

	// DefaultTokenAge applies when the token carries no expiry.
	DefaultTokenAge = 7 * 24 * time.Hour
	themeAge        = 365 * 24 * time.Hour
	flashAge        = time.Minute

	contextKey = "session"
)

// State is the auth session of one request.
type State struct {
	User  *models.User
	Token string
}

func (s *State) IsAuthenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

// Set stores the rehydrated session on the request.
func Set(c *gin.Context, st *State) {
	c.Set(contextKey, st)
}

// Current returns the request's session; anonymous when none was set.
func Current(c *gin.Context) *State {
	if v, ok := c.Get(contextKey); ok {
		if st, ok := v.(*State); ok && st != nil {
			return st
		}
	}
	return &State{}
}

func User(c *gin.Context) *models.User {
	return Current(c).User
}

func Token(c *gin.Context) string {
	return Current(c).Token
}

// Cookies writes and reads the session cookies.
type Cookies struct {
	Secure bool
}

func NewCookies(secure bool) *Cookies {
	return &Cookies{Secure: secure}
}

func (ck *Cookies) set(c *gin.Context, name, value string, age time.Duration, httpOnly bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(age.Seconds()), "/", "", ck.Secure, httpOnly)
}

func (ck *Cookies) clear(c *gin.Context, name string, httpOnly bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", ck.Secure, httpOnly)
}

// SetToken persists the access token until expiresAt, or for
// DefaultTokenAge when the expiry is unknown.
func (ck *Cookies) SetToken(c *gin.Context, token string, expiresAt time.Time) {
	age := DefaultTokenAge
	if !expiresAt.IsZero() {
		age = time.Until(expiresAt)
	}
	if age <= 0 {
		ck.ClearToken(c)
		return
	}
	ck.set(c, TokenCookie, token, age, true)
}

func (ck *Cookies) ClearToken(c *gin.Context) {
	ck.clear(c, TokenCookie, true)
}

func (ck *Cookies) Token(c *gin.Context) string {
	token, err := c.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return token
}

func (ck *Cookies) Theme(c *gin.Context) string {
	if theme, err := c.Cookie(ThemeCookie); err == nil && theme == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Zone is the browser's timezone, or the server's when the page script has
// not reported one.
func (ck *Cookies) Zone(c *gin.Context) *time.Location {
	if v, err := c.Cookie(ZoneCookie); err == nil {
		if loc, ok := helpers.ZoneFromOffset(v); ok {
			return loc
		}
	}
	return time.Local
}

// ToggleTheme flips and persists the theme, returning the new value.
func (ck *Cookies) ToggleTheme(c *gin.Context) string {
	next := ThemeDark
	if ck.Theme(c) == ThemeDark {
		next = ThemeLight
	}
	ck.set(c, ThemeCookie, next, themeAge, false)
	return next
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

type Flash struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

// AddFlash queues a notification for the next rendered page.
func (ck *Cookies) AddFlash(c *gin.Context, kind, message string) {
	flashes := append(ck.peekFlashes(c), Flash{Kind: kind, Message: message})
	if len(flashes) > 3 {
		flashes = flashes[len(flashes)-3:]
	}
	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	ck.set(c, FlashCookie, encoded, flashAge, true)
	// later reads in this request see the queued flash
	c.Set(FlashCookie, flashes)
}

func (ck *Cookies) Success(c *gin.Context, message string) { ck.AddFlash(c, FlashSuccess, message) }
func (ck *Cookies) Error(c *gin.Context, message string)   { ck.AddFlash(c, FlashError, message) }

// PopFlashes returns the queued notifications and clears them.
func (ck *Cookies) PopFlashes(c *gin.Context) []Flash {
	flashes := ck.peekFlashes(c)
	if len(flashes) > 0 {
		ck.clear(c, FlashCookie, true)
		c.Set(FlashCookie, []Flash{})
	}
	return flashes
}

func (ck *Cookies) peekFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(FlashCookie); ok {
		if flashes, ok := v.([]Flash); ok {
			return flashes
		}
	}
	encoded, err := c.Cookie(FlashCookie)
	if err != nil || encoded == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}
