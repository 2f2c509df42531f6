package views

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
)

// Page is the data every template receives. Data holds the page-specific
// view model.
type Page struct {
	Title     string
	Path      string
	Theme     string
	User      *models.User
	Flashes   []session.Flash
	RequestID string
	Data      any
}

func (p *Page) IsAuthenticated() bool {
	return p.User != nil
}

func (p *Page) Dark() bool {
	return p.Theme == session.ThemeDark
}

type HomeData struct {
	Featured []*models.Event
	Err      string
}

type PageLink struct {
	Number int
	URL    string
	Active bool
}

type EventsData struct {
	Events     []*models.Event
	Pagination models.Pagination
	Filters    services.Filters
	Err        string
	Categories []models.Option
	Statuses   []models.Option
	Sorts      []models.Option
	PageSizes  []int
	Pages      []PageLink
	PrevURL    string
	NextURL    string
	ResetURL   string
	// Empty is a finished fetch with nothing to show.
	Empty bool
	// Filtered is true when anything differs from the defaults.
	Filtered bool
}

type EventDetailData struct {
	Event         *models.Event
	Status        string
	RSVP          *services.RSVPState
	ShowRSVP      bool
	IsOrganizer   bool
	IsPast        bool
	Attendees     []*models.Attendee
	AttendeeTotal int
	ShareURL      string
}

type EventFormData struct {
	Editing    bool
	EventID    string
	Action     string
	Input      models.EventInput
	Errors     map[string]string
	Categories []models.Option
	MinDate    string
}

type DashboardData struct {
	Dashboard *models.Dashboard
	Err       string
}

type ProfileData struct {
	Input  models.ProfileInput
	Errors map[string]string
	Edit   bool
}

type AuthFormData struct {
	Name     string
	Email    string
	Next     string
	Errors   map[string]string
	Strength helpers.PasswordStrength
}

type ErrorData struct {
	Message string
}

// NewPage collects the per-request layout data. Queued flashes are consumed.
func NewPage(c *gin.Context, cookies *session.Cookies, title string, data any) *Page {
	return &Page{
		Title:     title,
		Path:      c.Request.URL.Path,
		Theme:     cookies.Theme(c),
		User:      session.User(c),
		Flashes:   cookies.PopFlashes(c),
		RequestID: c.GetString(models.RequestIDKey),
		Data:      data,
	}
}
