package views

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func renderPage(t *testing.T, name string, page *Page) string {
	t.Helper()
	r, err := New(func() time.Time { return fixedNow })
	require.NoError(t, err)
	require.True(t, r.Has(name), "page %s not parsed", name)

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, page).Render(w))
	return w.Body.String()
}

func sampleEvent() *models.Event {
	return &models.Event{
		ID:               "e1",
		Title:            "Go Meetup",
		Description:      "An evening of talks about Go.",
		Date:             fixedNow.Add(72 * time.Hour),
		Location:         "Accra",
		Capacity:         50,
		CurrentAttendees: 45,
		Category:         "meetup",
		Organizer:        &models.User{ID: "u1", Name: "Ama"},
	}
}

func TestEveryPageParses(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	for _, name := range []string{
		"home", "events", "event_detail", "event_form", "dashboard",
		"profile", "login", "register", "not_found", "error",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout"))
}

func TestMissingPageFails(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	assert.Error(t, r.Instance("nope", nil).Render(httptest.NewRecorder()))
}

func TestHomeShowsFeaturedAndFlashes(t *testing.T) {
	body := renderPage(t, "home", &Page{
		Title:   "Home",
		Path:    "/",
		Flashes: []session.Flash{{Kind: session.FlashSuccess, Message: "Welcome back!"}},
		Data:    &HomeData{Featured: []*models.Event{sampleEvent()}},
	})
	assert.Contains(t, body, "Go Meetup")
	assert.Contains(t, body, "Welcome back!")
	assert.Contains(t, body, "FILLING FAST")
	assert.Contains(t, body, `href="/login"`)
}

func TestEventsPagination(t *testing.T) {
	body := renderPage(t, "events", &Page{
		Path: "/events",
		Data: &EventsData{
			Events:     []*models.Event{sampleEvent()},
			Pagination: models.Pagination{Page: 2, Pages: 3, Total: 30},
			Filters:    services.DefaultFilters(),
			Categories: models.WithAll("All Categories", models.Categories),
			Statuses:   models.WithAll("All Statuses", models.Statuses),
			Sorts:      models.SortOptions,
			PageSizes:  models.PageSizeOptions,
			Pages: []PageLink{
				{Number: 1, URL: "/events?page=1"},
				{Number: 2, URL: "/events?page=2", Active: true},
				{Number: 3, URL: "/events?page=3"},
			},
			PrevURL: "/events?page=1",
			NextURL: "/events?page=3",
		},
	})
	assert.Contains(t, body, `aria-current="page"`)
	assert.Contains(t, body, "Previous")
	assert.Contains(t, body, "Next")
}

func detailPage(user *models.User, organizer bool) *Page {
	e := sampleEvent()
	return &Page{
		Path: "/events/e1",
		User: user,
		Data: &EventDetailData{
			Event:       e,
			Status:      e.DerivedStatus(fixedNow),
			RSVP:        services.NewRSVPState(e, false),
			ShowRSVP:    !organizer,
			IsOrganizer: organizer,
			ShareURL:    "http://localhost/events/e1",
		},
	}
}

func TestEventDetailOrganizerControls(t *testing.T) {
	body := renderPage(t, "event_detail", detailPage(&models.User{ID: "u1", Name: "Ama"}, true))
	assert.Contains(t, body, "data-organizer-controls")
	assert.Contains(t, body, "/events/e1/delete")
	assert.NotContains(t, body, "RSVP Now")
}

func TestEventDetailAttendee(t *testing.T) {
	body := renderPage(t, "event_detail", detailPage(&models.User{ID: "u2", Name: "Kofi"}, false))
	assert.NotContains(t, body, "data-organizer-controls")
	assert.Contains(t, body, "RSVP Now")
	assert.Contains(t, body, "5 spots remaining")
}

func TestEventDetailAnonymous(t *testing.T) {
	body := renderPage(t, "event_detail", detailPage(nil, false))
	assert.Contains(t, body, "Login to RSVP")
	assert.NotContains(t, body, `id="attendees"`)
}

func TestEventDetailFullEventDisablesRSVP(t *testing.T) {
	page := detailPage(&models.User{ID: "u2", Name: "Kofi"}, false)
	data := page.Data.(*EventDetailData)
	data.Event.CurrentAttendees = data.Event.Capacity
	data.RSVP = services.NewRSVPState(data.Event, false)

	body := renderPage(t, "event_detail", page)
	assert.Contains(t, body, "Event Full")
	assert.Contains(t, body, "disabled data-rsvp-button")
	assert.Contains(t, body, "This event is full")
	assert.NotContains(t, body, "RSVP Now")

	// an attendee of a full event can still cancel
	data.RSVP = services.NewRSVPState(data.Event, true)
	body = renderPage(t, "event_detail", page)
	assert.Contains(t, body, "Cancel RSVP")
	assert.NotContains(t, body, "disabled data-rsvp-button")
	assert.Contains(t, body, `name="intent" value="cancel"`)
}

func TestEventDetailCountdown(t *testing.T) {
	body := renderPage(t, "event_detail", detailPage(nil, false))
	assert.Contains(t, body, "data-countdown")
	assert.Contains(t, body, `<p class="text-2xl font-bold">3</p><p class="text-xs text-gray-500">days</p>`)

	page := detailPage(nil, false)
	page.Data.(*EventDetailData).IsPast = true
	assert.NotContains(t, renderPage(t, "event_detail", page), "data-countdown")
}

func TestEventsEmptyState(t *testing.T) {
	body := renderPage(t, "events", &Page{
		Path: "/events",
		Data: &EventsData{Filters: services.DefaultFilters(), Empty: true, Filtered: true, ResetURL: "/events?reset=1"},
	})
	assert.Contains(t, body, "No events found")
	assert.Contains(t, body, `href="/events?reset=1"`)
}

func TestEventFormErrors(t *testing.T) {
	body := renderPage(t, "event_form", &Page{
		Path: "/create-event",
		User: &models.User{ID: "u1", Name: "Ama"},
		Data: &EventFormData{
			Action:     "/create-event",
			Errors:     map[string]string{"title": "Title must be at least 3 characters"},
			Categories: models.Categories,
		},
	})
	assert.Contains(t, body, "Create New Event")
	assert.Contains(t, body, "Title must be at least 3 characters")
	assert.Contains(t, body, `enctype="multipart/form-data"`)
}

func TestDashboardErrorState(t *testing.T) {
	body := renderPage(t, "dashboard", &Page{
		Path: "/dashboard",
		User: &models.User{ID: "u1", Name: "Ama"},
		Data: &DashboardData{Err: "Failed to load dashboard"},
	})
	assert.Contains(t, body, "Unable to Load Dashboard")
	assert.Contains(t, body, "Retry")
}

func TestRegisterStrengthMeter(t *testing.T) {
	body := renderPage(t, "register", &Page{
		Path: "/register",
		Data: &AuthFormData{Errors: map[string]string{}},
	})
	assert.Contains(t, body, "data-strength-bars")
	assert.Contains(t, body, `name="confirmPassword"`)
}

func TestDarkThemeClass(t *testing.T) {
	body := renderPage(t, "not_found", &Page{Theme: session.ThemeDark})
	assert.Contains(t, body, `class="dark"`)
	assert.Contains(t, body, "Page Not Found")
}
