package helpers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func TestDateFormats(t *testing.T) {
	d := time.Date(2026, 4, 5, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, "Apr 05, 2026", FormatDate(d))
	assert.Equal(t, "Apr 05, 2026 06:45 PM", FormatDateTime(d))
	assert.Equal(t, "06:45 PM", FormatTime(d))
	assert.Equal(t, "2026-04-05T18:45", FormatDateForInput(d))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestFriendlyDate(t *testing.T) {
	assert.Equal(t, "Today", FriendlyDate(refNow.Add(3*time.Hour), refNow))
	assert.Equal(t, "Tomorrow", FriendlyDate(refNow.AddDate(0, 0, 1), refNow))
	assert.Equal(t, "Sunday, Mar 15", FriendlyDate(refNow.AddDate(0, 0, 5), refNow))
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "3 days ago", RelativeTime(refNow.AddDate(0, 0, -3), refNow))
	assert.Equal(t, "2 hours from now", RelativeTime(refNow.Add(2*time.Hour), refNow))
}

func TestZoneFromOffset(t *testing.T) {
	// Accra is UTC, New York in winter is 300 minutes behind.
	loc, ok := ZoneFromOffset("300")
	require.True(t, ok)
	wall := time.Date(2026, 12, 1, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 12, 1, 23, 30, 0, 0, time.UTC), InZone(wall, loc).UTC())
	assert.Equal(t, "2026-12-01T18:30", FormatDateForInput(InZone(wall, loc)))

	loc, ok = ZoneFromOffset("-60")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 12, 1, 17, 30, 0, 0, time.UTC), InZone(wall, loc).UTC())

	for _, bad := range []string{"", "abc", "900", "-1000"} {
		_, ok := ZoneFromOffset(bad)
		assert.False(t, ok, bad)
	}
	assert.True(t, InZone(time.Time{}, loc).IsZero())
}

func TestCountdownTo(t *testing.T) {
	c := CountdownTo(refNow.Add(26*time.Hour+5*time.Minute+7*time.Second), refNow)
	assert.Equal(t, Countdown{Days: 1, Hours: 2, Minutes: 5, Seconds: 7}, c)
	assert.True(t, CountdownTo(refNow.Add(-time.Hour), refNow).Done())
}

func TestEventCalendar(t *testing.T) {
	event := &models.Event{
		ID:        "e42",
		Title:     "Go & Coffee: Spring Edition",
		Location:  "Osu, Accra",
		Date:      time.Date(2026, 4, 5, 18, 0, 0, 0, time.UTC),
		Organizer: &models.User{Name: "Ama", Email: "ama@example.com"},
	}
	out := EventCalendar(event, "https://eventhub.example/events/e42", refNow)

	cal, err := ics.ParseCalendar(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	vevent := cal.Events()[0]
	assert.Equal(t, "Go & Coffee: Spring Edition", vevent.GetProperty(ics.ComponentPropertySummary).Value)
	start, err := vevent.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(event.Date))
	assert.True(t, strings.Contains(out, "ORGANIZER"))

	assert.Equal(t, "go-coffee-spring-edition.ics", CalendarFilename(event))
	assert.Equal(t, "event.ics", CalendarFilename(&models.Event{Title: "!!!"}))
}

func TestShareQR(t *testing.T) {
	png, err := ShareQR("https://eventhub.example/events/e42")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
