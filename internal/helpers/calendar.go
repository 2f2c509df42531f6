package helpers

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/joshua-takyi/eventhub/internal/models"
)

// DefaultEventLength is used for calendar entries; events carry no end time.
const DefaultEventLength = 2 * time.Hour

// EventCalendar renders event as a single-VEVENT iCalendar document. link is
// the public page of the event.
func EventCalendar(event *models.Event, link string, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//EventHub//Events//EN")

	vevent := cal.AddEvent(event.ID + "@eventhub")
	vevent.SetDtStampTime(stamp.UTC())
	if !event.CreatedAt.IsZero() {
		vevent.SetCreatedTime(event.CreatedAt.UTC())
	}
	vevent.SetStartAt(event.Date.UTC())
	vevent.SetEndAt(event.Date.Add(DefaultEventLength).UTC())
	vevent.SetSummary(event.Title)
	vevent.SetDescription(event.Description)
	vevent.SetLocation(event.Location)
	if link != "" {
		vevent.SetURL(link)
	}
	if event.Organizer != nil && event.Organizer.Email != "" {
		vevent.SetOrganizer("mailto:"+event.Organizer.Email, ics.WithCN(event.Organizer.Name))
	}
	if event.Status == models.StatusCancelled {
		vevent.SetStatus(ics.ObjectStatusCancelled)
	}
	return cal.Serialize()
}

// CalendarFilename is a download name derived from the event title.
func CalendarFilename(event *models.Event) string {
	var b strings.Builder
	for _, r := range strings.ToLower(event.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "event"
	}
	return name + ".ics"
}
