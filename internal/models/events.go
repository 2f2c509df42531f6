package models

import (
	"time"
)

type Event struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location"`
	Capacity         int       `json:"capacity"`
	CurrentAttendees int       `json:"currentAttendees"`
	Category         string    `json:"category"`
	Image            string    `json:"image,omitempty"`
	Organizer        *User     `json:"organizer,omitempty"`
	Status           string    `json:"status,omitempty"`
	HasRSVP          bool      `json:"hasRSVP,omitempty"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// DerivedStatus returns the server status when present, otherwise derives one
// from the event date: same calendar day is ongoing.
func (e *Event) DerivedStatus(now time.Time) string {
	if e.Status != "" {
		return e.Status
	}
	if e.Date.IsZero() {
		return StatusUpcoming
	}
	y1, m1, d1 := e.Date.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	switch {
	case y1 == y2 && m1 == m2 && d1 == d2:
		return StatusOngoing
	case e.Date.Before(now):
		return StatusCompleted
	default:
		return StatusUpcoming
	}
}

func (e *Event) IsFull() bool {
	return e.Capacity > 0 && e.CurrentAttendees >= e.Capacity
}

func (e *Event) IsPast(now time.Time) bool {
	return !e.Date.IsZero() && e.Date.Before(now)
}

func (e *Event) SpotsRemaining() int {
	if n := e.Capacity - e.CurrentAttendees; n > 0 {
		return n
	}
	return 0
}

// FillPercent is the attendance ratio clamped to [0, 100].
func (e *Event) FillPercent() int {
	if e.Capacity <= 0 {
		return 0
	}
	p := e.CurrentAttendees * 100 / e.Capacity
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

func (e *Event) ImageURL() string {
	if e.Image == "" {
		return PlaceholderImage
	}
	return e.Image
}

func (e *Event) OrganizerID() string {
	if e.Organizer == nil {
		return ""
	}
	return e.Organizer.ID
}

// EventInput is the create/edit form. Image carries a data URL or an
// existing image URL.
type EventInput struct {
	Title       string    `form:"title" json:"title" binding:"required,min=3,max=100"`
	Description string    `form:"description" json:"description" binding:"required,min=10,max=2000"`
	Date        time.Time `form:"date" json:"date" time_format:"2006-01-02T15:04" binding:"required"`
	Location    string    `form:"location" json:"location" binding:"required,min=3,max=200"`
	Capacity    int       `form:"capacity" json:"capacity" binding:"required,min=1,max=10000"`
	Category    string    `form:"category" json:"category" binding:"required,category"`
	Image       string    `form:"image" json:"image"`
}

// InputFromEvent pre-fills the edit form.
func InputFromEvent(e *Event) EventInput {
	return EventInput{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Capacity:    e.Capacity,
		Category:    e.Category,
		Image:       e.Image,
	}
}
