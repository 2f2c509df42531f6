package models

import "time"

// Attendee is a read-only RSVP record as listed on an event page.
type Attendee struct {
	ID       string    `json:"_id"`
	User     *User     `json:"user"`
	Event    string    `json:"event,omitempty"`
	RSVPDate time.Time `json:"rsvpDate,omitempty"`
}

type RSVPStatus struct {
	HasRSVP bool `json:"hasRSVP"`
}
