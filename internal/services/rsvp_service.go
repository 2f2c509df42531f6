package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/monitoring"
)

var (
	ErrRSVPInFlight = &models.ValidationError{Message: "Your RSVP is already being updated"}
	ErrEventFull    = &models.ValidationError{Message: models.MsgEventFull}
)

// Intents name the action an RSVP control offered when it was rendered.
const (
	IntentCreate = "create"
	IntentCancel = "cancel"
)

// RSVPState is the RSVP control of one event page. A toggle applies its
// delta as soon as the server accepts it and is then reconciled with the
// authoritative counts.
type RSVPState struct {
	EventID   string `json:"eventId"`
	HasRSVP   bool   `json:"hasRSVP"`
	Attendees int    `json:"currentAttendees"`
	Capacity  int    `json:"capacity"`
	Pending   bool   `json:"pending"`
}

func NewRSVPState(event *models.Event, hasRSVP bool) *RSVPState {
	return &RSVPState{
		EventID:   event.ID,
		HasRSVP:   hasRSVP,
		Attendees: event.CurrentAttendees,
		Capacity:  event.Capacity,
	}
}

func (s *RSVPState) IsFull() bool {
	return s.Capacity > 0 && s.Attendees >= s.Capacity
}

// CanRSVP is false while a request is in flight, and when the event is full
// for someone who has not RSVP'd. Cancelling is always allowed.
func (s *RSVPState) CanRSVP() bool {
	if s.Pending {
		return false
	}
	return s.HasRSVP || !s.IsFull()
}

func (s *RSVPState) SpotsRemaining() int {
	if n := s.Capacity - s.Attendees; n > 0 {
		return n
	}
	return 0
}

// Begin marks a request in flight.
func (s *RSVPState) Begin() error {
	if s.Pending {
		return ErrRSVPInFlight
	}
	if !s.CanRSVP() {
		return ErrEventFull
	}
	s.Pending = true
	return nil
}

// Apply flips the flag and moves the counter by one.
func (s *RSVPState) Apply() {
	if s.HasRSVP {
		s.HasRSVP = false
		if s.Attendees > 0 {
			s.Attendees--
		}
	} else {
		s.HasRSVP = true
		s.Attendees++
	}
}

// Reconcile overwrites the local counts with the server's.
func (s *RSVPState) Reconcile(event *models.Event, hasRSVP bool) {
	if event != nil {
		s.Attendees = event.CurrentAttendees
		s.Capacity = event.Capacity
	}
	s.HasRSVP = hasRSVP
}

func (s *RSVPState) Done() {
	s.Pending = false
}

// ShowRSVPControl reports whether user gets an RSVP button at all: not for
// organizers and not for past events.
func ShowRSVPControl(user *models.User, event *models.Event, at time.Time) bool {
	if event == nil {
		return false
	}
	if user != nil && event.OrganizerID() == user.ID {
		return false
	}
	return !event.IsPast(at)
}

type RSVPService struct {
	rsvpRepo  models.RSVPRepo
	eventRepo models.EventRepo

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewRSVPService(rsvpRepo models.RSVPRepo, eventRepo models.EventRepo) *RSVPService {
	return &RSVPService{
		rsvpRepo:  rsvpRepo,
		eventRepo: eventRepo,
		inFlight:  map[string]struct{}{},
	}
}

func (rs *RSVPService) acquire(key string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, busy := rs.inFlight[key]; busy {
		return false
	}
	rs.inFlight[key] = struct{}{}
	return true
}

func (rs *RSVPService) release(key string) {
	rs.mu.Lock()
	delete(rs.inFlight, key)
	rs.mu.Unlock()
}

// Toggle creates or cancels the caller's RSVP for eventID and returns the
// reconciled state. intent is the action the caller's page offered; when the
// server already matches it nothing is sent, so a repeated submit cannot undo
// the first. An empty intent flips whatever the server reports. Only one
// toggle per caller and event runs at a time; others get ErrRSVPInFlight.
func (rs *RSVPService) Toggle(ctx context.Context, token, eventID, intent string) (*RSVPState, string, error) {
	if token == "" {
		return nil, "", models.ErrUnauthorized
	}
	key := token + "|" + eventID
	if !rs.acquire(key) {
		return nil, "", ErrRSVPInFlight
	}
	defer rs.release(key)

	state, err := rs.Load(ctx, token, eventID)
	if err != nil {
		return nil, "", err
	}
	switch {
	case intent == IntentCreate && state.HasRSVP:
		return state, models.MsgRSVPConfirmed, nil
	case intent == IntentCancel && !state.HasRSVP:
		return state, models.MsgRSVPCancelled, nil
	}

	msg, err := rs.apply(ctx, token, state)
	return state, msg, err
}

// apply sends the flip described by state, applies it locally and then
// reconciles with the server. A failed reconcile keeps the applied delta.
func (rs *RSVPService) apply(ctx context.Context, token string, state *RSVPState) (string, error) {
	if err := state.Begin(); err != nil {
		return "", err
	}
	defer state.Done()

	action, msg := IntentCreate, models.MsgRSVPConfirmed
	call := rs.rsvpRepo.CreateRSVP
	if state.HasRSVP {
		action, msg = IntentCancel, models.MsgRSVPCancelled
		call = rs.rsvpRepo.DeleteRSVP
	}

	err := call(ctx, token, state.EventID)
	monitoring.RecordRSVP(action, err)
	if err != nil {
		return "", fmt.Errorf("failed to update RSVP: %w", err)
	}
	state.Apply()

	event, err := rs.eventRepo.GetEvent(ctx, token, state.EventID)
	if err != nil {
		return msg, nil
	}
	hasRSVP := state.HasRSVP
	if has, err := rs.rsvpRepo.RSVPStatus(ctx, token, state.EventID); err == nil {
		hasRSVP = has
	}
	state.Reconcile(event, hasRSVP)
	return msg, nil
}

// Load builds the current RSVP state of an event for token. The status call
// decides the action of the next toggle, so its failure is returned.
func (rs *RSVPService) Load(ctx context.Context, token, eventID string) (*RSVPState, error) {
	event, err := rs.eventRepo.GetEvent(ctx, token, eventID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return NewRSVPState(event, false), nil
	}
	hasRSVP, err := rs.rsvpRepo.RSVPStatus(ctx, token, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load RSVP status: %w", err)
	}
	return NewRSVPState(event, hasRSVP), nil
}

func (rs *RSVPService) Attendees(ctx context.Context, token, eventID string) ([]*models.Attendee, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	return rs.rsvpRepo.Attendees(ctx, token, eventID)
}
