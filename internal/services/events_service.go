package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joshua-takyi/eventhub/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	FeaturedLimit   = 6
	AttendeePreview = 8

	MsgImageRequired = "Please upload an event image"
	MsgDateInPast    = "Event date must be in the future"
	MsgNotOrganizer  = "Only the organizer can change this event"
)

var now = time.Now

type EventService struct {
	eventRepo models.EventRepo
	rsvpRepo  models.RSVPRepo
}

func NewEventService(eventRepo models.EventRepo, rsvpRepo models.RSVPRepo) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
	}
}

// Listing starts a filterable listing for the caller.
func (es *EventService) Listing(token string, user *models.User, initial Filters) *Listing {
	return NewListing(es, token, user, initial)
}

func (es *EventService) Featured(ctx context.Context) ([]*models.Event, error) {
	f := Filters{Limit: FeaturedLimit}
	events, _, err := es.eventRepo.ListEvents(ctx, "", f.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to load featured events: %w", err)
	}
	return events, nil
}

func (es *EventService) GetEvent(ctx context.Context, token, id string) (*models.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrNotFound
	}
	return es.eventRepo.GetEvent(ctx, token, id)
}

// EventDetail is everything the event page shows.
type EventDetail struct {
	Event     *models.Event
	HasRSVP   bool
	Attendees []*models.Attendee
	// AttendeeTotal counts every attendee, not just the preview.
	AttendeeTotal int
}

// Detail fetches the event, the caller's RSVP status and the attendee list
// concurrently. Only a failure to load the event itself is returned; the
// status and attendees are left empty when they fail.
func (es *EventService) Detail(ctx context.Context, token, id string) (*EventDetail, error) {
	detail := &EventDetail{Attendees: []*models.Attendee{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		event, err := es.GetEvent(gctx, token, id)
		if err != nil {
			return err
		}
		detail.Event = event
		return nil
	})

	var hasRSVP bool
	var attendees []*models.Attendee
	if token != "" {
		g.Go(func() error {
			if has, err := es.rsvpRepo.RSVPStatus(gctx, token, id); err == nil {
				hasRSVP = has
			}
			return nil
		})
		g.Go(func() error {
			if list, err := es.rsvpRepo.Attendees(gctx, token, id); err == nil {
				attendees = list
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail.HasRSVP = detail.Event.HasRSVP || hasRSVP
	detail.AttendeeTotal = len(attendees)
	if len(attendees) > AttendeePreview {
		attendees = attendees[:AttendeePreview]
	}
	if attendees != nil {
		detail.Attendees = attendees
	}
	return detail, nil
}

func (es *EventService) CreateEvent(ctx context.Context, token string, input models.EventInput) (*models.Event, error) {
	if err := validateEventInput(input, true); err != nil {
		return nil, err
	}
	event, err := es.eventRepo.CreateEvent(ctx, token, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// UpdateEvent checks that user organizes the event before sending the change.
func (es *EventService) UpdateEvent(ctx context.Context, token string, user *models.User, id string, input models.EventInput) (*models.Event, error) {
	if err := es.requireOrganizer(ctx, token, user, id); err != nil {
		return nil, err
	}
	if err := validateEventInput(input, false); err != nil {
		return nil, err
	}
	event, err := es.eventRepo.UpdateEvent(ctx, token, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (es *EventService) DeleteEvent(ctx context.Context, token string, user *models.User, id string) error {
	if err := es.requireOrganizer(ctx, token, user, id); err != nil {
		return err
	}
	if err := es.eventRepo.DeleteEvent(ctx, token, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (es *EventService) requireOrganizer(ctx context.Context, token string, user *models.User, id string) error {
	if user == nil || token == "" {
		return models.ErrUnauthorized
	}
	event, err := es.GetEvent(ctx, token, id)
	if err != nil {
		return err
	}
	if event.OrganizerID() == "" || event.OrganizerID() != user.ID {
		return &models.APIError{Status: 403, Message: MsgNotOrganizer}
	}
	return nil
}

// validateEventInput rejects a form before any request is made. A missing
// image always fails.
func validateEventInput(input models.EventInput, creating bool) error {
	if strings.TrimSpace(input.Image) == "" {
		return &models.ValidationError{Field: "image", Message: MsgImageRequired}
	}
	if err := models.Validate.Struct(input); err != nil {
		return models.FirstFieldError(err, "title", "description", "date", "location", "capacity", "category")
	}
	if input.Date.IsZero() {
		return &models.ValidationError{Field: "date", Message: "Date is required"}
	}
	if creating && input.Date.Before(now()) {
		return &models.ValidationError{Field: "date", Message: MsgDateInPast}
	}
	return nil
}
