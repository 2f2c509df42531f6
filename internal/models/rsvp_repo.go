package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type RSVPRepo interface {
	CreateRSVP(ctx context.Context, token, eventID string) error
	DeleteRSVP(ctx context.Context, token, eventID string) error
	RSVPStatus(ctx context.Context, token, eventID string) (bool, error)
	Attendees(ctx context.Context, token, eventID string) ([]*Attendee, error)
}

func rsvpPath(eventID string) string {
	return "/api/rsvps/event/" + url.PathEscape(eventID)
}

func (r *APIRepo) CreateRSVP(ctx context.Context, token, eventID string) error {
	_, err := r.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/rsvps/event/:id",
		path:   rsvpPath(eventID),
		token:  token,
	})
	return err
}

func (r *APIRepo) DeleteRSVP(ctx context.Context, token, eventID string) error {
	_, err := r.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/rsvps/event/:id",
		path:   rsvpPath(eventID),
		token:  token,
	})
	return err
}

func (r *APIRepo) RSVPStatus(ctx context.Context, token, eventID string) (bool, error) {
	res, err := r.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/rsvps/event/:id/status",
		path:   rsvpPath(eventID) + "/status",
		token:  token,
	})
	if err != nil {
		return false, err
	}
	status := RSVPStatus{}
	if err := res.DecodeData(&status); err != nil {
		return false, fmt.Errorf("failed to decode rsvp status: %w", err)
	}
	return status.HasRSVP, nil
}

func (r *APIRepo) Attendees(ctx context.Context, token, eventID string) ([]*Attendee, error) {
	res, err := r.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/rsvps/event/:id/attendees",
		path:   rsvpPath(eventID) + "/attendees",
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	attendees := []*Attendee{}
	if err := res.DecodeData(&attendees); err != nil {
		return nil, fmt.Errorf("failed to decode attendees: %w", err)
	}
	return attendees, nil
}
