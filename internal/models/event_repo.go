package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type EventRepo interface {
	ListEvents(ctx context.Context, token string, query url.Values) ([]*Event, Pagination, error)
	GetEvent(ctx context.Context, token, id string) (*Event, error)
	CreateEvent(ctx context.Context, token string, input EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, token, id string, input EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, token, id string) error
}

func (r *APIRepo) ListEvents(ctx context.Context, token string, query url.Values) ([]*Event, Pagination, error) {
	res, err := r.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/events",
		path:   "/api/events",
		query:  query,
		token:  token,
	})
	if err != nil {
		return nil, Pagination{}, err
	}

	events := []*Event{}
	if err := res.DecodeData(&events); err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to decode events: %w", err)
	}
	p := res.Pagination()
	if p.Count == 0 {
		p.Count = len(events)
	}
	return events, p, nil
}

func (r *APIRepo) GetEvent(ctx context.Context, token, id string) (*Event, error) {
	res, err := r.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/events/:id",
		path:   "/api/events/" + url.PathEscape(id),
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	return eventFrom(res)
}

func (r *APIRepo) CreateEvent(ctx context.Context, token string, input EventInput) (*Event, error) {
	res, err := r.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/events",
		path:   "/api/events",
		token:  token,
		body:   input,
	})
	if err != nil {
		return nil, err
	}
	return eventFrom(res)
}

func (r *APIRepo) UpdateEvent(ctx context.Context, token, id string, input EventInput) (*Event, error) {
	res, err := r.do(ctx, request{
		method: http.MethodPut,
		route:  "/api/events/:id",
		path:   "/api/events/" + url.PathEscape(id),
		token:  token,
		body:   input,
	})
	if err != nil {
		return nil, err
	}
	return eventFrom(res)
}

func (r *APIRepo) DeleteEvent(ctx context.Context, token, id string) error {
	_, err := r.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/events/:id",
		path:   "/api/events/" + url.PathEscape(id),
		token:  token,
	})
	return err
}

func eventFrom(res *ApiResponse) (*Event, error) {
	event := &Event{}
	if err := res.DecodeData(event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if event.ID == "" {
		return nil, &APIError{Status: http.StatusNotFound, Message: MsgEventNotFound}
	}
	return event, nil
}
