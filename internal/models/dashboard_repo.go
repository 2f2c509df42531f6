package models

import (
	"context"
	"fmt"
	"net/http"
)

type DashboardRepo interface {
	Dashboard(ctx context.Context, token string) (*Dashboard, error)
}

func (r *APIRepo) Dashboard(ctx context.Context, token string) (*Dashboard, error) {
	res, err := r.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/users/dashboard",
		path:   "/api/users/dashboard",
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	dash := &Dashboard{}
	if err := res.DecodeData(dash); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard: %w", err)
	}
	if dash.CreatedEvents == nil {
		dash.CreatedEvents = []*Event{}
	}
	if dash.AttendingEvents == nil {
		dash.AttendingEvents = []*Event{}
	}
	return dash, nil
}
