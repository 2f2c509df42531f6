package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/joshua-takyi/eventhub/internal/models"
)

type DashboardService struct {
	dashboardRepo models.DashboardRepo
}

func NewDashboardService(dashboardRepo models.DashboardRepo) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
	}
}

// Dashboard loads the caller's stats and event lists, soonest first.
func (ds *DashboardService) Dashboard(ctx context.Context, token string) (*models.Dashboard, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	dash, err := ds.dashboardRepo.Dashboard(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	bySoonest := func(events []*models.Event) {
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Date.Before(events[j].Date)
		})
	}
	bySoonest(dash.CreatedEvents)
	bySoonest(dash.AttendingEvents)
	return dash, nil
}
