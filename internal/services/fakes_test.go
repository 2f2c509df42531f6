package services

import (
	"context"
	"net/url"
	"sync"

	"github.com/joshua-takyi/eventhub/internal/models"
)

// fakeAPI is an in-memory stand-in for models.APIRepo.
type fakeAPI struct {
	mu sync.Mutex

	events      map[string]*models.Event
	list        []*models.Event
	pagination  models.Pagination
	listErr     error
	rsvps       map[string]bool
	attendees   []*models.Attendee
	rsvpErr     error
	statusErr   error
	rsvpCalls   int
	dashboard   *models.Dashboard
	user        *models.User
	payload     *models.AuthPayload
	authErr     error
	listQueries []url.Values
	creates     int
	updates     int
	deletes     int
	// block, when set, holds ListEvents until the context ends or the
	// channel is closed.
	block chan struct{}
	// holdRSVP, when set, holds CreateRSVP until the channel is closed.
	holdRSVP chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		events: map[string]*models.Event{},
		rsvps:  map[string]bool{},
	}
}

func (f *fakeAPI) ListEvents(ctx context.Context, token string, query url.Values) ([]*models.Event, models.Pagination, error) {
	f.mu.Lock()
	f.listQueries = append(f.listQueries, query)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, models.Pagination{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, models.Pagination{}, f.listErr
	}
	out := make([]*models.Event, len(f.list))
	copy(out, f.list)
	return out, f.pagination, nil
}

func (f *fakeAPI) GetEvent(ctx context.Context, token, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, &models.APIError{Status: 404, Message: models.MsgEventNotFound}
	}
	cp := *e
	return &cp, nil
}

func (f *fakeAPI) CreateEvent(ctx context.Context, token string, input models.EventInput) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	e := &models.Event{ID: "new", Title: input.Title, Capacity: input.Capacity, Date: input.Date}
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeAPI) UpdateEvent(ctx context.Context, token, id string, input models.EventInput) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	e := &models.Event{ID: id, Title: input.Title, Capacity: input.Capacity, Date: input.Date}
	f.events[id] = e
	return e, nil
}

func (f *fakeAPI) DeleteEvent(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.events, id)
	return nil
}

func (f *fakeAPI) CreateRSVP(ctx context.Context, token, eventID string) error {
	f.mu.Lock()
	f.rsvpCalls++
	hold := f.holdRSVP
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rsvpErr != nil {
		return f.rsvpErr
	}
	f.rsvps[eventID] = true
	if e, ok := f.events[eventID]; ok {
		e.CurrentAttendees++
	}
	return nil
}

func (f *fakeAPI) DeleteRSVP(ctx context.Context, token, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rsvpCalls++
	if f.rsvpErr != nil {
		return f.rsvpErr
	}
	f.rsvps[eventID] = false
	if e, ok := f.events[eventID]; ok {
		e.CurrentAttendees--
	}
	return nil
}

func (f *fakeAPI) RSVPStatus(ctx context.Context, token, eventID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return false, f.statusErr
	}
	return f.rsvps[eventID], nil
}

func (f *fakeAPI) Attendees(ctx context.Context, token, eventID string) ([]*models.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attendees, nil
}

func (f *fakeAPI) Dashboard(ctx context.Context, token string) (*models.Dashboard, error) {
	return f.dashboard, nil
}

func (f *fakeAPI) Login(ctx context.Context, input models.LoginInput) (*models.AuthPayload, error) {
	return f.payload, f.authErr
}

func (f *fakeAPI) Register(ctx context.Context, input models.RegisterInput) (*models.AuthPayload, error) {
	return f.payload, f.authErr
}

func (f *fakeAPI) Me(ctx context.Context, token string) (*models.User, error) {
	return f.user, f.authErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, token string, input models.ProfileInput) (*models.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &models.User{Name: input.Name, Bio: input.Bio, Avatar: input.Avatar}, nil
}
