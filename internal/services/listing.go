package services

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/joshua-takyi/eventhub/internal/models"
)

// ErrSuperseded is returned by Fetch when a newer fetch started before this
// one finished. The newer fetch owns the listing state.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

type Filters struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Sort     string `json:"sort"`
}

func DefaultFilters() Filters {
	return Filters{
		Search:   "",
		Category: models.CategoryAll,
		Status:   models.StatusUpcoming,
		Page:     1,
		Limit:    models.DefaultPageSize,
		Sort:     "-date",
	}
}

// Query serializes the filters for the events endpoint. Empty values and the
// "all" sentinel are left out.
func (f Filters) Query() url.Values {
	q := url.Values{}
	add := func(key, value string) {
		if value != "" && value != "all" {
			q.Set(key, value)
		}
	}
	add("search", strings.TrimSpace(f.Search))
	add("category", f.Category)
	add("status", f.Status)
	if f.Page > 0 {
		add("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		add("limit", strconv.Itoa(f.Limit))
	}
	add("sort", f.Sort)
	return q
}

// FiltersFromQuery reads filters from an inbound query string on top of base.
// Unknown categories, statuses, sorts and page sizes fall back to base.
func FiltersFromQuery(base Filters, q url.Values) Filters {
	f := base
	if _, ok := q["search"]; ok {
		f.Search = strings.TrimSpace(q.Get("search"))
	}
	if v := q.Get("category"); v == models.CategoryAll || models.IsCategory(v) {
		f.Category = v
	}
	if v := q.Get("status"); v == models.StatusAll || models.IsStatus(v) {
		f.Status = v
	}
	if v := q.Get("sort"); models.IsSortKey(v) {
		f.Sort = v
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && models.IsPageSize(n) {
		f.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		f.Page = n
	}
	return f
}

// Listing holds the filter state, the current page of events and the
// mutation helpers for one events view. Mutations go through the
// EventService, so they are validated and organizer-checked.
type Listing struct {
	es      *EventService
	token   string
	user    *models.User
	initial Filters

	mu         sync.Mutex
	filters    Filters
	events     []*models.Event
	pagination models.Pagination
	loading    bool
	err        error
	seq        uint64
	cancel     context.CancelFunc
}

func NewListing(es *EventService, token string, user *models.User, initial Filters) *Listing {
	return &Listing{
		es:         es,
		token:      token,
		user:       user,
		initial:    initial,
		filters:    initial,
		events:     []*models.Event{},
		pagination: models.Pagination{Page: 1, Pages: 1},
	}
}

func (l *Listing) Filters() Filters {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters
}

// UpdateFilters merges changes into the current filters and always returns
// to the first page.
func (l *Listing) UpdateFilters(change func(*Filters)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if change != nil {
		change(&l.filters)
	}
	l.filters.Page = 1
}

func (l *Listing) ChangePage(page int) {
	if page < 1 {
		page = 1
	}
	l.mu.Lock()
	l.filters.Page = page
	l.mu.Unlock()
}

// Apply replays an inbound query on the listing the way the filter bar
// changes it: a filter change lands on page 1 and only an explicit page moves
// off it. A "reset" key restores the initial filters.
func (l *Listing) Apply(q url.Values) {
	if _, ok := q["reset"]; ok {
		l.ResetFilters()
		return
	}
	l.UpdateFilters(func(f *Filters) { *f = FiltersFromQuery(*f, q) })
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		l.ChangePage(n)
	}
}

func (l *Listing) ResetFilters() {
	l.mu.Lock()
	l.filters = l.initial
	l.mu.Unlock()
}

// Fetch loads the page described by the current filters. Starting a fetch
// cancels any fetch still in flight on this listing, and a response that
// arrives after a newer fetch started is dropped.
func (l *Listing) Fetch(ctx context.Context) error {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.loading = true
	l.err = nil
	query := l.filters.Query()
	l.mu.Unlock()

	events, pagination, err := l.es.eventRepo.ListEvents(fetchCtx, l.token, query)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()
	if seq != l.seq {
		return ErrSuperseded
	}
	l.cancel = nil
	l.loading = false
	if err != nil {
		l.err = err
		return err
	}
	l.events = events
	l.pagination = pagination
	return nil
}

func (l *Listing) Events() []*models.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l *Listing) Pagination() models.Pagination {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pagination
}

func (l *Listing) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Listing) HasEvents() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events) > 0
}

func (l *Listing) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.loading && len(l.events) == 0
}

func (l *Listing) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pagination.Page < l.pagination.Pages
}

// CreateEvent puts the new event at the top of the local list on success.
func (l *Listing) CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error) {
	event, err := l.es.CreateEvent(ctx, l.token, input)
	l.setErr(err)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.events = append([]*models.Event{event}, l.events...)
	l.mu.Unlock()
	return event, nil
}

// UpdateEvent replaces the matching entry of the local list on success.
func (l *Listing) UpdateEvent(ctx context.Context, id string, input models.EventInput) (*models.Event, error) {
	event, err := l.es.UpdateEvent(ctx, l.token, l.user, id, input)
	l.setErr(err)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	for i, e := range l.events {
		if e.ID == id {
			l.events[i] = event
		}
	}
	l.mu.Unlock()
	return event, nil
}

// DeleteEvent removes the entry from the local list on success without
// fetching again.
func (l *Listing) DeleteEvent(ctx context.Context, id string) error {
	err := l.es.DeleteEvent(ctx, l.token, l.user, id)
	l.setErr(err)
	if err != nil {
		return err
	}

	l.mu.Lock()
	kept := l.events[:0]
	for _, e := range l.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	l.events = kept
	l.mu.Unlock()
	return nil
}

func (l *Listing) setErr(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}
