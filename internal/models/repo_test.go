package models

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, handler http.HandlerFunc) *APIRepo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPIRepo(srv.Client(), srv.URL+"/")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginStoresTokenAndUser(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body LoginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body.Email)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"token":   "tok-123",
			"user":    map[string]interface{}{"_id": "u1", "name": "Ada", "email": "ada@example.com"},
		})
	})

	payload, err := repo.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", payload.Token)
	assert.Equal(t, "u1", payload.User.ID)
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Invalid email or password",
		})
	})

	_, err := repo.Login(context.Background(), LoginInput{Email: "x@example.com", Password: "bad"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Invalid email or password", MessageOf(err, MsgLoginFailed))
}

func TestMeSendsBearerToken(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"_id": "u9", "name": "Grace"},
		})
	})

	ctx := WithRequestID(context.Background(), "req-1")
	user, err := repo.Me(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.Name)
}

func TestListEventsPassesQueryAndPagination(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "music", r.URL.Query().Get("category"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"_id": "e1", "title": "Jazz Night", "capacity": 50, "currentAttendees": 10},
				{"_id": "e2", "title": "Open Mic", "capacity": 20, "currentAttendees": 20},
			},
			"page":  2,
			"pages": 3,
			"total": 26,
			"count": 2,
		})
	})

	events, p, err := repo.ListEvents(context.Background(), "", url.Values{"category": {"music"}, "page": {"2"}})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Jazz Night", events[0].Title)
	assert.True(t, events[1].IsFull())
	assert.Equal(t, Pagination{Page: 2, Pages: 3, Total: 26, Count: 2}, p)
}

func TestGetEventNotFound(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/missing", r.URL.Path)
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "Event not found"})
	})

	_, err := repo.GetEvent(context.Background(), "", "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRSVPEndpoints(t *testing.T) {
	var calls []string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/rsvps/event/e1/status":
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]bool{"hasRSVP": true}})
		case "/api/rsvps/event/e1/attendees":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data":    []map[string]interface{}{{"_id": "r1", "user": map[string]string{"_id": "u1", "name": "Ada"}}},
			})
		default:
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
		}
	})

	ctx := context.Background()
	require.NoError(t, repo.CreateRSVP(ctx, "tok", "e1"))
	require.NoError(t, repo.DeleteRSVP(ctx, "tok", "e1"))

	has, err := repo.RSVPStatus(ctx, "tok", "e1")
	require.NoError(t, err)
	assert.True(t, has)

	attendees, err := repo.Attendees(ctx, "tok", "e1")
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, "Ada", attendees[0].User.Name)

	assert.Equal(t, []string{
		"POST /api/rsvps/event/e1",
		"DELETE /api/rsvps/event/e1",
		"GET /api/rsvps/event/e1/status",
		"GET /api/rsvps/event/e1/attendees",
	}, calls)
}

func TestDashboardDefaultsEmptyLists(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"stats": map[string]int{"totalEventsCreated": 3}},
		})
	})

	dash, err := repo.Dashboard(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 3, dash.Stats.TotalEventsCreated)
	assert.NotNil(t, dash.CreatedEvents)
	assert.NotNil(t, dash.AttendingEvents)
}

func TestUnreachableUpstreamIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	repo := NewAPIRepo(nil, srv.URL)

	_, err := repo.Me(context.Background(), "tok")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsNetwork())
	assert.Equal(t, MsgNetworkError, MessageOf(err, MsgGeneric))
}

func TestCategoryValidator(t *testing.T) {
	type form struct {
		Category string `binding:"required,category"`
	}
	assert.NoError(t, Validate.Struct(form{Category: "music"}))
	assert.Error(t, Validate.Struct(form{Category: "karaoke"}))
}
