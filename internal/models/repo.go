package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/eventhub/internal/monitoring"
)

// Validate reads the same `binding` tags gin uses, so services can re-check
// inputs that did not come through a form bind.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidators(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidators adds the closed-set validators used by form bindings.
func RegisterValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"category": func(fl validator.FieldLevel) bool {
			return IsCategory(fl.Field().String())
		},
		"eventstatus": func(fl validator.FieldLevel) bool {
			return IsStatus(fl.Field().String())
		},
		"sortkey": func(fl validator.FieldLevel) bool {
			return IsSortKey(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// APIRepo talks to the upstream EventHub API. It attaches the base URL and
// the bearer token of the calling user to every request.
type APIRepo struct {
	client  *http.Client
	baseURL string
}

func NewAPIRepo(client *http.Client, baseURL string) *APIRepo {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &APIRepo{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// request describes one upstream call. Route is the templated path used as
// the metrics label.
type request struct {
	method string
	route  string
	path   string
	query  url.Values
	token  string
	body   interface{}
}

func (r *APIRepo) do(ctx context.Context, req request) (*ApiResponse, error) {
	endpoint := r.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	res, err := r.client.Do(httpReq)
	if err != nil {
		monitoring.ObserveUpstream(req.method, req.route, 0, time.Since(start))
		return nil, &APIError{Err: err}
	}
	defer res.Body.Close()
	monitoring.ObserveUpstream(req.method, req.route, res.StatusCode, time.Since(start))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &APIError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	envelope := &ApiResponse{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, envelope); err != nil && res.StatusCode < 400 {
			return nil, &APIError{Status: res.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	if res.StatusCode >= 400 {
		msg := envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
		return nil, &APIError{Status: res.StatusCode, Message: msg}
	}
	return envelope, nil
}

// RequestIDKey is the gin context key holding the inbound request id.
const RequestIDKey = "request_id"

type requestIDKey struct{}

// WithRequestID tags ctx so upstream calls carry the inbound request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
