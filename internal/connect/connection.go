package connect

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MicahParks/keyfunc/v2"
)

// NewHTTPClient builds the client shared by every call to the EventHub API.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 32
	transport.IdleConnTimeout = 90 * time.Second

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// PingAPI checks that the API answers at all. Any HTTP response counts.
func PingAPI(ctx context.Context, client *http.Client, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("API unreachable at %s: %w", baseURL, err)
	}
	res.Body.Close()
	return nil
}

// ConnectJWKS fetches the signing keys used to verify access tokens and keeps
// them refreshed until ctx ends. An empty URL disables verification.
func ConnectJWKS(ctx context.Context, jwksURL string, logger *slog.Logger) (*keyfunc.JWKS, error) {
	if jwksURL == "" {
		return nil, nil
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Error("Failed to refresh JWKS", "url", jwksURL, "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}

	fmt.Println("✅ JWKS loaded successfully")
	return jwks, nil
}
