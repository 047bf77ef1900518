package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"sync"
	"time"

	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/domain/model"
)

// Lookup resolves a postal code to a city/state pair.
type Lookup interface {
	Resolve(ctx context.Context, code string) (*model.Location, error)
}

// HTTPClient implements Lookup against the location HTTP API. Resolved codes
// are cached for the lifetime of the client instance; the cache never stores
// failures, so a transient outage does not poison later lookups.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string]model.Location
}

type response struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// NewHTTPClient creates a location client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse location url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("location url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: make(map[string]model.Location),
	}, nil
}

// Resolve returns the location for a postal code, or ErrNotFound when the
// service does not know the code.
func (c *HTTPClient) Resolve(ctx context.Context, code string) (*model.Location, error) {
	c.mu.Lock()
	if cached, ok := c.cache[code]; ok {
		c.mu.Unlock()
		loc := cached
		return &loc, nil
	}
	c.mu.Unlock()

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/location-by-postal-code/", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		if data.City == "" && data.State == "" {
			return nil, domainErrors.ErrNotFound
		}
		loc := model.Location{City: data.City, State: data.State}
		c.mu.Lock()
		c.cache[code] = loc
		c.mu.Unlock()
		return &loc, nil
	case http.StatusNotFound, http.StatusNoContent:
		return nil, domainErrors.ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("location request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("location error: %s", resp.Status)
	}
}
