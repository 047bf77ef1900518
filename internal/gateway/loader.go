package gateway

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"context"
)

// FetchFunc retrieves the gateway client resource once.
type FetchFunc func(ctx context.Context) error

// ScriptLoader fetches the gateway checkout script at most once. A presence
// check makes repeated and concurrent calls cheap: once a fetch succeeds,
// every later call resolves immediately without touching the network. Failed
// fetches are not cached, so the next checkout attempt may try again, but
// the loader itself never retries.
type ScriptLoader struct {
	fetch  FetchFunc
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
}

// NewScriptLoader builds a loader fetching the script over HTTP.
func NewScriptLoader(scriptURL string, logger *slog.Logger) (*ScriptLoader, error) {
	parsed, err := url.Parse(scriptURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway script url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway script url must be absolute")
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	fetch := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
		if err != nil {
			return err
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("gateway script fetch: %s", resp.Status)
		}
		return nil
	}

	return &ScriptLoader{fetch: fetch, logger: logger}, nil
}

// NewScriptLoaderWithFetch builds a loader around a custom fetch function.
func NewScriptLoaderWithFetch(fetch FetchFunc, logger *slog.Logger) *ScriptLoader {
	return &ScriptLoader{fetch: fetch, logger: logger}
}

// EnsureLoaded resolves true when the gateway resource is available. The
// mutex is held across the fetch so concurrent submissions share a single
// fetch instead of duplicating it.
func (l *ScriptLoader) EnsureLoaded(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return true
	}
	if err := l.fetch(ctx); err != nil {
		l.logger.Error("gateway script load failed", slog.String("error", err.Error()))
		return false
	}
	l.loaded = true
	return true
}
