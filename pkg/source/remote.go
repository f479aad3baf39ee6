package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/apkgraph/pkg/cache"
	"github.com/matzehuels/apkgraph/pkg/httputil"
	"github.com/matzehuels/apkgraph/pkg/observability"
)

const (
	defaultAttempts = 3
	defaultDelay    = time.Second
	cacheKeyType    = "index"
)

// Remote downloads the index from an HTTP(S) URL.
//
// Transient failures (connection errors, 5xx) are retried with exponential
// backoff. When Cache is set, the extracted index text is stored under
// [cache.IndexKey] so later runs skip the download.
type Remote struct {
	URL      string
	Client   *http.Client
	Cache    cache.Cache
	TTL      time.Duration
	Refresh  bool
	Attempts int
	Delay    time.Duration
	Timeout  time.Duration

	UserAgent string
}

// NewRemote returns a Remote for url with default retry settings and no cache.
func NewRemote(url string) *Remote {
	return &Remote{
		URL:      url,
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		Timeout:  httputil.DefaultTimeout,
	}
}

// Name returns the URL.
func (r *Remote) Name() string { return r.URL }

// Fetch returns the index text, from cache when possible.
func (r *Remote) Fetch(ctx context.Context) ([]byte, error) {
	key := cache.IndexKey(r.URL)
	if r.Cache != nil && !r.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	var raw []byte
	err := httputil.Retry(ctx, r.Attempts, r.delay(), func() error {
		var err error
		raw, err = r.download(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.URL, err)
	}

	text, err := Extract(raw)
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, key, text, r.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(text))
		}
	}
	return text, nil
}

func (r *Remote) delay() time.Duration {
	if r.Delay > 0 {
		return r.Delay
	}
	return defaultDelay
}

func (r *Remote) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return httputil.NewClient(r.Timeout)
}

func (r *Remote) download(ctx context.Context) ([]byte, error) {
	host, path := splitURL(r.URL)
	hooks := observability.HTTP()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, err
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()
	resp, err := r.client().Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", httputil.ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := httputil.CheckStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", httputil.ErrNetwork, err)}
	}
	return data, nil
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}
