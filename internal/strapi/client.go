// Package strapi fetches content collections from a Strapi CMS over REST
// and normalizes them into plain records.
package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Paintersrp/modular/internal/cache"
	"github.com/Paintersrp/modular/internal/logger"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 100
	// MaxPageSize matches the largest page the CMS is asked for in one call.
	MaxPageSize = 1000
)

// ErrMissingBaseURL is returned when no CMS base URL is configured.
var ErrMissingBaseURL = errors.New("strapi base URL is not set")

// RequestError reports a non-success response from the CMS.
type RequestError struct {
	Status     int
	StatusText string
	URL        string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("strapi request failed: %d %s for %s", e.Status, e.StatusText, e.URL)
}

// Options configure a Client.
type Options struct {
	BaseURL string
	Token   string
	// PageSize is used when walking every page of a collection.
	PageSize int
	Timeout  time.Duration
	// RequestsPerSecond paces consecutive requests. Zero disables pacing.
	RequestsPerSecond float64
	// CacheSize bounds the number of cached responses. Zero disables caching.
	CacheSize  int
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client talks to one CMS instance.
type Client struct {
	base     *url.URL
	token    string
	pageSize int
	http     *http.Client
	limiter  *rate.Limiter
	cache    *cache.Cache
	norm     normalizer
	log      *zap.SugaredLogger
}

// New validates opts and returns a ready client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.WithHint(ErrMissingBaseURL,
			"set STRAPI_URL (or strapi.url in the config file) to the CMS base URL, e.g. https://cms.example.com")
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse strapi base URL %q", raw)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Newf("strapi base URL %q must be absolute", raw)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	responses, err := cache.New(opts.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create response cache")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		base:     base,
		token:    strings.TrimSpace(opts.Token),
		pageSize: pageSize,
		http:     httpClient,
		limiter:  limiter,
		cache:    responses,
		norm:     normalizer{baseURL: strings.TrimRight(base.String(), "/"), now: now},
		log:      logger.Named("strapi"),
	}, nil
}

// BaseURL returns the configured CMS base.
func (c *Client) BaseURL() string {
	return c.norm.baseURL
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Pagination *Pagination `json:"pagination"`
	} `json:"meta"`
}

// endpoint builds {base}/api{path}?{params}, dropping empty params.
func (c *Client) endpoint(path string, params map[string]string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/api" + path
	u.RawPath = ""

	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) (*envelope, error) {
	endpoint := c.endpoint(path, params)

	body, hit := c.cache.Get(endpoint)
	if !hit {
		var err error
		body, err = c.do(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		c.cache.Put(endpoint, body)
	} else {
		c.log.Debugw("cache hit", logger.FieldEndpoint, endpoint)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrapf(err, "decode response from %s", endpoint)
	}
	return &env, nil
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "wait for request slot")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", endpoint)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request %s", endpoint)
	}
	defer resp.Body.Close()

	c.log.Debugw("fetched",
		logger.FieldEndpoint, endpoint,
		"status", resp.StatusCode,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Status:     resp.StatusCode,
			StatusText: strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode))),
			URL:        endpoint,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read response from %s", endpoint)
	}
	return body, nil
}

// items decodes the data array of a collection response.
func items(env *envelope) ([]item, error) {
	if !isPresent(env.Data) {
		return nil, nil
	}
	var out []item
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, errors.Wrap(err, "decode collection")
	}
	return out, nil
}

// normalizeAll maps every item with fn, dropping and logging the ones that
// fail. A bad record never fails the batch.
func normalizeAll[T any](c *Client, kind string, entries []item, fn func(item) (T, error)) []T {
	out := make([]T, 0, len(entries))
	for _, it := range entries {
		rec, err := fn(it)
		if err != nil {
			c.log.Warnw("skipping malformed record",
				"kind", kind,
				"id", it.ID,
				logger.FieldError, err,
			)
			continue
		}
		out = append(out, rec)
	}
	return out
}
