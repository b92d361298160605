package geolib

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL serves single, batch and map lookups.
	DefaultBaseURL = "https://ipinfo.io"

	// DefaultBaseURLv6 is a separate host for resolving own IPv6
	// address.
	DefaultBaseURLv6 = "https://v6.ipinfo.io"

	// DefaultTimeout bounds a single lookup request.
	DefaultTimeout = 3 * time.Second

	// DefaultCacheCapacity is a number of records kept by the recency
	// cache when a config does not say otherwise.
	DefaultCacheCapacity = 100

	defaultUserAgent = "gazetteer/" + Version
)

// Config is everything a Client can be tuned with. A zero value is
// usable: no token, bundled reference tables, default endpoints.
type Config struct {
	// Token is a bearer token of the remote service. Optional.
	Token string

	// Timeout of a single lookup request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// CacheCapacity is a size of the LRU record cache. Defaults to
	// DefaultCacheCapacity. Negative values are a setup error.
	CacheCapacity int

	// UserAgent overrides the product/version identifying string sent
	// with every request.
	UserAgent string

	BaseURL   string
	BaseURLv6 string

	// HTTPClient is a base http.Client the library builds its
	// transports from. Mostly useful for tests.
	HTTPClient *http.Client

	// RateEvery/RateBurst configure client-side pacing of outgoing
	// requests. Zero RateEvery means no pacing.
	RateEvery time.Duration
	RateBurst int

	Logger Logger

	// Overrides for the bundled reference tables. Nil means bundled
	// defaults.
	Countries  map[string]string
	EU         []string
	Flags      map[string]Flag
	Currencies map[string]Currency
	Continents map[string]Continent
}

// Client resolves IP addresses into structured metadata, keeping a
// recency cache to avoid redundant remote calls.
//
// A Client instance is not safe for concurrent use. Callers which share
// one across goroutines must serialize access externally.
type Client struct {
	token     string
	userAgent string
	baseURL   string
	baseURLv6 string

	base        *http.Client
	rateLimiter *rate.Limiter
	http        HTTPClient

	cache  *recordCache
	tables *Tables
	logger Logger
}

// New constructs a Client. Construction is fallible: a non-positive
// cache capacity or an empty reference table is reported here, not
// discovered mid-lookup.
func New(config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = NoopLogger{}
	}

	capacity := config.CacheCapacity
	if capacity == 0 {
		capacity = DefaultCacheCapacity
	}

	cache, err := newRecordCache(capacity, logger)
	if err != nil {
		return nil, err
	}

	tables, err := newTables(config)
	if err != nil {
		return nil, err
	}

	rv := &Client{
		token:     config.Token,
		userAgent: defaultUserAgent,
		baseURL:   DefaultBaseURL,
		baseURLv6: DefaultBaseURLv6,
		cache:     cache,
		tables:    tables,
		logger:    logger,
	}

	if config.UserAgent != "" {
		rv.userAgent = config.UserAgent
	}

	if config.BaseURL != "" {
		rv.baseURL = config.BaseURL
	}

	if config.BaseURLv6 != "" {
		rv.baseURLv6 = config.BaseURLv6
	}

	if config.RateEvery > 0 {
		rv.rateLimiter = rate.NewLimiter(rate.Every(config.RateEvery),
			config.RateBurst)
	} else {
		rv.rateLimiter = rate.NewLimiter(rate.Inf, 0)
	}

	base := config.HTTPClient
	if base == nil {
		base = &http.Client{}
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	single := *base
	single.Timeout = timeout

	rv.base = base
	rv.http = NewHTTPClient(&single, rv.userAgent, rv.token, rv.rateLimiter)

	return rv, nil
}

// Tables returns reference tables of the client. Mostly useful for
// inspecting what the bundled defaults resolve to.
func (c *Client) Tables() *Tables {
	return c.tables
}

// transport builds a short-lived HTTP client bounded by a given
// timeout. Batch chunks get a fresh one per call so a per-chunk
// deadline never depends on a total one.
func (c *Client) transport(timeout time.Duration) HTTPClient {
	client := *c.base
	client.Timeout = timeout

	return NewHTTPClient(&client, c.userAgent, c.token, c.rateLimiter)
}
