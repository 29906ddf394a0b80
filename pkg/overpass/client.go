package overpass

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

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadgraph/pkg/buildinfo"
	"github.com/matzehuels/roadgraph/pkg/cache"
	"github.com/matzehuels/roadgraph/pkg/errors"
	"github.com/matzehuels/roadgraph/pkg/observability"
)

// DefaultEndpoint is the public Overpass API interpreter.
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// DefaultHTTPTimeout bounds a single provider request. It is longer than
// QueryTimeout so the server-side limit fires first.
const DefaultHTTPTimeout = 60 * time.Second

// Querier runs one Overpass query. *Client implements it; tests substitute
// their own.
type Querier interface {
	Query(ctx context.Context, query string) (*Result, error)
}

// ClientOptions configures a Client. Zero values select defaults.
type ClientOptions struct {
	Endpoint   string        // interpreter URL (DefaultEndpoint)
	UserAgent  string        // User-Agent header (buildinfo.UserAgent)
	Timeout    time.Duration // per-request timeout (DefaultHTTPTimeout)
	Cache      cache.Cache   // response cache (NullCache)
	Keyer      cache.Keyer   // cache key scheme (DefaultKeyer)
	CacheTTL   time.Duration // lifetime of cached responses (cache.TTLQuery)
	Refresh    bool          // skip cache reads, still write fresh responses
	HTTPClient *http.Client  // overrides Timeout when set
	Logger     *log.Logger
}

// Client posts queries to an Overpass interpreter and decodes the JSON
// response, consulting a response cache first.
type Client struct {
	http      *http.Client
	endpoint  string
	userAgent string
	cache     cache.Cache
	keyer     cache.Keyer
	ttl       time.Duration
	refresh   bool
	logger    *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts ClientOptions) *Client {
	c := &Client{
		http:      opts.HTTPClient,
		endpoint:  opts.Endpoint,
		userAgent: opts.UserAgent,
		cache:     opts.Cache,
		keyer:     opts.Keyer,
		ttl:       opts.CacheTTL,
		refresh:   opts.Refresh,
		logger:    opts.Logger,
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultHTTPTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.userAgent == "" {
		c.userAgent = buildinfo.UserAgent()
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	if c.ttl <= 0 {
		c.ttl = cache.TTLQuery
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Endpoint returns the interpreter URL queries are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// Query sends query and returns the decoded result. Every failure (network
// error, non-200 status, undecodable body) is a TRANSPORT_FAILURE. The
// request is made once; there is no retry.
func (c *Client) Query(ctx context.Context, query string) (*Result, error) {
	key := c.keyer.QueryKey(c.endpoint, query)

	if !c.refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			var res Result
			if err := json.Unmarshal(data, &res); err == nil {
				observability.Cache().OnCacheHit(ctx, key)
				c.logger.Debug("overpass cache hit", "key", key[:min(len(key), 20)])
				return &res, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	body, err := c.post(ctx, query)
	if err != nil {
		return nil, err
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "decode overpass response")
	}

	if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("overpass cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, key, len(body))
	}
	return &res, nil
}

func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{"data": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, http.MethodPost, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodPost, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "overpass request failed")
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.New(errors.ErrCodeTransport, "overpass returned status %d%s", resp.StatusCode, describeBody(snippet))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "read overpass response")
	}
	return data, nil
}

// describeBody returns ": <first line>" of an error body, or "".
func describeBody(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return fmt.Sprintf(": %s", b)
}

var _ Querier = (*Client)(nil)
