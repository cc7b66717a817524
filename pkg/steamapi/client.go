package steamapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"steam-extract/pkg/cache"
	"steam-extract/pkg/logger"
	"steam-extract/pkg/models"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint  = "https://store.steampowered.com/api/appdetails"
	DefaultNamespace = "steam-extract"

	Region   = "us"
	Language = "english"
	Filters  = "basic,price_overview,package_groups,platforms,release_date,developers,publishers,dlc"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Options struct {
	Endpoint  string
	Store     cache.Store
	Namespace string
	// RequestsPerSecond <= 0 disables pacing. Ignored when Limiter is set.
	RequestsPerSecond float64
	// Limiter lets several clients share one pacing budget.
	Limiter *rate.Limiter
	Timeout time.Duration
	Now     func() time.Time
}

// Client fetches appdetails and caches normalized records. At most one
// network call is live per Client: each Fetch cancels the previous one.
type Client struct {
	http      *resty.Client
	endpoint  string
	store     cache.Store
	namespace string
	limiter   *rate.Limiter
	now       func() time.Time

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Store == nil {
		opts.Store = cache.NewMemory()
	}
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Limiter == nil {
		limit := rate.Inf
		if opts.RequestsPerSecond > 0 && !math.IsInf(opts.RequestsPerSecond, 1) {
			limit = rate.Limit(opts.RequestsPerSecond)
		}
		opts.Limiter = rate.NewLimiter(limit, 1)
	}

	return &Client{
		http: resty.New().
			SetTimeout(opts.Timeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept", "application/json"),
		endpoint:  opts.Endpoint,
		store:     opts.Store,
		namespace: opts.Namespace,
		limiter:   opts.Limiter,
		now:       opts.Now,
	}
}

// Fetch returns the record for appID, from cache unless force is set.
// It returns models.ErrSuperseded when a later Fetch started before this
// one could commit its result.
func (c *Client) Fetch(ctx context.Context, appID string, force bool) (*models.StoreRecord, error) {
	ctx, gen, done := c.begin(ctx)
	defer done()

	if !force {
		if rec, ok := c.cached(appID); ok {
			logger.Dedup("Cache hit for app %s", appID)
			return rec, nil
		}
	}

	rec, err := c.request(ctx, appID)
	if err != nil {
		if c.superseded(gen) {
			return nil, models.ErrSuperseded
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil, models.ErrSuperseded
	}
	c.save(appID, rec)
	return rec, nil
}

// Invalidate drops the cached record for appID.
func (c *Client) Invalidate(appID string) error {
	if err := c.store.Remove(cache.Key(c.namespace, appID)); err != nil {
		logger.Warnf("Cache: failed to remove app %s: %v", appID, err)
		return err
	}
	return nil
}

// begin cancels the previous fetch and issues a new token.
func (c *Client) begin(parent context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	c.cancel = cancel
	c.mu.Unlock()

	return ctx, gen, func() {
		c.mu.Lock()
		if c.gen == gen {
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}
}

func (c *Client) superseded(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen != c.gen
}

func (c *Client) cached(appID string) (*models.StoreRecord, bool) {
	key := cache.Key(c.namespace, appID)
	data, ok, err := c.store.Get(key)
	if err != nil {
		logger.Warnf("Cache: failed to read %s: %v", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var rec models.StoreRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		logger.Warnf("Cache: failed to unmarshal %s: %v", key, err)
		return nil, false
	}
	return &rec, true
}

func (c *Client) save(appID string, rec *models.StoreRecord) {
	key := cache.Key(c.namespace, appID)
	data, err := json.Marshal(rec)
	if err != nil {
		logger.Warnf("Cache: failed to marshal %s: %v", key, err)
		return
	}
	if err := c.store.Set(key, string(data)); err != nil {
		logger.Warnf("Cache: failed to store %s: %v", key, err)
	}
}

func (c *Client) request(ctx context.Context, appID string) (*models.StoreRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &models.RemoteError{Kind: models.ErrTransport, AppID: appID, Err: err}
	}

	log.Printf("Fetching appdetails for %s", appID)
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"appids":  appID,
			"cc":      Region,
			"l":       Language,
			"filters": Filters,
		}).
		Get(c.endpoint)
	if err != nil {
		return nil, &models.RemoteError{Kind: models.ErrTransport, AppID: appID, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &models.RemoteError{Kind: models.ErrTransport, AppID: appID, Status: res.StatusCode()}
	}

	data, err := decode(appID, res.Body())
	if err != nil {
		return nil, &models.RemoteError{Kind: models.ErrSchema, AppID: appID, Err: err}
	}
	return Normalize(appID, *data, c.now()), nil
}

func decode(appID string, body []byte) (*AppData, error) {
	var payload map[string]envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	env, ok := payload[appID]
	if !ok {
		return nil, fmt.Errorf("no entry for app %s", appID)
	}
	if !env.Success {
		return nil, errors.New("success is not true")
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, errors.New("missing data")
	}

	var data AppData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return &data, nil
}
