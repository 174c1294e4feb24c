// Package transfers is the core fetch-and-extract service: league key to
// URL resolution, cache lookup, single-flight page render, cascade, cache
// write.
package transfers

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Gizmito78/todobiwenger/internal/browser"
	"github.com/Gizmito78/todobiwenger/internal/cache"
	"github.com/Gizmito78/todobiwenger/internal/extract"
	"github.com/Gizmito78/todobiwenger/internal/model"
	"github.com/Gizmito78/todobiwenger/internal/resilience"
)

// ErrInvalidLeague is returned for league keys outside the supported set.
// No fetch is attempted and the cache is untouched.
var ErrInvalidLeague = eris.New("transfers: unsupported league")

// leagueURLs maps each supported league key to its fixed source URL.
var leagueURLs = map[string]string{
	"ea-sports":   "https://www.futbolfantasy.com/mercado/laliga-ea-sports",
	"hypermotion": "https://www.futbolfantasy.com/mercado/laliga-hypermotion",
}

// Leagues returns the supported league keys.
func Leagues() []string {
	keys := make([]string, 0, len(leagueURLs))
	for k := range leagueURLs {
		keys = append(keys, k)
	}
	return keys
}

// DefaultTTL is how long an extracted payload stays served from cache.
const DefaultTTL = 10 * time.Minute

// Service resolves league keys to transfer listings.
type Service struct {
	renderer browser.Renderer
	cascade  *extract.Cascade
	cache    *cache.Cache
	ttl      time.Duration
	retry    resilience.RetryConfig
	group    singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithCache replaces the result cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithTTL sets the cache TTL for extracted payloads.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithRetry sets the retry policy around renders.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(s *Service) {
		s.retry = cfg
	}
}

// WithCascade replaces the extraction cascade.
func WithCascade(c *extract.Cascade) Option {
	return func(s *Service) {
		s.cascade = c
	}
}

// New creates a Service around the given renderer.
func New(renderer browser.Renderer, opts ...Option) *Service {
	s := &Service{
		renderer: renderer,
		cascade:  extract.NewCascade(),
		cache:    cache.New(),
		ttl:      DefaultTTL,
		retry:    resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the transfer listing for a league. Cache hits skip the
// renderer entirely; concurrent misses for the same league are coalesced
// into a single render. Render failures propagate and are never cached.
func (s *Service) Get(ctx context.Context, league string) ([]model.Transfer, error) {
	url, ok := leagueURLs[league]
	if !ok {
		return nil, eris.Wrapf(ErrInvalidLeague, "league %q", league)
	}

	if payload, ok := s.cache.Get(league); ok {
		zap.L().Debug("transfers: cache hit", zap.String("league", league))
		return payload, nil
	}

	v, err, shared := s.group.Do(league, func() (any, error) {
		// A concurrent caller may have filled the cache while this one
		// waited on the flight lock.
		if payload, ok := s.cache.Get(league); ok {
			return payload, nil
		}
		return s.fetch(ctx, league, url)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		zap.L().Debug("transfers: coalesced concurrent fetch", zap.String("league", league))
	}
	return v.([]model.Transfer), nil
}

func (s *Service) fetch(ctx context.Context, league, url string) ([]model.Transfer, error) {
	start := time.Now()
	page, err := resilience.DoVal(ctx, s.retry, func(ctx context.Context) (*browser.Page, error) {
		return s.renderer.Render(ctx, url)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "transfers: render %s page", league)
	}

	records, outcomes := s.cascade.Run(page)
	for _, o := range outcomes {
		zap.L().Debug("transfers: strategy outcome",
			zap.String("league", league),
			zap.String("strategy", o.Strategy),
			zap.String("status", o.Status.String()),
			zap.Int("records", o.Records),
			zap.Error(o.Err),
		)
	}

	s.cache.Put(league, records, s.ttl)

	zap.L().Info("transfers: listing extracted",
		zap.String("league", league),
		zap.Int("records", len(records)),
		zap.Bool("fallback", len(records) == 1 && records[0].Fallback),
		zap.Duration("elapsed", time.Since(start)),
	)
	return records, nil
}
