package browser

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// StaticRenderer fetches the page over plain HTTP without executing
// scripts. Cheaper than Chrome; usable whenever the market listing is
// present in the served HTML.
type StaticRenderer struct {
	client    *resty.Client
	userAgent string
	limiter   *rate.Limiter
}

// StaticOption configures a StaticRenderer.
type StaticOption func(*StaticRenderer)

// WithStaticUserAgent sets the identification string sent to the target
// site.
func WithStaticUserAgent(ua string) StaticOption {
	return func(r *StaticRenderer) {
		r.userAgent = ua
	}
}

// WithStaticTimeout bounds each fetch.
func WithStaticTimeout(d time.Duration) StaticOption {
	return func(r *StaticRenderer) {
		r.client.SetTimeout(d)
	}
}

// WithStaticLimiter rate-limits fetches against the target site.
func WithStaticLimiter(l *rate.Limiter) StaticOption {
	return func(r *StaticRenderer) {
		r.limiter = l
	}
}

// NewStaticRenderer creates a StaticRenderer with sensible defaults.
func NewStaticRenderer(opts ...StaticOption) *StaticRenderer {
	r := &StaticRenderer{
		client:    resty.New().SetTimeout(15 * time.Second),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *StaticRenderer) Name() string { return "static" }

// Render fetches url and parses the served HTML as-is.
func (r *StaticRenderer) Render(ctx context.Context, url string) (*Page, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "static: rate limit wait")
		}
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", r.userAgent).
		Get(url)
	if err != nil {
		return nil, eris.Wrap(err, "static: fetch")
	}
	if resp.StatusCode() >= 400 {
		return nil, eris.Errorf("static: status %d for %s", resp.StatusCode(), url)
	}
	if len(resp.Body()) == 0 {
		return nil, eris.Errorf("static: empty body for %s", url)
	}

	return NewPage(url, resp.String())
}
