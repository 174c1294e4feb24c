package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ChromeRenderer renders pages in headless Chrome so that script-built
// markup is present before extraction. Each Render call owns its own
// browser context, cancelled on every exit path.
type ChromeRenderer struct {
	headless    bool
	userAgent   string
	navTimeout  time.Duration
	settleDelay time.Duration
	limiter     *rate.Limiter
}

// ChromeOption configures a ChromeRenderer.
type ChromeOption func(*ChromeRenderer)

// WithHeadless toggles headless mode. Defaults to true.
func WithHeadless(headless bool) ChromeOption {
	return func(r *ChromeRenderer) {
		r.headless = headless
	}
}

// WithUserAgent sets the identification string sent to the target site.
func WithUserAgent(ua string) ChromeOption {
	return func(r *ChromeRenderer) {
		r.userAgent = ua
	}
}

// WithNavTimeout bounds the navigation phase of a render.
func WithNavTimeout(d time.Duration) ChromeOption {
	return func(r *ChromeRenderer) {
		r.navTimeout = d
	}
}

// WithSettleDelay sets the post-load wait before content is read, giving
// the page's own scripts time to fill the market listing in.
func WithSettleDelay(d time.Duration) ChromeOption {
	return func(r *ChromeRenderer) {
		r.settleDelay = d
	}
}

// WithChromeLimiter rate-limits renders against the target site.
func WithChromeLimiter(l *rate.Limiter) ChromeOption {
	return func(r *ChromeRenderer) {
		r.limiter = l
	}
}

// NewChromeRenderer creates a ChromeRenderer with sensible defaults.
func NewChromeRenderer(opts ...ChromeOption) *ChromeRenderer {
	r := &ChromeRenderer{
		headless:    true,
		userAgent:   DefaultUserAgent,
		navTimeout:  30 * time.Second,
		settleDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultUserAgent is the identification string sent when none is
// configured.
const DefaultUserAgent = "Mozilla/5.0 (compatible; TodoBiwengerBot/1.0)"

func (r *ChromeRenderer) Name() string { return "chromedp" }

// Render navigates to url, waits for the page to settle, and returns the
// rendered document. The navigation timeout is the only cancellation
// boundary beyond the caller's context.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (*Page, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "chromedp: rate limit wait")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.navTimeout+r.settleDelay)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.headless),
		chromedp.UserAgent(r.userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(r.settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, eris.Wrap(err, "chromedp: navigate")
	}

	zap.L().Debug("chromedp: page rendered",
		zap.String("url", url),
		zap.Int("bytes", len(html)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return NewPage(url, html)
}
