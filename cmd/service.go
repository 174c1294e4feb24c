package main

import (
	"golang.org/x/time/rate"

	"github.com/Gizmito78/todobiwenger/internal/browser"
	"github.com/Gizmito78/todobiwenger/internal/config"
	"github.com/Gizmito78/todobiwenger/internal/resilience"
	"github.com/Gizmito78/todobiwenger/internal/transfers"
)

// newService wires a transfers.Service from configuration.
func newService(cfg *config.Config) *transfers.Service {
	limiter := rate.NewLimiter(rate.Limit(float64(cfg.Browser.RendersPerMinute)/60.0), 1)

	var renderer browser.Renderer
	switch cfg.Browser.Engine {
	case "static":
		renderer = browser.NewStaticRenderer(
			browser.WithStaticUserAgent(cfg.Browser.UserAgent),
			browser.WithStaticTimeout(cfg.Browser.NavTimeout()),
			browser.WithStaticLimiter(limiter),
		)
	default:
		renderer = browser.NewChromeRenderer(
			browser.WithHeadless(cfg.Browser.Headless),
			browser.WithUserAgent(cfg.Browser.UserAgent),
			browser.WithNavTimeout(cfg.Browser.NavTimeout()),
			browser.WithSettleDelay(cfg.Browser.SettleDelay()),
			browser.WithChromeLimiter(limiter),
		)
	}

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Scrape.RetryAttempts

	return transfers.New(renderer,
		transfers.WithTTL(cfg.Cache.TTL()),
		transfers.WithRetry(retry),
	)
}
