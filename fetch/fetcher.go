package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/gocolly/colly"
	"go.uber.org/zap"
)

var errNotHTML = errors.New("response is not an HTML document")

// Fetcher performs plain GET requests and parses the body.
type Fetcher struct {
	userAgent string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewFetcher(userAgent string, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		userAgent: userAgent,
		timeout:   timeout,
		logger:    logger,
	}
}

// Fetch downloads url and returns its document. Every call uses its own
// collector.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	collyClient := colly.NewCollector(colly.AllowURLRevisit())
	collyClient.UserAgent = f.userAgent
	collyClient.SetRequestTimeout(f.timeout)

	var doc *Document
	collyClient.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	collyClient.OnHTML("html", func(e *colly.HTMLElement) {
		if doc == nil {
			doc = &Document{sel: e.DOM}
		}
	})
	collyClient.OnError(func(r *colly.Response, err error) {
		f.logger.Debug("fetch failed",
			zap.String("url", url),
			zap.Int("status", r.StatusCode),
			zap.Error(err))
	})

	f.logger.Debug("fetching", zap.String("url", url))
	if err := collyClient.Visit(url); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	collyClient.Wait()

	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if doc == nil {
		return nil, &FetchError{URL: url, Err: errNotHTML}
	}
	return doc, nil
}
