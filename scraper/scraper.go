// Package scraper pulls every snapshot field from its source page and
// assembles them into one model.Snapshot.
package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/mindsgn-studio/mission-to-mars/fetch"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"go.uber.org/zap"
)

type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Node, error)
}

type SessionOpener interface {
	Open(ctx context.Context) (fetch.Session, error)
}

type Scraper struct {
	fetcher DocumentFetcher
	browser SessionOpener
	sel     Selectors
	logger  *zap.Logger
}

func New(fetcher DocumentFetcher, browser SessionOpener, sel Selectors, logger *zap.Logger) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		browser: browser,
		sel:     sel,
		logger:  logger,
	}
}

// Scrape runs every extractor, one after another, in a fixed order. The
// first failure aborts the run and no snapshot is returned.
func (s *Scraper) Scrape(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot

	steps := []struct {
		field string
		run   func(context.Context) error
	}{
		{FieldNews, func(ctx context.Context) (err error) {
			snap.LatestNews, err = s.news(ctx)
			return err
		}},
		{FieldFeatureImage, func(ctx context.Context) (err error) {
			snap.FeatureImageURL, err = s.featureImage(ctx)
			return err
		}},
		{FieldFacts, func(ctx context.Context) (err error) {
			snap.Facts, err = s.facts(ctx)
			return err
		}},
		{FieldWeather, func(ctx context.Context) (err error) {
			snap.Weather, err = s.weather(ctx)
			return err
		}},
		{FieldHemispheres, func(ctx context.Context) (err error) {
			snap.Hemispheres, err = s.hemispheres(ctx)
			return err
		}},
	}

	started := time.Now()
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scrape %s: %w", step.field, err)
		}

		s.logger.Info("scraping", zap.String("field", step.field))
		t := time.Now()
		if err := step.run(ctx); err != nil {
			s.logger.Error("scrape failed", zap.String("field", step.field), zap.Error(err))
			return nil, fmt.Errorf("scrape %s: %w", step.field, err)
		}
		s.logger.Debug("scraped", zap.String("field", step.field), zap.Duration("took", time.Since(t)))
	}

	s.logger.Info("scrape finished",
		zap.Int("facts", len(snap.Facts)),
		zap.Int("hemispheres", len(snap.Hemispheres)),
		zap.Duration("took", time.Since(started)))
	return &snap, nil
}

func (s *Scraper) news(ctx context.Context) (model.News, error) {
	doc, err := s.fetcher.Fetch(ctx, s.sel.News.URL)
	if err != nil {
		return model.News{}, err
	}
	return News(doc, s.sel.News)
}

func (s *Scraper) featureImage(ctx context.Context) (src string, err error) {
	err = s.withSession(ctx, FieldFeatureImage, func(session fetch.Session) error {
		src, err = FeatureImage(session, s.sel.FeatureImage)
		return err
	})
	return src, err
}

func (s *Scraper) facts(ctx context.Context) ([]model.Fact, error) {
	doc, err := s.fetcher.Fetch(ctx, s.sel.Facts.URL)
	if err != nil {
		return nil, err
	}
	return Facts(doc, s.sel.Facts, s.logger)
}

func (s *Scraper) weather(ctx context.Context) (string, error) {
	doc, err := s.fetcher.Fetch(ctx, s.sel.Weather.URL)
	if err != nil {
		return "", err
	}
	return Weather(doc, s.sel.Weather)
}

func (s *Scraper) hemispheres(ctx context.Context) (hemispheres []model.Hemisphere, err error) {
	err = s.withSession(ctx, FieldHemispheres, func(session fetch.Session) error {
		hemispheres, err = Hemispheres(session, s.sel.Hemispheres)
		return err
	})
	return hemispheres, err
}

// withSession opens a browser session for fn and always closes it. A close
// failure is logged and never replaces fn's error.
func (s *Scraper) withSession(ctx context.Context, field string, fn func(fetch.Session) error) error {
	session, err := s.browser.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn("close browser session", zap.String("field", field), zap.Error(err))
		}
	}()

	return fn(session)
}
