package scraper

import (
	"github.com/mindsgn-studio/mission-to-mars/fetch"
)

// FeatureImage opens the gallery page, clicks the first carousel link and
// reads the full-size image that the click brings up. The image element
// does not exist before the click.
func FeatureImage(s fetch.Session, sel FeatureImageSelectors) (string, error) {
	if err := s.Visit(sel.URL); err != nil {
		return "", err
	}

	carousel, err := first(s, FieldFeatureImage, sel.Carousel)
	if err != nil {
		return "", err
	}

	link, err := first(carousel, FieldFeatureImage, sel.Link)
	if err != nil {
		return "", err
	}
	if err := link.Click(); err != nil {
		return "", err
	}

	img, err := first(s, FieldFeatureImage, sel.Image)
	if err != nil {
		return "", err
	}

	src, err := attr(img, FieldFeatureImage, sel.Image, "src")
	if err != nil {
		return "", err
	}
	return resolve(sel.URL, src), nil
}
