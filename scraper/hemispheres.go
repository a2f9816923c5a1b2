package scraper

import (
	"fmt"
	"strings"

	"github.com/mindsgn-studio/mission-to-mars/fetch"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
)

type hemisphereLink struct {
	title string
	href  string
}

// Hemispheres collects every result item of the listing page, then visits
// each item's page in listing order to read its full-size image.
func Hemispheres(s fetch.Session, sel HemisphereSelectors) ([]model.Hemisphere, error) {
	if err := s.Visit(sel.URL); err != nil {
		return nil, err
	}

	items, err := s.All(sel.Item)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &ExtractionError{Field: FieldHemispheres, Selector: sel.Item, Err: fetch.ErrNoMatch}
	}

	// Links must all be read before navigating away from the listing.
	links := make([]hemisphereLink, 0, len(items))
	for _, item := range items {
		a, err := first(item, FieldHemispheres, sel.Link)
		if err != nil {
			return nil, err
		}
		href, err := attr(a, FieldHemispheres, sel.Link, "href")
		if err != nil {
			return nil, err
		}

		heading, err := firstText(item, FieldHemispheres, sel.Heading)
		if err != nil {
			return nil, err
		}

		links = append(links, hemisphereLink{
			title: hemisphereTitle(heading),
			href:  resolve(sel.URL, href),
		})
	}

	hemispheres := make([]model.Hemisphere, 0, len(links))
	for _, link := range links {
		if err := s.Visit(link.href); err != nil {
			return nil, err
		}

		img, err := first(s, FieldHemispheres, sel.Image)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", link.href, err)
		}
		src, err := attr(img, FieldHemispheres, sel.Image, "src")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", link.href, err)
		}

		hemispheres = append(hemispheres, model.Hemisphere{
			Title:    link.title,
			ImageURL: resolve(link.href, src),
		})
	}
	return hemispheres, nil
}

// hemisphereTitle drops the last space-separated word of a heading, so
// "Cerberus Hemisphere Enhanced" becomes "Cerberus Hemisphere". A heading
// without a space is kept whole.
func hemisphereTitle(heading string) string {
	i := strings.LastIndex(heading, " ")
	if i < 0 {
		return heading
	}
	return heading[:i]
}
