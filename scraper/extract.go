package scraper

import (
	"errors"
	"net/url"

	"github.com/mindsgn-studio/mission-to-mars/fetch"
)

// Snapshot field names, as used in errors and logs.
const (
	FieldNews         = "latest_news"
	FieldFeatureImage = "feature_image_url"
	FieldFacts        = "facts"
	FieldWeather      = "weather_summary"
	FieldHemispheres  = "hemisphere_images"
)

func first(n fetch.Node, field, selector string) (fetch.Node, error) {
	found, err := n.First(selector)
	if errors.Is(err, fetch.ErrNoMatch) {
		return nil, &ExtractionError{Field: field, Selector: selector, Err: err}
	}
	if err != nil {
		return nil, err
	}
	return found, nil
}

func firstText(n fetch.Node, field, selector string) (string, error) {
	found, err := first(n, field, selector)
	if err != nil {
		return "", err
	}
	return found.Text()
}

func attr(n fetch.Node, field, selector, name string) (string, error) {
	v, err := n.Attr(name)
	if errors.Is(err, fetch.ErrNoAttribute) {
		return "", &ExtractionError{Field: field, Selector: selector + "[" + name + "]", Err: err}
	}
	return v, err
}

// resolve makes ref absolute against base. Unparseable input is returned
// unchanged.
func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
