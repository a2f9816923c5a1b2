package scraper

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var defaultSelectors []byte

// Selectors is the page and selector table for every snapshot field. Markup
// drift on a source page is fixed here, not in the extractors.
type Selectors struct {
	News         NewsSelectors         `yaml:"news"`
	FeatureImage FeatureImageSelectors `yaml:"feature_image"`
	Facts        FactsSelectors        `yaml:"facts"`
	Weather      WeatherSelectors      `yaml:"weather"`
	Hemispheres  HemisphereSelectors   `yaml:"hemispheres"`
}

type NewsSelectors struct {
	URL       string `yaml:"url"`
	Title     string `yaml:"title"`
	Paragraph string `yaml:"paragraph"`
}

type FeatureImageSelectors struct {
	URL      string `yaml:"url"`
	Carousel string `yaml:"carousel"`
	Link     string `yaml:"link"`
	Image    string `yaml:"image"`
}

type FactsSelectors struct {
	URL         string `yaml:"url"`
	Table       string `yaml:"table"`
	Description string `yaml:"description"`
	Value       string `yaml:"value"`
}

type WeatherSelectors struct {
	URL            string `yaml:"url"`
	Paragraph      string `yaml:"paragraph"`
	LineDelimiter  string `yaml:"line_delimiter"`
	// TruncateMarker cuts the text at its first occurrence. Any earlier
	// occurrence in real text truncates too early.
	TruncateMarker string `yaml:"truncate_marker"`
}

type HemisphereSelectors struct {
	URL     string `yaml:"url"`
	Item    string `yaml:"item"`
	Link    string `yaml:"link"`
	Heading string `yaml:"heading"`
	Image   string `yaml:"image"`
}

// DefaultSelectors returns the built-in table.
func DefaultSelectors() Selectors {
	var sel Selectors
	if err := yaml.Unmarshal(defaultSelectors, &sel); err != nil {
		panic(fmt.Sprintf("embedded selectors: %v", err))
	}
	return sel
}

// LoadSelectors reads a YAML file over the defaults. Keys missing from the
// file keep their default value. An empty path returns the defaults.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Selectors{}, fmt.Errorf("read selectors file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sel); err != nil {
		return Selectors{}, fmt.Errorf("parse selectors file: %w", err)
	}

	if err := sel.Validate(); err != nil {
		return Selectors{}, err
	}
	return sel, nil
}

// Validate reports the first empty entry. The weather delimiter may be empty.
func (s Selectors) Validate() error {
	required := []struct {
		key, value string
	}{
		{"news.url", s.News.URL},
		{"news.title", s.News.Title},
		{"news.paragraph", s.News.Paragraph},
		{"feature_image.url", s.FeatureImage.URL},
		{"feature_image.carousel", s.FeatureImage.Carousel},
		{"feature_image.link", s.FeatureImage.Link},
		{"feature_image.image", s.FeatureImage.Image},
		{"facts.url", s.Facts.URL},
		{"facts.table", s.Facts.Table},
		{"facts.description", s.Facts.Description},
		{"facts.value", s.Facts.Value},
		{"weather.url", s.Weather.URL},
		{"weather.paragraph", s.Weather.Paragraph},
		{"weather.truncate_marker", s.Weather.TruncateMarker},
		{"hemispheres.url", s.Hemispheres.URL},
		{"hemispheres.item", s.Hemispheres.Item},
		{"hemispheres.link", s.Hemispheres.Link},
		{"hemispheres.heading", s.Hemispheres.Heading},
		{"hemispheres.image", s.Hemispheres.Image},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("selectors: %s is empty", r.key)
		}
	}
	return nil
}
