package scraper

import (
	"strings"

	"github.com/mindsgn-studio/mission-to-mars/fetch"
)

// Weather reads the latest weather report.
func Weather(doc fetch.Node, sel WeatherSelectors) (string, error) {
	text, err := firstText(doc, FieldWeather, sel.Paragraph)
	if err != nil {
		return "", err
	}
	return normalizeWeather(text, sel.LineDelimiter, sel.TruncateMarker), nil
}

// normalizeWeather joins lines with delim and drops everything from the
// first marker on. The marker is usually the start of an attached picture
// link, but it matches anywhere in the text.
func normalizeWeather(text, delim, marker string) string {
	text = strings.ReplaceAll(text, "\n", delim)
	if marker == "" {
		return text
	}
	before, _, _ := strings.Cut(text, marker)
	return before
}
