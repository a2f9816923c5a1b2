package scraper

import (
	"strings"

	"github.com/mindsgn-studio/mission-to-mars/fetch"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
)

// News reads the first headline and its teaser.
func News(doc fetch.Node, sel NewsSelectors) (model.News, error) {
	title, err := firstText(doc, FieldNews, sel.Title)
	if err != nil {
		return model.News{}, err
	}

	paragraph, err := firstText(doc, FieldNews, sel.Paragraph)
	if err != nil {
		return model.News{}, err
	}

	return model.News{
		Title:     strings.TrimSpace(title),
		Paragraph: strings.TrimSpace(paragraph),
	}, nil
}
