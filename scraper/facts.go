package scraper

import (
	"github.com/mindsgn-studio/mission-to-mars/fetch"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"go.uber.org/zap"
)

// Facts pairs the description and value columns of the facts table row by
// row. When the columns differ in length the extra cells are dropped and a
// warning is logged.
func Facts(doc fetch.Node, sel FactsSelectors, logger *zap.Logger) ([]model.Fact, error) {
	table, err := first(doc, FieldFacts, sel.Table)
	if err != nil {
		return nil, err
	}

	descriptions, err := cellTexts(table, sel.Description)
	if err != nil {
		return nil, err
	}
	values, err := cellTexts(table, sel.Value)
	if err != nil {
		return nil, err
	}

	n := min(len(descriptions), len(values))
	if len(descriptions) != len(values) {
		logger.Warn("facts column count mismatch",
			zap.Int("descriptions", len(descriptions)),
			zap.Int("values", len(values)),
			zap.Int("kept", n))
	}
	if n == 0 {
		selector := sel.Description
		if len(descriptions) > 0 {
			selector = sel.Value
		}
		return nil, &ExtractionError{Field: FieldFacts, Selector: selector, Err: fetch.ErrNoMatch}
	}

	facts := make([]model.Fact, 0, n)
	for i := 0; i < n; i++ {
		facts = append(facts, model.Fact{Description: descriptions[i], Value: values[i]})
	}
	return facts, nil
}

func cellTexts(table fetch.Node, selector string) ([]string, error) {
	cells, err := table.All(selector)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(cells))
	for _, cell := range cells {
		text, err := cell.Text()
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, nil
}
