package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<div class="item"><a href="/a">Alpha</a><h3>Alpha Enhanced</h3></div>
<div class="item"><a href="/b">Beta</a><h3>Beta Enhanced</h3></div>
<p class="note">  spaced  </p>
</body></html>`

func TestDocument(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(listingHTML))
	require.NoError(t, err)

	t.Run("First returns first match", func(t *testing.T) {
		item, err := doc.First("div.item")
		require.NoError(t, err)

		heading, err := item.First("h3")
		require.NoError(t, err)
		text, err := heading.Text()
		require.NoError(t, err)
		assert.Equal(t, "Alpha Enhanced", text)
	})

	t.Run("First without match", func(t *testing.T) {
		_, err := doc.First("div.missing")
		assert.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("All keeps document order", func(t *testing.T) {
		items, err := doc.All("div.item")
		require.NoError(t, err)
		require.Len(t, items, 2)

		var hrefs []string
		for _, item := range items {
			link, err := item.First("a")
			require.NoError(t, err)
			href, err := link.Attr("href")
			require.NoError(t, err)
			hrefs = append(hrefs, href)
		}
		assert.Equal(t, []string{"/a", "/b"}, hrefs)
	})

	t.Run("All without match is empty", func(t *testing.T) {
		nodes, err := doc.All("table")
		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("Text is raw", func(t *testing.T) {
		note, err := doc.First("p.note")
		require.NoError(t, err)
		text, _ := note.Text()
		assert.Equal(t, "  spaced  ", text)
	})

	t.Run("missing attribute", func(t *testing.T) {
		note, err := doc.First("p.note")
		require.NoError(t, err)
		_, err = note.Attr("href")
		assert.ErrorIs(t, err, ErrNoAttribute)
	})

	t.Run("static documents cannot be clicked", func(t *testing.T) {
		link, err := doc.First("a")
		require.NoError(t, err)
		assert.ErrorIs(t, link.Click(), ErrNotInteractive)
	})
}
