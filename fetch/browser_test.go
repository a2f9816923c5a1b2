package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Needs a local Chrome; opt in with MARS_BROWSER_TESTS=1.
func TestBrowserSession(t *testing.T) {
	if os.Getenv("MARS_BROWSER_TESTS") == "" {
		t.Skip("MARS_BROWSER_TESTS not set")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>
<div class="carousel_items"><a href="#" onclick="document.body.insertAdjacentHTML('beforeend','<img class=&quot;fancybox-image&quot; src=&quot;/full.jpg&quot;>');return false;">open</a></div>
</body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	b := NewBrowser(model.BrowserConfig{Headless: true, ElementTimeout: 5 * time.Second}, zap.NewNop())
	s, err := b.Open(context.Background())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Visit(srv.URL+"/"))

	carousel, err := s.First(`div[class="carousel_items"]`)
	require.NoError(t, err)
	link, err := carousel.First("a")
	require.NoError(t, err)
	require.NoError(t, link.Click())

	img, err := s.First(`img[class="fancybox-image"]`)
	require.NoError(t, err)
	src, err := img.Attr("src")
	require.NoError(t, err)
	assert.Equal(t, "/full.jpg", src)

	short := NewBrowser(model.BrowserConfig{Headless: true, ElementTimeout: 200 * time.Millisecond}, zap.NewNop())
	s2, err := short.Open(context.Background())
	require.NoError(t, err)
	defer s2.Close()
	require.NoError(t, s2.Visit(srv.URL+"/"))
	_, err = s2.First("img.never")
	assert.ErrorIs(t, err, ErrNoMatch)
}
