package scraper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindsgn-studio/mission-to-mars/fetch"
)

const testHost = "https://mars.test"

// fixturePages maps every URL reachable from testSelectors to its testdata
// file.
var fixturePages = []struct {
	url, file string
}{
	{testHost + "/news/", "news.html"},
	{testHost + "/spaceimages/", "jpl.html"},
	{testHost + "/spaceimages/details.php?id=PIA17470", "jpl_full.html"},
	{testHost + "/facts/", "facts.html"},
	{testHost + "/weather", "weather.html"},
	{testHost + "/search/results", "hemispheres.html"},
	{testHost + "/search/map/Mars/Viking/cerberus_enhanced", "hemisphere_cerberus.html"},
	{testHost + "/search/map/Mars/Viking/schiaparelli_enhanced", "hemisphere_schiaparelli.html"},
	{testHost + "/search/map/Mars/Viking/syrtis_major_enhanced", "hemisphere_syrtis_major.html"},
}

func testSelectors() Selectors {
	sel := DefaultSelectors()
	sel.News.URL = testHost + "/news/"
	sel.FeatureImage.URL = testHost + "/spaceimages/"
	sel.Facts.URL = testHost + "/facts/"
	sel.Weather.URL = testHost + "/weather"
	sel.Hemispheres.URL = testHost + "/search/results"
	return sel
}

func loadPages(t *testing.T) map[string]string {
	t.Helper()
	pages := make(map[string]string, len(fixturePages))
	for _, p := range fixturePages {
		pages[p.url] = mustRead(t, p.file)
	}
	return pages
}

func mustRead(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

func parse(t *testing.T, html string) fetch.Node {
	t.Helper()
	doc, err := fetch.ParseDocument(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (fetch.Node, error) {
	f.calls = append(f.calls, url)
	html, ok := f.pages[url]
	if !ok {
		return nil, &fetch.FetchError{URL: url, Err: errors.New("connection refused")}
	}
	return fetch.ParseDocument(strings.NewReader(html))
}

// fakeBrowser serves fixture pages as sessions. Clicking a link follows its
// href.
type fakeBrowser struct {
	pages   map[string]string
	openErr error
	opened  int
	closed  int
	visits  []string
}

func (b *fakeBrowser) Open(context.Context) (fetch.Session, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	b.opened++
	return &fakeSession{browser: b}, nil
}

type fakeSession struct {
	browser *fakeBrowser
	doc     fetch.Node
	url     string
}

func (s *fakeSession) Visit(url string) error {
	s.browser.visits = append(s.browser.visits, url)
	html, ok := s.browser.pages[url]
	if !ok {
		return &fetch.SessionError{Op: "navigate", URL: url, Err: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	}
	doc, err := fetch.ParseDocument(strings.NewReader(html))
	if err != nil {
		return err
	}
	s.doc = doc
	s.url = url
	return nil
}

func (s *fakeSession) First(selector string) (fetch.Node, error) {
	if s.doc == nil {
		return nil, fetch.ErrNoMatch
	}
	n, err := s.doc.First(selector)
	if err != nil {
		return nil, err
	}
	return &fakeNode{Node: n, session: s}, nil
}

func (s *fakeSession) All(selector string) ([]fetch.Node, error) {
	if s.doc == nil {
		return nil, nil
	}
	nodes, err := s.doc.All(selector)
	if err != nil {
		return nil, err
	}
	return s.wrap(nodes), nil
}

func (s *fakeSession) Text() (string, error) { return s.doc.Text() }

func (s *fakeSession) Attr(string) (string, error) { return "", fetch.ErrNoAttribute }

func (s *fakeSession) Click() error { return fetch.ErrNotInteractive }

func (s *fakeSession) Close() error {
	s.browser.closed++
	return nil
}

func (s *fakeSession) wrap(nodes []fetch.Node) []fetch.Node {
	out := make([]fetch.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &fakeNode{Node: n, session: s})
	}
	return out
}

type fakeNode struct {
	fetch.Node
	session *fakeSession
}

func (n *fakeNode) First(selector string) (fetch.Node, error) {
	found, err := n.Node.First(selector)
	if err != nil {
		return nil, err
	}
	return &fakeNode{Node: found, session: n.session}, nil
}

func (n *fakeNode) All(selector string) ([]fetch.Node, error) {
	nodes, err := n.Node.All(selector)
	if err != nil {
		return nil, err
	}
	return n.session.wrap(nodes), nil
}

func (n *fakeNode) Click() error {
	href, err := n.Node.Attr("href")
	if err != nil {
		return err
	}
	return n.session.Visit(resolve(n.session.url, href))
}
