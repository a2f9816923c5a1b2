// Package fetch turns a URL into a queryable document, either a static parse
// of the response body or a live browser page.
package fetch

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Node is a queryable element. Lookups are scoped to the node's subtree.
type Node interface {
	// First returns the first match or ErrNoMatch.
	First(selector string) (Node, error)
	All(selector string) ([]Node, error)
	Text() (string, error)
	// Attr returns the raw attribute value or ErrNoAttribute.
	Attr(name string) (string, error)
	Click() error
}

// Session is a live page that can navigate. It must be closed.
type Session interface {
	Node
	Visit(url string) error
	Close() error
}

// Document is a static, parsed HTML tree.
type Document struct {
	sel *goquery.Selection
}

// ParseDocument parses r as HTML.
func ParseDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{sel: doc.Selection}, nil
}

func (d *Document) First(selector string) (Node, error) {
	found := d.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, ErrNoMatch
	}
	return &Document{sel: found}, nil
}

func (d *Document) All(selector string) ([]Node, error) {
	found := d.sel.Find(selector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Document{sel: s})
	})
	return nodes, nil
}

func (d *Document) Text() (string, error) {
	return d.sel.Text(), nil
}

func (d *Document) Attr(name string) (string, error) {
	v, ok := d.sel.Attr(name)
	if !ok {
		return "", ErrNoAttribute
	}
	return v, nil
}

func (d *Document) Click() error {
	return ErrNotInteractive
}
