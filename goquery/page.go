// Package goquery implements directory profile extraction on top of
// parsed HTML documents.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/diraudit"
)

var (
	_ diraudit.Page       = (*Page)(nil)
	_ diraudit.PageParser = (*Parser)(nil)
)

// Page is a parsed HTML document. Lookups with an invalid selector match
// nothing.
type Page struct {
	url string
	doc *goquery.Document
}

// NewPage parses html fetched from url.
func NewPage(url, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, diraudit.Errorf(diraudit.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{url: url, doc: doc}, nil
}

// URL returns the address the page was fetched from.
func (p *Page) URL() string {
	return p.url
}

// Title returns the trimmed content of the first title element.
func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

// Text returns the text of the document body.
func (p *Page) Text() string {
	body := p.doc.Find("body")
	if body.Length() == 0 {
		return p.doc.Text()
	}
	return body.Text()
}

// FindText returns the trimmed text of the first element matching selector.
func (p *Page) FindText(selector string) (string, bool) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// FindAttribute returns attr of the first element matching selector.
// It reports false when nothing matches or the element lacks attr.
func (p *Page) FindAttribute(selector, attr string) (string, bool) {
	return p.doc.Find(selector).First().Attr(attr)
}

// Parser parses fetched HTML into pages.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements diraudit.PageParser.
func (p *Parser) Parse(url, html string) (diraudit.Page, error) {
	page, err := NewPage(url, html)
	if err != nil {
		return nil, err
	}
	return page, nil
}
