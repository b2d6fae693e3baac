package mock

import "github.com/fwojciec/diraudit"

// Compile-time interface verification.
var (
	_ diraudit.Page       = (*Page)(nil)
	_ diraudit.PageParser = (*PageParser)(nil)
)

// Page is a mock implementation of diraudit.Page.
type Page struct {
	URLFn           func() string
	TitleFn         func() string
	TextFn          func() string
	FindTextFn      func(selector string) (string, bool)
	FindAttributeFn func(selector, attr string) (string, bool)
}

func (p *Page) URL() string {
	return p.URLFn()
}

func (p *Page) Title() string {
	return p.TitleFn()
}

func (p *Page) Text() string {
	return p.TextFn()
}

func (p *Page) FindText(selector string) (string, bool) {
	return p.FindTextFn(selector)
}

func (p *Page) FindAttribute(selector, attr string) (string, bool) {
	return p.FindAttributeFn(selector, attr)
}

// PageParser is a mock implementation of diraudit.PageParser.
type PageParser struct {
	ParseFn func(url, html string) (diraudit.Page, error)
}

func (p *PageParser) Parse(url, html string) (diraudit.Page, error) {
	return p.ParseFn(url, html)
}
