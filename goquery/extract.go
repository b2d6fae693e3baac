package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/diraudit"
)

var (
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	phoneNoise   = regexp.MustCompile(`[^\d\-\(\)\s\+]`)
)

// ProfileSelectors lists candidate CSS selectors per profile field, in
// priority order. Directories often serve several page layouts, so the
// first candidate yielding a non-empty value wins.
type ProfileSelectors struct {
	Name      []string
	Phone     []string
	Address   []string
	Website   []string
	Specialty []string
	Photo     []string
}

var _ diraudit.ProfileExtractor = (*SelectorExtractor)(nil)

// SelectorExtractor extracts profiles by walking ProfileSelectors.
type SelectorExtractor struct {
	directoryID string
	selectors   ProfileSelectors
}

// NewSelectorExtractor creates an extractor for directoryID using selectors.
func NewSelectorExtractor(directoryID string, selectors ProfileSelectors) *SelectorExtractor {
	return &SelectorExtractor{
		directoryID: directoryID,
		selectors:   selectors,
	}
}

// DirectoryID returns the directory this extractor handles.
func (e *SelectorExtractor) DirectoryID() string {
	return e.directoryID
}

// ExtractProfile reads each field independently. A field whose extraction
// fails stays empty without affecting the others.
func (e *SelectorExtractor) ExtractProfile(page diraudit.Page) *diraudit.RawProfile {
	p := &diraudit.RawProfile{
		SourceURL:   page.URL(),
		DirectoryID: e.directoryID,
	}

	field(func() { p.Name = firstText(page, e.selectors.Name) })
	field(func() { p.Phone = extractPhone(page, e.selectors.Phone) })
	field(func() { p.Address = firstText(page, e.selectors.Address) })
	field(func() { p.Website = firstWebsite(page, e.selectors.Website) })
	field(func() { p.Specialty = firstText(page, e.selectors.Specialty) })
	field(func() { p.HasPhoto = hasPhoto(page, e.selectors.Photo) })

	return p
}

// FindPhone returns the first phone-number-shaped substring of text,
// or "" if there is none.
func FindPhone(text string) string {
	return phonePattern.FindString(text)
}

// field runs fn, swallowing a panic so the field keeps its zero value.
func field(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func firstText(page diraudit.Page, selectors []string) string {
	for _, sel := range selectors {
		if text, ok := page.FindText(sel); ok && text != "" {
			return text
		}
	}
	return ""
}

// extractPhone tries structured selectors first, keeping digits and common
// phone punctuation, then falls back to scanning the page text.
func extractPhone(page diraudit.Page, selectors []string) string {
	for _, sel := range selectors {
		text, ok := page.FindText(sel)
		if !ok {
			continue
		}
		if phone := strings.TrimSpace(phoneNoise.ReplaceAllString(text, "")); phone != "" {
			return phone
		}
	}
	return FindPhone(page.Text())
}

func firstWebsite(page diraudit.Page, selectors []string) string {
	for _, sel := range selectors {
		if href, ok := page.FindAttribute(sel, "href"); ok && strings.Contains(href, "http") {
			return href
		}
	}
	return ""
}

// hasPhoto reports whether any candidate image has a real source. Stock
// images whose source mentions "placeholder" or "default" are skipped and
// the next candidate is tried.
func hasPhoto(page diraudit.Page, selectors []string) bool {
	for _, sel := range selectors {
		src, ok := page.FindAttribute(sel, "src")
		if !ok || src == "" {
			continue
		}
		lower := strings.ToLower(src)
		if strings.Contains(lower, "placeholder") || strings.Contains(lower, "default") {
			continue
		}
		return true
	}
	return false
}
