package diraudit

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RawProfile holds the fields extracted from one directory page.
type RawProfile struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Website   string `json:"website"`
	Specialty string `json:"specialty"`
	HasPhoto  bool   `json:"hasPhoto"`

	SourceURL   string `json:"sourceUrl"`
	DirectoryID string `json:"directoryId"`

	// Error is set when extraction failed and the profile is degraded.
	Error string `json:"error,omitempty"`
}

// NewFailedProfile returns an empty profile annotated with err.
func NewFailedProfile(directoryID, sourceURL string, err error) *RawProfile {
	p := &RawProfile{
		SourceURL:   sourceURL,
		DirectoryID: directoryID,
	}
	if err != nil {
		p.Error = err.Error()
	}
	return p
}

// Page is a fetched directory page. Lookups return false when nothing
// matches rather than failing.
type Page interface {
	// URL returns the address the page was fetched from.
	URL() string

	// Title returns the document title, or "" if there is none.
	Title() string

	// Text returns the full text content of the page.
	Text() string

	// FindText returns the trimmed text of the first element matching selector.
	FindText(selector string) (string, bool)

	// FindAttribute returns attr of the first element matching selector.
	FindAttribute(selector, attr string) (string, bool)
}

// PageParser turns fetched HTML into a Page.
type PageParser interface {
	Parse(url, html string) (Page, error)
}

// ProfileExtractor extracts a RawProfile from pages of one directory format.
type ProfileExtractor interface {
	// DirectoryID returns the directory this extractor handles (e.g. "vitals.com").
	DirectoryID() string

	// ExtractProfile reads profile fields from page. Fields that cannot be
	// found are left empty; it never fails.
	ExtractProfile(page Page) *RawProfile
}

// NewExtractorFunc constructs an extractor for a directory.
type NewExtractorFunc func(directoryID string) ProfileExtractor

// ExtractorRegistry maps directory identifiers to extractors.
type ExtractorRegistry interface {
	// Extractor returns a new extractor for the directory.
	// Falls back to a generic extractor for unregistered directories,
	// so the result is never nil.
	Extractor(directoryID string) ProfileExtractor

	// Register adds an extractor constructor for a directory.
	Register(directoryID string, fn NewExtractorFunc)

	// ExtractProfile extracts the profile on page with the directory's
	// extractor and stamps it with url and the directory. It never panics:
	// a failing extractor yields an empty profile with Error set.
	ExtractProfile(directoryID string, page Page, url string) *RawProfile

	// Directories returns all directories with a format-specific extractor.
	Directories() []string
}

// DirectoryID canonicalizes a hostname or URL into a directory identifier:
// lowercase registrable domain without scheme, port, path or subdomain.
// For example "https://www.Vitals.com/doctors/x" becomes "vitals.com".
func DirectoryID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	host := s
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			host = u.Hostname()
		}
	} else {
		if i := strings.IndexAny(host, "/?#"); i >= 0 {
			host = host[:i]
		}
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
	}
	host = strings.TrimSuffix(host, ".")
	if net.ParseIP(host) != nil {
		return host
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return strings.TrimPrefix(host, "www.")
	}
	return domain
}
