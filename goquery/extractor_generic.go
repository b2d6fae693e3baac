package goquery

import "github.com/fwojciec/diraudit"

var _ diraudit.ProfileExtractor = (*GenericExtractor)(nil)

// GenericExtractor handles directories without a format-specific
// extractor. It takes the page title as the name and scans the page text
// for a phone number; all other fields stay empty.
type GenericExtractor struct {
	directoryID string
}

// NewGenericExtractor creates a GenericExtractor for directoryID.
func NewGenericExtractor(directoryID string) diraudit.ProfileExtractor {
	return &GenericExtractor{directoryID: directoryID}
}

// DirectoryID returns the directory this extractor was created for.
func (e *GenericExtractor) DirectoryID() string {
	return e.directoryID
}

// ExtractProfile implements diraudit.ProfileExtractor.
func (e *GenericExtractor) ExtractProfile(page diraudit.Page) *diraudit.RawProfile {
	p := &diraudit.RawProfile{
		SourceURL:   page.URL(),
		DirectoryID: e.directoryID,
	}
	field(func() { p.Name = page.Title() })
	field(func() { p.Phone = FindPhone(page.Text()) })
	return p
}
