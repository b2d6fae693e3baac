package mock

import "github.com/fwojciec/diraudit"

// Compile-time interface verification.
var (
	_ diraudit.ProfileExtractor  = (*ProfileExtractor)(nil)
	_ diraudit.ExtractorRegistry = (*ExtractorRegistry)(nil)
	_ diraudit.ProfileComparer   = (*ProfileComparer)(nil)
)

// ProfileExtractor is a mock implementation of diraudit.ProfileExtractor.
type ProfileExtractor struct {
	DirectoryIDFn    func() string
	ExtractProfileFn func(page diraudit.Page) *diraudit.RawProfile
}

func (e *ProfileExtractor) DirectoryID() string {
	return e.DirectoryIDFn()
}

func (e *ProfileExtractor) ExtractProfile(page diraudit.Page) *diraudit.RawProfile {
	return e.ExtractProfileFn(page)
}

// ExtractorRegistry is a mock implementation of diraudit.ExtractorRegistry.
type ExtractorRegistry struct {
	ExtractorFn      func(directoryID string) diraudit.ProfileExtractor
	RegisterFn       func(directoryID string, fn diraudit.NewExtractorFunc)
	DirectoriesFn    func() []string
	ExtractProfileFn func(directoryID string, page diraudit.Page, url string) *diraudit.RawProfile
}

func (r *ExtractorRegistry) Extractor(directoryID string) diraudit.ProfileExtractor {
	return r.ExtractorFn(directoryID)
}

func (r *ExtractorRegistry) Register(directoryID string, fn diraudit.NewExtractorFunc) {
	r.RegisterFn(directoryID, fn)
}

func (r *ExtractorRegistry) Directories() []string {
	return r.DirectoriesFn()
}

func (r *ExtractorRegistry) ExtractProfile(directoryID string, page diraudit.Page, url string) *diraudit.RawProfile {
	return r.ExtractProfileFn(directoryID, page, url)
}

// ProfileComparer is a mock implementation of diraudit.ProfileComparer.
type ProfileComparer struct {
	CompareProfilesFn func(entry *diraudit.RosterEntry, raw *diraudit.RawProfile) *diraudit.ComparisonRecord
}

func (c *ProfileComparer) CompareProfiles(entry *diraudit.RosterEntry, raw *diraudit.RawProfile) *diraudit.ComparisonRecord {
	return c.CompareProfilesFn(entry, raw)
}
