package goquery

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fwojciec/diraudit"
)

var _ diraudit.ExtractorRegistry = (*Registry)(nil)

// Registry maps directory identifiers to extractor constructors. Lookups
// for directories without a registered constructor use the fallback, so
// every directory yields a working extractor. Keys are canonicalized with
// diraudit.DirectoryID, making "https://www.vitals.com" and "vitals.com"
// the same entry.
type Registry struct {
	mu       sync.RWMutex
	fallback diraudit.NewExtractorFunc
	entries  map[string]diraudit.NewExtractorFunc
}

// NewRegistry creates an empty Registry with the given fallback constructor.
func NewRegistry(fallback diraudit.NewExtractorFunc) *Registry {
	return &Registry{
		fallback: fallback,
		entries:  make(map[string]diraudit.NewExtractorFunc),
	}
}

// NewDefaultRegistry returns a Registry with every built-in format-specific
// extractor registered and GenericExtractor as the fallback.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewGenericExtractor)
	r.Register("vitals.com", NewVitalsExtractor)
	r.Register("healthgrades.com", NewHealthgradesExtractor)
	return r
}

// Extractor returns a new extractor for the directory.
func (r *Registry) Extractor(directoryID string) diraudit.ProfileExtractor {
	id := diraudit.DirectoryID(directoryID)

	r.mu.RLock()
	fn, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		fn = r.fallback
	}
	return fn(id)
}

// Register adds a constructor for a directory, replacing any existing one.
func (r *Registry) Register(directoryID string, fn diraudit.NewExtractorFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[diraudit.DirectoryID(directoryID)] = fn
}

// Directories returns the registered directories in sorted order.
func (r *Registry) Directories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dirs := make([]string, 0, len(r.entries))
	for d := range r.entries {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// ExtractProfile runs the directory's extractor on page. A panicking
// extractor yields an empty profile carrying the panic as its error.
func (r *Registry) ExtractProfile(directoryID string, page diraudit.Page, url string) (profile *diraudit.RawProfile) {
	id := diraudit.DirectoryID(directoryID)

	defer func() {
		if v := recover(); v != nil {
			profile = diraudit.NewFailedProfile(id, url, fmt.Errorf("extraction panic: %v", v))
		}
	}()

	profile = r.Extractor(id).ExtractProfile(page)
	if profile == nil {
		profile = &diraudit.RawProfile{}
	}
	profile.SourceURL = url
	profile.DirectoryID = id
	return profile
}
