package diraudit

import "time"

// DefaultDirectories are the medical directories searched when none are
// configured.
var DefaultDirectories = []string{
	"vitals.com",
	"webmd.com",
	"healthgrades.com",
	"doximity.com",
	"usnews.com",
}

// Config holds the settings for one audit run.
type Config struct {
	// Directories are the directory domains to search.
	Directories []string `json:"directories"`

	// MaxResults is the number of search results checked per directory.
	MaxResults int `json:"maxResults"`

	// Thresholds are the fuzzy-match thresholds used by the comparator.
	Thresholds Thresholds `json:"thresholds"`

	// PageTimeout bounds a single page load.
	PageTimeout time.Duration `json:"pageTimeout"`

	// RenderDelay is how long to wait after page load for scripts to render.
	RenderDelay time.Duration `json:"renderDelay"`

	// SearchDelay is the minimum interval between search queries.
	SearchDelay time.Duration `json:"searchDelay"`

	// FetchRate is the maximum page fetches per second per directory.
	FetchRate float64 `json:"fetchRate"`

	// Concurrency is the number of (doctor, directory) units run in parallel.
	Concurrency int `json:"concurrency"`
}

// DefaultConfig returns the default audit configuration.
func DefaultConfig() Config {
	return Config{
		Directories: append([]string(nil), DefaultDirectories...),
		MaxResults:  3,
		Thresholds:  DefaultThresholds(),
		PageTimeout: 15 * time.Second,
		RenderDelay: 2 * time.Second,
		SearchDelay: 1 * time.Second,
		FetchRate:   1.0,
		Concurrency: 1,
	}
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if len(c.Directories) == 0 {
		return Errorf(EINVALID, "at least one directory required")
	}
	for _, d := range c.Directories {
		if DirectoryID(d) == "" {
			return Errorf(EINVALID, "invalid directory %q", d)
		}
	}
	if c.MaxResults <= 0 {
		return Errorf(EINVALID, "max results must be positive")
	}
	if c.Concurrency <= 0 {
		return Errorf(EINVALID, "concurrency must be positive")
	}
	if c.FetchRate <= 0 {
		return Errorf(EINVALID, "fetch rate must be positive")
	}
	if c.PageTimeout < 0 || c.RenderDelay < 0 || c.SearchDelay < 0 {
		return Errorf(EINVALID, "durations must not be negative")
	}
	return c.Thresholds.Validate()
}

// DirectoryIDs returns the configured directories canonicalized with
// DirectoryID, with duplicates removed and order preserved.
func (c *Config) DirectoryIDs() []string {
	seen := make(map[string]bool, len(c.Directories))
	ids := make([]string, 0, len(c.Directories))
	for _, d := range c.Directories {
		id := DirectoryID(d)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
