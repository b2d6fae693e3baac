package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/diraudit"
)

var _ diraudit.ExtractorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an ExtractorRegistry with logging of extractions.
type LoggingRegistry struct {
	next   diraudit.ExtractorRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next diraudit.ExtractorRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Extractor delegates to the wrapped registry.
func (r *LoggingRegistry) Extractor(directoryID string) diraudit.ProfileExtractor {
	return r.next.Extractor(directoryID)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(directoryID string, fn diraudit.NewExtractorFunc) {
	r.next.Register(directoryID, fn)
}

// Directories delegates to the wrapped registry.
func (r *LoggingRegistry) Directories() []string {
	return r.next.Directories()
}

// ExtractProfile logs which fields were found and delegates. Failed
// extractions are logged at warn level.
func (r *LoggingRegistry) ExtractProfile(directoryID string, page diraudit.Page, url string) (profile *diraudit.RawProfile) {
	defer func(begin time.Time) {
		if profile != nil && profile.Error != "" {
			r.logger.Warn("extraction failed",
				"directory", directoryID,
				"url", url,
				"error", profile.Error,
			)
			return
		}
		r.logger.Info("extract",
			"directory", directoryID,
			"url", url,
			"fields", foundFields(profile),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.ExtractProfile(directoryID, page, url)
}

// foundFields counts the non-empty profile fields.
func foundFields(p *diraudit.RawProfile) int {
	if p == nil {
		return 0
	}
	n := 0
	for _, v := range []string{p.Name, p.Phone, p.Address, p.Website, p.Specialty} {
		if v != "" {
			n++
		}
	}
	if p.HasPhoto {
		n++
	}
	return n
}
