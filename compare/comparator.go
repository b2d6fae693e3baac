// Package compare scores directory profiles against roster entries.
package compare

import (
	"strings"

	"github.com/fwojciec/diraudit"
)

var _ diraudit.ProfileComparer = (*Comparator)(nil)

// Comparator compares profile fields using configurable fuzzy thresholds.
// It holds no mutable state and is safe for concurrent use.
type Comparator struct {
	thresholds diraudit.Thresholds
}

// NewComparator creates a Comparator with the given thresholds.
func NewComparator(thresholds diraudit.Thresholds) *Comparator {
	return &Comparator{thresholds: thresholds}
}

// Thresholds returns the thresholds in use.
func (c *Comparator) Thresholds() diraudit.Thresholds {
	return c.thresholds
}

// CompareNames fuzzy-matches two names. Either side empty or blank is
// Missing with a zero score.
func (c *Comparator) CompareNames(orig, scraped string) diraudit.FieldVerdict {
	v := diraudit.FieldVerdict{Original: orig, Scraped: scraped}
	if empty(orig) || empty(scraped) {
		v.Status = diraudit.StatusMissing
		return v
	}
	v.Score = Similarity(orig, scraped)
	v.Status = threshold(v.Score, c.thresholds.Name)
	return v
}

// ComparePhones matches phone numbers exactly after NormalizePhone.
func (c *Comparator) ComparePhones(orig, scraped string) diraudit.FieldVerdict {
	v, done := missing(orig, scraped)
	if done {
		return v
	}
	if NormalizePhone(orig) == NormalizePhone(scraped) {
		v.Status, v.Score = diraudit.StatusMatch, 1.0
	} else {
		v.Status = diraudit.StatusMismatch
	}
	return v
}

// CompareAddresses fuzzy-matches two addresses using the address threshold.
func (c *Comparator) CompareAddresses(orig, scraped string) diraudit.FieldVerdict {
	v, done := missing(orig, scraped)
	if done {
		return v
	}
	v.Score = Similarity(orig, scraped)
	v.Status = threshold(v.Score, c.thresholds.Address)
	return v
}

// CompareWebsites matches websites exactly after NormalizeWebsite.
func (c *Comparator) CompareWebsites(orig, scraped string) diraudit.FieldVerdict {
	v, done := missing(orig, scraped)
	if done {
		return v
	}
	if NormalizeWebsite(orig) == NormalizeWebsite(scraped) {
		v.Status, v.Score = diraudit.StatusMatch, 1.0
	} else {
		v.Status = diraudit.StatusMismatch
	}
	return v
}

// CompareProfiles builds the comparison record for raw against entry.
// Name and website are always compared; phone only when the roster
// supplied a phone column.
func (c *Comparator) CompareProfiles(entry *diraudit.RosterEntry, raw *diraudit.RawProfile) *diraudit.ComparisonRecord {
	if raw == nil {
		raw = &diraudit.RawProfile{}
	}

	verdicts := map[diraudit.Field]diraudit.FieldVerdict{
		diraudit.FieldName:    c.CompareNames(entry.Name, raw.Name),
		diraudit.FieldWebsite: c.CompareWebsites(entry.Website, raw.Website),
	}
	if entry.HasPhone() {
		verdicts[diraudit.FieldPhone] = c.ComparePhones(*entry.Phone, raw.Phone)
	}

	return &diraudit.ComparisonRecord{
		DoctorName:       entry.Name,
		Location:         entry.Location,
		OriginalWebsite:  entry.Website,
		Directory:        raw.DirectoryID,
		ProfileURL:       raw.SourceURL,
		Comparisons:      verdicts,
		ScrapedAddress:   raw.Address,
		ScrapedSpecialty: raw.Specialty,
		HasPhoto:         raw.HasPhoto,
		OverallScore:     diraudit.OverallScore(verdicts),
		Error:            raw.Error,
	}
}

// missing applies the shared empty-value policy: both sides empty is a
// non-discrepancy scoring 1.0, one side empty scores 0.0. done reports
// whether the verdict is final.
func missing(orig, scraped string) (v diraudit.FieldVerdict, done bool) {
	v = diraudit.FieldVerdict{Original: orig, Scraped: scraped}
	switch {
	case empty(orig) && empty(scraped):
		v.Status, v.Score = diraudit.StatusMissing, 1.0
		return v, true
	case empty(orig) || empty(scraped):
		v.Status = diraudit.StatusMissing
		return v, true
	}
	return v, false
}

// empty treats whitespace-only values as absent.
func empty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func threshold(score, limit float64) diraudit.Status {
	if score >= limit {
		return diraudit.StatusMatch
	}
	return diraudit.StatusMismatch
}
