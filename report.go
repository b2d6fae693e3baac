package diraudit

import (
	"io"
	"sort"
	"strconv"
)

// ResultColumns are the column headers of the flat results table.
var ResultColumns = []string{
	"Doctor Name",
	"Directory",
	"Profile URL",
	"Overall Score",
	"Scraped Name",
	"Name Match",
	"Scraped Phone",
	"Phone Match",
	"Scraped Website",
	"Website Match",
	"Address",
	"Specialty",
	"Has Photo",
	"Error",
}

// ResultRow is one ComparisonRecord flattened for tabular export.
// Each verdict becomes a scraped-value / match-status column pair.
type ResultRow struct {
	DoctorName     string `csv:"Doctor Name" json:"doctorName"`
	Directory      string `csv:"Directory" json:"directory"`
	ProfileURL     string `csv:"Profile URL" json:"profileUrl"`
	OverallScore   string `csv:"Overall Score" json:"overallScore"`
	ScrapedName    string `csv:"Scraped Name" json:"scrapedName"`
	NameMatch      string `csv:"Name Match" json:"nameMatch"`
	ScrapedPhone   string `csv:"Scraped Phone" json:"scrapedPhone"`
	PhoneMatch     string `csv:"Phone Match" json:"phoneMatch"`
	ScrapedWebsite string `csv:"Scraped Website" json:"scrapedWebsite"`
	WebsiteMatch   string `csv:"Website Match" json:"websiteMatch"`
	Address        string `csv:"Address" json:"address"`
	Specialty      string `csv:"Specialty" json:"specialty"`
	HasPhoto       bool   `csv:"Has Photo" json:"hasPhoto"`
	Error          string `csv:"Error" json:"error"`
}

// Values returns the row's cells in ResultColumns order.
func (r ResultRow) Values() []string {
	return []string{
		r.DoctorName,
		r.Directory,
		r.ProfileURL,
		r.OverallScore,
		r.ScrapedName,
		r.NameMatch,
		r.ScrapedPhone,
		r.PhoneMatch,
		r.ScrapedWebsite,
		r.WebsiteMatch,
		r.Address,
		r.Specialty,
		strconv.FormatBool(r.HasPhoto),
		r.Error,
	}
}

// Flatten converts records into result rows, preserving order.
// Fields that were not evaluated produce empty cells.
func Flatten(records []*ComparisonRecord) []ResultRow {
	rows := make([]ResultRow, 0, len(records))
	for _, rec := range records {
		name := rec.Comparisons[FieldName]
		phone := rec.Comparisons[FieldPhone]
		website := rec.Comparisons[FieldWebsite]

		rows = append(rows, ResultRow{
			DoctorName:     rec.DoctorName,
			Directory:      rec.Directory,
			ProfileURL:     rec.ProfileURL,
			OverallScore:   strconv.FormatFloat(rec.OverallScore, 'f', 2, 64),
			ScrapedName:    name.Scraped,
			NameMatch:      string(name.Status),
			ScrapedPhone:   phone.Scraped,
			PhoneMatch:     string(phone.Status),
			ScrapedWebsite: website.Scraped,
			WebsiteMatch:   string(website.Status),
			Address:        rec.ScrapedAddress,
			Specialty:      rec.ScrapedSpecialty,
			HasPhoto:       rec.HasPhoto,
			Error:          rec.Error,
		})
	}
	return rows
}

// Summary aggregates a set of comparison records.
type Summary struct {
	TotalProfiles int     `json:"totalProfiles"`
	NameMatches   int     `json:"nameMatches"`
	AverageScore  float64 `json:"averageScore"`

	// ByDirectory holds the same aggregates per directory, sorted by name.
	ByDirectory []DirectorySummary `json:"byDirectory,omitempty"`
}

// DirectorySummary aggregates the records of one directory.
type DirectorySummary struct {
	Directory     string  `json:"directory"`
	TotalProfiles int     `json:"totalProfiles"`
	NameMatches   int     `json:"nameMatches"`
	NoResults     int     `json:"noResults"`
	AverageScore  float64 `json:"averageScore"`
}

// Summarize computes run-level and per-directory aggregates.
// No-results placeholders count as profiles scoring 0.0.
func Summarize(records []*ComparisonRecord) Summary {
	var s Summary
	var total float64
	byDir := make(map[string]*DirectorySummary)
	dirTotals := make(map[string]float64)

	for _, rec := range records {
		s.TotalProfiles++
		total += rec.OverallScore

		d, ok := byDir[rec.Directory]
		if !ok {
			d = &DirectorySummary{Directory: rec.Directory}
			byDir[rec.Directory] = d
		}
		d.TotalProfiles++
		dirTotals[rec.Directory] += rec.OverallScore

		if rec.Comparisons[FieldName].Status == StatusMatch {
			s.NameMatches++
			d.NameMatches++
		}
		if rec.NoResults() {
			d.NoResults++
		}
	}

	if s.TotalProfiles > 0 {
		s.AverageScore = total / float64(s.TotalProfiles)
	}

	for dir, d := range byDir {
		d.AverageScore = dirTotals[dir] / float64(d.TotalProfiles)
		s.ByDirectory = append(s.ByDirectory, *d)
	}
	sort.Slice(s.ByDirectory, func(i, j int) bool {
		return s.ByDirectory[i].Directory < s.ByDirectory[j].Directory
	})

	return s
}

// RecordFilter selects comparison records. Nil fields match everything.
type RecordFilter struct {
	Directory  *string
	NameStatus *Status
}

// FilterRecords returns the records matching filter, preserving order.
func FilterRecords(records []*ComparisonRecord, filter RecordFilter) []*ComparisonRecord {
	var out []*ComparisonRecord
	for _, rec := range records {
		if filter.Directory != nil && rec.Directory != *filter.Directory {
			continue
		}
		if filter.NameStatus != nil && rec.Comparisons[FieldName].Status != *filter.NameStatus {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ResultWriter writes flattened results in a tabular file format.
type ResultWriter interface {
	WriteResults(w io.Writer, rows []ResultRow) error
}
