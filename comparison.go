package diraudit

// Status is the outcome of comparing one field.
type Status string

// Field comparison statuses. Missing means at least one side was empty.
const (
	StatusMatch    Status = "Match"
	StatusMismatch Status = "Mismatch"
	StatusMissing  Status = "Missing"
)

// Field names a compared profile field.
type Field string

// Compared fields.
const (
	FieldName    Field = "name"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
	FieldWebsite Field = "website"
)

// NoResultsURL is the ProfileURL of the placeholder record produced when
// a directory search found nothing for a doctor.
const NoResultsURL = "No results found"

// noResultsError is the Error of the placeholder record.
const noResultsError = "No search results found"

// FieldVerdict is the result of comparing one field between a roster entry
// and a directory profile.
type FieldVerdict struct {
	Status   Status  `json:"status"`
	Score    float64 `json:"score"`
	Original string  `json:"original"`
	Scraped  string  `json:"scraped"`
}

// ComparisonRecord is one row of audit output: one doctor, one directory,
// one profile URL.
type ComparisonRecord struct {
	DoctorName      string `json:"doctorName"`
	Location        string `json:"location"`
	OriginalWebsite string `json:"originalWebsite"`
	Directory       string `json:"directory"`
	ProfileURL      string `json:"profileUrl"`

	// Comparisons holds a verdict per evaluated field. Phone is present
	// only when the roster entry supplied a phone.
	Comparisons map[Field]FieldVerdict `json:"comparisons"`

	// Scraped values carried through for display; not scored.
	ScrapedAddress   string `json:"scrapedAddress"`
	ScrapedSpecialty string `json:"scrapedSpecialty"`
	HasPhoto         bool   `json:"hasPhoto"`

	OverallScore float64 `json:"overallScore"`
	Error        string  `json:"error,omitempty"`
}

// NoResults reports whether the record is a "no search results" placeholder.
func (r *ComparisonRecord) NoResults() bool {
	return r.ProfileURL == NoResultsURL
}

// NewNoResultsRecord returns the placeholder record for a directory where
// the search found no candidate profiles. Its overall score is 0.0.
func NewNoResultsRecord(entry *RosterEntry, directory string) *ComparisonRecord {
	return &ComparisonRecord{
		DoctorName:      entry.Name,
		Location:        entry.Location,
		OriginalWebsite: entry.Website,
		Directory:       directory,
		ProfileURL:      NoResultsURL,
		Comparisons:     map[Field]FieldVerdict{},
		OverallScore:    0.0,
		Error:           noResultsError,
	}
}

// OverallScore returns the mean of all verdict scores strictly greater
// than zero, or 0.0 when there are none.
func OverallScore(verdicts map[Field]FieldVerdict) float64 {
	var sum float64
	var n int
	for _, v := range verdicts {
		if v.Score > 0 {
			sum += v.Score
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}

// Thresholds holds the minimum similarity scores for fuzzy matches.
type Thresholds struct {
	Name    float64 `json:"name"`
	Address float64 `json:"address"`
}

// DefaultThresholds returns the default match thresholds. Addresses use a
// lower threshold because their formatting varies more across sources.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Name:    0.7,
		Address: 0.6,
	}
}

// Validate returns an error if a threshold is outside [0, 1].
func (t Thresholds) Validate() error {
	if t.Name < 0 || t.Name > 1 {
		return Errorf(EINVALID, "name threshold must be between 0 and 1")
	}
	if t.Address < 0 || t.Address > 1 {
		return Errorf(EINVALID, "address threshold must be between 0 and 1")
	}
	return nil
}

// ProfileComparer scores a directory profile against a roster entry.
type ProfileComparer interface {
	// CompareProfiles compares raw against entry. It never fails.
	CompareProfiles(entry *RosterEntry, raw *RawProfile) *ComparisonRecord
}
