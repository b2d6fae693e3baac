package diraudit

import "context"

// Roster column names. Name, Location and Website are required.
const (
	ColumnName     = "Name"
	ColumnLocation = "Location"
	ColumnWebsite  = "Website"
	ColumnPhone    = "Phone"
)

// RequiredColumns lists the roster columns that must be present.
var RequiredColumns = []string{ColumnName, ColumnLocation, ColumnWebsite}

// RosterEntry is one doctor's source-of-truth contact details.
type RosterEntry struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Website  string `json:"website"`

	// Phone is nil when the roster has no Phone column at all.
	// An empty string means the column exists but the cell is blank.
	Phone *string `json:"phone,omitempty"`
}

// Validate returns an error if the entry is missing required fields.
func (e *RosterEntry) Validate() error {
	if e.Name == "" {
		return Errorf(EINVALID, "roster entry name required")
	}
	if e.Location == "" {
		return Errorf(EINVALID, "roster entry location required")
	}
	return nil
}

// HasPhone reports whether the roster supplied a phone value for the entry.
func (e *RosterEntry) HasPhone() bool {
	return e.Phone != nil
}

// RosterLoader loads roster entries from a file.
type RosterLoader interface {
	// LoadRoster reads all entries from path.
	// Returns EINVALID if a required column or value is missing.
	LoadRoster(ctx context.Context, path string) ([]*RosterEntry, error)
}
