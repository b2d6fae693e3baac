// Package csv loads doctor rosters from CSV and XLSX files and writes
// audit results as CSV.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/diraudit"
	"github.com/jszwec/csvutil"
	"github.com/tealeg/xlsx/v2"
)

var _ diraudit.RosterLoader = (*RosterLoader)(nil)

// rosterRow is one decoded roster line.
type rosterRow struct {
	Name     string `csv:"Name"`
	Location string `csv:"Location"`
	Website  string `csv:"Website"`
	Phone    string `csv:"Phone,omitempty"`
}

// RosterLoader loads rosters from .csv and .xlsx files. The first row is
// the header; column order does not matter and extra columns are ignored.
type RosterLoader struct{}

// NewRosterLoader creates a new RosterLoader.
func NewRosterLoader() *RosterLoader {
	return &RosterLoader{}
}

// LoadRoster reads all entries from path, choosing the format by extension.
func (l *RosterLoader) LoadRoster(ctx context.Context, path string) ([]*diraudit.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening roster: %w", err)
		}
		defer f.Close()
		return DecodeRoster(f)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, diraudit.Errorf(diraudit.EINVALID, "unsupported roster format %q: use .csv or .xlsx", filepath.Ext(path))
	}
}

// DecodeRoster decodes a CSV roster from r.
func DecodeRoster(r io.Reader) ([]*diraudit.RosterEntry, error) {
	cr := stdcsv.NewReader(r)
	cr.TrimLeadingSpace = true
	return decode(cr)
}

func loadXLSX(path string) ([]*diraudit.RosterEntry, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, diraudit.Errorf(diraudit.EINVALID, "opening roster workbook: %v", err)
	}
	if len(f.Sheets) == 0 {
		return nil, diraudit.Errorf(diraudit.EINVALID, "roster workbook has no sheets")
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}
		rows = append(rows, cells)
	}
	return decode(&sliceReader{rows: rows})
}

// recordReader is the subset of *csv.Reader used for decoding. FieldPos
// reports the file line of the record most recently read.
type recordReader interface {
	Read() ([]string, error)
	FieldPos(field int) (line, column int)
}

// sliceReader serves spreadsheet rows, padding or cutting each one to the
// header's width.
type sliceReader struct {
	rows  [][]string
	next  int
	width int
}

func (r *sliceReader) Read() ([]string, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.next]
	r.next++

	if r.width == 0 {
		r.width = len(row)
		return row, nil
	}
	out := make([]string, r.width)
	copy(out, row)
	return out, nil
}

// FieldPos reports the 1-based sheet row of the last row read.
func (r *sliceReader) FieldPos(int) (line, column int) {
	return r.next, 1
}

// decode reads the header from rr, validates the required columns and
// decodes every non-blank row.
func decode(rr recordReader) ([]*diraudit.RosterEntry, error) {
	header, err := rr.Read()
	if errors.Is(err, io.EOF) {
		return nil, diraudit.Errorf(diraudit.EINVALID, "roster is empty")
	} else if err != nil {
		return nil, diraudit.Errorf(diraudit.EINVALID, "reading roster header: %v", err)
	}

	header = normalizeHeader(header)
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, diraudit.Errorf(diraudit.EINVALID, "roster is missing required columns: %s", strings.Join(missing, ", "))
	}
	hasPhone := slices.Contains(header, diraudit.ColumnPhone)

	rows := &skipBlank{next: rr}
	dec, err := csvutil.NewDecoder(rows, header...)
	if err != nil {
		return nil, diraudit.Errorf(diraudit.EINVALID, "reading roster: %v", err)
	}

	var entries []*diraudit.RosterEntry
	for {
		var row rosterRow
		if err := dec.Decode(&row); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, diraudit.Errorf(diraudit.EINVALID, "roster row %d: %v", rows.line, err)
		}

		entry := &diraudit.RosterEntry{
			Name:     strings.TrimSpace(row.Name),
			Location: strings.TrimSpace(row.Location),
			Website:  strings.TrimSpace(row.Website),
		}
		if hasPhone {
			phone := strings.TrimSpace(row.Phone)
			entry.Phone = &phone
		}
		if err := entry.Validate(); err != nil {
			return nil, diraudit.Errorf(diraudit.EINVALID, "roster row %d: %s", rows.line, diraudit.ErrorMessage(err))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// skipBlank drops rows whose cells are all empty and remembers the file
// line of the last row it returned.
type skipBlank struct {
	next recordReader
	line int
}

func (s *skipBlank) Read() ([]string, error) {
	for {
		rec, err := s.next.Read()
		if err != nil {
			return nil, err
		}
		if !blank(rec) {
			s.line, _ = s.next.FieldPos(0)
			return rec, nil
		}
	}
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// normalizeHeader trims whitespace and a UTF-8 byte order mark from each
// column name.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}

func missingColumns(header []string) []string {
	var missing []string
	for _, col := range diraudit.RequiredColumns {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	return missing
}
