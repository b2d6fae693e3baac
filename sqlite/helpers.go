package sqlite

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/diraudit"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// formatTime formats t as UTC RFC3339 with sub-second precision.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// writeScraped feeds the scraped values of rec to d, separated by NUL bytes.
func writeScraped(d *xxhash.Digest, rec *diraudit.ComparisonRecord) {
	for _, f := range []diraudit.Field{diraudit.FieldName, diraudit.FieldPhone, diraudit.FieldAddress, diraudit.FieldWebsite} {
		d.WriteString(rec.Comparisons[f].Scraped)
		d.Write([]byte{0})
	}
	d.WriteString(rec.ProfileURL)
	d.Write([]byte{0})
	d.WriteString(rec.ScrapedAddress)
	d.Write([]byte{0})
	d.WriteString(rec.ScrapedSpecialty)
	d.Write([]byte{0})
	if rec.HasPhoto {
		d.Write([]byte{1})
	} else {
		d.Write([]byte{0})
	}
}

// hashRecord computes an xxHash of the scraped values of rec as a hex string.
func hashRecord(rec *diraudit.ComparisonRecord) string {
	d := xxhash.New()
	writeScraped(d, rec)
	return hexSum(d)
}

func hexSum(d *xxhash.Digest) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, d.Sum64())
	return hex.EncodeToString(b)
}
