package csv

import (
	stdcsv "encoding/csv"
	"io"

	"github.com/fwojciec/diraudit"
	"github.com/jszwec/csvutil"
)

var _ diraudit.ResultWriter = (*Writer)(nil)

// Writer writes result rows as CSV with a header line.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteResults writes rows to w. An empty result still gets a header.
func (cw *Writer) WriteResults(w io.Writer, rows []diraudit.ResultRow) error {
	out := stdcsv.NewWriter(w)
	enc := csvutil.NewEncoder(out)

	var err error
	if len(rows) == 0 {
		err = enc.EncodeHeader(diraudit.ResultRow{})
	} else {
		err = enc.Encode(rows)
	}
	if err != nil {
		return err
	}

	out.Flush()
	return out.Error()
}
