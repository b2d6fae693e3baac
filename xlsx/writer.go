// Package xlsx writes audit results as Excel workbooks.
package xlsx

import (
	"io"

	"github.com/fwojciec/diraudit"
	"github.com/tealeg/xlsx/v2"
)

var _ diraudit.ResultWriter = (*Writer)(nil)

// DefaultSheetName is the name of the results worksheet.
const DefaultSheetName = "Results"

// Writer writes result rows as a single-sheet workbook.
type Writer struct {
	sheetName string
}

// Option configures a Writer.
type Option func(*Writer)

// WithSheetName sets the worksheet name.
func WithSheetName(name string) Option {
	return func(w *Writer) {
		w.sheetName = name
	}
}

// NewWriter creates a new Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{sheetName: DefaultSheetName}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteResults writes a header row followed by rows to w.
func (xw *Writer) WriteResults(w io.Writer, rows []diraudit.ResultRow) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(xw.sheetName)
	if err != nil {
		return diraudit.Errorf(diraudit.EINVALID, "invalid sheet name %q: %v", xw.sheetName, err)
	}

	addRow(sheet, diraudit.ResultColumns)
	for _, r := range rows {
		addRow(sheet, r.Values())
	}

	return f.Write(w)
}

func addRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
