package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/diraudit"
)

// writeResults exports records to output when set, otherwise writes them
// to stdout in format.
func writeResults(deps *Dependencies, records []*diraudit.ComparisonRecord, output, format string) error {
	rows := diraudit.Flatten(records)

	if output != "" {
		if err := deps.Exporter.Export(deps.Ctx, output, rows); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", diraudit.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %d rows to %s\n", len(rows), output)
		return nil
	}

	if format == "" || format == "text" {
		return writeReport(deps.Stdout, records)
	}

	w, ok := deps.Writers["."+format]
	if !ok {
		return diraudit.Errorf(diraudit.EINVALID, "unsupported format %q", format)
	}
	return w.WriteResults(deps.Stdout, rows)
}

// writeReport prints the summary metrics followed by the results table.
func writeReport(w io.Writer, records []*diraudit.ComparisonRecord) error {
	s := diraudit.Summarize(records)

	fmt.Fprintf(w, "Total profiles: %d\n", s.TotalProfiles)
	fmt.Fprintf(w, "Name matches:   %d\n", s.NameMatches)
	fmt.Fprintf(w, "Average score:  %.2f\n\n", s.AverageScore)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIRECTORY\tPROFILES\tNAME MATCHES\tNO RESULTS\tAVG SCORE")
	for _, d := range s.ByDirectory {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\n", d.Directory, d.TotalProfiles, d.NameMatches, d.NoResults, d.AverageScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCTOR\tDIRECTORY\tSCORE\tNAME\tPHONE\tWEBSITE\tPROFILE")
	for _, r := range diraudit.Flatten(records) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.DoctorName, r.Directory, r.OverallScore,
			cell(r.NameMatch), cell(r.PhoneMatch), cell(r.WebsiteMatch), r.ProfileURL)
	}
	return tw.Flush()
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var _ diraudit.ResultWriter = (*jsonWriter)(nil)

// jsonWriter writes result rows as an indented JSON array.
type jsonWriter struct{}

func (jsonWriter) WriteResults(w io.Writer, rows []diraudit.ResultRow) error {
	if rows == nil {
		rows = []diraudit.ResultRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// parseStatus parses a name status filter, ignoring case. An empty string
// means no filter.
func parseStatus(s string) (*diraudit.Status, error) {
	if s == "" {
		return nil, nil
	}
	for _, st := range []diraudit.Status{diraudit.StatusMatch, diraudit.StatusMismatch, diraudit.StatusMissing} {
		if strings.EqualFold(string(st), s) {
			return &st, nil
		}
	}
	return nil, diraudit.Errorf(diraudit.EINVALID, "invalid name status %q: use Match, Mismatch or Missing", s)
}
