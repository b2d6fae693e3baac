package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/diraudit"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ diraudit.RunService = (*RunService)(nil)

// RunService implements diraudit.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores run and its records in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *diraudit.Run, records []*diraudit.ComparisonRecord) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.Records = len(records)

	hashes := make([]string, len(records))
	fp := xxhash.New()
	for i, rec := range records {
		hashes[i] = hashRecord(rec)
		fp.WriteString(hashes[i])
	}
	run.Fingerprint = hexSum(fp)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, roster_path, doctors, records, fingerprint, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.RosterPath, run.Doctors, run.Records, run.Fingerprint,
		formatTime(run.StartedAt), formatTime(run.FinishedAt))
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO comparisons (run_id, position, doctor_name, location, original_website, directory,
			profile_url, verdicts, scraped_address, scraped_specialty, has_photo, overall_score, error, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range records {
		verdicts, err := json.Marshal(rec.Comparisons)
		if err != nil {
			return fmt.Errorf("failed to encode verdicts: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, rec.DoctorName, rec.Location, rec.OriginalWebsite,
			rec.Directory, rec.ProfileURL, string(verdicts), rec.ScrapedAddress, rec.ScrapedSpecialty,
			rec.HasPhoto, rec.OverallScore, rec.Error, hashes[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*diraudit.Run, error) {
	runs, err := s.FindRuns(ctx, diraudit.RunFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, diraudit.Errorf(diraudit.ENOTFOUND, "run not found")
	}
	return runs[0], nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter diraudit.RunFilter) ([]*diraudit.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, roster_path, doctors, records, fingerprint, started_at, finished_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.RosterPath != nil {
		query.WriteString(" AND roster_path = ?")
		args = append(args, *filter.RosterPath)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*diraudit.Run
	for rows.Next() {
		var run diraudit.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.RosterPath, &run.Doctors, &run.Records, &run.Fingerprint,
			&startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindRecords retrieves the records of a run in their original order.
func (s *RunService) FindRecords(ctx context.Context, runID string) ([]*diraudit.ComparisonRecord, error) {
	if _, err := s.FindRunByID(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT doctor_name, location, original_website, directory, profile_url, verdicts,
			scraped_address, scraped_specialty, has_photo, overall_score, error
		FROM comparisons
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*diraudit.ComparisonRecord{}
	for rows.Next() {
		var rec diraudit.ComparisonRecord
		var verdicts string

		if err := rows.Scan(&rec.DoctorName, &rec.Location, &rec.OriginalWebsite, &rec.Directory,
			&rec.ProfileURL, &verdicts, &rec.ScrapedAddress, &rec.ScrapedSpecialty, &rec.HasPhoto,
			&rec.OverallScore, &rec.Error); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(verdicts), &rec.Comparisons); err != nil {
			return nil, fmt.Errorf("failed to decode verdicts: %w", err)
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}

// DeleteRun permanently removes a run and its records.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return diraudit.Errorf(diraudit.ENOTFOUND, "run not found")
	}

	return nil
}
