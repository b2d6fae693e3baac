package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/diraudit"
	"github.com/fwojciec/diraudit/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateRun compares archiving a full run with and without WAL mode.
// This simulates a roster of 100 doctors audited against five directories.
func BenchmarkCreateRun(b *testing.B) {
	const recordsPerRun = 500

	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkCreateRun(b, false, recordsPerRun)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkCreateRun(b, true, recordsPerRun)
	})
}

func benchmarkCreateRun(b *testing.B, useWAL bool, recordsPerRun int) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")
	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	mode := "DELETE"
	if useWAL {
		mode = "WAL"
	}
	_, err := db.ExecContext(ctx, "PRAGMA journal_mode = "+mode)
	require.NoError(b, err)

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	records := make([]*diraudit.ComparisonRecord, recordsPerRun)
	for i := range records {
		name := fmt.Sprintf("Dr. Doctor %d", i)
		records[i] = &diraudit.ComparisonRecord{
			DoctorName: name,
			Directory:  "vitals.com",
			ProfileURL: fmt.Sprintf("https://www.vitals.com/doctors/%d", i),
			Comparisons: map[diraudit.Field]diraudit.FieldVerdict{
				diraudit.FieldName: {Status: diraudit.StatusMatch, Score: 0.9, Original: name, Scraped: name},
			},
			ScrapedAddress: fmt.Sprintf("%d Main St, Boston, MA", i),
			OverallScore:   0.9,
		}
	}

	svc := sqlite.NewRunService(db)
	now := time.Now()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		run := &diraudit.Run{
			RosterPath: "roster.csv",
			Doctors:    recordsPerRun / 5,
			StartedAt:  now,
			FinishedAt: now,
		}
		if err := svc.CreateRun(ctx, run, records); err != nil {
			b.Fatal(err)
		}
	}
}
