package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/diraudit"
	"github.com/fwojciec/diraudit/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newRun(roster string, started time.Time) *diraudit.Run {
	return &diraudit.Run{
		RosterPath: roster,
		Doctors:    1,
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
	}
}

func sampleRecords() []*diraudit.ComparisonRecord {
	entry := &diraudit.RosterEntry{Name: "Dr. Jane Smith", Location: "Boston, MA", Website: "https://janesmith.com"}
	return []*diraudit.ComparisonRecord{
		{
			DoctorName:      entry.Name,
			Location:        entry.Location,
			OriginalWebsite: entry.Website,
			Directory:       "vitals.com",
			ProfileURL:      "https://www.vitals.com/doctors/jane",
			Comparisons: map[diraudit.Field]diraudit.FieldVerdict{
				diraudit.FieldName:    {Status: diraudit.StatusMatch, Score: 0.9, Original: entry.Name, Scraped: "Jane Smith"},
				diraudit.FieldWebsite: {Status: diraudit.StatusMissing, Score: 0, Original: entry.Website},
			},
			ScrapedAddress:   "1 Main St",
			ScrapedSpecialty: "Cardiology",
			HasPhoto:         true,
			OverallScore:     0.9,
		},
		diraudit.NewNoResultsRecord(entry, "webmd.com"),
	}
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, record count and fingerprint", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		run := newRun("roster.csv", time.Now())

		err := svc.CreateRun(context.Background(), run, sampleRecords())
		require.NoError(t, err)

		assert.NotEmpty(t, run.ID)
		assert.Equal(t, 2, run.Records)
		assert.Len(t, run.Fingerprint, 16)
	})

	t.Run("equal scraped data yields equal fingerprints", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		first := newRun("roster.csv", time.Now())
		require.NoError(t, svc.CreateRun(ctx, first, sampleRecords()))
		second := newRun("roster.csv", time.Now())
		require.NoError(t, svc.CreateRun(ctx, second, sampleRecords()))

		changed := sampleRecords()
		changed[0].ScrapedAddress = "2 Main St"
		third := newRun("roster.csv", time.Now())
		require.NoError(t, svc.CreateRun(ctx, third, changed))

		assert.Equal(t, first.Fingerprint, second.Fingerprint)
		assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &diraudit.Run{}, nil)
		require.Error(t, err)
		assert.Equal(t, diraudit.EINVALID, diraudit.ErrorCode(err))
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns run when found", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		started := time.Date(2026, 3, 1, 9, 30, 0, 123000000, time.UTC)
		run := newRun("roster.csv", started)
		require.NoError(t, svc.CreateRun(ctx, run, sampleRecords()))

		found, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, found.ID)
		assert.Equal(t, "roster.csv", found.RosterPath)
		assert.Equal(t, 1, found.Doctors)
		assert.Equal(t, 2, found.Records)
		assert.Equal(t, run.Fingerprint, found.Fingerprint)
		assert.True(t, started.Equal(found.StartedAt))
		assert.True(t, started.Add(time.Minute).Equal(found.FinishedAt))
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		_, err := svc.FindRunByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, diraudit.ENOTFOUND, diraudit.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns runs newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		older := newRun("a.csv", base)
		newer := newRun("b.csv", base.Add(time.Hour))
		require.NoError(t, svc.CreateRun(ctx, older, nil))
		require.NoError(t, svc.CreateRun(ctx, newer, nil))

		runs, err := svc.FindRuns(ctx, diraudit.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, newer.ID, runs[0].ID)
		assert.Equal(t, older.ID, runs[1].ID)
	})

	t.Run("filters by roster path", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.CreateRun(ctx, newRun("a.csv", time.Now()), nil))
		require.NoError(t, svc.CreateRun(ctx, newRun("b.csv", time.Now()), nil))

		path := "b.csv"
		runs, err := svc.FindRuns(ctx, diraudit.RunFilter{RosterPath: &path})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "b.csv", runs[0].RosterPath)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		var ids []string
		for i := range 3 {
			run := newRun("a.csv", base.Add(time.Duration(i)*time.Hour))
			require.NoError(t, svc.CreateRun(ctx, run, nil))
			ids = append(ids, run.ID)
		}

		runs, err := svc.FindRuns(ctx, diraudit.RunFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, ids[1], runs[0].ID)

		runs, err = svc.FindRuns(ctx, diraudit.RunFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, ids[0], runs[0].ID)
	})
}

func TestRunService_FindRecords(t *testing.T) {
	t.Parallel()

	t.Run("returns records in original order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		records := sampleRecords()
		run := newRun("roster.csv", time.Now())
		require.NoError(t, svc.CreateRun(ctx, run, records))

		found, err := svc.FindRecords(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, records[0], found[0])
		assert.Equal(t, records[1], found[1])
		assert.True(t, found[1].NoResults())
	})

	t.Run("returns empty slice for a run without records", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()

		run := newRun("roster.csv", time.Now())
		require.NoError(t, svc.CreateRun(ctx, run, nil))

		found, err := svc.FindRecords(ctx, run.ID)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		_, err := svc.FindRecords(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, diraudit.ENOTFOUND, diraudit.ErrorCode(err))
	})
}

func TestRunService_DeleteRun(t *testing.T) {
	t.Parallel()

	t.Run("removes run and its records", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := newRun("roster.csv", time.Now())
		require.NoError(t, svc.CreateRun(ctx, run, sampleRecords()))

		require.NoError(t, svc.DeleteRun(ctx, run.ID))

		_, err := svc.FindRunByID(ctx, run.ID)
		assert.Equal(t, diraudit.ENOTFOUND, diraudit.ErrorCode(err))

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comparisons").Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("returns ENOTFOUND for missing run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.DeleteRun(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, diraudit.ENOTFOUND, diraudit.ErrorCode(err))
	})
}
