package mock

import (
	"context"

	"github.com/fwojciec/diraudit"
)

var _ diraudit.RunService = (*RunService)(nil)

// RunService is a mock implementation of diraudit.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *diraudit.Run, records []*diraudit.ComparisonRecord) error
	FindRunByIDFn func(ctx context.Context, id string) (*diraudit.Run, error)
	FindRunsFn    func(ctx context.Context, filter diraudit.RunFilter) ([]*diraudit.Run, error)
	FindRecordsFn func(ctx context.Context, runID string) ([]*diraudit.ComparisonRecord, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *diraudit.Run, records []*diraudit.ComparisonRecord) error {
	return s.CreateRunFn(ctx, run, records)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*diraudit.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter diraudit.RunFilter) ([]*diraudit.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindRecords(ctx context.Context, runID string) ([]*diraudit.ComparisonRecord, error) {
	return s.FindRecordsFn(ctx, runID)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
