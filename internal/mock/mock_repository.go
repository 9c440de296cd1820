package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dump-analysis/internal/repository"
	"github.com/dump-analysis/pkg/model"
)

// MockRunRepository is a mock implementation of the RunRepository
// interface.
type MockRunRepository struct {
	mock.Mock
}

// CreateRun mocks the CreateRun method.
func (m *MockRunRepository) CreateRun(ctx context.Context, run *repository.AnalysisRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// MarkRunning mocks the MarkRunning method.
func (m *MockRunRepository) MarkRunning(ctx context.Context, taskUUID string) error {
	args := m.Called(ctx, taskUUID)
	return args.Error(0)
}

// CompleteRun mocks the CompleteRun method.
func (m *MockRunRepository) CompleteRun(ctx context.Context, taskUUID string, resp *model.AnalysisResponse, summary map[string]interface{}) error {
	args := m.Called(ctx, taskUUID, resp, summary)
	return args.Error(0)
}

// FailRun mocks the FailRun method.
func (m *MockRunRepository) FailRun(ctx context.Context, taskUUID string, statusInfo string) error {
	args := m.Called(ctx, taskUUID, statusInfo)
	return args.Error(0)
}

// GetRunByUUID mocks the GetRunByUUID method.
func (m *MockRunRepository) GetRunByUUID(ctx context.Context, taskUUID string) (*repository.AnalysisRun, error) {
	args := m.Called(ctx, taskUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AnalysisRun), args.Error(1)
}

// ListRecentRuns mocks the ListRecentRuns method.
func (m *MockRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*repository.AnalysisRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.AnalysisRun), args.Error(1)
}

// ExpectCreateRun sets up an expectation for any CreateRun call.
func (m *MockRunRepository) ExpectCreateRun(err error) *mock.Call {
	return m.On("CreateRun", mock.Anything, mock.Anything).Return(err)
}

// ExpectMarkRunning sets up an expectation for MarkRunning.
func (m *MockRunRepository) ExpectMarkRunning(taskUUID string, err error) *mock.Call {
	return m.On("MarkRunning", mock.Anything, taskUUID).Return(err)
}
