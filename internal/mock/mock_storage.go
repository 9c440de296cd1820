// Package mock provides testify-based mocks for the storage and
// repository interfaces.
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

// FetchInput mocks the FetchInput method.
func (m *MockStorage) FetchInput(ctx context.Context, key string, destDir string) (string, error) {
	args := m.Called(ctx, key, destDir)
	return args.String(0), args.Error(1)
}

// StoreArtifact mocks the StoreArtifact method.
func (m *MockStorage) StoreArtifact(ctx context.Context, key string, localPath string) error {
	args := m.Called(ctx, key, localPath)
	return args.Error(0)
}

// Exists mocks the Exists method.
func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// URL mocks the URL method.
func (m *MockStorage) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// ExpectStoreArtifact sets up an expectation for StoreArtifact.
func (m *MockStorage) ExpectStoreArtifact(key string, err error) *mock.Call {
	return m.On("StoreArtifact", mock.Anything, key, mock.Anything).Return(err)
}

// ExpectAnyStoreArtifact sets up an expectation for any StoreArtifact call.
func (m *MockStorage) ExpectAnyStoreArtifact(err error) *mock.Call {
	return m.On("StoreArtifact", mock.Anything, mock.Anything, mock.Anything).Return(err)
}

// ExpectFetchInput sets up an expectation for FetchInput.
func (m *MockStorage) ExpectFetchInput(key, localPath string, err error) *mock.Call {
	return m.On("FetchInput", mock.Anything, key, mock.Anything).Return(localPath, err)
}
