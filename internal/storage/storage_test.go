package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dump-analysis/internal/testutil"
	"github.com/dump-analysis/pkg/config"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr string
	}{
		{"nil config", nil, "storage config is nil"},
		{"unknown type", &config.StorageConfig{Type: "s3"}, "unsupported storage type"},
		{"local without path", &config.StorageConfig{Type: "local"}, "local storage path is required"},
		{"cos without bucket", &config.StorageConfig{Type: "cos", Region: "ap-guangzhou", SecretID: "id", SecretKey: "key"}, "COS bucket is required"},
		{"cos without region", &config.StorageConfig{Type: "cos", Bucket: "b", SecretID: "id", SecretKey: "key"}, "COS region is required"},
		{"cos without credentials", &config.StorageConfig{Type: "cos", Bucket: "b", Region: "ap-guangzhou"}, "COS credentials are required"},
		{"valid local", &config.StorageConfig{Type: "local", LocalPath: "/tmp/x"}, ""},
		{"valid cos", &config.StorageConfig{Type: "cos", Bucket: "b", Region: "r", SecretID: "id", SecretKey: "key"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewStorage_Local(t *testing.T) {
	s, err := NewStorage(&config.StorageConfig{Type: "local", LocalPath: testutil.TempDir(t)})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)
}

func TestNewStorage_COS(t *testing.T) {
	s, err := NewStorage(&config.StorageConfig{
		Type:      "cos",
		Bucket:    "dumps-1250000000",
		Region:    "ap-guangzhou",
		SecretID:  "id",
		SecretKey: "key",
	})
	require.NoError(t, err)

	cosStorage, ok := s.(*COSStorage)
	require.True(t, ok)
	assert.Equal(t, "https://dumps-1250000000.cos.ap-guangzhou.myqcloud.com/task/a.txt", cosStorage.URL("task/a.txt"))
}
