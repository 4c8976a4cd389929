package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte(`{"formId":"F1"}`)
	require.NoError(t, s.Put(ctx, "forms/F1/form_windows_F1.json", data, "application/json"))
	data[0] = 'X'

	got, err := s.Get(ctx, "forms/F1/form_windows_F1.json")
	require.NoError(t, err)
	assert.Equal(t, `{"formId":"F1"}`, string(got))

	_, err = s.Get(ctx, "forms/F2/missing.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNewMinioStoreValidatesConfig(t *testing.T) {
	_, err := NewMinioStore(context.Background(), MinioConfig{Bucket: "b"})
	assert.EqualError(t, err, "storage: minio endpoint is empty")

	_, err = NewMinioStore(context.Background(), MinioConfig{Endpoint: "localhost:9000"})
	assert.EqualError(t, err, "storage: bucket is empty")
}
