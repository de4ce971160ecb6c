package storage

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectURL(t *testing.T) {
	u := &url.URL{Scheme: "https", Host: "s3.local:9000"}
	assert.Equal(t, "https://s3.local:9000/reports/u1/a1/radar.svg", ObjectURL(u, "reports", "u1/a1/radar.svg"))

	assert.Equal(t, "http://minio/b/k", ObjectURL(&url.URL{Host: "minio"}, "b", "k"))
}

// needs a running MinIO: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY
func TestPutAgainstMinio(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := New(ctx, Options{
		Endpoint:  endpoint,
		Bucket:    "blindspot-test",
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
	})
	require.NoError(t, err)
	require.NoError(t, s.Check(ctx))

	key := uuid.NewString() + "/report.json"
	loc, err := s.Put(ctx, key, "application/json", []byte(`{"ok":true}`))
	require.NoError(t, err)
	assert.Contains(t, loc, key)
}
