package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fmtpin/internal/adapters/telemetry/progrock"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_DownloadVertex(t *testing.T) {
	recorder := progrock.New()
	ctx := context.Background()

	_, vertex := recorder.Record(ctx, "download 3.7.15")
	_, err := vertex.Stdout().Write([]byte("engine.wasm 1024 bytes\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("retrying\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	_, failed := recorder.Record(ctx, "download 9.9.9")
	failed.Complete(errors.New("engine version not found"))

	_, cached := recorder.Record(ctx, "download 1.0.0")
	cached.Cached()
	cached.Complete(nil)

	require.NoError(t, recorder.Close())
}
