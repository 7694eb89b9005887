package release_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fmtpin/internal/adapters/release"
	"go.trai.ch/fmtpin/internal/adapters/telemetry/progrock"
	"go.trai.ch/fmtpin/internal/core/domain"
)

var (
	engineBin = []byte("#!/bin/sh\necho engine\n")
	engineLib = []byte("library payload")
)

func digest(data []byte) string {
	return release.FormatDigest(xxhash.Sum64(data))
}

type releaseServer struct {
	*httptest.Server
	requests atomic.Int32
}

// newReleaseServer serves version 3.7.15 with a manifest listing an executable and a library.
// The library is served from a sibling path to exercise relative URL resolution.
func newReleaseServer(t *testing.T, mutate func(m *release.Manifest)) *releaseServer {
	t.Helper()

	m := release.Manifest{
		Version: "3.7.15",
		Artifacts: []release.Artifact{
			{Name: "engine", URL: "engine", XXHash: digest(engineBin), Executable: true},
			{Name: "engine.lib", URL: "../shared/engine.lib", XXHash: digest(engineLib)},
		},
	}
	if mutate != nil {
		mutate(&m)
	}
	manifest, err := json.Marshal(m)
	require.NoError(t, err)

	rs := &releaseServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/engine/3.7.15/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(manifest)
	})
	mux.HandleFunc("/engine/3.7.15/engine", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(engineBin)
	})
	mux.HandleFunc("/engine/shared/engine.lib", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(engineLib)
	})
	mux.HandleFunc("/engine/5.0.0/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func newAcquirer(t *testing.T, srv *releaseServer, cacheDir string) *release.Acquirer {
	t.Helper()
	a, err := release.NewAcquirerWithClient(cacheDir, srv.URL+"/engine/", progrock.New(), srv.Client())
	require.NoError(t, err)
	return a
}

func TestAcquirer_Download(t *testing.T) {
	srv := newReleaseServer(t, nil)
	cacheDir := t.TempDir()
	a := newAcquirer(t, srv, cacheDir)

	var progress bytes.Buffer
	artifacts, err := a.Download(context.Background(), "v3.7.15", &progress)
	require.NoError(t, err)

	dir := filepath.Join(cacheDir, "3.7.15")
	assert.Equal(t, "3.7.15", artifacts.Version)
	assert.Equal(t, []string{filepath.Join(dir, "engine"), filepath.Join(dir, "engine.lib")}, artifacts.Locations)

	data, err := os.ReadFile(filepath.Join(dir, "engine"))
	require.NoError(t, err)
	assert.Equal(t, engineBin, data)

	info, err := os.Stat(filepath.Join(dir, "engine"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "engine must be executable")

	info, err = os.Stat(filepath.Join(dir, "engine.lib"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&0o111)

	assert.FileExists(t, filepath.Join(dir, release.ManifestFile))
	assert.Contains(t, progress.String(), "3.7.15 engine: verified")
	assert.Contains(t, progress.String(), "3.7.15 engine.lib: verified")
}

func TestAcquirer_Download_ReusesCacheOffline(t *testing.T) {
	srv := newReleaseServer(t, nil)
	cacheDir := t.TempDir()

	first, err := newAcquirer(t, srv, cacheDir).Download(context.Background(), "3.7.15", nil)
	require.NoError(t, err)
	requests := srv.requests.Load()

	srv.Close()

	second, err := newAcquirer(t, srv, cacheDir).Download(context.Background(), "3.7.15", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, requests, srv.requests.Load())
}

func TestAcquirer_Download_RepairsCorruptedCache(t *testing.T) {
	srv := newReleaseServer(t, nil)
	cacheDir := t.TempDir()
	a := newAcquirer(t, srv, cacheDir)

	_, err := a.Download(context.Background(), "3.7.15", nil)
	require.NoError(t, err)

	libPath := filepath.Join(cacheDir, "3.7.15", "engine.lib")
	require.NoError(t, os.WriteFile(libPath, []byte("tampered"), 0o600))

	var progress bytes.Buffer
	_, err = a.Download(context.Background(), "3.7.15", &progress)
	require.NoError(t, err)

	data, err := os.ReadFile(libPath)
	require.NoError(t, err)
	assert.Equal(t, engineLib, data)
	assert.Contains(t, progress.String(), "3.7.15 engine: cached")
}

func TestAcquirer_Download_Errors(t *testing.T) {
	tests := []struct {
		name    string
		version string
		mutate  func(m *release.Manifest)
		wantIs  error
		wantMsg string
	}{
		{name: "UnknownVersion", version: "9.9.9", wantIs: domain.ErrVersionNotFound},
		{name: "InvalidVersion", version: "latest", wantIs: domain.ErrVersionNotFound},
		{name: "ServerError", version: "5.0.0", wantMsg: domain.ErrDownloadFailed.Error()},
		{
			name:    "ChecksumMismatch",
			version: "3.7.15",
			mutate:  func(m *release.Manifest) { m.Artifacts[1].XXHash = "0000000000000000" },
			wantIs:  domain.ErrChecksumMismatch,
		},
		{
			name:    "ManifestVersionMismatch",
			version: "3.7.15",
			mutate:  func(m *release.Manifest) { m.Version = "3.7.14" },
			wantMsg: domain.ErrInvalidManifest.Error(),
		},
		{
			name:    "UnsafeArtifactName",
			version: "3.7.15",
			mutate:  func(m *release.Manifest) { m.Artifacts[0].Name = "../escape" },
			wantMsg: domain.ErrInvalidManifest.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newReleaseServer(t, tt.mutate)
			cacheDir := t.TempDir()

			_, err := newAcquirer(t, srv, cacheDir).Download(context.Background(), tt.version, nil)
			require.Error(t, err)
			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.NoFileExists(t, filepath.Join(cacheDir, tt.version, release.ManifestFile))
		})
	}
}

func TestAcquirer_Download_InvalidVersionMakesNoRequest(t *testing.T) {
	srv := newReleaseServer(t, nil)

	_, err := newAcquirer(t, srv, t.TempDir()).Download(context.Background(), "not-a-version", nil)
	require.ErrorIs(t, err, domain.ErrVersionNotFound)
	assert.Zero(t, srv.requests.Load())
}

func TestNew_CacheDirNotCreatable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := release.New(filepath.Join(file, "cache"), "http://localhost", progrock.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrCacheCreateFailed.Error())
}
