package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fmtpin/internal/adapters/logger"
	"go.trai.ch/fmtpin/internal/adapters/projectconfig"
	"go.trai.ch/fmtpin/internal/adapters/release"
	"go.trai.ch/fmtpin/internal/adapters/sandbox"
	"go.trai.ch/fmtpin/internal/adapters/telemetry"
	"go.trai.ch/fmtpin/internal/adapters/telemetry/progrock"
	"go.trai.ch/fmtpin/internal/app"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/fmtpin/internal/engine/configcache"
	"go.trai.ch/fmtpin/internal/engine/registry"
)

// engineScript is a toy engine speaking the engine protocol. parse-config
// returns the JSON on a "#json " comment line of the settings file, or an
// empty object. format inserts a space before "{", fails for paths containing
// "crash", and echoes the settings for build scripts.
func engineScript(version string) []byte {
	return fmt.Appendf(nil, `#!/bin/sh
case "$1" in
  version)
    echo %q
    ;;
  parse-config)
    json=$(sed -n 's/^#json //p')
    if [ -n "$json" ]; then printf '%%s' "$json"; else printf '{}'; fi
    ;;
  format)
    case "$2" in
      *crash*) echo "internal error" >&2; exit 3 ;;
      *.sbt) printf '%%s' "$3" ;;
      *) sed 's/\([^ ]\){/\1 {/g' ;;
    esac
    ;;
  *)
    exit 2
    ;;
esac
`, version)
}

type releaseServer struct {
	*httptest.Server
	requests atomic.Int32
}

// newReleaseServer publishes the toy engine under each of versions.
func newReleaseServer(t *testing.T, versions ...string) *releaseServer {
	t.Helper()

	mux := http.NewServeMux()
	for _, v := range versions {
		script := engineScript(v)
		manifest, err := json.Marshal(release.Manifest{
			Version: v,
			Artifacts: []release.Artifact{{
				Name:       "engine",
				URL:        "engine",
				XXHash:     fmt.Sprintf("%016x", xxhash.Sum64(script)),
				Executable: true,
			}},
		})
		require.NoError(t, err)

		mux.HandleFunc("/"+v+"/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(manifest)
		})
		mux.HandleFunc("/"+v+"/engine", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(script)
		})
	}

	rs := &releaseServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(rs.Close)
	return rs
}

// newOrchestrator assembles the real pipeline against srv.
func newOrchestrator(t *testing.T, srv *releaseServer, rep ports.Reporter) *app.Orchestrator {
	t.Helper()

	log, err := logger.New(os.Stderr, "error", logger.FormatText)
	require.NoError(t, err)

	acquirer, err := release.New(filepath.Join(t.TempDir(), "cache"), srv.URL, progrock.New())
	require.NoError(t, err)

	tracer := telemetry.NewNoOpTracer()
	engines := registry.New(acquirer, sandbox.New(true, log), tracer)
	configs := configcache.New(projectconfig.New(), engines, tracer)

	o := app.New(configs, engines, tracer, log, rep, domain.DefaultOptions())
	t.Cleanup(func() { _ = o.Close(context.Background()) })
	return o
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type parsed struct {
	path    string
	version string
}

// recordingReporter keeps every callback for assertions that need polling.
type recordingReporter struct {
	mu     sync.Mutex
	parsed []parsed
	errors []error
}

func (r *recordingReporter) Error(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recordingReporter) MissingVersion(string, string) {}

func (r *recordingReporter) Excluded(string) {}

func (r *recordingReporter) ParsedConfig(path, version string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsed = append(r.parsed, parsed{path: path, version: version})
}

func (r *recordingReporter) DownloadWriter() io.Writer {
	return io.Discard
}

func (r *recordingReporter) parsedVersions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.parsed))
	for _, p := range r.parsed {
		out = append(out, p.version)
	}
	return out
}
