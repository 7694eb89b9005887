// Package release implements ports.VersionAcquirer against an HTTP release index
// with a checksum-verified on-disk cache.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

const httpClientTimeout = 5 * time.Minute

// Acquirer implements ports.VersionAcquirer.
type Acquirer struct {
	cacheDir   string
	baseURL    string
	httpClient *http.Client
	telemetry  ports.Telemetry
}

// New creates an Acquirer downloading from baseURL into cacheDir.
func New(cacheDir, baseURL string, telemetry ports.Telemetry) (*Acquirer, error) {
	return newAcquirerWithClient(cacheDir, baseURL, telemetry, &http.Client{Timeout: httpClientTimeout})
}

// newAcquirerWithClient creates an Acquirer with a custom http client (used for testing).
func newAcquirerWithClient(cacheDir, baseURL string, telemetry ports.Telemetry, client *http.Client) (*Acquirer, error) {
	cleanPath := filepath.Clean(cacheDir)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", cleanPath)
	}

	return &Acquirer{
		cacheDir:   cleanPath,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		telemetry:  telemetry,
	}, nil
}

// Download makes the artifacts of version available in the cache. Intact cached
// artifacts are reused without network access.
func (a *Acquirer) Download(ctx context.Context, version string, progress io.Writer) (_ domain.Artifacts, err error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if !semver.IsValid("v" + version) {
		return domain.Artifacts{}, zerr.With(zerr.Wrap(domain.ErrVersionNotFound, "invalid version"), "version", version)
	}

	ctx, vertex := a.telemetry.Record(ctx, "download engine "+version)
	defer func() { vertex.Complete(err) }()

	if progress == nil {
		progress = io.Discard
	}
	out := &syncWriter{w: io.MultiWriter(progress, vertex.Stdout())}

	dir := filepath.Join(a.cacheDir, version)
	if m, ok := loadCachedManifest(dir, version); ok && allIntact(dir, m) {
		vertex.Cached()
		return domain.Artifacts{Version: version, Locations: m.locations(dir)}, nil
	}

	manifestURL, m, raw, err := a.fetchManifest(ctx, version)
	if err != nil {
		return domain.Artifacts{}, err
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.Artifacts{}, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", dir)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, artifact := range m.Artifacts {
		g.Go(func() error {
			dest := filepath.Join(dir, artifact.Name)
			if intact(dest, artifact) {
				_, _ = fmt.Fprintf(out, "%s %s: cached\n", version, artifact.Name)
				return nil
			}
			return a.fetchArtifact(gctx, manifestURL, dest, artifact, version, out)
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Artifacts{}, err
	}

	// The manifest is written last: its presence marks a complete download.
	if err := atomicWriteFile(filepath.Join(dir, ManifestFile), domain.FilePerm, func(w io.Writer) error {
		_, err := w.Write(raw)
		return err
	}); err != nil {
		return domain.Artifacts{}, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "version", version)
	}

	return domain.Artifacts{Version: version, Locations: m.locations(dir)}, nil
}

// fetchManifest queries the release index for the manifest of version.
func (a *Acquirer) fetchManifest(ctx context.Context, version string) (*url.URL, *Manifest, []byte, error) {
	raw := fmt.Sprintf("%s/%s/%s", a.baseURL, url.PathEscape(version), ManifestFile)
	manifestURL, err := url.Parse(raw)
	if err != nil {
		return nil, nil, nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", raw)
	}

	body, err := a.get(ctx, manifestURL.String(), version)
	if err != nil {
		return nil, nil, nil, err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", raw)
	}

	m, err := decodeManifest(data, version)
	if err != nil {
		return nil, nil, nil, zerr.With(err, "url", raw)
	}

	// Store a normalized copy so the cached manifest decodes the same way.
	normalized, err := json.Marshal(m)
	if err != nil {
		return nil, nil, nil, zerr.Wrap(err, domain.ErrInvalidManifest.Error())
	}
	return manifestURL, m, normalized, nil
}

// fetchArtifact downloads one artifact, verifying its digest before it becomes visible at dest.
func (a *Acquirer) fetchArtifact(
	ctx context.Context,
	manifestURL *url.URL,
	dest string,
	artifact Artifact,
	version string,
	out io.Writer,
) error {
	ref, err := url.Parse(artifact.URL)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidManifest.Error()), "artifact", artifact.Name)
	}
	source := manifestURL.ResolveReference(ref).String()

	_, _ = fmt.Fprintf(out, "%s %s: downloading %s\n", version, artifact.Name, source)

	body, err := a.get(ctx, source, version)
	if err != nil {
		return zerr.With(err, "artifact", artifact.Name)
	}
	defer func() { _ = body.Close() }()

	perm := os.FileMode(domain.FilePerm)
	if artifact.Executable {
		perm = domain.ExecPerm
	}

	var size int64
	err = atomicWriteFile(dest, perm, func(w io.Writer) error {
		digest := xxhash.New()
		n, err := io.Copy(io.MultiWriter(w, digest), body)
		if err != nil {
			return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
		}
		size = n
		if got := formatDigest(digest.Sum64()); !strings.EqualFold(got, artifact.XXHash) {
			checksumErr := zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, artifact.Name), "expected", artifact.XXHash)
			return zerr.With(checksumErr, "actual", got)
		}
		return nil
	})
	if err != nil {
		return zerr.With(zerr.With(err, "artifact", artifact.Name), "version", version)
	}

	_, _ = fmt.Fprintf(out, "%s %s: verified %d bytes\n", version, artifact.Name, size)
	return nil
}

// get performs a GET request. 404 responses map to domain.ErrVersionNotFound.
func (a *Acquirer) get(ctx context.Context, target, version string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", target)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", target)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		notFoundErr := zerr.With(zerr.Wrap(domain.ErrVersionNotFound, "release index"), "version", version)
		return nil, zerr.With(notFoundErr, "url", target)
	case resp.StatusCode != http.StatusOK:
		_ = resp.Body.Close()
		apiErr := zerr.With(zerr.Wrap(domain.ErrDownloadFailed, "unexpected status"), "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "url", target)
	}
	return resp.Body, nil
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// intact reports whether path exists and matches the artifact digest.
func intact(path string, artifact Artifact) bool {
	//nolint:gosec // Path is constructed from the cache directory and a validated artifact name
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return false
	}
	return strings.EqualFold(formatDigest(digest.Sum64()), artifact.XXHash)
}

func allIntact(dir string, m *Manifest) bool {
	for _, artifact := range m.Artifacts {
		if !intact(filepath.Join(dir, artifact.Name), artifact) {
			return false
		}
	}
	return true
}

// atomicWriteFile writes to a temp file in the destination directory and renames it into place.
func atomicWriteFile(path string, perm os.FileMode, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmpFile); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// syncWriter serializes writes from concurrent downloads.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
