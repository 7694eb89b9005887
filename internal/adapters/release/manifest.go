package release

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/zerr"
)

// ManifestFile is the name of the release manifest, both in the index and in the cache.
const ManifestFile = "manifest.json"

// Manifest describes the artifacts of one engine release.
type Manifest struct {
	Version   string     `json:"version"`
	Artifacts []Artifact `json:"artifacts"`
}

// Artifact is one file of a release.
type Artifact struct {
	// Name is the file name in the cache directory.
	Name string `json:"name"`
	// URL is resolved relative to the manifest URL.
	URL string `json:"url"`
	// XXHash is the hex encoded xxhash64 digest of the file.
	XXHash string `json:"xxhash"`
	// Executable marks files installed with the executable bit set.
	Executable bool `json:"executable"`
}

func decodeManifest(data []byte, version string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidManifest.Error())
	}
	if err := m.validate(version); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate(version string) error {
	if m.Version != version {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "validate"), "expected_version", version), "manifest_version", m.Version)
	}
	if len(m.Artifacts) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "validate"), "reason", "no artifacts")
	}

	seen := make(map[string]struct{}, len(m.Artifacts))
	for _, a := range m.Artifacts {
		if a.Name == "" || a.Name == "." || a.Name == ".." || a.Name == ManifestFile ||
			strings.ContainsAny(a.Name, `/\`) {
			return zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "validate"), "artifact", a.Name)
		}
		if _, dup := seen[a.Name]; dup {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "validate"), "artifact", a.Name), "reason", "duplicate name")
		}
		seen[a.Name] = struct{}{}
		if a.URL == "" || a.XXHash == "" {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "validate"), "artifact", a.Name), "reason", "missing url or digest")
		}
	}
	return nil
}

// locations returns the cache paths of the artifacts in manifest order.
func (m *Manifest) locations(dir string) []string {
	locs := make([]string, 0, len(m.Artifacts))
	for _, a := range m.Artifacts {
		locs = append(locs, filepath.Join(dir, a.Name))
	}
	return locs
}

// loadCachedManifest reads the manifest stored next to a completed download.
func loadCachedManifest(dir, version string) (*Manifest, bool) {
	//nolint:gosec // Path is constructed from the cache directory and a validated version
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, false
	}
	m, err := decodeManifest(data, version)
	if err != nil {
		return nil, false
	}
	return m, true
}
