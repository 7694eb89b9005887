package projectconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fmtpin/internal/adapters/projectconfig"
	"go.trai.ch/fmtpin/internal/core/domain"
)

func TestReader_ReadVersion(t *testing.T) {
	tests := []struct {
		file     string
		expected string
	}{
		{"hocon.conf", "3.7.15"},
		{"colon.conf", "3.7.15"},
		{"native.hcl", "3.7.15"},
		{"nested.conf", ""},
		{"missing.conf", ""},
		{"version.yaml", "3.7.15"},
		{"numeric.yml", ""},
		{"malformed.yaml", ""},
		{"version.toml", "3.7.15"},
		{"version.json", "3.7.15"},
	}

	r := projectconfig.New()
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			version, err := r.ReadVersion(filepath.Join("testdata", tt.file), true, "1.0.0")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, version)
		})
	}
}

func TestReader_ReadVersion_DefaultWhenNotRespected(t *testing.T) {
	r := projectconfig.New()

	version, err := r.ReadVersion(filepath.Join("testdata", "missing.conf"), false, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", version)

	version, err = r.ReadVersion(filepath.Join("testdata", "hocon.conf"), false, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "3.7.15", version, "a declared version wins over the default")
}

func TestReader_ReadVersion_UnquotedHocon(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".fmtpin.conf")
	require.NoError(t, os.WriteFile(path, []byte("version=3.8.0\nrunner.dialect = scala213\n"), 0o600))

	version, err := projectconfig.New().ReadVersion(path, true, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "3.8.0", version)
}

func TestReader_ReadVersion_Unreadable(t *testing.T) {
	_, err := projectconfig.New().ReadVersion(filepath.Join(t.TempDir(), "absent.conf"), true, "1.0.0")
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), domain.ErrConfigReadFailed.Error())
}
