// Package projectconfig extracts the declared engine version from project settings files.
package projectconfig

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// VersionKey is the top-level settings key holding the engine version.
const VersionKey = "version"

// Reader implements ports.VersionReader.
type Reader struct{}

// New creates a new Reader.
func New() *Reader {
	return &Reader{}
}

// ReadVersion returns the version declared in the settings file at path.
func (r *Reader) ReadVersion(path string, respectVersion bool, defaultVersion string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if version := extractVersion(path, data); version != "" {
		return version, nil
	}
	if respectVersion {
		return "", nil
	}
	return defaultVersion, nil
}

// extractVersion returns "" when the version is absent, not a string, or the file is malformed.
func extractVersion(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return ""
		}
		return stringValue(doc[VersionKey])
	case ".toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return ""
		}
		return stringValue(doc[VersionKey])
	case ".json":
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return ""
		}
		return stringValue(doc[VersionKey])
	default:
		if version, ok := hclVersion(path, data); ok {
			return version
		}
		return scanVersion(data)
	}
}

func stringValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// hclVersion reads the version attribute with the HCL native syntax. ok is false when
// the file is not valid HCL, so the caller can fall back to a line scan.
func hclVersion(path string, data []byte) (string, bool) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return "", false
	}

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: VersionKey}},
	})
	if diags.HasErrors() {
		return "", true
	}
	attr, ok := content.Attributes[VersionKey]
	if !ok {
		return "", true
	}

	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || !val.IsKnown() || val.IsNull() || !val.Type().Equals(cty.String) {
		return "", true
	}
	return strings.TrimSpace(val.AsString()), true
}

var versionLine = regexp.MustCompile(`^\s*"?version"?\s*[=:]\s*(?:"([^"]*)"|([^\s"#/,{}\[\]]+))\s*(?:(?:#|//).*)?,?\s*$`)

// scanVersion finds a top-level `version = x` or `version: "x"` line in HOCON-style files.
func scanVersion(data []byte) string {
	depth := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if depth == 0 {
			if m := versionLine.FindStringSubmatch(line); m != nil {
				return strings.TrimSpace(m[1] + m[2])
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
	}
	return ""
}
