package domain

import (
	"path/filepath"
	"strings"
)

// WasmExtension marks artifacts loaded by the WebAssembly sandbox.
const WasmExtension = ".wasm"

// Artifacts is a resolved engine release: the local files that make up one version.
type Artifacts struct {
	Version   string
	Locations []string
}

// WasmModule returns the first WebAssembly module among the locations.
func (a Artifacts) WasmModule() (string, bool) {
	for _, loc := range a.Locations {
		if strings.EqualFold(filepath.Ext(loc), WasmExtension) {
			return loc, true
		}
	}
	return "", false
}

// Dirs returns the distinct directories holding the artifacts, in order of first appearance.
func (a Artifacts) Dirs() []string {
	seen := make(map[string]struct{}, len(a.Locations))
	dirs := make([]string, 0, len(a.Locations))
	for _, loc := range a.Locations {
		dir := filepath.Dir(loc)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
