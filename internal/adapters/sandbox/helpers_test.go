package sandbox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/fmtpin/internal/core/domain"
)

// scriptEngine speaks the engine protocol: parse-config echoes a fixed settings
// object, format upper-cases its input. Settings containing "reject" are refused.
const scriptEngine = `#!/bin/sh
case "$1" in
  version)
    echo "1.2.0"
    ;;
  parse-config)
    if grep -q reject; then
      echo "unknown key 'reject' in $2" >&2
      exit 1
    fi
    printf '{"maxColumn": 80}'
    ;;
  format)
    case "$2" in
      *crash*) echo "segfault" >&2; exit 3 ;;
    esac
    tr 'a-z' 'A-Z'
    ;;
  *)
    exit 2
    ;;
esac
`

// writeExecutable writes an executable script into a fresh artifact directory.
func writeExecutable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func scriptArtifacts(t *testing.T, version, script string) domain.Artifacts {
	t.Helper()
	return domain.Artifacts{Version: version, Locations: []string{writeExecutable(t, "engine", script)}}
}

func mustConfig(t *testing.T, settings domain.Settings) *domain.ProjectConfig {
	t.Helper()
	cfg, err := domain.NewProjectConfig("/p/.fmtpin.conf", "1.2.0", settings)
	require.NoError(t, err)
	return cfg
}

// wasm assembles a module from raw sections.
func wasm(sections ...[]byte) []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

func name(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}

var (
	// () -> ()
	typeVoid = []byte{0x01, 0x04, 0x01, 0x60, 0x00, 0x00}
	// one function of type 0
	funcSection = []byte{0x03, 0x02, 0x01, 0x00}
	// one memory, min 1 page
	memorySection = []byte{0x05, 0x03, 0x01, 0x00, 0x01}
)

// exportSection exports function startIndex as _start and memory 0 as memory.
func exportSection(startIndex byte) []byte {
	body := []byte{0x02}
	body = append(body, name("_start")...)
	body = append(body, 0x00, startIndex)
	body = append(body, name("memory")...)
	body = append(body, 0x02, 0x00)
	return append([]byte{0x07, byte(len(body))}, body...)
}

func importSection(module, field string, typeIndex byte) []byte {
	body := []byte{0x01}
	body = append(body, name(module)...)
	body = append(body, name(field)...)
	body = append(body, 0x00, typeIndex)
	return append([]byte{0x02, byte(len(body))}, body...)
}

// emptyStart is a code section with one empty function body.
var emptyStart = []byte{0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b}

// versionEngineWasm writes "1.0.0\n" to stdout via fd_write for every command.
func versionEngineWasm() []byte {
	types := []byte{0x01, 0x0c, 0x02, 0x60, 0x00, 0x00, 0x60, 0x04, 0x7f, 0x7f, 0x7f, 0x7f, 0x01, 0x7f}
	code := []byte{
		0x0a, 0x10, 0x01, 0x0e, 0x00,
		0x41, 0x01, // fd 1
		0x41, 0x00, // iovs at 0
		0x41, 0x01, // one iovec
		0x41, 0xe4, 0x00, // nwritten at 100
		0x10, 0x00, // call fd_write
		0x1a, // drop errno
		0x0b,
	}
	data := []byte{
		0x0b, 0x19, 0x02,
		0x00, 0x41, 0x00, 0x0b, 0x08, 0x08, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00,
		0x00, 0x41, 0x08, 0x0b, 0x06, '1', '.', '0', '.', '0', '\n',
	}
	return wasm(types, importSection("wasi_snapshot_preview1", "fd_write", 1), funcSection, memorySection, exportSection(1), code, data)
}

// exitOneWasm calls proc_exit(1) from _start.
func exitOneWasm() []byte {
	types := []byte{0x01, 0x08, 0x02, 0x60, 0x00, 0x00, 0x60, 0x01, 0x7f, 0x00}
	code := []byte{0x0a, 0x08, 0x01, 0x06, 0x00, 0x41, 0x01, 0x10, 0x00, 0x0b}
	return wasm(types, importSection("wasi_snapshot_preview1", "proc_exit", 1), funcSection, memorySection, exportSection(1), code)
}

func wasmArtifacts(t *testing.T, version string, module []byte) domain.Artifacts {
	t.Helper()
	dir := filepath.Dir(writeFile(t, "engine.wasm", module))
	return domain.Artifacts{
		Version:   version,
		Locations: []string{filepath.Join(dir, "LICENSE"), filepath.Join(dir, "engine.wasm")},
	}
}
