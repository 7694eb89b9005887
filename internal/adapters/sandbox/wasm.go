package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	wasiModule   = wasi_snapshot_preview1.ModuleName
	startExport  = "_start"
	memoryExport = "memory"
)

// wasmBackend owns a dedicated runtime. Every command runs in a fresh anonymous
// instance with no filesystem, no environment and in-memory stdio.
type wasmBackend struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
}

func newWasmBackend(ctx context.Context, path string) (*wasmBackend, error) {
	//nolint:gosec // path comes from a verified artifact set
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNoEntryPoint.Error()), "path", path)
	}

	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))

	compiled, err := r.CompileModule(ctx, data)
	if err != nil {
		_ = r.Close(ctx)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMissingCapability.Error()), "path", path)
	}

	if err := checkCapabilities(compiled); err != nil {
		_ = r.Close(ctx)
		return nil, zerr.With(err, "path", path)
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, zerr.Wrap(err, "failed to instantiate wasi")
	}

	return &wasmBackend{runtime: r, compiled: compiled}, nil
}

// checkCapabilities requires the command entry point and exported memory, and
// rejects imports from anything but WASI.
func checkCapabilities(compiled wazero.CompiledModule) error {
	missing := func(key, value string) error {
		return zerr.With(zerr.Wrap(domain.ErrMissingCapability, "wasm module"), key, value)
	}

	for _, fn := range compiled.ImportedFunctions() {
		moduleName, name, _ := fn.Import()
		if moduleName != wasiModule {
			return missing("import", moduleName+"."+name)
		}
	}
	if imported := compiled.ImportedMemories(); len(imported) > 0 {
		moduleName, name, _ := imported[0].Import()
		return missing("import", moduleName+"."+name)
	}
	if _, ok := compiled.ExportedFunctions()[startExport]; !ok {
		return missing("export", startExport)
	}
	if _, ok := compiled.ExportedMemories()[memoryExport]; !ok {
		return missing("export", memoryExport)
	}
	return nil
}

func (w *wasmBackend) run(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cfg := wazero.NewModuleConfig().
		WithName(""). // anonymous for parallel instantiation
		WithArgs(append([]string{ProgramName}, args...)...).
		WithStdin(bytes.NewReader(stdin)).
		WithStdout(&stdout).
		WithStderr(&stderr)

	mod, err := w.runtime.InstantiateModule(ctx, w.compiled, cfg)
	if mod != nil {
		_ = mod.Close(ctx)
	}
	if err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) {
			code := int(exitErr.ExitCode())
			if code == rejectedExitCode {
				return nil, rejected(args, stderr.String())
			}
			return nil, failed(args, err, code, stderr.String())
		}
		return nil, failed(args, err, -1, stderr.String())
	}
	return stdout.Bytes(), nil
}

func (w *wasmBackend) close(ctx context.Context) error {
	return w.runtime.Close(ctx)
}
