// Package sandbox loads engine artifacts into isolated execution scopes: a
// dedicated wazero runtime per WebAssembly engine, or hermetic subprocesses for
// native executables.
package sandbox

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Protocol commands understood by every engine. argv[0] is always ProgramName.
const (
	ProgramName    = "engine"
	CmdVersion     = "version"
	CmdParseConfig = "parse-config"
	CmdFormat      = "format"
)

// rejectedExitCode is the exit status an engine uses to refuse its input.
const rejectedExitCode = 1

// backend runs one protocol command inside an execution scope.
type backend interface {
	run(ctx context.Context, args []string, stdin []byte) ([]byte, error)
	close(ctx context.Context) error
}

// Loader implements ports.EngineLoader.
type Loader struct {
	strictVersion bool
	logger        ports.Logger
}

// New creates a Loader. With strictVersion set, an engine reporting a version
// other than the one it was acquired for fails to load.
func New(strictVersion bool, logger ports.Logger) *Loader {
	return &Loader{strictVersion: strictVersion, logger: logger}
}

// Load builds an isolated engine from the artifacts and probes its version.
func (l *Loader) Load(ctx context.Context, artifacts domain.Artifacts) (ports.Engine, error) {
	b, err := l.newBackend(ctx, artifacts)
	if err != nil {
		return nil, err
	}

	out, err := b.run(ctx, []string{CmdVersion}, nil)
	if err != nil {
		_ = b.close(ctx)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMissingCapability.Error()), "command", CmdVersion)
	}

	reported := strings.TrimSpace(string(out))
	if reported != artifacts.Version {
		if l.strictVersion {
			_ = b.close(ctx)
			mismatchErr := zerr.With(zerr.Wrap(domain.ErrVersionMismatch, "version probe"), "expected", artifacts.Version)
			return nil, zerr.With(mismatchErr, "reported", reported)
		}
		l.logger.Warn(fmt.Sprintf("engine %s reports version %q", artifacts.Version, reported))
	}

	return &engine{version: artifacts.Version, backend: b}, nil
}

func (l *Loader) newBackend(ctx context.Context, artifacts domain.Artifacts) (backend, error) {
	if wasm, ok := artifacts.WasmModule(); ok {
		return newWasmBackend(ctx, wasm)
	}

	for _, loc := range artifacts.Locations {
		if findExecutable(loc) == nil {
			return newProcessBackend(loc, artifacts.Dirs()), nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrNoEntryPoint, "artifact set"), "locations", strings.Join(artifacts.Locations, ","))
}

// findExecutable reports whether file is a regular file with an executable bit set.
func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); m.IsRegular() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

// rejected builds the error for an engine refusing its input.
func rejected(args []string, stderr string) error {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = "no message"
	}
	return zerr.With(zerr.Wrap(domain.ErrEngineRejected, msg), "command", args[0])
}

// failed builds the error for an engine that crashed or exited unexpectedly.
func failed(args []string, cause error, exitCode int, stderr string) error {
	msg := "engine failed"
	if detail := strings.TrimSpace(stderr); detail != "" {
		msg += ": " + detail
	}
	err := zerr.With(zerr.Wrap(cause, msg), "command", args[0])
	return zerr.With(err, "exit_code", exitCode)
}
