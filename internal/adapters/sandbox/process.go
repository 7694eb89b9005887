package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
)

// bootstrapPath is appended to the artifact directories in the engine's PATH.
var bootstrapPath = []string{"/usr/local/bin", "/usr/bin", "/bin"}

// processBackend runs the entry executable once per command with a hermetic environment.
type processBackend struct {
	entry string
	dir   string
	env   []string
}

func newProcessBackend(entry string, artifactDirs []string) *processBackend {
	path := make([]string, 0, len(artifactDirs)+len(bootstrapPath))
	path = append(path, artifactDirs...)
	path = append(path, bootstrapPath...)

	return &processBackend{
		entry: entry,
		dir:   filepath.Dir(entry),
		env:   []string{"PATH=" + strings.Join(path, string(filepath.ListSeparator))},
	}
}

func (p *processBackend) run(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
	//nolint:gosec // entry is an executable from a verified artifact set
	cmd := exec.CommandContext(ctx, p.entry, args...)
	cmd.Args[0] = ProgramName
	cmd.Env = p.env
	cmd.Dir = p.dir
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.ExitCode() == rejectedExitCode {
				return nil, rejected(args, stderr.String())
			}
			return nil, failed(args, err, exitErr.ExitCode(), stderr.String())
		}
		return nil, failed(args, err, -1, stderr.String())
	}
	return stdout.Bytes(), nil
}

func (p *processBackend) close(_ context.Context) error {
	return nil
}
