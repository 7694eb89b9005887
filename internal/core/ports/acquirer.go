package ports

import (
	"context"
	"io"

	"go.trai.ch/fmtpin/internal/core/domain"
)

// VersionAcquirer resolves an engine version to a local artifact set.
//
//go:generate mockgen -source=acquirer.go -destination=mocks/mock_acquirer.go -package=mocks
type VersionAcquirer interface {
	// Download makes the artifacts of version available locally, writing progress to progress.
	// Unknown versions match domain.ErrVersionNotFound; other failures wrap their cause.
	Download(ctx context.Context, version string, progress io.Writer) (domain.Artifacts, error)
}
