package release

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fmtpin/internal/adapters/settings"
	"go.trai.ch/fmtpin/internal/adapters/telemetry/progrock"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
)

// NodeID is the unique identifier for the release acquirer Graft node.
const NodeID graft.ID = "adapter.release"

func init() {
	graft.Register(graft.Node[ports.VersionAcquirer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID, progrock.NodeID},
		Run: func(ctx context.Context) (ports.VersionAcquirer, error) {
			opts, err := graft.Dep[domain.Options](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			acquirer, err := New(opts.CacheDir, opts.ReleaseURL, telemetry)
			if err != nil {
				return nil, err
			}
			return acquirer, nil
		},
	})
}
