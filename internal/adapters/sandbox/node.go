package sandbox

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fmtpin/internal/adapters/logger"
	"go.trai.ch/fmtpin/internal/adapters/settings"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
)

// NodeID is the unique identifier for the engine loader Graft node.
const NodeID graft.ID = "adapter.sandbox"

func init() {
	graft.Register(graft.Node[ports.EngineLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.EngineLoader, error) {
			opts, err := graft.Dep[domain.Options](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(opts.StrictEngineVersion, log), nil
		},
	})
}
