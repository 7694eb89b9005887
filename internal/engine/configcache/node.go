package configcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fmtpin/internal/adapters/projectconfig" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fmtpin/internal/adapters/telemetry"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/fmtpin/internal/engine/registry"
)

// NodeID is the unique identifier for the config cache Graft node.
const NodeID graft.ID = "engine.configcache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			projectconfig.NodeID,
			registry.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			reader, err := graft.Dep[ports.VersionReader](ctx)
			if err != nil {
				return nil, err
			}

			engines, err := graft.Dep[*registry.Registry](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(reader, engines, tracer), nil
		},
	})
}
