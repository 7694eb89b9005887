package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fmtpin/internal/adapters/release"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fmtpin/internal/adapters/sandbox"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fmtpin/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fmtpin/internal/core/ports"
)

// NodeID is the unique identifier for the engine registry Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			release.NodeID,
			sandbox.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Registry, error) {
			acquirer, err := graft.Dep[ports.VersionAcquirer](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.EngineLoader](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(acquirer, loader, tracer), nil
		},
	})
}
