package projectconfig

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fmtpin/internal/core/ports"
)

// NodeID is the unique identifier for the version reader Graft node.
const NodeID graft.ID = "adapter.projectconfig"

func init() {
	graft.Register(graft.Node[ports.VersionReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionReader, error) {
			return New(), nil
		},
	})
}
