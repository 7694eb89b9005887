package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/fmtpin/internal/adapters/settings"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			opts, err := graft.Dep[domain.Options](ctx)
			if err != nil {
				return nil, err
			}
			l, err := New(os.Stderr, opts.LogLevel, opts.LogFormat)
			if err != nil {
				return nil, err
			}
			return l, nil
		},
	})
}
