package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fmtpin/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fmtpin/internal/adapters/reporter"  //nolint:depguard // Wired in app layer
	"go.trai.ch/fmtpin/internal/adapters/settings"  //nolint:depguard // Wired in app layer
	"go.trai.ch/fmtpin/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/fmtpin/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/fmtpin/internal/engine/configcache"
	"go.trai.ch/fmtpin/internal/engine/registry"
)

// NodeID is the unique identifier for the Orchestrator Graft node.
const NodeID graft.ID = "app.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			configcache.NodeID,
			registry.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			reporter.NodeID,
			settings.NodeID,
			watcher.NodeID,
		},
		Run: runOrchestratorNode,
	})
}

func runOrchestratorNode(ctx context.Context) (*Orchestrator, error) {
	configs, err := graft.Dep[*configcache.Cache](ctx)
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

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	rep, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	opts, err := graft.Dep[domain.Options](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.ConfigWatcher](ctx)
	if err != nil {
		return nil, err
	}

	o := New(configs, engines, tracer, log, rep, opts)
	if opts.WatchConfigs {
		o = o.WithConfigWatcher(w)
	}
	return o, nil
}
