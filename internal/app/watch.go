package app

import (
	"sync"

	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/fmtpin/internal/engine/configcache"
)

// configWatch evicts cache entries for config files that change on disk.
// It is shared by every copy of an Orchestrator.
type configWatch struct {
	watcher ports.ConfigWatcher
	done    chan struct{}
	once    sync.Once
	err     error
}

func startConfigWatch(w ports.ConfigWatcher, configs *configcache.Cache) *configWatch {
	cw := &configWatch{watcher: w, done: make(chan struct{})}
	go func() {
		defer close(cw.done)
		for paths := range w.Changes() {
			for _, path := range paths {
				configs.Invalidate(path)
			}
		}
	}()
	return cw
}

func (cw *configWatch) watch(path string) error {
	return cw.watcher.Watch(path)
}

func (cw *configWatch) close() error {
	cw.once.Do(func() {
		cw.err = cw.watcher.Close()
		<-cw.done
	})
	return cw.err
}

// WithConfigWatcher returns a copy that evicts cached configs when their files
// change, as reported by w. The watcher is closed by Close.
func (o *Orchestrator) WithConfigWatcher(w ports.ConfigWatcher) *Orchestrator {
	c := *o
	c.watcher = startConfigWatch(w, o.configs)
	return &c
}
