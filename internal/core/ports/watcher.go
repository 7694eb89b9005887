package ports

import "iter"

// ConfigWatcher reports changes to watched config files.
type ConfigWatcher interface {
	// Watch starts watching the config file at path. Watching a path twice is a no-op.
	Watch(path string) error
	// Changes returns an iterator of debounced batches of changed config paths.
	// Paths are absolute. The iterator ends when the watcher is closed.
	Changes() iter.Seq[[]string]
	// Close stops watching all files.
	Close() error
}
