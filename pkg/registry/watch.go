package registry

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates the in-memory config memo whenever config.json is
// edited externally (e.g. another gh-bundles process, or the operator
// hand-editing it), so CLI invocations that stay resident (the
// update scheduler) pick up the change without restarting. It blocks until
// ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	path, err := s.configPath()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return Wrap(KindFilesystem, "failed to start config watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		storageLog.Printf("config.json does not exist yet, watching its directory instead: %v", err)
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return Wrap(KindFilesystem, "failed to watch config directory", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
				s.mu.Lock()
				s.memoLoaded = false
				s.memo = nil
				s.mu.Unlock()
				storageLog.Print("invalidated config memo after external edit")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			storageLog.Printf("config watcher error: %v", err)
		}
	}
}
