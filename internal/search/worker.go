package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"fileseek/internal/eventbus"
)

// runWorker is the loop executed by every member of the pool: pop a
// directory, list it, push discovered subdirectories back onto the
// frontier, emit matches for files. Cancellation is checked before each
// pop and again after each listing; an in-flight listing is never
// interrupted.
func (s *searchService) runWorker(ctx context.Context, run *searchRun) {
	for {
		if ctx.Err() != nil {
			return
		}

		dir, ok := run.queue.Pop(ctx)
		if !ok {
			return
		}

		s.scanDirectory(run, dir)
		run.queue.Done()

		if ctx.Err() != nil {
			return
		}
	}
}

// scanDirectory lists the immediate children of dir without following
// symbolic links. A directory that cannot be listed (permission denied,
// vanished between discovery and access) is skipped silently; any other
// per-entry failure is likewise swallowed so one bad subtree never
// aborts the rest of the traversal.
func (s *searchService) scanDirectory(run *searchRun, dir string) {
	f, err := os.Open(dir)
	if err != nil {
		log.Debug("skipping unreadable directory", "dir", dir, "err", err)
		return
	}
	// ReadDir on the open handle keeps the underlying enumeration
	// order; matches within one directory are emitted in that order.
	entries, err := f.ReadDir(-1)
	_ = f.Close()
	if err != nil {
		log.Debug("partial directory listing", "dir", dir, "err", err)
		// Fall through: entries read before the error still count.
	}

	for _, entry := range entries {
		switch {
		case entry.IsDir():
			// DirEntry types come from lstat, so symlinked
			// directories are not descended into.
			run.queue.Push(filepath.Join(dir, entry.Name()))

		case entry.Type().IsRegular():
			name := entry.Name()
			candidate := name
			if !run.caseSensitive {
				candidate = strings.ToLower(name)
			}
			if !strings.Contains(candidate, run.target) {
				continue
			}
			if !run.exts.allows(name) {
				continue
			}
			run.matches.Add(1)
			s.bus.Publish(eventbus.FileMatchedEvent{Path: filepath.Join(dir, name)})
		}
	}
}
