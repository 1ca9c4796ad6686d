package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hubastard/sprig/engine/core"
)

const reloadQueueSize = 64

type watcher struct {
	fs      *fsnotify.Watcher
	reloads chan string
	done    chan struct{}
	stopped chan struct{}

	closeErr error // set by run before stopped is closed
}

// Watch reloads resident textures when their files change on disk. Changes
// are queued by a background goroutine and applied by ApplyReloads (or
// BeginFrame) on the render thread. Watching stops, and the OS watch handles
// are released, when ctx is cancelled or the manager is closed.
func (m *TextureManager) Watch(ctx context.Context) error {
	if m.watch != nil {
		return errors.New("assets: texture manager already watching")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %q: %w", m.root, err)
	}
	w := &watcher{
		fs:      fw,
		reloads: make(chan string, reloadQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	if err := w.addRecursive(m.root); err != nil {
		fw.Close()
		return fmt.Errorf("watch %q: %w", m.root, err)
	}
	m.watch = w
	go w.run(ctx, m)
	core.LogInfo("watching %q for texture changes", m.root)
	return nil
}

func (w *watcher) run(ctx context.Context, m *TextureManager) {
	defer func() {
		w.closeErr = w.fs.Close()
		close(w.stopped)
	}()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(e.Name); err == nil && st.IsDir() {
					if err := w.addRecursive(e.Name); err != nil {
						core.LogError("watch new directory %q: %v", e.Name, err)
					}
					continue
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			key, ok := m.keyFor(e.Name)
			if !ok {
				continue
			}
			select {
			case w.reloads <- key:
			default:
				core.LogWarn("texture reload queue full, dropping %q", key)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			core.LogError("texture watcher: %v", err)

		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
	}
}

func (w *watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(p)
		}
		return nil
	})
}

func (w *watcher) close() error {
	close(w.done)
	<-w.stopped
	return w.closeErr
}

// ApplyReloads reloads every texture whose file changed since the last call
// and reports how many distinct keys were processed. Keys that are not
// resident are ignored.
func (m *TextureManager) ApplyReloads() int {
	if m.watch == nil {
		return 0
	}
	seen := make(map[string]bool)
	for {
		select {
		case key := <-m.watch.reloads:
			if seen[key] {
				continue
			}
			seen[key] = true
			if err := m.reload(key); err != nil {
				core.LogError("%v", err)
			}
		default:
			return len(seen)
		}
	}
}

// BeginFrame implements core.FrameHook.
func (m *TextureManager) BeginFrame() { m.ApplyReloads() }
