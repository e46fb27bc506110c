// Package watcher reports changes under the Sprout root using fsnotify.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.StorageWatcher = (*Watcher)(nil)

// DefaultDebounce is how long a path must be quiet before its event is sent.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches the root directory tree.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch starts watching root and every directory below it.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan domain.StorageEvent, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addTree(fw, root); err != nil {
		fw.Close()
		return nil, err
	}

	r := &run{
		ctx:      ctx,
		root:     root,
		fw:       fw,
		debounce: w.debounce,
		out:      make(chan domain.StorageEvent, 64),
		pending:  make(map[string]*pending),
	}
	go r.loop()
	return r.out, nil
}

// addTree watches dir and its subdirectories, skipping hidden ones.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			logger.Warn("watch %s: %v", p, err)
		}
		return nil
	})
}

type pending struct {
	timer *time.Timer
	event domain.StorageEvent
}

type run struct {
	ctx      context.Context
	root     string
	fw       *fsnotify.Watcher
	debounce time.Duration
	out      chan domain.StorageEvent

	mu      sync.Mutex
	pending map[string]*pending
	closed  bool
	wg      sync.WaitGroup
}

func (r *run) loop() {
	defer r.shutdown()
	for {
		select {
		case <-r.ctx.Done():
			return

		case event, ok := <-r.fw.Events:
			if !ok {
				return
			}
			r.handle(event)

		case err, ok := <-r.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

func (r *run) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() &&
			!strings.HasPrefix(info.Name(), ".") {
			if err := addTree(r.fw, event.Name); err != nil {
				logger.Warn("watch %s: %v", event.Name, err)
			}
		}
	}

	change, ok := changeType(event.Op)
	if !ok {
		return
	}
	ev, ok := Classify(r.root, event.Name)
	if !ok {
		return
	}
	ev.Type = change
	r.schedule(event.Name, ev)
}

// schedule sends ev once path has been quiet for the debounce interval.
// A create followed by writes is reported as a single create.
func (r *run) schedule(path string, ev domain.StorageEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	if prev, ok := r.pending[path]; ok {
		if prev.timer.Stop() {
			r.wg.Done()
		}
		if prev.event.Type == domain.ChangeCreated && ev.Type == domain.ChangeUpdated {
			ev.Type = domain.ChangeCreated
		}
	}

	p := &pending{event: ev}
	r.wg.Add(1)
	p.timer = time.AfterFunc(r.debounce, func() {
		defer r.wg.Done()
		r.mu.Lock()
		if r.pending[path] == p {
			delete(r.pending, path)
		}
		r.mu.Unlock()

		select {
		case r.out <- p.event:
		case <-r.ctx.Done():
		}
	})
	r.pending[path] = p
}

func (r *run) shutdown() {
	r.fw.Close()

	r.mu.Lock()
	r.closed = true
	for path, p := range r.pending {
		if p.timer.Stop() {
			r.wg.Done()
		}
		delete(r.pending, path)
	}
	r.mu.Unlock()

	r.wg.Wait()
	close(r.out)
}

func changeType(op fsnotify.Op) (domain.ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return domain.ChangeDeleted, true
	case op.Has(fsnotify.Create):
		return domain.ChangeCreated, true
	case op.Has(fsnotify.Write):
		return domain.ChangeUpdated, true
	default:
		return 0, false
	}
}

// Classify maps a path under root to the session and entry kind it belongs
// to. Paths outside a session directory and hidden entries are ignored.
func Classify(root, path string) (domain.StorageEvent, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return domain.StorageEvent{}, false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") {
			return domain.StorageEvent{}, false
		}
	}

	ev := domain.StorageEvent{Session: parts[0], Path: strings.Join(parts[1:], "/")}
	if len(parts) == 1 {
		ev.Kind = domain.KindSession
		return ev, true
	}

	switch parts[1] {
	case domain.SessionDescriptorFile:
		ev.Kind = domain.KindSession
	case domain.NoteFileName, domain.LegacyNoteFileName:
		ev.Kind = domain.KindNote
	case domain.FlashcardsDir:
		ev.Kind = domain.KindDeck
	default:
		ev.Kind = domain.KindFile
	}
	return ev, true
}
