package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlassist/pkg/catalog"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <files or directories...>",
		Short: "Re-validate SQL files whenever they change",
		Long: `Validate SQL files, then watch them and re-validate each file after it
changes. Directories are watched recursively for *.sql files. When the
schema file changes it is reloaded and every file is re-validated.

Bursts of changes to a file are collapsed; see watch.debounce in the
configuration or --debounce. Stop with Ctrl+C.`,
		Example: `  sqlassist watch queries/ --schema schema.yaml`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			w := newFileWatcher(cc, cc.Cfg.Watch.Debounce)
			w.check = func(path string) { w.validateAndRender(cmd, path) }
			return w.run(cmd.Context(), args)
		},
	}
	cmd.Flags().Duration("debounce", 0, "Quiet period before re-validating a changed file (default from config)")
	return cmd
}

// fileWatcher re-validates files on change. One debounce timer runs per
// file; check is called from timer goroutines and serialized by checkMu,
// which also guards replacing the catalog.
type fileWatcher struct {
	cc       *CommandContext
	debounce time.Duration
	check    func(path string)

	mu     sync.Mutex
	timers map[string]*time.Timer
	files  map[string]bool
	// dirs are directories watched recursively; new SQL files in them
	// are picked up.
	dirs map[string]bool

	checkMu sync.Mutex
}

func newFileWatcher(cc *CommandContext, debounce time.Duration) *fileWatcher {
	return &fileWatcher{
		cc:       cc,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
}

// run watches targets until ctx is canceled.
func (w *fileWatcher) run(ctx context.Context, targets []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, t := range targets {
		if err := w.add(watcher, t); err != nil {
			return err
		}
	}
	if schema := w.cc.Cfg.Schema; schema != "" && w.cc.Cfg.Database.Driver == "" {
		if err := watcher.Add(filepath.Dir(schema)); err != nil {
			return fmt.Errorf("failed to watch schema: %w", err)
		}
	}

	for _, f := range w.sortedFiles() {
		w.runCheck(f)
	}
	w.cc.Logger.Info("watching for changes", "files", len(w.files))

	return w.loop(ctx, watcher)
}

// add registers a file, or every directory below a directory.
func (w *fileWatcher) add(watcher *fsnotify.Watcher, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", target, err)
	}
	if !info.IsDir() {
		w.files[filepath.Clean(target)] = true
		return watcher.Add(filepath.Dir(target))
	}
	return filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != target && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			w.dirs[filepath.Clean(path)] = true
			return watcher.Add(path)
		}
		if isSQLFile(path) {
			w.files[filepath.Clean(path)] = true
		}
		return nil
	})
}

func (w *fileWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) error {
	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.cc.Logger.Warn("watcher error", "error", err)
		}
	}
}

// handle schedules a check for a changed file. Files and directories
// created inside a recursively watched directory are picked up.
func (w *fileWatcher) handle(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	path := filepath.Clean(event.Name)

	if w.isSchema(path) {
		w.schedule(path, w.reloadSchema)
		return
	}

	w.mu.Lock()
	known := w.files[path]
	if !known && event.Op&fsnotify.Create != 0 && w.dirs[filepath.Dir(path)] {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.dirs[path] = true
			if err := watcher.Add(path); err != nil {
				w.cc.Logger.Warn("cannot watch directory", "path", path, "error", err)
			}
		} else if isSQLFile(path) {
			w.files[path] = true
			known = true
		}
	}
	w.mu.Unlock()
	if !known {
		return
	}
	w.schedule(path, func() { w.runCheck(path) })
}

// schedule runs fn once the file has been quiet for the debounce period.
func (w *fileWatcher) schedule(path string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		fn()
	})
}

func (w *fileWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

// runCheck serializes checks so output from different files does not
// interleave.
func (w *fileWatcher) runCheck(path string) {
	w.checkMu.Lock()
	defer w.checkMu.Unlock()
	w.check(path)
}

func (w *fileWatcher) isSchema(path string) bool {
	s := w.cc.Cfg.Schema
	return s != "" && w.cc.Cfg.Database.Driver == "" && filepath.Clean(s) == path
}

func (w *fileWatcher) reloadSchema() {
	s, err := catalog.LoadFile(w.cc.Cfg.Schema)
	if err != nil {
		w.cc.Renderer.Error(err.Error())
		return
	}
	w.checkMu.Lock()
	if w.cc.Catalog == nil {
		w.cc.Catalog = catalog.New(catalog.Options{CaseSensitive: w.cc.Cfg.Completion.CaseSensitive})
	}
	w.cc.Catalog.RegisterSchema(s)
	w.checkMu.Unlock()
	w.cc.Logger.Info("schema reloaded", "path", w.cc.Cfg.Schema)

	for _, f := range w.sortedFiles() {
		w.runCheck(f)
	}
}

func (w *fileWatcher) sortedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// validateAndRender validates one file and prints its diagnostics with a
// timestamp.
func (w *fileWatcher) validateAndRender(cmd *cobra.Command, path string) {
	r := w.cc.Renderer
	_, text, err := readInput(cmd, path)
	if err != nil {
		r.Error(err.Error())
		return
	}
	res := w.cc.Linter.Validate(text, w.cc.LintSchema())

	stamp := r.Styles().Muted.Render(time.Now().Format("15:04:05"))
	if len(res.Errors) == 0 {
		r.Printf("%s %s %s\n", stamp, r.Styles().Path.Render(path), r.Styles().Success.Render("ok"))
		return
	}
	r.Printf("%s %s\n", stamp, r.Styles().Path.Render(path))
	for _, e := range res.Errors {
		r.Println(formatDiagnostic(r, e))
	}
}

func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}
