package profilewatch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kb-labs/devkit/pkg/profile"
	"github.com/kb-labs/devkit/pkg/utils/logging"
	"github.com/sirupsen/logrus"
)

// DefaultDebounceInterval is how long the watcher waits for a burst of
// file events to settle before resolving again.
const DefaultDebounceInterval = 200 * time.Millisecond

// ErrWatch is returned when the profiles directory cannot be watched.
var ErrWatch = errors.New("cannot watch profiles directory")

// ResolveFunc resolves a profile. [profile.Resolve] is the default.
type ResolveFunc func(ctx context.Context, opts profile.Options) profile.Result

// Watcher resolves a profile once, then again after every settled change to
// the profiles directory or its first-level subdirectories.
type Watcher struct {
	opts     profile.Options
	resolve  ResolveFunc
	debounce time.Duration
	logger   logrus.FieldLogger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceInterval sets the settle time. Non-positive values keep the default.
func WithDebounceInterval(interval time.Duration) Option {
	return func(watcher *Watcher) {
		if interval > 0 {
			watcher.debounce = interval
		}
	}
}

// WithResolver replaces the resolve function.
func WithResolver(resolve ResolveFunc) Option {
	return func(watcher *Watcher) {
		if resolve != nil {
			watcher.resolve = resolve
		}
	}
}

// WithLogger sets the logger for watch events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(watcher *Watcher) {
		if logger != nil {
			watcher.logger = logger
		}
	}
}

// New creates a Watcher for the profile described by opts. The override and
// environment are copied, so later changes by the caller do not reach a
// running watch.
func New(opts profile.Options, options ...Option) *Watcher {
	if opts.Override != nil {
		override := opts.Override.Clone()
		opts.Override = &override
	}

	opts.Env = maps.Clone(opts.Env)

	watcher := &Watcher{
		opts:     opts,
		resolve:  profile.Resolve,
		debounce: DefaultDebounceInterval,
		logger:   logging.Discard(),
	}

	for _, option := range options {
		option(watcher)
	}

	return watcher
}

// Dir returns the watched profiles directory.
func (w *Watcher) Dir() string {
	return w.opts.ProfilesPath()
}

// Run calls onChange with an initial resolution and then with a fresh one
// after each settled burst of profile file changes. It blocks until ctx is
// done and then returns nil.
func (w *Watcher) Run(ctx context.Context, onChange func(profile.Result)) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}

	defer func() { _ = fsWatcher.Close() }()

	dir := filepath.Clean(w.Dir())

	err = w.addTree(fsWatcher, dir)
	if err != nil {
		return err
	}

	onChange(w.resolve(ctx, w.opts))

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}

			if w.handle(fsWatcher, dir, event) {
				timer.Reset(w.debounce)
			}
		case watchErr, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}

			w.logger.WithError(watchErr).Warn("profile watch error")
		case <-timer.C:
			w.logger.Debug("profiles changed, resolving")
			onChange(w.resolve(ctx, w.opts))
		}
	}
}

func (w *Watcher) addTree(fsWatcher *fsnotify.Watcher, dir string) error {
	err := fsWatcher.Add(dir)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWatch, dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWatch, dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		sub := filepath.Join(dir, entry.Name())

		err = fsWatcher.Add(sub)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrWatch, sub, err)
		}
	}

	return nil
}

// handle reports whether event can affect resolution. New first-level
// directories are added to the watch list.
func (w *Watcher) handle(fsWatcher *fsnotify.Watcher, dir string, event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}

	logger := w.logger.WithField("path", event.Name)

	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == dir {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			err = fsWatcher.Add(event.Name)
			if err != nil {
				logger.WithError(err).Warn("failed to watch new profile directory")
			}

			return true
		}
	}

	if strings.HasSuffix(event.Name, ".json") {
		logger.WithField("op", event.Op.String()).Debug("profile file changed")

		return true
	}

	// A removed or renamed first-level directory may have held a profile.
	return filepath.Dir(event.Name) == dir && (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename))
}
