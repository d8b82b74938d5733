package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// File layouts of a profile inside the profiles directory.
const (
	profileFileName   = "profile.json"
	profileFileSuffix = ".profile.json"
)

// Loader reads profile files from one profiles directory.
type Loader struct {
	dir    string
	logger logrus.FieldLogger
}

// loadOutcome is the result of loading one profile id.
type loadOutcome struct {
	file        *LoadedFile
	diagnostics []Diagnostic
}

// NewLoader creates a loader for dir. A nil logger discards log output.
func NewLoader(dir string, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = discardLogger()
	}

	return &Loader{dir: dir, logger: logger}
}

// Dir returns the profiles directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Candidates returns the paths tried for id, in order.
func (l *Loader) Candidates(id string) []string {
	return []string{
		filepath.Join(l.dir, id, profileFileName),
		filepath.Join(l.dir, id+profileFileSuffix),
	}
}

// Load reads the profile with the given id. The first candidate path that
// exists wins. A missing file is not reported; any other read, parse, or
// decode failure yields a PROFILE_READ_FAILED warning and the next candidate
// is tried. Source categories with the wrong shape are reported and dropped.
// A nil file means no usable profile was found.
func (l *Loader) Load(id string) (*LoadedFile, []Diagnostic) {
	var diagnostics []Diagnostic

	for _, path := range l.Candidates(id) {
		data, err := os.ReadFile(path) //nolint:gosec // profile paths are built from the configured profiles directory
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				l.logger.WithField("path", path).Debug("profile file not found")

				continue
			}

			diagnostics = append(diagnostics, readFailed(id, path, err))

			continue
		}

		document, err := ParseDocument(data)
		if err != nil {
			diagnostics = append(diagnostics, readFailed(id, path, err))

			continue
		}

		shape, cleaned := checkSourcesShape(document)
		for index := range shape {
			shape[index].Detail = path + ": " + shape[index].Detail
		}

		profile, err := decode(cleaned)
		if err != nil {
			diagnostics = append(diagnostics, readFailed(id, path, err))

			continue
		}

		l.logger.WithFields(logrus.Fields{"profile": id, "path": path}).Debug("loaded profile file")

		return &LoadedFile{Path: path, Data: profile}, append(diagnostics, shape...)
	}

	return nil, diagnostics
}

// loadAll loads ids concurrently and returns the outcomes in the order of ids.
func (l *Loader) loadAll(ctx context.Context, ids []string) ([]loadOutcome, error) {
	outcomes := make([]loadOutcome, len(ids))

	group, groupCtx := errgroup.WithContext(ctx)

	for index, id := range ids {
		index, id := index, id

		group.Go(func() error {
			err := groupCtx.Err()
			if err != nil {
				return fmt.Errorf("load profile %q: %w", id, err)
			}

			file, diagnostics := l.Load(id)
			outcomes[index] = loadOutcome{file: file, diagnostics: diagnostics}

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped inside the group
	}

	return outcomes, nil
}

// List returns the ids of every profile in dir, sorted. Both file layouts are
// recognised. A missing directory yields no ids.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read profiles directory %s: %w", dir, err)
	}

	ids := make(map[string]struct{})

	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() {
			info, statErr := os.Stat(filepath.Join(dir, name, profileFileName))
			if statErr == nil && !info.IsDir() {
				ids[name] = struct{}{}
			}

			continue
		}

		if id, ok := strings.CutSuffix(name, profileFileSuffix); ok && id != "" {
			ids[id] = struct{}{}
		}
	}

	result := make([]string, 0, len(ids))
	for id := range ids {
		result = append(result, id)
	}

	sort.Strings(result)

	return result, nil
}

func readFailed(id, path string, err error) Diagnostic {
	return warn(CodeReadFailed, err.Error(), "failed to read profile %q from %s", id, path)
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}
