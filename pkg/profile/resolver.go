package profile

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvMapper derives a partial profile from the environment. Returning nil contributes nothing.
type EnvMapper func(env map[string]string) *Profile

// Options configures [Resolve].
type Options struct {
	// RepoRoot is the repository the profiles belong to. Relative profile
	// directories are resolved against it.
	RepoRoot string
	// ProfileID is the profile to resolve. Defaults to [DefaultID].
	ProfileID string
	// ProfilesDir is the profiles directory. Defaults to [DefaultProfilesDir].
	ProfilesDir string
	// Override is applied last and wins over everything else.
	Override *Profile
	// EnvMapper, when set, is applied after the profile chain and before Override.
	EnvMapper EnvMapper
	// Env is the environment handed to EnvMapper. Defaults to the process environment.
	Env map[string]string
	// Logger receives debug output. Defaults to a discarding logger.
	Logger logrus.FieldLogger
}

// Result is the outcome of [Resolve]. Profile is always usable; Diagnostics
// tell the caller whether it should be trusted.
type Result struct {
	Profile     Profile      `json:"profile"`
	Files       []LoadedFile `json:"files"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// OK reports whether resolution produced no error-level diagnostics.
func (r Result) OK() bool {
	return !HasErrors(r.Diagnostics)
}

// ProfilesPath returns the absolute-or-repo-relative profiles directory for opts.
func (o Options) ProfilesPath() string {
	dir := o.ProfilesDir
	if dir == "" {
		dir = DefaultProfilesDir
	}

	if filepath.IsAbs(dir) {
		return dir
	}

	return filepath.Join(o.RepoRoot, dir)
}

func (o Options) withDefaults() Options {
	if o.ProfileID == "" {
		o.ProfileID = DefaultID
	}

	if o.ProfilesDir == "" {
		o.ProfilesDir = DefaultProfilesDir
	}

	if o.Logger == nil {
		o.Logger = discardLogger()
	}

	return o
}

// edge is one `extends` reference waiting in the breadth-first queue.
type edge struct {
	from string
	to   string
}

// Resolve resolves a profile through its inheritance chain.
//
// Precedence, lowest to highest: built-in default, ancestors (oldest first),
// nearer parents, the profile itself, the environment mapper, the override.
// Parents are discovered breadth-first; revisiting an id is reported as a
// PROFILE_EXTENDS_CYCLE warning and the edge is dropped. Parents of the same
// depth are read concurrently, but merge order depends only on discovery
// order. Resolution never fails; problems become diagnostics.
func Resolve(ctx context.Context, opts Options) Result {
	opts = opts.withDefaults()
	logger := opts.Logger.WithField("profile", opts.ProfileID)
	loader := NewLoader(opts.ProfilesPath(), opts.Logger)

	result := Result{Files: []LoadedFile{}, Diagnostics: []Diagnostic{}}

	self, diagnostics := loader.Load(opts.ProfileID)
	result.Diagnostics = append(result.Diagnostics, diagnostics...)

	if self != nil {
		result.Files = append(result.Files, *self)
	}

	accumulator := Merge(Default(), Profile{ID: DefaultID})

	var queue []edge
	if self != nil {
		queue = edgesFrom(opts.ProfileID, self.Data.Extends)
	}

	walked := walkParents(ctx, loader, opts.ProfileID, queue, logger)
	result.Files = append(result.Files, walked.files...)
	result.Diagnostics = append(result.Diagnostics, walked.diagnostics...)

	for index := len(walked.chain) - 1; index >= 0; index-- {
		accumulator = Merge(accumulator, walked.chain[index])
	}

	if self != nil {
		own := self.Data
		own.ID = opts.ProfileID
		accumulator = Merge(accumulator, own)
	} else {
		accumulator = Merge(accumulator, Profile{ID: opts.ProfileID})
		result.Diagnostics = append(result.Diagnostics, info(CodeFallbackDefault, loader.Dir(),
			"profile %q not found, using built-in default profile", opts.ProfileID))
	}

	if opts.EnvMapper != nil {
		env := opts.Env
		if env == nil {
			env = EnvironMap(os.Environ())
		}

		if fromEnv := opts.EnvMapper(env); fromEnv != nil {
			logger.Debug("applying environment overrides")

			result.Diagnostics = append(result.Diagnostics, unwalkedExtends("environment", fromEnv.Extends, walked.visited)...)
			accumulator = Merge(accumulator, *fromEnv)
		}
	}

	if opts.Override != nil {
		logger.Debug("applying explicit override")

		result.Diagnostics = append(result.Diagnostics, unwalkedExtends("override", opts.Override.Extends, walked.visited)...)
		accumulator = Merge(accumulator, *opts.Override)
	}

	result.Profile = accumulator
	result.Diagnostics = append(result.Diagnostics, Validate(accumulator).Diagnostics...)

	logger.WithFields(logrus.Fields{
		"files":       len(result.Files),
		"diagnostics": len(result.Diagnostics),
	}).Debug("profile resolved")

	return result
}

// walk is the outcome of [walkParents].
type walk struct {
	// chain holds the parents in discovery order.
	chain       []Profile
	files       []LoadedFile
	diagnostics []Diagnostic
	// visited holds every id the walk reached, found or not.
	visited map[string]bool
}

// walkParents walks the extends graph breadth-first, one depth level at a
// time.
func walkParents(
	ctx context.Context,
	loader *Loader,
	rootID string,
	queue []edge,
	logger logrus.FieldLogger,
) walk {
	var (
		chain       []Profile
		files       []LoadedFile
		diagnostics []Diagnostic
	)

	seen := map[string]bool{rootID: true}

	for len(queue) > 0 {
		level := queue
		queue = nil

		// steps keeps the per-edge outcome slots in queue order so that
		// diagnostics come out exactly as a sequential walk would emit them.
		steps := make([]int, len(level))

		var batch []string

		for index, next := range level {
			if seen[next.to] {
				steps[index] = -1

				continue
			}

			seen[next.to] = true
			steps[index] = len(batch)
			batch = append(batch, next.to)
		}

		outcomes, err := loader.loadAll(ctx, batch)
		if err != nil {
			diagnostics = append(diagnostics, warn(CodeReadFailed, err.Error(),
				"profile inheritance walk of %q was interrupted", rootID))

			break
		}

		for index, next := range level {
			if steps[index] < 0 {
				logger.WithField("parent", next.to).Debug("skipping repeated extends reference")

				diagnostics = append(diagnostics, warn(CodeExtendsCycle, next.from+" -> "+next.to,
					"profile %q extends %q which was already visited", next.from, next.to))

				continue
			}

			outcome := outcomes[steps[index]]
			diagnostics = append(diagnostics, outcome.diagnostics...)

			if outcome.file == nil {
				diagnostics = append(diagnostics, warn(CodeParentNotFound, loader.Dir(),
					"parent profile %q of %q not found", next.to, next.from))

				continue
			}

			logger.WithField("parent", next.to).Debug("discovered parent profile")

			files = append(files, *outcome.file)
			chain = append(chain, outcome.file.Data)
			queue = append(queue, edgesFrom(next.to, outcome.file.Data.Extends)...)
		}
	}

	return walk{chain: chain, files: files, diagnostics: diagnostics, visited: seen}
}

// unwalkedExtends reports parents added after the inheritance walk. They stay
// in the resolved extends list but contribute no content.
func unwalkedExtends(origin string, parents []string, visited map[string]bool) []Diagnostic {
	var diagnostics []Diagnostic

	for _, parent := range parents {
		if visited[parent] {
			continue
		}

		diagnostics = append(diagnostics, warn(CodeExtendsIgnored, "",
			"parent %q from the %s was not loaded; extends is only followed from profile files", parent, origin))
	}

	return diagnostics
}

func edgesFrom(from string, parents []string) []edge {
	edges := make([]edge, 0, len(parents))
	for _, parent := range parents {
		edges = append(edges, edge{from: from, to: parent})
	}

	return edges
}

// EnvironMap converts os.Environ-style entries into a map.
func EnvironMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))

	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if ok {
			env[key] = value
		}
	}

	return env
}
