package profile

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// Category names one group of source globs.
type Category string

// Source categories.
const (
	CategoryRules Category = "rules"
	CategoryADR   Category = "adr"
	CategoryDocs  Category = "docs"
	CategoryAPI   Category = "api"
	CategorySrc   Category = "src"
	CategoryTests Category = "tests"
)

// Categories returns every source category in canonical order.
func Categories() []Category {
	return []Category{
		CategoryRules,
		CategoryADR,
		CategoryDocs,
		CategoryAPI,
		CategorySrc,
		CategoryTests,
	}
}

// Profile is a named bundle of source globs and policy settings.
//
// The same type doubles as a partial profile: an empty ID or SchemaVersion and
// nil collections mean "not set".
type Profile struct {
	ID            string         `json:"id,omitzero"            jsonschema:"minLength=1"`
	SchemaVersion string         `json:"schemaVersion,omitzero" jsonschema:"minLength=1"`
	Extends       []string       `json:"extends,omitzero"`
	Sources       *Sources       `json:"sources,omitzero"`
	Boundaries    map[string]any `json:"boundaries,omitzero"`
	Policies      map[string]any `json:"policies,omitzero"`
	Meta          map[string]any `json:"meta,omitzero"`
}

// Sources holds the glob lists of every category.
type Sources struct {
	Rules []string `json:"rules,omitzero"`
	ADR   []string `json:"adr,omitzero"`
	Docs  []string `json:"docs,omitzero"`
	API   []string `json:"api,omitzero"`
	Src   []string `json:"src,omitzero"`
	Tests []string `json:"tests,omitzero"`
}

// Get returns the globs of a category. A nil receiver has no globs.
func (s *Sources) Get(category Category) []string {
	if s == nil {
		return nil
	}

	if field := s.field(category); field != nil {
		return *field
	}

	return nil
}

// Set replaces the globs of a category. Unknown categories are ignored.
func (s *Sources) Set(category Category, globs []string) {
	if field := s.field(category); field != nil {
		*field = globs
	}
}

func (s *Sources) field(category Category) *[]string {
	switch category {
	case CategoryRules:
		return &s.Rules
	case CategoryADR:
		return &s.ADR
	case CategoryDocs:
		return &s.Docs
	case CategoryAPI:
		return &s.API
	case CategorySrc:
		return &s.Src
	case CategoryTests:
		return &s.Tests
	default:
		return nil
	}
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	var clone Profile

	err := copier.CopyWithOption(&clone, &p, copier.Option{DeepCopy: true, IgnoreEmpty: true})
	if err != nil {
		// copier only fails on mismatched kinds, which cannot happen for identical types.
		panic(fmt.Sprintf("profile: clone failed: %v", err))
	}

	return clone
}

// LoadedFile is a profile read from disk.
type LoadedFile struct {
	Path string  `json:"path"`
	Data Profile `json:"data"`
}
