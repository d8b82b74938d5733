package permissions

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jinzhu/copier"
)

var (
	// ErrDuplicatePreset is returned when registering an id that is already taken.
	ErrDuplicatePreset = errors.New("preset already registered")
	// ErrUnknownPreset is returned when looking up an id that was never registered.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrInvalidPreset is returned for presets without an id.
	ErrInvalidPreset = errors.New("invalid preset")
)

// Registry maps preset ids to presets. It is safe for concurrent use and
// hands out deep copies, so callers cannot alter registered presets.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
	order   []string
}

// NewRegistry returns a registry seeded with [Builtins].
func NewRegistry() *Registry {
	registry := NewEmptyRegistry()

	err := registry.Register(Builtins()...)
	if err != nil {
		panic("permissions: register built-in presets: " + err.Error())
	}

	return registry
}

// NewEmptyRegistry returns a registry without any presets.
func NewEmptyRegistry() *Registry {
	return &Registry{presets: map[string]Preset{}}
}

// Register adds presets in order. It stops at the first preset whose id is
// empty or already registered; presets before it stay registered.
func (r *Registry) Register(presets ...Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, preset := range presets {
		if preset.ID == "" {
			return fmt.Errorf("%w: preset id is empty", ErrInvalidPreset)
		}

		if _, exists := r.presets[preset.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePreset, preset.ID)
		}

		r.presets[preset.ID] = clonePreset(preset)
		r.order = append(r.order, preset.ID)
	}

	return nil
}

// Get returns a copy of the preset registered under id.
func (r *Registry) Get(id string) (Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	preset, ok := r.presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, id)
	}

	return clonePreset(preset), nil
}

// Lookup returns copies of the presets registered under ids, in order.
func (r *Registry) Lookup(ids ...string) ([]Preset, error) {
	presets := make([]Preset, 0, len(ids))

	for _, id := range ids {
		preset, err := r.Get(id)
		if err != nil {
			return nil, err
		}

		presets = append(presets, preset)
	}

	return presets, nil
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// List returns copies of all presets in registration order.
func (r *Registry) List() []Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	presets := make([]Preset, 0, len(r.order))
	for _, id := range r.order {
		presets = append(presets, clonePreset(r.presets[id]))
	}

	return presets
}

func clonePreset(preset Preset) Preset {
	var clone Preset

	err := copier.CopyWithOption(&clone, &preset, copier.Option{DeepCopy: true, IgnoreEmpty: true})
	if err != nil {
		panic("permissions: clone preset " + preset.ID + ": " + err.Error())
	}

	return clone
}
