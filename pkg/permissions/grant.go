package permissions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidGrant is returned when a platform grant is not a boolean, a string list, or an object.
var ErrInvalidGrant = errors.New("platform grant must be a boolean, a list of strings, or an object")

// GrantKind tells which form a [Grant] holds.
type GrantKind int

// Grant kinds.
const (
	GrantNone GrantKind = iota
	GrantBool
	GrantList
	GrantObject
)

// Grant is a platform service grant: exactly one of a boolean, a string list,
// or a descriptor object such as {"models": ["gpt-*"]}. Use [Allow],
// [AllowList], or [Descriptor] to build one.
type Grant struct {
	Enabled *bool
	Values  []string
	Fields  map[string]any
}

// Allow returns a boolean grant.
func Allow(enabled bool) Grant {
	return Grant{Enabled: &enabled}
}

// AllowList returns a list grant.
func AllowList(values ...string) Grant {
	if values == nil {
		values = []string{}
	}

	return Grant{Values: values}
}

// Descriptor returns an object grant.
func Descriptor(fields map[string]any) Grant {
	if fields == nil {
		fields = map[string]any{}
	}

	return Grant{Fields: fields}
}

// Kind returns the form held by the grant.
func (g Grant) Kind() GrantKind {
	switch {
	case g.Enabled != nil:
		return GrantBool
	case g.Values != nil:
		return GrantList
	case g.Fields != nil:
		return GrantObject
	default:
		return GrantNone
	}
}

// IsZero reports whether the grant holds nothing.
func (g Grant) IsZero() bool {
	return g.Kind() == GrantNone
}

func (g Grant) value() any {
	switch g.Kind() {
	case GrantBool:
		return *g.Enabled
	case GrantList:
		return g.Values
	case GrantObject:
		return g.Fields
	case GrantNone:
		return nil
	}

	return nil
}

// MarshalJSON encodes the grant as its bare value.
func (g Grant) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(g.value())
	if err != nil {
		return nil, fmt.Errorf("marshal platform grant: %w", err)
	}

	return data, nil
}

// UnmarshalJSON decodes a boolean, string list, or object.
func (g *Grant) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrInvalidGrant
	}

	var err error

	switch trimmed[0] {
	case 't', 'f':
		var enabled bool

		err = json.Unmarshal(trimmed, &enabled)
		*g = Allow(enabled)
	case '[':
		var values []string

		err = json.Unmarshal(trimmed, &values)
		*g = AllowList(values...)
	case '{':
		var fields map[string]any

		err = json.Unmarshal(trimmed, &fields)
		*g = Descriptor(fields)
	default:
		return fmt.Errorf("%w: got %s", ErrInvalidGrant, trimmed)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, err)
	}

	return nil
}

// MarshalYAML encodes the grant as its bare value.
func (g Grant) MarshalYAML() (any, error) {
	return g.value(), nil
}

// UnmarshalYAML decodes a boolean, sequence of strings, or mapping.
func (g *Grant) UnmarshalYAML(node *yaml.Node) error {
	var err error

	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool

		err = node.Decode(&enabled)
		*g = Allow(enabled)
	case yaml.SequenceNode:
		var values []string

		err = node.Decode(&values)
		*g = AllowList(values...)
	case yaml.MappingNode:
		var fields map[string]any

		err = node.Decode(&fields)
		*g = Descriptor(fields)
	case yaml.DocumentNode, yaml.AliasNode:
		return fmt.Errorf("%w: line %d", ErrInvalidGrant, node.Line)
	}

	if err != nil {
		return fmt.Errorf("%w: line %d: %w", ErrInvalidGrant, node.Line, err)
	}

	return nil
}
