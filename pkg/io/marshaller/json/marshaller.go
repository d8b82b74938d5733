// Package jsonmarshaller implements [marshaller.Marshaller] with encoding/json.
package jsonmarshaller

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kb-labs/devkit/pkg/io/marshaller"
)

// Marshaller serializes T as indented JSON followed by a newline.
type Marshaller[T any] struct{}

var _ marshaller.Marshaller[any] = (*Marshaller[any])(nil)

// NewMarshaller returns a JSON marshaller for T.
func NewMarshaller[T any]() *Marshaller[T] {
	return &Marshaller[T]{}
}

// Marshal serializes model with two-space indentation. HTML characters are
// not escaped so globs such as <id> stay readable.
func (m *Marshaller[T]) Marshal(model T) (string, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(model)
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}

	return buf.String(), nil
}

// Unmarshal decodes data into model.
func (m *Marshaller[T]) Unmarshal(data []byte, model *T) error {
	err := json.Unmarshal(data, model)
	if err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	return nil
}

// UnmarshalString decodes data into model.
func (m *Marshaller[T]) UnmarshalString(data string, model *T) error {
	return m.Unmarshal([]byte(data), model)
}
