// Package yamlmarshaller implements [marshaller.Marshaller] with sigs.k8s.io/yaml.
//
// Models are converted through their JSON form, so json struct tags and
// custom MarshalJSON methods decide the YAML keys.
package yamlmarshaller

import (
	"fmt"

	"github.com/kb-labs/devkit/pkg/io/marshaller"
	"sigs.k8s.io/yaml"
)

// Marshaller serializes T as YAML.
type Marshaller[T any] struct{}

var _ marshaller.Marshaller[any] = (*Marshaller[any])(nil)

// NewMarshaller returns a YAML marshaller for T.
func NewMarshaller[T any]() *Marshaller[T] {
	return &Marshaller[T]{}
}

// Marshal serializes model.
func (m *Marshaller[T]) Marshal(model T) (string, error) {
	data, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}

	return string(data), nil
}

// Unmarshal decodes data into model.
func (m *Marshaller[T]) Unmarshal(data []byte, model *T) error {
	err := yaml.Unmarshal(data, model)
	if err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}

	return nil
}

// UnmarshalString decodes data into model.
func (m *Marshaller[T]) UnmarshalString(data string, model *T) error {
	return m.Unmarshal([]byte(data), model)
}
