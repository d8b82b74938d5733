// Package marshaller defines the serialization interface used for command output.
package marshaller

// Marshaller converts models of type T to and from text.
type Marshaller[T any] interface {
	// Marshal serializes model.
	Marshal(model T) (string, error)
	// Unmarshal decodes data into model.
	Unmarshal(data []byte, model *T) error
	// UnmarshalString decodes data into model.
	UnmarshalString(data string, model *T) error
}
