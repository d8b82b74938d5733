// Package output renders command results as JSON or YAML.
package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/kb-labs/devkit/pkg/cli/ui"
	"github.com/kb-labs/devkit/pkg/io/marshaller"
	jsonmarshaller "github.com/kb-labs/devkit/pkg/io/marshaller/json"
	yamlmarshaller "github.com/kb-labs/devkit/pkg/io/marshaller/yaml"
)

// Formats.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for formats other than json, yaml and auto.
var ErrUnknownFormat = errors.New("unknown output format")

// Resolve turns auto into yaml when writer is a terminal and json otherwise.
// An empty format counts as auto.
func Resolve(format string, writer io.Writer) (string, error) {
	switch format {
	case FormatJSON, FormatYAML:
		return format, nil
	case FormatAuto, "":
		if ui.IsTerminal(writer) {
			return FormatYAML, nil
		}

		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Write renders value to writer in format.
func Write[T any](writer io.Writer, format string, value T) error {
	resolved, err := Resolve(format, writer)
	if err != nil {
		return err
	}

	var mar marshaller.Marshaller[T] = jsonmarshaller.NewMarshaller[T]()
	if resolved == FormatYAML {
		mar = yamlmarshaller.NewMarshaller[T]()
	}

	text, err := mar.Marshal(value)
	if err != nil {
		return err
	}

	_, err = io.WriteString(writer, text)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
