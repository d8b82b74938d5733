package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/tidwall/jsonc"
)

var (
	// ErrNotAnObject is returned when a profile document is valid JSON but not an object.
	ErrNotAnObject = errors.New("profile document must be a JSON object")
	// ErrTrailingData is returned when content follows the profile document.
	ErrTrailingData = errors.New("unexpected content after profile document")
)

// ParseDocument parses profile file content. Comments and trailing commas are
// tolerated. Integral numbers decode as int, other numbers as float64.
func ParseDocument(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var value any

	err := decoder.Decode(&value)
	if err != nil {
		return nil, fmt.Errorf("parse profile document: %w", err)
	}

	_, err = decoder.Token()
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse profile document: %w at offset %d", ErrTrailingData, decoder.InputOffset())
	}

	document, ok := normalizeNumbers(value).(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}

	return document, nil
}

// Decode converts a parsed document into a typed profile.
func Decode(document map[string]any) (Profile, error) {
	return decode(document)
}

func decode(document map[string]any) (Profile, error) {
	var profile Profile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      &profile,
		ErrorUnused: false,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("create profile decoder: %w", err)
	}

	err = decoder.Decode(document)
	if err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}

	return profile, nil
}

// decodeWeak is decode with weakly typed input, used for values that arrive as
// strings (environment variables, CLI assignments).
func decodeWeak(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           output,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	err = decoder.Decode(input)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func normalizeNumbers(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalizeNumbers(item)
		}

		return typed
	case []any:
		for index, item := range typed {
			typed[index] = normalizeNumbers(item)
		}

		return typed
	case json.Number:
		return normalizeNumber(typed)
	default:
		return value
	}
}

func normalizeNumber(number json.Number) any {
	integer, err := number.Int64()
	if err == nil && integer >= math.MinInt && integer <= math.MaxInt {
		return int(integer)
	}

	float, err := number.Float64()
	if err == nil {
		return float
	}

	return number.String()
}
