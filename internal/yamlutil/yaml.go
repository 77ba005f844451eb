// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Since YAML is a superset of JSON, the same entry points decode JSON chat
// exports as well as YAML configuration files.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Size limits for decoded input.
const (
	// MaxConfigSize limits configuration files (1MB).
	MaxConfigSize = 1 << 20

	// MaxExportSize limits chat exports, which can hold many thousands of messages (64MB).
	MaxExportSize = 64 << 20
)

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any, maxSize int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), maxSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes configuration-sized input, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v, MaxConfigSize); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v, MaxConfigSize); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalExport decodes a JSON or YAML chat export up to MaxExportSize.
// Unknown fields are ignored so exports from newer tools still load.
func UnmarshalExport(data []byte, v any) error {
	if err := validateInput(data, v, MaxExportSize); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}
