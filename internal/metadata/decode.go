package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxDescriptorSize is the largest descriptor Decode accepts. Readers fetch at
// most MaxDescriptorSize+1 bytes so that an oversized file is still detected.
const MaxDescriptorSize = 1 << 20

// Descriptor file suffixes, checked in this order when resolving a unit by name.
var DescriptorExtensions = []string{".unit.yaml", ".unit.yml", ".unit.json"}

// ErrUnsupportedFormat is returned for descriptors newer than CurrentFormat.
var ErrUnsupportedFormat = errors.New("unsupported descriptor format")

// DescriptorBase returns the unit's base name and true when fileName is a descriptor.
func DescriptorBase(fileName string) (string, bool) {
	for _, ext := range DescriptorExtensions {
		if strings.HasSuffix(fileName, ext) && len(fileName) > len(ext) {
			return strings.TrimSuffix(fileName, ext), true
		}
	}
	return "", false
}

// Decode parses a descriptor. JSON descriptors go through the same decoder,
// since YAML is a superset of JSON.
//
// Error cases:
//   - Empty content → MetadataError
//   - Content over MaxDescriptorSize → MetadataError
//   - Syntax or shape errors → MetadataError with the line number when known
//   - format greater than CurrentFormat → error matching ErrUnsupportedFormat
func Decode(content []byte, filePath string) (*Unit, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, &MetadataError{
			FilePath: filePath,
			Message:  "descriptor is empty",
			Hint:     "The compile step must write at least the unit name and format.",
		}
	}

	if len(content) > MaxDescriptorSize {
		return nil, &MetadataError{
			FilePath: filePath,
			Message:  fmt.Sprintf("descriptor exceeds maximum size of %d bytes", MaxDescriptorSize),
		}
	}

	var unit Unit
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	if err := decoder.Decode(&unit); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MetadataError{FilePath: filePath, Message: "descriptor contains no document"}
		}
		return nil, wrapYAMLError(err, filePath)
	}

	if unit.Format > CurrentFormat {
		return nil, fmt.Errorf("%s declares format %d, newest supported is %d: %w",
			filePath, unit.Format, CurrentFormat, ErrUnsupportedFormat)
	}

	return &unit, nil
}

// DecodeAndValidate combines decoding and validation in one call.
func DecodeAndValidate(content []byte, filePath string) (*Unit, error) {
	unit, err := Decode(content, filePath)
	if err != nil {
		return nil, err
	}

	result := Validate(unit)
	if !result.Valid {
		return nil, formatValidationErrors(result, filePath)
	}

	return unit, nil
}
