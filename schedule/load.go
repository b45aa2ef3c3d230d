package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jadwal/schedpdf/errors"
)

// Format is a dataset encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", errors.Validation("dataset format", filepath.Ext(path), "want .json, .yaml or .yml")
}

// Load decodes and validates a dataset.
func Load(r io.Reader, f Format) (*Dataset, error) {
	var d Dataset
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("schedule: decoding json: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && err != io.EOF {
			return nil, fmt.Errorf("schedule: decoding yaml: %w", err)
		}
	default:
		return nil, errors.Validation("dataset format", string(f), "want json or yaml")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads a dataset from path, choosing the format by extension.
func LoadFile(path string) (*Dataset, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	defer file.Close()
	return Load(file, f)
}
