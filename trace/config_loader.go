package trace

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadParams loads tracing parameters from a YAML file. Fields absent from
// the file keep their defaults.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("params file not found: %s", path)
		}
		return nil, fmt.Errorf("reading params file: %w", err)
	}

	params := DefaultParams()
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("parsing params YAML: %w", err)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return params, nil
}

// SaveParams saves tracing parameters to a YAML file
func SaveParams(path string, params *Params) error {
	data, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshaling params YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing params file: %w", err)
	}

	return nil
}
