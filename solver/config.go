// SPDX-License-Identifier: MIT

package solver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseOptions decodes YAML over DefaultOptions. Unknown keys are rejected;
// an empty document yields the defaults.
//
//	max_iteration: 20000
//	seed: 7
//	time_limit: 2s
//	tabu_tenure: 2
//	restart_after: 200
//	target_objective: 6
func ParseOptions(data []byte) (Options, error) {
	o := DefaultOptions()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("solver: parse options: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}

	return o, nil
}

// LoadOptions reads and parses the YAML file at path.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("solver: load options: %w", err)
	}

	return ParseOptions(data)
}
