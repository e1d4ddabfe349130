package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Step operations understood by replay.
const (
	OpAppend = "append"
	OpInsert = "insert"
	OpRemove = "remove"
	OpSet    = "set"
	OpMove   = "move"
	OpClear  = "clear"
)

// Script is a replay script: a seed and a list of mutations.
//
//	name: todo
//	seed: [write, test]
//	steps:
//	  - op: append
//	    value: ship
//	  - op: move
//	    index: 2
//	    to: 0
type Script struct {
	Name  string   `yaml:"name"`
	Seed  []string `yaml:"seed"`
	Steps []Step   `yaml:"steps"`
}

// Step is one mutation. Index is used by insert, remove, set and move; To by
// move; Value by append, insert and set.
type Step struct {
	Op    string `yaml:"op"`
	Index int    `yaml:"index"`
	To    int    `yaml:"to"`
	Value string `yaml:"value"`
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i := range s.Steps {
		op := strings.ToLower(strings.TrimSpace(s.Steps[i].Op))
		switch op {
		case OpAppend, OpInsert, OpRemove, OpSet, OpMove, OpClear:
			s.Steps[i].Op = op
		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i, s.Steps[i].Op)
		}
	}
	return &s, nil
}
