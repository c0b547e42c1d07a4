package exprrule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a rule file.
type File struct {
	Rules []Definition `yaml:"rules"`
}

// Parse reads definitions from YAML: either a File or a bare list.
func Parse(data []byte) ([]Definition, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var defs []Definition
		if err := root.Decode(&defs); err != nil {
			return nil, fmt.Errorf("decode rules: %w", err)
		}
		return defs, nil
	}

	var f File
	if err := root.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return f.Rules, nil
}

// LoadFile reads and compiles a rule file.
func LoadFile(path string) ([]*Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	defs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rules, err := CompileAll(defs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}
