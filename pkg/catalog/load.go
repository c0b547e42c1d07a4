package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for schema files that are neither JSON
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported schema format")

// ParseJSON parses a schema from JSON bytes.
func ParseJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse schema json: %w", err)
	}
	s.normalize()
	return &s, nil
}

// ParseYAML parses a schema from YAML bytes. Columns without an explicit
// ordinal are numbered in document order.
func ParseYAML(data []byte) (*Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}
	var s Schema
	if err := root.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode schema yaml: %w", err)
	}
	s.normalize()
	assignOrdinals(&s, &root)
	return &s, nil
}

// LoadFile reads a schema file, choosing the format from its extension.
func LoadFile(path string) (*Schema, error) {
	var parse func([]byte) (*Schema, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		parse = ParseJSON
	case ".yaml", ".yml":
		parse = ParseYAML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	s, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// assignOrdinals walks databases.*.tables.*.columns in the YAML document
// and numbers columns in the order they appear.
func assignOrdinals(s *Schema, root *yaml.Node) {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	eachPair(mappingValue(doc, "databases"), func(dbKey string, dbNode *yaml.Node) {
		db := s.Databases[dbKey]
		if db == nil {
			return
		}
		eachPair(mappingValue(dbNode, "tables"), func(tKey string, tNode *yaml.Node) {
			t := db.Tables[tKey]
			if t == nil {
				return
			}
			i := 0
			eachPair(mappingValue(tNode, "columns"), func(cKey string, _ *yaml.Node) {
				i++
				if c := t.Columns[cKey]; c != nil && c.Ordinal == 0 {
					c.Ordinal = i
				}
			})
		})
	})
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node)) {
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, n.Content[i+1])
	}
}
