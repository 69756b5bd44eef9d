package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// RootName is the name given to the root node of every loaded tree.
const RootName = "docinspect"

// ErrUnsupportedFormat is returned for tree files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Tree is a loaded validator configuration.
type Tree struct {
	Root     *Node             // One child per validator, in file order
	Language string            // Document language, may be empty
	Symbols  map[string]string // Character table overrides
	BaseDir  string            // Directory relative resource paths resolve against
}

// fileNode mirrors Node in the on-disk formats.
type fileNode struct {
	Name       string            `yaml:"name" toml:"name"`
	Attributes map[string]any `yaml:"attributes" toml:"attributes"`
	Children   []fileNode     `yaml:"children" toml:"children"`
}

type fileTree struct {
	Lang       string            `yaml:"lang" toml:"lang"`
	Symbols    map[string]string `yaml:"symbols" toml:"symbols"`
	Validators []fileNode        `yaml:"validators" toml:"validators"`
}

// LoadTree reads a validator tree from a .yaml, .yml or .toml file.
func LoadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	tree, err := ParseTree(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tree.BaseDir = filepath.Dir(path)
	return tree, nil
}

// ParseTree decodes a validator tree. format is a file extension or a
// bare format name ("yaml", "toml").
func ParseTree(data []byte, format string) (*Tree, error) {
	var ft fileTree
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &ft); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &ft); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	root := NewNode(RootName, nil)
	if ft.Lang != "" {
		root.Attributes["lang"] = ft.Lang
	}
	for i, fn := range ft.Validators {
		n, err := fn.toNode()
		if err != nil {
			return nil, fmt.Errorf("validators[%d]: %w", i, err)
		}
		root.Children = append(root.Children, n)
	}

	return &Tree{
		Root:     root,
		Language: ft.Lang,
		Symbols:  ft.Symbols,
	}, nil
}

func (fn fileNode) toNode() (*Node, error) {
	name := strings.TrimSpace(fn.Name)
	if name == "" {
		return nil, errors.New("validator entry without a name")
	}
	attrs, err := scalarAttributes(fn.Attributes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	n := NewNode(name, attrs)
	for i, c := range fn.Children {
		child, err := c.toNode()
		if err != nil {
			return nil, fmt.Errorf("%s.children[%d]: %w", name, i, err)
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// scalarAttributes renders attribute values as strings, so that unquoted
// numbers and booleans read the same as their quoted form.
func scalarAttributes(in map[string]any) (map[string]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch v.(type) {
		case nil:
			out[k] = ""
		case map[string]any, []any:
			return nil, fmt.Errorf("attribute %q: nested values are not supported", k)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out, nil
}

// Resolve returns path joined to BaseDir unless it is already absolute.
func (t *Tree) Resolve(path string) string {
	if t == nil || t.BaseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(t.BaseDir, path)
}
