package config

import (
	"strconv"

	"github.com/tiendc/go-deepcopy"
)

// Node is one entry of a validator configuration tree: a name, string
// attributes and ordered children.
type Node struct {
	Name       string
	Attributes map[string]string
	Children   []*Node
}

// NewNode builds a node with the given name and attribute pairs.
func NewNode(name string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{Name: name, Attributes: attrs, Children: children}
}

// Attribute returns the named attribute and whether it was set.
func (n *Node) Attribute(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.Attributes[key]
	return v, ok
}

// AttributeOr returns the named attribute or fallback when unset.
func (n *Node) AttributeOr(key, fallback string) string {
	if v, ok := n.Attribute(key); ok && v != "" {
		return v
	}
	return fallback
}

// IntAttribute parses the named attribute as an int. Unset attributes
// yield fallback.
func (n *Node) IntAttribute(key string, fallback int) (int, error) {
	v, ok := n.Attribute(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, &AttributeError{Node: n.Name, Key: key, Value: v, Err: err}
	}
	return i, nil
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	var out Node
	if err := deepcopy.Copy(&out, n); err != nil {
		// deepcopy only fails on unsupported kinds, which Node has none of.
		panic(err)
	}
	return &out
}

// AttributeError reports an attribute whose value could not be parsed.
type AttributeError struct {
	Node  string
	Key   string
	Value string
	Err   error
}

func (e *AttributeError) Error() string {
	return "attribute " + e.Key + "=" + strconv.Quote(e.Value) + " of " + e.Node + ": " + e.Err.Error()
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}
