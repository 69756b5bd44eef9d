package validator

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dgallion1/docinspect/internal/config"
)

// Factory builds an initialized validator from its configuration node.
type Factory func(node *config.Node, res Resources) (Validator, error)

// Constructor adapts an allocator into a Factory that calls Initialize.
func Constructor(newFn func() Validator) Factory {
	return func(node *config.Node, res Resources) (Validator, error) {
		v := newFn()
		if err := v.Initialize(node, res); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Registry maps validator names to factories. Names are case-sensitive.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory. Registering the same name twice panics; it is a
// wiring mistake, not a runtime condition.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" || f == nil {
		panic("validator: Register with empty name or nil factory")
	}
	if _, dup := r.factories[name]; dup {
		panic(fmt.Sprintf("validator: %q registered twice", name))
	}
	r.factories[name] = f
}

// Resolve returns the factory registered under name.
func (r *Registry) Resolve(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	if !ok {
		return nil, &UnknownValidatorError{Name: name}
	}
	return f, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load builds one validator per child of root, in order. Any failure
// aborts the whole load; a partially loaded set is never returned.
func (r *Registry) Load(root *config.Node, res Resources) (*Set, error) {
	set := &Set{}
	if root == nil {
		return set, nil
	}
	for _, child := range root.Children {
		v, err := r.Build(child, res)
		if err != nil {
			return nil, err
		}
		set.Add(v)
	}
	return set, nil
}

// Build resolves and runs the factory for a single node.
func (r *Registry) Build(node *config.Node, res Resources) (Validator, error) {
	f, err := r.Resolve(node.Name)
	if err != nil {
		return nil, err
	}
	v, err := f(node, res)
	if err != nil {
		return nil, wrapConfigError(node.Name, err)
	}
	if !hasScope(v) {
		return nil, &ConfigError{Validator: node.Name, Err: ErrNoScope}
	}
	return v, nil
}

func wrapConfigError(name string, err error) error {
	switch err.(type) {
	case *ConfigError, *MissingAttributeError, *UnknownValidatorError:
		return err
	}
	return &ConfigError{Validator: name, Err: err}
}

func hasScope(v Validator) bool {
	switch v.(type) {
	case DocumentValidator, SectionValidator, SentenceValidator:
		return true
	}
	return false
}
