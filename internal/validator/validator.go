// Package validator defines the contracts document inspection rules
// implement, the registry that builds them from a configuration tree, and
// the findings they report.
//
// A validator is bound to one or more scopes by the interfaces it
// implements: DocumentValidator, SectionValidator or SentenceValidator.
// Every validator is initialized once from its configuration node before
// any document is inspected, and afterwards must not mutate shared state.
// Clone produces an isolated copy for use on another goroutine.
package validator

import (
	"log/slog"

	"github.com/dgallion1/docinspect/internal/chartable"
	"github.com/dgallion1/docinspect/internal/config"
	"github.com/dgallion1/docinspect/internal/doctree"
)

// Resources are shared read-only inputs handed to every factory.
type Resources struct {
	Chars *chartable.Table
	// Resolve maps a resource path from the configuration to a file path.
	// Nil means paths are used as given.
	Resolve func(path string) string
	// Log receives faults of validators that call other validators. Nil
	// discards them.
	Log *slog.Logger
}

// ResolvePath applies Resolve when set.
func (r Resources) ResolvePath(path string) string {
	if r.Resolve == nil {
		return path
	}
	return r.Resolve(path)
}

// Validator is the lifecycle shared by every scope.
type Validator interface {
	// Name is the registry key the validator was configured under.
	Name() string
	// Initialize reads attributes and loads resources. It runs once,
	// before any Validate call.
	Initialize(node *config.Node, res Resources) error
	// Clone returns an instance that shares no mutable state with the
	// receiver.
	Clone() Validator
}

// DocumentValidator inspects a whole document.
type DocumentValidator interface {
	Validator
	ValidateDocument(doc *doctree.Document) []ValidationError
}

// SectionValidator inspects one section, excluding nested sections.
type SectionValidator interface {
	Validator
	ValidateSection(sec *doctree.Section) []ValidationError
}

// SentenceValidator inspects one sentence.
type SentenceValidator interface {
	Validator
	ValidateSentence(s *doctree.Sentence) []ValidationError
}

// Equaler is implemented by validators whose configuration-derived state
// can be compared. Equal instances under the same name are loaded once.
type Equaler interface {
	Equal(other Validator) bool
}
