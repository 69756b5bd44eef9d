package validator

// Set is a loaded collection of validators bucketed by scope. Order within
// each bucket is registration order.
type Set struct {
	all       []Validator
	documents []DocumentValidator
	sections  []SectionValidator
	sentences []SentenceValidator
}

// NewSet builds a set from already initialized validators.
func NewSet(vs ...Validator) *Set {
	s := &Set{}
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add appends v to every bucket whose interface it implements. It reports
// false when v equals a validator already in the set under the same name.
func (s *Set) Add(v Validator) bool {
	if eq, ok := v.(Equaler); ok {
		for _, existing := range s.all {
			if existing.Name() == v.Name() && eq.Equal(existing) {
				return false
			}
		}
	}
	s.all = append(s.all, v)
	if dv, ok := v.(DocumentValidator); ok {
		s.documents = append(s.documents, dv)
	}
	if sv, ok := v.(SectionValidator); ok {
		s.sections = append(s.sections, sv)
	}
	if sv, ok := v.(SentenceValidator); ok {
		s.sentences = append(s.sentences, sv)
	}
	return true
}

func (s *Set) Len() int { return len(s.all) }

func (s *Set) All() []Validator { return s.all }

func (s *Set) Documents() []DocumentValidator { return s.documents }

func (s *Set) Sections() []SectionValidator { return s.sections }

func (s *Set) Sentences() []SentenceValidator { return s.sentences }

// Clone returns a set of cloned validators for use on another goroutine.
// A validator registered in several scopes is cloned once.
func (s *Set) Clone() *Set {
	out := &Set{}
	for _, v := range s.all {
		out.Add(v.Clone())
	}
	return out
}
