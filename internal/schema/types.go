package schema

// Kind classifies a definition as a simple or a complex type.
type Kind string

const (
	KindUnknown Kind = ""
	KindSimple  Kind = "simple"
	KindComplex Kind = "complex"
)

// Known reports whether the kind has been determined.
func (k Kind) Known() bool { return k != KindUnknown }

// Label renders the kind for reports, "-----" when unknown.
func (k Kind) Label() string {
	if k == KindUnknown {
		return "-----"
	}
	return string(k)
}

// Content tells whether a definition admits character data between its
// child elements.
type Content string

const (
	ContentUnknown Content = ""
	ContentPure    Content = "pure"
	ContentMixed   Content = "mixed"
)

// Known reports whether the mixed status has been determined.
func (c Content) Known() bool { return c != ContentUnknown }

// Label renders the mixed status for reports, "-----" when unknown.
func (c Content) Label() string {
	if c == ContentUnknown {
		return "-----"
	}
	return string(c)
}

// Record holds the facts gathered about one named definition.
// Kind and Mixed start out unknown unless declared on the defining
// node itself; resolution may upgrade them later, never downgrade.
type Record struct {
	Name     string
	Tag      string
	Abstract bool
	Mixed    Content
	Kind     Kind
	Subs     string // substitutionGroup reference, may carry a namespace prefix
	Base     string // base attribute of an extension nested inside the definition
}

// Ref returns the reference resolution should chase for this record.
// An extension base wins over a substitution group when both are set.
func (r *Record) Ref() string {
	if r.Base != "" {
		return r.Base
	}
	return r.Subs
}
