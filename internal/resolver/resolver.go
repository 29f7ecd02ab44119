package resolver

import (
	"fmt"

	"xsdinfo/internal/schema"
)

// Reason classifies a resolution warning.
type Reason string

const (
	ReasonUndefined      Reason = "undefined"
	ReasonKindUndefined  Reason = "kind_undefined"
	ReasonMixedUndefined Reason = "mixed_undefined"
)

// Warning is a non-fatal diagnostic emitted while chasing a reference.
type Warning struct {
	Name   string // record whose facts could not be completed
	Ref    string // the reference as written, prefix included
	Reason Reason
}

func (w Warning) String() string {
	switch w.Reason {
	case ReasonKindUndefined:
		return fmt.Sprintf("%s.kind is not defined", w.Ref)
	case ReasonMixedUndefined:
		return fmt.Sprintf("%s.mixed is not defined", w.Ref)
	default:
		return fmt.Sprintf("%s is not defined", w.Ref)
	}
}

// Round records how many facts one full pass changed.
type Round struct {
	Round   int
	Changes int
}

// Result sums up one resolution run.
type Result struct {
	Rounds   []Round   // passes that changed at least one fact
	Warnings []Warning // diagnostics in emission order, may repeat across passes
}

// Changes returns the total number of fact upgrades across all passes.
func (r *Result) Changes() int {
	total := 0
	for _, round := range r.Rounds {
		total += round.Changes
	}
	return total
}

// Resolve chases base and substitutionGroup references in t until a
// full pass changes nothing. Kind only moves from unknown to known and
// mixed only toward mixed, so the pass count is bounded by twice the
// table size.
func Resolve(t *schema.Table) *Result {
	res := &Result{}
	for round := 1; ; round++ {
		changes := infer(t, res)
		if changes == 0 {
			break
		}
		res.Rounds = append(res.Rounds, Round{Round: round, Changes: changes})
	}
	return res
}

// infer applies one inference pass over all records in name order.
// Records are updated in place, so facts learned early in a pass feed
// records visited later in the same pass.
func infer(t *schema.Table, res *Result) int {
	changes := 0
	for _, name := range t.Names() {
		rec := t.Get(name)
		if rec.Mixed == schema.ContentMixed {
			continue
		}

		ref := rec.Ref()
		if ref == "" {
			continue
		}

		other := t.Lookup(ref)
		if other == nil {
			res.Warnings = append(res.Warnings, Warning{Name: name, Ref: ref, Reason: ReasonUndefined})
			continue
		}

		if other.Mixed == schema.ContentMixed {
			rec.Mixed = schema.ContentMixed
			changes++
		}
		if !rec.Kind.Known() {
			if other.Kind.Known() {
				rec.Kind = other.Kind
				changes++
			} else {
				res.Warnings = append(res.Warnings, Warning{Name: name, Ref: ref, Reason: ReasonKindUndefined})
			}
		}
		if !rec.Mixed.Known() {
			if other.Mixed.Known() {
				rec.Mixed = other.Mixed
				changes++
			} else {
				res.Warnings = append(res.Warnings, Warning{Name: name, Ref: ref, Reason: ReasonMixedUndefined})
			}
		}
	}
	return changes
}
