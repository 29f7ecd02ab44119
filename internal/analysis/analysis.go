package analysis

import (
	"fmt"

	"xsdinfo/internal/extractor"
	"xsdinfo/internal/resolver"
	"xsdinfo/internal/schema"
)

// SchemaResult carries everything learned about one schema document.
type SchemaResult struct {
	Path       string
	Table      *schema.Table
	Redefined  map[string]int
	Resolution *resolver.Result
}

// Transition describes how an override changed one definition.
// Desc is empty when base and override agree on kind and mixed.
type Transition struct {
	Name string
	Desc string
}

func (t Transition) Changed() bool { return t.Desc != "" }

// Analysis is the outcome of analysing a base schema, optionally
// merged with an override schema.
type Analysis struct {
	Base     *SchemaResult
	Override *SchemaResult // nil when no override schema was given

	// Merged is the table reports draw from: the base table with
	// overridden records swapped in.
	Merged *schema.Table

	// Overrides holds one transition per name shared by both
	// schemas, in name order.
	Overrides []Transition

	// OverrideOnly lists names the override schema defines but the
	// base schema does not; overriding never adds definitions, so
	// these are reported and skipped.
	OverrideOnly []string
}

// Run extracts and resolves baseSchema, and when overrideSchema is
// not empty does the same for it and merges the two tables.
func Run(baseSchema, overrideSchema string) (*Analysis, error) {
	base, err := analyseOne(baseSchema)
	if err != nil {
		return nil, err
	}

	a := &Analysis{Base: base, Merged: base.Table}
	if overrideSchema == "" {
		return a, nil
	}

	override, err := analyseOne(overrideSchema)
	if err != nil {
		return nil, err
	}
	a.Override = override
	a.merge()

	return a, nil
}

func analyseOne(path string) (*SchemaResult, error) {
	ext, err := extractor.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return &SchemaResult{
		Path:       path,
		Table:      ext.Table,
		Redefined:  ext.Redefinitions,
		Resolution: resolver.Resolve(ext.Table),
	}, nil
}

// merge walks the override names in order, compares each against the
// base table and swaps in the override record when kind or mixed
// changed.
func (a *Analysis) merge() {
	for _, name := range a.Override.Table.Names() {
		orec := a.Override.Table.Get(name)
		brec := a.Base.Table.Get(name)
		if brec == nil {
			a.OverrideOnly = append(a.OverrideOnly, name)
			continue
		}
		desc := transition(brec, orec)
		if desc != "" {
			a.Merged.Replace(orec)
		}
		a.Overrides = append(a.Overrides, Transition{Name: name, Desc: desc})
	}
}

// transition renders the label changes between a base record and its
// override, or "" when both facts agree.
func transition(base, override *schema.Record) string {
	bKind, oKind := base.Kind.Label(), override.Kind.Label()
	bMixed, oMixed := base.Mixed.Label(), override.Mixed.Label()

	switch {
	case bKind != oKind && bMixed != oMixed:
		return fmt.Sprintf("%s %s ==> %s %s", bKind, bMixed, oKind, oMixed)
	case bKind != oKind:
		return fmt.Sprintf("%s ==> %s", bKind, oKind)
	case bMixed != oMixed:
		return fmt.Sprintf("%s ==> %s", bMixed, oMixed)
	default:
		return ""
	}
}

// OverrideCounts reports how many shared names kept their
// classification and how many changed.
func (a *Analysis) OverrideCounts() (same, changed int) {
	for _, tr := range a.Overrides {
		if tr.Changed() {
			changed++
		} else {
			same++
		}
	}
	return same, changed
}

// ChangedOverrides returns only the transitions that report a change,
// in name order.
func (a *Analysis) ChangedOverrides() []Transition {
	var out []Transition
	for _, tr := range a.Overrides {
		if tr.Changed() {
			out = append(out, tr)
		}
	}
	return out
}
