package schema

import (
	"sort"
	"strings"
)

// Table is a name-indexed collection of definition records built from
// one schema document.
type Table struct {
	records map[string]*Record
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{records: make(map[string]*Record)}
}

// Add registers a record under its name. The first registration wins;
// the return value reports whether the record was stored.
func (t *Table) Add(rec *Record) bool {
	if rec == nil || rec.Name == "" {
		return false
	}
	if _, ok := t.records[rec.Name]; ok {
		return false
	}
	t.records[rec.Name] = rec
	return true
}

// Get returns the record registered under name, or nil.
func (t *Table) Get(name string) *Record {
	return t.records[name]
}

// Lookup resolves a possibly prefixed reference against the table.
func (t *Table) Lookup(ref string) *Record {
	return t.records[LocalName(ref)]
}

// Replace stores rec under its name, overwriting any existing entry.
func (t *Table) Replace(rec *Record) {
	if rec == nil || rec.Name == "" {
		return
	}
	t.records[rec.Name] = rec
}

// Len returns the number of registered records.
func (t *Table) Len() int { return len(t.records) }

// Names returns the registered names in ascending order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.records))
	for name := range t.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sorted returns all records in report order: simpleType before
// complexType before any other tag, non-abstract before abstract,
// then by name.
func (t *Table) Sorted() []*Record {
	recs := make([]*Record, 0, len(t.records))
	for _, rec := range t.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if ra, rb := tagRank(a.Tag), tagRank(b.Tag); ra != rb {
			return ra < rb
		}
		if a.Abstract != b.Abstract {
			return !a.Abstract
		}
		return a.Name < b.Name
	})
	return recs
}

func tagRank(tag string) string {
	switch tag {
	case "simpleType":
		return "0"
	case "complexType":
		return "1"
	default:
		return tag
	}
}

// LocalName strips a namespace prefix from a reference, so that
// "tei:p" and "p" address the same record.
func LocalName(ref string) string {
	if _, local, ok := strings.Cut(ref, ":"); ok {
		return local
	}
	return ref
}
