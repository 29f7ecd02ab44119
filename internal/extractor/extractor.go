package extractor

import (
	"fmt"
	"os"
	"sort"

	"aqwari.net/xml/xmltree"

	"xsdinfo/internal/schema"
)

// Tags that carry a name attribute but never define an element worth
// tracking.
var notInteresting = map[string]bool{
	"attribute":      true,
	"attributeGroup": true,
	"group":          true,
}

// Result bundles the definitions table with the diagnostics gathered
// while walking one schema document.
type Result struct {
	Table *schema.Table

	// Redefinitions counts, per name, how many later declarations
	// lost against the first one.
	Redefinitions map[string]int
}

// RedefinedNames returns the names that were declared more than once,
// in ascending order.
func (r *Result) RedefinedNames() []string {
	names := make([]string, 0, len(r.Redefinitions))
	for name := range r.Redefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtractFile reads and parses a schema document and extracts its
// definitions.
func ExtractFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	return Extract(root), nil
}

// Extract walks a parsed schema tree once and collects one record per
// named definition, first declaration wins.
func Extract(root *xmltree.Element) *Result {
	c := &collector{
		table:         schema.NewTable(),
		redefinitions: make(map[string]int),
	}
	c.walk(root, "", false)
	return &Result{Table: c.table, Redefinitions: c.redefinitions}
}

type collector struct {
	table         *schema.Table
	redefinitions map[string]int
}

// walk visits node and recurses into its element children.
// definingName names the element definition whose subtree we are in,
// if any; topDef tells whether node sits at the immediate top level of
// that subtree.
func (c *collector) walk(node *xmltree.Element, definingName string, topDef bool) {
	tag := node.Name.Local
	name := node.Attr("", "name")
	mixed := mixedFromAttr(node.Attr("", "mixed"))

	if definingName != "" {
		if topDef {
			c.noteTopLevelType(definingName, tag, mixed)
		} else if tag == "extension" {
			c.noteExtension(definingName, node.Attr("", "base"))
		}
	}

	if name != "" && !notInteresting[tag] {
		rec := &schema.Record{
			Name:     name,
			Tag:      tag,
			Abstract: node.Attr("", "abstract") == "true",
			Mixed:    mixed,
			Subs:     node.Attr("", "substitutionGroup"),
		}
		if !c.table.Add(rec) {
			c.redefinitions[name]++
		}
	}

	childDefining := definingName
	childTop := false
	if definingName == "" && name != "" && tag == "element" {
		childDefining = name
		childTop = true
	}

	for i := range node.Children {
		c.walk(&node.Children[i], childDefining, childTop)
	}
}

// noteTopLevelType classifies the enclosing definition when its
// subtree opens with a simpleType or complexType node.
func (c *collector) noteTopLevelType(definingName, tag string, mixed schema.Content) {
	rec := c.table.Get(definingName)
	if rec == nil {
		return
	}
	switch tag {
	case "simpleType":
		rec.Kind = schema.KindSimple
	case "complexType":
		rec.Kind = schema.KindComplex
	default:
		return
	}
	if mixed == schema.ContentMixed {
		rec.Mixed = schema.ContentMixed
	}
}

// noteExtension records an extension base on the enclosing definition.
// The first extension seen wins.
func (c *collector) noteExtension(definingName, base string) {
	if base == "" {
		return
	}
	rec := c.table.Get(definingName)
	if rec == nil || rec.Base != "" {
		return
	}
	rec.Base = base
}

// mixedFromAttr maps the textual mixed attribute onto the tri-state:
// absent means undetermined, "true" means mixed, anything else is an
// explicit pure declaration.
func mixedFromAttr(v string) schema.Content {
	switch v {
	case "":
		return schema.ContentUnknown
	case "true":
		return schema.ContentMixed
	default:
		return schema.ContentPure
	}
}
