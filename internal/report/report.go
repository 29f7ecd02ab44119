package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"xsdinfo/internal/schema"
)

// Row is one reported element definition.
type Row struct {
	Name  string
	Kind  schema.Kind
	Mixed schema.Content
}

// Rows selects the reportable definitions from t: concrete elements
// only, in table order.
func Rows(t *schema.Table) []Row {
	var rows []Row
	for _, rec := range t.Sorted() {
		if rec.Tag != "element" || rec.Abstract {
			continue
		}
		rows = append(rows, Row{Name: rec.Name, Kind: rec.Kind, Mixed: rec.Mixed})
	}
	return rows
}

// TSV renders rows as tab-separated text, one line per element.
func TSV(rows []Row) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", row.Name, row.Kind.Label(), row.Mixed.Label()))
	}
	return strings.Join(lines, "\n")
}

// WriteTable renders rows as an aligned console table.
func WriteTable(w io.Writer, rows []Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"name", "kind", "mixed"})
	for _, row := range rows {
		table.Append([]string{row.Name, row.Kind.Label(), row.Mixed.Label()})
	}
	table.Render()
}

// WriteDump prints every record of a table with all gathered facts,
// followed by the redefinition counts. Meant for debugging.
func WriteDump(w io.Writer, t *schema.Table, redefinitions map[string]int) {
	for _, rec := range t.Sorted() {
		abstract := "--------"
		if rec.Abstract {
			abstract = "abstract"
		}
		var refs []string
		if rec.Subs != "" {
			refs = append(refs, "==> "+rec.Subs)
		}
		if rec.Base != "" {
			refs = append(refs, "<== "+rec.Base)
		}
		fmt.Fprintf(w, "%-30s in %-20s (%-7s) (%s) (%s) %s\n",
			rec.Name, rec.Tag, rec.Kind.Label(), rec.Mixed.Label(), abstract, strings.Join(refs, " "))
	}

	fmt.Fprintln(w, "=============================================")

	names := make([]string, 0, len(redefinitions))
	for name := range redefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%3dx %s\n", redefinitions[name], name)
	}
}
