package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	assert.Equal(t, "-----", KindUnknown.Label())
	assert.Equal(t, "simple", KindSimple.Label())
	assert.Equal(t, "complex", KindComplex.Label())
	assert.False(t, KindUnknown.Known())
	assert.True(t, KindComplex.Known())

	assert.Equal(t, "-----", ContentUnknown.Label())
	assert.Equal(t, "pure", ContentPure.Label())
	assert.Equal(t, "mixed", ContentMixed.Label())
	assert.False(t, ContentUnknown.Known())
	assert.True(t, ContentPure.Known())
}

func TestRecordRef(t *testing.T) {
	assert.Equal(t, "", (&Record{}).Ref())
	assert.Equal(t, "head", (&Record{Subs: "head"}).Ref())
	assert.Equal(t, "baseType", (&Record{Base: "baseType", Subs: "head"}).Ref())
}

func TestTableAddFirstWins(t *testing.T) {
	tbl := NewTable()

	require.True(t, tbl.Add(&Record{Name: "p", Tag: "element"}))
	assert.False(t, tbl.Add(&Record{Name: "p", Tag: "complexType"}))

	rec := tbl.Get("p")
	require.NotNil(t, rec)
	assert.Equal(t, "element", rec.Tag)
	assert.Equal(t, 1, tbl.Len())

	assert.False(t, tbl.Add(nil))
	assert.False(t, tbl.Add(&Record{Tag: "element"}))
}

func TestTableLookupStripsPrefix(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.Add(&Record{Name: "p", Tag: "element"}))

	assert.Same(t, tbl.Get("p"), tbl.Lookup("tei:p"))
	assert.Same(t, tbl.Get("p"), tbl.Lookup("p"))
	assert.Nil(t, tbl.Lookup("tei:q"))
}

func TestTableReplace(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.Add(&Record{Name: "x", Tag: "element", Mixed: ContentPure}))

	tbl.Replace(&Record{Name: "x", Tag: "element", Mixed: ContentMixed})
	assert.Equal(t, ContentMixed, tbl.Get("x").Mixed)
	assert.Equal(t, 1, tbl.Len())
}

func TestTableNamesSorted(t *testing.T) {
	tbl := NewTable()
	for _, name := range []string{"c", "a", "b"} {
		require.True(t, tbl.Add(&Record{Name: name, Tag: "element"}))
	}
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Names())
}

func TestTableSortedOrder(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.Add(&Record{Name: "zeta", Tag: "element"}))
	require.True(t, tbl.Add(&Record{Name: "alpha", Tag: "element", Abstract: true}))
	require.True(t, tbl.Add(&Record{Name: "beta", Tag: "element"}))
	require.True(t, tbl.Add(&Record{Name: "model.one", Tag: "complexType"}))
	require.True(t, tbl.Add(&Record{Name: "data.word", Tag: "simpleType"}))

	var names []string
	for _, rec := range tbl.Sorted() {
		names = append(names, rec.Name)
	}

	// simpleType first, then complexType, then elements with
	// non-abstract ones ahead of abstract ones.
	assert.Equal(t, []string{"data.word", "model.one", "beta", "zeta", "alpha"}, names)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "p", LocalName("p"))
	assert.Equal(t, "p", LocalName("tei:p"))
	assert.Equal(t, "b:c", LocalName("a:b:c"))
	assert.Equal(t, "", LocalName(""))
}
