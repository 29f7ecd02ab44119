package analysis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsdinfo/internal/schema"
)

func TestRunBaseOnly(t *testing.T) {
	a, err := Run(filepath.Join("testdata", "base.xsd"), "")
	require.NoError(t, err)

	assert.Nil(t, a.Override)
	assert.Empty(t, a.Overrides)
	assert.Empty(t, a.OverrideOnly)
	assert.Same(t, a.Base.Table, a.Merged)

	x := a.Merged.Get("x")
	require.NotNil(t, x)
	assert.Equal(t, schema.KindComplex, x.Kind)
	assert.Equal(t, schema.ContentPure, x.Mixed, "pure copied from the extension base")
}

func TestRunWithOverride(t *testing.T) {
	a, err := Run(
		filepath.Join("testdata", "base.xsd"),
		filepath.Join("testdata", "override.xsd"),
	)
	require.NoError(t, err)
	require.NotNil(t, a.Override)

	byName := make(map[string]Transition)
	for _, tr := range a.Overrides {
		byName[tr.Name] = tr
	}

	t.Run("Tables Parsed From Their Own Paths", func(t *testing.T) {
		assert.NotNil(t, a.Base.Table.Get("baseonly"))
		assert.Nil(t, a.Override.Table.Get("baseonly"))
		assert.NotNil(t, a.Override.Table.Get("onlyhere"))
		assert.Nil(t, a.Base.Table.Get("onlyhere"))
	})

	t.Run("Changed Name Gets Transition And Override Wins", func(t *testing.T) {
		tr, ok := byName["x"]
		require.True(t, ok)
		assert.Equal(t, "pure ==> mixed", tr.Desc)
		assert.True(t, tr.Changed())

		merged := a.Merged.Get("x")
		require.NotNil(t, merged)
		assert.Equal(t, schema.KindComplex, merged.Kind)
		assert.Equal(t, schema.ContentMixed, merged.Mixed)
	})

	t.Run("Unchanged Name Has No Transition", func(t *testing.T) {
		tr, ok := byName["stable"]
		require.True(t, ok)
		assert.False(t, tr.Changed())

		merged := a.Merged.Get("stable")
		require.NotNil(t, merged)
		assert.Same(t, a.Base.Table.Get("stable"), merged, "base record kept when nothing changed")
	})

	t.Run("Override Only Names Are Not Merged", func(t *testing.T) {
		assert.Equal(t, []string{"onlyhere"}, a.OverrideOnly)
		assert.Nil(t, a.Merged.Get("onlyhere"))
	})

	t.Run("Base Only Names Left Untouched", func(t *testing.T) {
		rec := a.Merged.Get("baseonly")
		require.NotNil(t, rec)
		assert.Equal(t, schema.ContentMixed, rec.Mixed)
	})

	t.Run("Counts", func(t *testing.T) {
		same, changed := a.OverrideCounts()
		assert.Equal(t, 1, same)
		assert.Equal(t, 2, changed)

		var names []string
		for _, tr := range a.ChangedOverrides() {
			names = append(names, tr.Name)
		}
		assert.Equal(t, []string{"model.xLike", "x"}, names)
	})
}

func TestRunErrors(t *testing.T) {
	_, err := Run(filepath.Join("testdata", "absent.xsd"), "")
	assert.Error(t, err)

	_, err = Run(filepath.Join("testdata", "base.xsd"), filepath.Join("testdata", "absent.xsd"))
	assert.Error(t, err)
}

func TestTransitionFormats(t *testing.T) {
	base := &schema.Record{Kind: schema.KindComplex, Mixed: schema.ContentPure}

	t.Run("Both Differ", func(t *testing.T) {
		over := &schema.Record{Kind: schema.KindSimple, Mixed: schema.ContentMixed}
		assert.Equal(t, "complex pure ==> simple mixed", transition(base, over))
	})

	t.Run("Kind Only", func(t *testing.T) {
		over := &schema.Record{Kind: schema.KindSimple, Mixed: schema.ContentPure}
		assert.Equal(t, "complex ==> simple", transition(base, over))
	})

	t.Run("Mixed Only", func(t *testing.T) {
		over := &schema.Record{Kind: schema.KindComplex, Mixed: schema.ContentMixed}
		assert.Equal(t, "pure ==> mixed", transition(base, over))
	})

	t.Run("Unknown Rendered As Dashes", func(t *testing.T) {
		over := &schema.Record{}
		assert.Equal(t, "complex pure ==> ----- -----", transition(base, over))
	})

	t.Run("Equal", func(t *testing.T) {
		assert.Equal(t, "", transition(base, base))
	})
}
