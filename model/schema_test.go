package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Catalog(t *testing.T) {
	reg := Registry()
	require.Len(t, reg, 19)

	seen := make(map[string]bool)
	for _, f := range reg {
		assert.False(t, seen[f.Name], "duplicate field %q", f.Name)
		seen[f.Name] = true
		assert.Greater(t, f.Width, len(f.Name), "width of %q must leave room for a separator", f.Name)
	}
	for _, name := range DefaultFields {
		assert.True(t, seen[name], "default field %q missing from registry", name)
	}
	for _, name := range IdentityFields {
		assert.True(t, seen[name], "identity field %q missing from registry", name)
	}
}

func TestRegistry_ReturnsCopy(t *testing.T) {
	reg := Registry()
	reg[0].Width = 999
	def, ok := LookupField(reg[0].Name)
	require.True(t, ok)
	assert.NotEqual(t, 999, def.Width)
}

func TestLookupField(t *testing.T) {
	def, ok := LookupField("rxqueue")
	require.True(t, ok)
	assert.Equal(t, "rxqueue", def.Name)

	_, ok = LookupField("nosuchfield")
	assert.False(t, ok)
}

func TestSchema_LookupAndMatches(t *testing.T) {
	s := NewSchema([]Column{
		{Name: "state", Index: 0, Known: true},
		{Name: "futurefield", Index: 1, Known: false},
		{Name: "laddr", Index: 2, Known: true},
	})

	b, ok := s.Lookup("laddr")
	require.True(t, ok)
	assert.Equal(t, 2, b.Index)
	assert.Equal(t, 16, b.Field.Width)

	_, ok = s.Lookup("futurefield")
	assert.False(t, ok, "unknown columns are never bound")
	_, ok = s.Lookup("rtt")
	assert.False(t, ok, "fields absent from the header are unbound")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"futurefield"}, s.Unknown())
	assert.True(t, s.Matches([]string{"state", "futurefield", "laddr"}))
	assert.False(t, s.Matches([]string{"state", "laddr", "futurefield"}))
	assert.False(t, s.Matches([]string{"state", "futurefield"}))
}

func TestSchema_FirstDuplicateWins(t *testing.T) {
	s := NewSchema([]Column{
		{Name: "laddr", Index: 0, Known: true},
		{Name: "laddr", Index: 1, Known: true},
	})
	b, ok := s.Lookup("laddr")
	require.True(t, ok)
	assert.Equal(t, 0, b.Index)
}

func TestRow_Value(t *testing.T) {
	r := Row{"a", "b"}
	assert.Equal(t, "b", r.Value(1))
	assert.Equal(t, "", r.Value(2))
	assert.Equal(t, "", r.Value(-1))
}
