package chapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNoOverrides(t *testing.T) {
	got := Resolve(nil)
	require.Len(t, got, 7)
	for i, ch := range got {
		assert.Equal(t, i+1, ch.ID)
		assert.Equal(t, defaults[i].Title, ch.Title)
	}
}

func TestResolveOverrideWinsAndKeepsOrder(t *testing.T) {
	got := Resolve(map[int]string{5: "Five", 2: "Two"})
	require.Len(t, got, 7)

	ids := make([]int, len(got))
	for i, ch := range got {
		ids[i] = ch.ID
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, ids)
	assert.Equal(t, "Two", got[1].Title)
	assert.Equal(t, "Five", got[4].Title)
	assert.Equal(t, defaults[0].Title, got[0].Title)
}

func TestResolveIgnoresEmptyAndUnknown(t *testing.T) {
	got := Resolve(map[int]string{1: "", 99: "ghost"})
	assert.Equal(t, defaults[0].Title, got[0].Title)
	for _, ch := range got {
		assert.NotEqual(t, "ghost", ch.Title)
	}
}

func TestDefaultsIsACopy(t *testing.T) {
	d := Defaults()
	d[0].Title = "mutated"
	assert.NotEqual(t, "mutated", Defaults()[0].Title)
}

func TestValidAndLookup(t *testing.T) {
	assert.True(t, Valid(1))
	assert.True(t, Valid(7))
	assert.False(t, Valid(0))
	assert.False(t, Valid(8))

	chapters := Resolve(map[int]string{3: "Three"})
	ch, ok := Lookup(chapters, 3)
	require.True(t, ok)
	assert.Equal(t, "Three", ch.Title)

	_, ok = Lookup(chapters, 42)
	assert.False(t, ok)
}

func TestFullOverrides(t *testing.T) {
	chapters := Resolve(map[int]string{4: "Conflict"})
	m := FullOverrides(chapters)
	assert.Len(t, m, 7)
	assert.Equal(t, "Conflict", m[4])
	assert.Equal(t, defaults[0].Title, m[1])
}
