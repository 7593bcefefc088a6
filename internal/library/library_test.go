package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentLibrary_Get(t *testing.T) {
	lib := NewComponentLibrary()

	t.Run("exact_lookup", func(t *testing.T) {
		c, ok := lib.Get("button")
		require.True(t, ok)
		assert.Equal(t, "button", c.Name)
		assert.NotEmpty(t, c.Code)
		assert.Contains(t, c.Variants, "primary")
	})

	t.Run("missing_key_is_not_an_error", func(t *testing.T) {
		_, ok := lib.Get("carousel")
		assert.False(t, ok)
	})
}

func TestComponentLibrary_AllInsertionOrder(t *testing.T) {
	lib := NewComponentLibrary()
	all := lib.All()

	require.Len(t, all, 4)
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"button", "form", "card", "navigation"}, names)
}

func TestComponentLibrary_FindByCategory(t *testing.T) {
	lib := NewComponentLibrary()

	t.Run("tag_match", func(t *testing.T) {
		found := lib.FindByCategory("layout")
		require.Len(t, found, 2)
		assert.Equal(t, "card", found[0].Name)
		assert.Equal(t, "navigation", found[1].Name)
	})

	t.Run("case_insensitive", func(t *testing.T) {
		found := lib.FindByCategory("INPUT")
		require.Len(t, found, 2)
		assert.Equal(t, "button", found[0].Name)
		assert.Equal(t, "form", found[1].Name)
	})

	t.Run("unknown_category_empty", func(t *testing.T) {
		assert.Empty(t, lib.FindByCategory("charts"))
	})
}

func TestPatternLibrary_All(t *testing.T) {
	lib := NewPatternLibrary()
	all := lib.All()

	require.Len(t, all, 3)
	assert.Equal(t, "responsive", all[0].Name)
	assert.Equal(t, "accessibility", all[1].Name)
	assert.Equal(t, "performance", all[2].Name)
}

func TestPatternLibrary_Recommendations(t *testing.T) {
	lib := NewPatternLibrary()

	tests := []struct {
		name     string
		context  string
		expected []string
	}{
		{
			name:     "mobile_context",
			context:  "works great on mobile",
			expected: []string{"responsive"},
		},
		{
			name:     "accessible_context",
			context:  "must be accessible",
			expected: []string{"accessibility"},
		},
		{
			name:     "fast_and_performance_same_pattern",
			context:  "fast performance please",
			expected: []string{"performance"},
		},
		{
			name:     "all_three_in_check_order",
			context:  "fast, accessible, mobile experience",
			expected: []string{"responsive", "accessibility", "performance"},
		},
		{
			name:     "no_match",
			context:  "whatever you think is best",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := lib.Recommendations(tt.context)
			var names []string
			for _, p := range recs {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}
