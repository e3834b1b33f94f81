package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("GeneratesIDWithPrefix", func(t *testing.T) {
		id := NewID("m")
		assert.True(t, strings.HasPrefix(id, "m_"), "ID should start with prefix")
		assert.Len(t, id, len("m_")+26, "ULID part should be 26 characters")
	})

	t.Run("NormalizesPrefix", func(t *testing.T) {
		id := NewID(" CH ")
		assert.True(t, strings.HasPrefix(id, "ch_"), "prefix should be lowercased and trimmed")
	})

	t.Run("GeneratesUniqueIDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewID("u")
			require.False(t, seen[id], "generated duplicate ID: %s", id)
			seen[id] = true
		}
	})

	t.Run("PanicsOnEmptyPrefix", func(t *testing.T) {
		assert.Panics(t, func() { NewID("") })
		assert.Panics(t, func() { NewID("   ") })
	})
}

func TestIsValidULID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected bool
	}{
		{name: "Valid generated ID", id: NewID("u"), expected: true},
		{name: "Empty string", id: "", expected: false},
		{name: "No separator", id: "u01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
		{name: "Missing prefix", id: "_01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
		{name: "Uppercase prefix", id: "U_01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
		{name: "Short ULID part", id: "u_01G0EZ1XTM", expected: false},
		{name: "Invalid ULID characters", id: "u_01G0EZ1XTM37C5X11SQTDNCTIL", expected: false},
		{name: "Multiple separators", id: "u_x_01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidULID(tt.id))
		})
	}
}
