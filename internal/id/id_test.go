package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for range count {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{"run", "stage", "x"} {
		t.Run(prefix, func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			rest, ok := strings.CutPrefix(id, prefix+"-")
			require.True(t, ok, "missing prefix in %s", id)
			assert.Len(t, rest, size)
			assert.Equal(t, strings.ToLower(rest), rest)
		})
	}
}

func TestNewRunID(t *testing.T) {
	runID, err := NewRunID()
	require.NoError(t, err)
	assert.True(t, IsRunID(runID), runID)
}

func TestIsRunID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"run-0123456789ab", true},
		{"run-0123456789AB", false},
		{"run-0123456789a", false},
		{"job-0123456789ab", false},
		{"run_0123456789ab", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRunID(tt.in), tt.in)
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.True(t, strings.HasPrefix(MustGenerate("run"), "run-"))
	})
}
