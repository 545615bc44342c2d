package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name     string
		xp       int
		expected int
	}{
		{
			name:     "fresh install",
			xp:       0,
			expected: 1,
		},
		{
			name:     "just below boundary",
			xp:       99,
			expected: 1,
		},
		{
			name:     "exactly on boundary",
			xp:       100,
			expected: 2,
		},
		{
			name:     "deep into level",
			xp:       1234,
			expected: 13,
		},
		{
			name:     "negative clamps to first level",
			xp:       -40,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelForXP(tt.xp))
		})
	}
}

func TestNewProgress(t *testing.T) {
	p := NewProgress(260)
	assert.Equal(t, 260, p.XP)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 60, p.XPIntoLevel())

	p = NewProgress(-5)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 1, p.Level)
}

func TestDevMessage(t *testing.T) {
	assert.Equal(t, "The wind is silent... (Error: dial tcp: refused)", DevMessage("dial tcp: refused"))
}

func TestCallError_Error(t *testing.T) {
	err := NewCallError(CodeInvalidArgument, "Worry is too long. Keep it brief.")
	assert.Equal(t, "invalid-argument: Worry is too long. Keep it brief.", err.Error())
}
