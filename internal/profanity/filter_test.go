package profanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlocked(t *testing.T) {
	f := New("prdel", "Kráva", "do pici", "")

	tests := []struct {
		text string
		want bool
	}{
		{"prdel", true},
		{"prdelka", true},           // embedded
		{"krava", true},             // entry normalized
		{"nejaka krava tady", true}, // phrase context
		{"do pici", true},
		{"dopici", false}, // phrase needs its space
		{"pes", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.IsBlocked(tt.text), "text %q", tt.text)
	}
}

func TestSubstringFalsePositivesArePreserved(t *testing.T) {
	f := New("prase")
	// "prasečí" normalizes to "praseci", which contains "prase".
	assert.True(t, f.IsBlocked("praseci"))
}

func TestMatchAndDedup(t *testing.T) {
	f := New("píča", "pica", "  ")
	assert.Equal(t, 1, f.Len())

	e, ok := f.Match("opica")
	assert.True(t, ok)
	assert.Equal(t, "pica", e)

	var nilFilter *Filter
	assert.False(t, nilFilter.IsBlocked("kurva"))
}

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	assert.True(t, f.IsBlocked("kurva"))
	assert.True(t, f.IsBlocked("curak"), "diacritics stripped from čurák")
	assert.True(t, f.IsBlocked("polib mi prdel"))
	assert.False(t, f.IsBlocked("slepice"))
}
