package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retailpulse/backend/internal/domain/entities"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "simple list",
			raw:      "sale, electronics",
			expected: []string{"sale", "electronics"},
		},
		{
			name:     "whitespace trimmed",
			raw:      "  vip ,  new  ",
			expected: []string{"vip", "new"},
		},
		{
			name:     "empty segments discarded",
			raw:      "a,,b, ,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "empty string contributes nothing",
			raw:      "",
			expected: nil,
		},
		{
			name:     "only delimiters contributes nothing",
			raw:      ", ,,",
			expected: []string{},
		},
		{
			name:     "single tag",
			raw:      "clearance",
			expected: []string{"clearance"},
		},
		{
			name:     "casing preserved as stored",
			raw:      "VIP, Vip",
			expected: []string{"VIP", "Vip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entities.SplitTags(tt.raw)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}
