package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	} {
		assert.Equal(t, tt.want, Estimate(tt.input), "input %q", tt.input)
	}
}

func TestExceedsBudget(t *testing.T) {
	assert.False(t, ExceedsBudget("short contract"))
	assert.True(t, ExceedsBudget(strings.Repeat("x", (ContextBudget+1)*bytesPerToken)))
}
