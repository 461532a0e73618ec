package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_UnderBudgetUnchanged(t *testing.T) {
	b := Truncate("short text", 100)
	assert.Equal(t, "short text", b.Text)
	assert.False(t, b.Truncated)
}

func TestTruncate_ExactBudgetUnchanged(t *testing.T) {
	text := strings.Repeat("x", 50)
	b := Truncate(text, 50)
	assert.Equal(t, text, b.Text)
	assert.False(t, b.Truncated)
}

func TestTruncate_OverBudgetExactLength(t *testing.T) {
	text := strings.Repeat("a", 50000)
	b := Truncate(text, 20000)
	assert.Len(t, b.Text, 20000)
	assert.True(t, b.Truncated)
	assert.True(t, strings.HasSuffix(b.Text, "(truncated)"))
}

func TestTruncate_NeverExceedsBudget(t *testing.T) {
	for _, max := range []int{0, 1, 5, 16, 17, 100, 1000} {
		for _, n := range []int{0, 1, 16, 17, 99, 100, 101, 5000} {
			b := Truncate(strings.Repeat("q", n), max)
			assert.LessOrEqual(t, len(b.Text), max, "len=%d max=%d", n, max)
		}
	}
}

func TestTruncate_Empty(t *testing.T) {
	b := Truncate("", 10)
	assert.Equal(t, "", b.Text)
	assert.False(t, b.Truncated)
}

func TestBudgetFiles(t *testing.T) {
	files := []ChangedFile{
		{Filename: "big.go", Patch: strings.Repeat("+", 50000)},
		{Filename: "small.go", Patch: "+ok"},
	}

	out, truncated := BudgetFiles(files, 20000)
	assert.Len(t, out, 2)
	assert.Len(t, out[0].Patch, 20000)
	assert.Equal(t, "+ok", out[1].Patch)
	assert.Equal(t, []string{"big.go"}, truncated)

	// Input must not be mutated.
	assert.Len(t, files[0].Patch, 50000)
}
