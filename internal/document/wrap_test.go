package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedWidth measures every rune as 10 points
func fixedWidth(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestWrapText_FixedWidth(t *testing.T) {
	// "aaaa " = 50, "bbbb " = 50, "cc " = 30
	lines := WrapText("aaaa bbbb cc", 100, fixedWidth)
	assert.Equal(t, []string{"aaaa bbbb", "cc"}, lines)
	assert.Equal(t, 40.0, DeclarationHeight(len(lines)))
}

func TestWrapText_LongWordGetsOwnLine(t *testing.T) {
	lines := WrapText("tiny enormousword tiny", 60, fixedWidth)
	assert.Equal(t, []string{"tiny", "enormousword", "tiny"}, lines)
}

func TestWrapText_Empty(t *testing.T) {
	assert.Empty(t, WrapText("   ", 500, fixedWidth))
	assert.Equal(t, 10.0, DeclarationHeight(0))
}

func TestWrapText_Declaration(t *testing.T) {
	c := NewCanvas(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	measure := c.Measurer(styleReg, declarationFontSize)

	texts := []string{
		"I Hereby confirm that the above information provided is true and authentic " +
			"on the date of this declaration. I shall notify Vihaan Real Estate in case " +
			"of any changes in the above mentioned information.",
		strings.Repeat("declaration ", 80),
		"one",
	}

	for _, text := range texts {
		lines := WrapText(text, declarationMaxWidth, measure)
		require.NotEmpty(t, lines)

		// Never splits a word and never drops or reorders one
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))

		for _, line := range lines {
			var width float64
			for _, w := range strings.Fields(line) {
				width += measure(w + " ")
			}
			assert.LessOrEqual(t, width, declarationMaxWidth, "line %q too wide", line)
		}

		assert.Equal(t, 15*float64(len(lines))+10, DeclarationHeight(len(lines)))
	}
}
