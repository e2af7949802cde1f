package document

import "strings"

const (
	declarationMaxWidth = 500.0
	declarationFontSize = 10.0
	declarationLeading  = 15.0
	declarationPadding  = 10.0
)

// WrapText breaks text into lines no wider than maxWidth. Each word is
// measured together with its trailing space; words are never split, so a
// single word wider than maxWidth gets a line of its own.
func WrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var (
		lines     []string
		current   []string
		lineWidth float64
	)

	for _, word := range strings.Fields(text) {
		wordWidth := measure(word + " ")
		if lineWidth+wordWidth <= maxWidth || len(current) == 0 {
			current = append(current, word)
			lineWidth += wordWidth
			continue
		}
		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
		lineWidth = wordWidth
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// DeclarationHeight is the box height for a wrapped declaration
func DeclarationHeight(lineCount int) float64 {
	return declarationLeading*float64(lineCount) + declarationPadding
}
