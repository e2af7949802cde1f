package document

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_PageSize(t *testing.T) {
	c := NewCanvas(time.Now())
	assert.InDelta(t, 595.28, c.Width(), 0.01)
	assert.InDelta(t, 841.89, c.Height(), 0.01)
}

func TestCanvas_BoundsCheck(t *testing.T) {
	tests := []struct {
		name string
		draw func(c *Canvas)
	}{
		{"rect below page", func(c *Canvas) { c.Rect(40, 830, 515, 20, false) }},
		{"text below page", func(c *Canvas) { c.DrawString(50, 860, "overflow") }},
		{"text past right edge", func(c *Canvas) { c.DrawString(590, 100, "overflow") }},
		{"line above page", func(c *Canvas) { c.Line(40, -5, 555, -5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(time.Now())
			tt.draw(c)
			assert.ErrorIs(t, c.Err(), ErrContentExceedsPage)

			var buf bytes.Buffer
			assert.ErrorIs(t, c.Output(&buf), ErrContentExceedsPage)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestCanvas_UnsupportedText(t *testing.T) {
	c := NewCanvas(time.Now())
	c.DrawString(50, 100, "Client Name: Zoë Müller")
	require.NoError(t, c.Err())

	c.DrawString(50, 120, "Client Name: Zoë Łukasz")
	assert.ErrorIs(t, c.Err(), ErrUnsupportedText)

	var buf bytes.Buffer
	assert.ErrorIs(t, c.Output(&buf), ErrUnsupportedText)
	assert.Zero(t, buf.Len())
}

func TestCanvas_Output(t *testing.T) {
	c := NewCanvas(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c.SetFont(styleBold, 12)
	c.DrawCentredString(c.Width()/2, 40, "Heading")
	c.Rect(40, 60, 515, 20, true)
	c.Line(40, 100, 555, 100)
	require.NoError(t, c.Err())

	var buf bytes.Buffer
	require.NoError(t, c.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestCanvas_StringWidthKeepsCurrentFont(t *testing.T) {
	c := NewCanvas(time.Now())
	c.SetFont(styleBold, 14)
	before := c.StringWidth("Sample", styleBold, 14)

	_ = c.StringWidth("Sample", styleReg, 8)

	assert.Equal(t, styleBold, c.style)
	assert.Equal(t, 14.0, c.size)
	assert.Equal(t, before, c.StringWidth("Sample", styleBold, 14))
	assert.Greater(t, before, c.StringWidth("Sample", styleReg, 8))
}
