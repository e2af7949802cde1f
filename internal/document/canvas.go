package document

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/vreb/brokerage-workflow/pkg/utils"
)

const (
	fontFamily = "Helvetica"
	styleBold  = "B"
	styleReg   = ""
)

// RGB is a colour with components in [0, 1]
type RGB struct {
	R, G, B float64
}

var (
	colorBlack     = RGB{0, 0, 0}
	colorRed       = RGB{1, 0, 0}
	colorYellow    = RGB{1, 1, 0}
	colorLightBlue = RGB{0.9, 0.95, 1.0}
)

func (c RGB) ints() (int, int, int) {
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}

// Canvas is a single A4 page measured in points with y growing downward.
// Every draw is bounds checked; the first violation is kept and all later
// draws become no-ops.
type Canvas struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	width     float64
	height    float64
	style     string
	size      float64
	err       error
}

// NewCanvas creates a blank A4 page stamped with the given creation time
func NewCanvas(created time.Time) *Canvas {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(created)
	pdf.SetLineWidth(1)
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	c := &Canvas{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		width:     w,
		height:    h,
	}
	c.SetFont(styleReg, 10)
	c.SetColor(colorBlack)
	return c
}

// Width returns the page width in points
func (c *Canvas) Width() float64 { return c.width }

// Height returns the page height in points
func (c *Canvas) Height() float64 { return c.height }

// SetTitle records the document title in the PDF metadata
func (c *Canvas) SetTitle(title string) {
	c.pdf.SetTitle(title, true)
}

// SetFont selects Helvetica in the given style ("" or "B") and size
func (c *Canvas) SetFont(style string, size float64) {
	c.style = style
	c.size = size
	c.pdf.SetFont(fontFamily, style, size)
}

// SetColor sets both the fill colour and the text colour
func (c *Canvas) SetColor(col RGB) {
	r, g, b := col.ints()
	c.pdf.SetFillColor(r, g, b)
	c.pdf.SetTextColor(r, g, b)
}

// StringWidth measures s in the given style and size without changing the current font
func (c *Canvas) StringWidth(s, style string, size float64) float64 {
	c.pdf.SetFont(fontFamily, style, size)
	w := c.pdf.GetStringWidth(c.translate(s))
	c.pdf.SetFont(fontFamily, c.style, c.size)
	return w
}

// Measurer returns a width function bound to one font
func (c *Canvas) Measurer(style string, size float64) func(string) float64 {
	return func(s string) float64 {
		return c.StringWidth(s, style, size)
	}
}

// DrawString draws s with its baseline at (x, y). Text the font cannot
// encode fails the canvas instead of being substituted.
func (c *Canvas) DrawString(x, y float64, s string) {
	if c.err != nil || s == "" {
		return
	}
	if err := utils.ValidatePrintable(s); err != nil {
		c.err = fmt.Errorf("%w: %v", ErrUnsupportedText, err)
		return
	}
	w := c.StringWidth(s, c.style, c.size)
	if !c.check(x, y-c.size, w, c.size, s) {
		return
	}
	c.pdf.Text(x, y, c.translate(s))
}

// DrawCentredString draws s horizontally centred on x
func (c *Canvas) DrawCentredString(x, y float64, s string) {
	w := c.StringWidth(s, c.style, c.size)
	c.DrawString(x-w/2, y, s)
}

// Rect draws a rectangle with its top-left corner at (x, y). A filled
// rectangle is also stroked.
func (c *Canvas) Rect(x, y, w, h float64, fill bool) {
	if c.err != nil || !c.check(x, y, w, h, "rect") {
		return
	}
	style := "D"
	if fill {
		style = "FD"
	}
	c.pdf.Rect(x, y, w, h, style)
}

// Line draws a straight rule
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	if c.err != nil || !c.check(min(x1, x2), min(y1, y2), abs(x2-x1), abs(y2-y1), "line") {
		return
	}
	c.pdf.Line(x1, y1, x2, y2)
}

// Err returns the first layout or PDF error
func (c *Canvas) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.pdf.Error()
}

// Output writes the finished PDF
func (c *Canvas) Output(w io.Writer) error {
	if err := c.Err(); err != nil {
		return err
	}
	return c.pdf.Output(w)
}

func (c *Canvas) check(x, y, w, h float64, what string) bool {
	const eps = 0.01
	if x < -eps || y < -eps || x+w > c.width+eps || y+h > c.height+eps {
		c.err = fmt.Errorf("%w: %q at (%.2f, %.2f) size %.2fx%.2f on %.2fx%.2f page",
			ErrContentExceedsPage, what, x, y, w, h, c.width, c.height)
		return false
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
