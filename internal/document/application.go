package document

import (
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
)

// Directive tells the single-column layout how a field occupies its rows
type Directive int

const (
	// Single draws a label cell and a value cell on one row
	Single Directive = iota
	// MergedFirst draws a label spanning two rows plus the first value
	MergedFirst
	// MergedSecond draws only the second value under a MergedFirst label
	MergedSecond
)

func (d Directive) String() string {
	switch d {
	case MergedFirst:
		return "merged_first"
	case MergedSecond:
		return "merged_second"
	default:
		return "single"
	}
}

// SectionLayout selects how a section is drawn
type SectionLayout int

const (
	LayoutSingleColumn SectionLayout = iota
	LayoutTwoColumn
	LayoutDeclaration
)

// Field is one labelled value of the application form
type Field struct {
	Label     string
	Key       string
	Directive Directive
}

// Section is a titled group of fields
type Section struct {
	Title  string
	Layout SectionLayout
	Fields []Field
}

// mergedLabels start a two-row cell in single-column sections
var mergedLabels = map[string]bool{
	"Residential Address": true,
	"Home Address":        true,
}

// PlanFields assigns a Directive to every field. A label from the merged set
// opens a two-row cell and the field right after it fills the second row.
func PlanFields(fields []Field) []Field {
	planned := make([]Field, len(fields))
	prev := Single
	for i, f := range fields {
		switch {
		case prev == MergedFirst:
			f.Directive = MergedSecond
		case mergedLabels[f.Label]:
			f.Directive = MergedFirst
		default:
			f.Directive = Single
		}
		planned[i] = f
		prev = f.Directive
	}
	return planned
}

// ApplicationSections returns the KYC application form with directives planned
func ApplicationSections() []Section {
	sections := []Section{
		{
			Title:  "CUSTOMER INFORMATION",
			Layout: LayoutSingleColumn,
			Fields: []Field{
				{Label: "Residential Status", Key: "residential_status"},
				{Label: "Full Name (as per passport)", Key: "full_name"},
				{Label: "Residential Address", Key: "residential_address_line1"},
				{Label: "Residential Address", Key: "residential_address_line2"},
				{Label: "Home Address", Key: "home_address_line1"},
				{Label: "Home Address", Key: "home_address_line2"},
				{Label: "Contact Details", Key: "contact_landline"},
				{Label: "Landline Office", Key: "contact_office"},
				{Label: "Mobile", Key: "contact_mobile"},
			},
		},
		{
			Title:  "Customer Information",
			Layout: LayoutTwoColumn,
			Fields: []Field{
				{Label: "Gender", Key: "gender"},
				{Label: "Nationality", Key: "nationality"},
				{Label: "Date of Birth", Key: "date_of_birth"},
				{Label: "Place Of Birth", Key: "place_of_birth"},
				{Label: "Passport Number", Key: "passport_number"},
				{Label: "Passport Issue Place", Key: "passport_issue_place"},
				{Label: "Passport Issue Date", Key: "passport_issue_date"},
				{Label: "Passport Expiry Date", Key: "passport_expiry_date"},
				{Label: "Dual Nationality (if any)", Key: "dual_nationality"},
				{Label: "Dual Passport Number", Key: "dual_passport_number"},
				{Label: "Issue Date", Key: "dual_passport_issue_date"},
				{Label: "Expiry Date", Key: "dual_passport_expiry_date"},
				{Label: "Emirates ID Number", Key: "emirates_id"},
				{Label: "Emirates ID Expiry Date", Key: "emirates_id_expiry"},
				{Label: "Visa UID Number", Key: "visa_uid"},
				{Label: "Visa Expiry Date", Key: "visa_expiry"},
			},
		},
		{
			Title:  "Customer Occupation",
			Layout: LayoutSingleColumn,
			Fields: []Field{
				{Label: "Occupation", Key: "occupation"},
				{Label: "Name Of the Sponsor | Business", Key: "sponsor_business_name"},
				{Label: "Sponsor | Business Address", Key: "sponsor_business_address"},
				{Label: "Sponsor | Business Contacts Details Landline", Key: "sponsor_business_landline"},
				{Label: "Mobile", Key: "sponsor_business_mobile"},
			},
		},
		{
			Title:  "Customer Profile and Payment",
			Layout: LayoutSingleColumn,
			Fields: []Field{
				{Label: "Annual Salary Income |Business Income", Key: "annual_income"},
				{Label: "Purpose of Investment", Key: "investment_purpose"},
				{Label: "Source of Fund", Key: "source_of_funds"},
				{Label: "Payment Method", Key: "payment_method"},
			},
		},
		{
			Title:  "Declaration",
			Layout: LayoutDeclaration,
		},
	}

	for i := range sections {
		if sections[i].Layout == LayoutSingleColumn {
			sections[i].Fields = PlanFields(sections[i].Fields)
		}
	}
	return sections
}

// Form geometry
const (
	appTitle       = "KYC APPLICATION"
	appSubtitle    = "(To be Filled by Each Purchaser Separately)"
	formLeft       = 40.0
	formWidth      = 515.0
	formRight      = formLeft + formWidth
	formCenter     = 297.0
	labelWidth     = 210.0
	valueLeft      = 250.0
	valueWidth     = 305.0
	rowHeight      = 20.0
	textInset      = 5.0
	baselineOffset = 15.0
	leftValueCol   = 150.0
	leftDivider    = 145.0
	rightLabelCol  = 302.0
	rightDivider   = 402.0
	rightValueCol  = 407.0
	signatureBlank = "_____________________"
)

// applicationLayout draws the KYC form top to bottom with a running cursor
type applicationLayout struct {
	c        *Canvas
	values   map[string]string
	fullName string
	signedOn string
	declText string
	y        float64
}

func drawApplication(c *Canvas, app *entity.KYCApplication, p entity.Profile, signedOn string) {
	l := &applicationLayout{
		c:        c,
		values:   app.Fields(),
		fullName: app.FullName,
		signedOn: signedOn,
		declText: p.DeclarationText,
	}

	c.SetTitle(appTitle + " " + app.CustomerID)
	l.drawTitle()

	for _, s := range ApplicationSections() {
		switch s.Layout {
		case LayoutTwoColumn:
			l.drawTwoColumn(s)
		case LayoutDeclaration:
			l.drawDeclaration(s)
		default:
			l.drawSingleColumn(s)
		}
	}
}

func (l *applicationLayout) drawTitle() {
	c := l.c
	w := c.Width()

	c.Rect(formLeft, 60, formWidth, 690, false)
	c.Rect(formLeft, 10, formWidth, 50, false)

	c.SetColor(colorRed)
	c.SetFont(styleBold, 14)
	c.DrawCentredString(w/2, 30, appTitle)

	c.SetFont(styleReg, 11)
	tw := c.StringWidth(appSubtitle, styleReg, 11)
	c.SetColor(colorYellow)
	c.Rect((w-tw)/2-2, 34, tw+4, 16, true)
	c.SetColor(colorRed)
	c.DrawCentredString(w/2, 45, appSubtitle)

	c.SetColor(colorBlack)
	l.y = 60
}

// drawHeader draws a section title bar. The first section has no tint.
func (l *applicationLayout) drawHeader(title string, tinted bool) {
	c := l.c
	c.Rect(formLeft, l.y, formWidth, rowHeight, false)
	if tinted {
		c.SetColor(colorLightBlue)
		c.Rect(formLeft, l.y, formWidth, rowHeight, true)
		c.SetColor(colorRed)
	} else {
		c.SetColor(colorBlack)
	}
	c.SetFont(styleBold, 11)
	c.DrawCentredString(formCenter, l.y+baselineOffset, title)
	c.SetColor(colorBlack)
}

func (l *applicationLayout) drawSingleColumn(s Section) {
	c := l.c
	l.drawHeader(s.Title, s.Title != "CUSTOMER INFORMATION")
	l.y += rowHeight

	for _, f := range s.Fields {
		value := DisplayValue(f.Key, l.values[f.Key])

		switch f.Directive {
		case MergedFirst:
			c.Rect(formLeft, l.y, labelWidth, 2*rowHeight, false)
			c.SetFont(styleBold, 9)
			c.DrawString(formLeft+textInset, l.y+25, f.Label)
			c.Rect(valueLeft, l.y, valueWidth, rowHeight, false)
		case MergedSecond:
			c.Rect(valueLeft, l.y, valueWidth, rowHeight, false)
		default:
			c.Rect(formLeft, l.y, labelWidth, rowHeight, false)
			c.Rect(valueLeft, l.y, valueWidth, rowHeight, false)
			c.SetFont(styleBold, 9)
			c.DrawString(formLeft+textInset, l.y+baselineOffset, f.Label)
		}

		c.SetFont(styleReg, 9)
		c.DrawString(valueLeft+textInset, l.y+baselineOffset, value)
		l.y += rowHeight
	}
}

func (l *applicationLayout) drawTwoColumn(s Section) {
	c := l.c
	c.SetColor(colorLightBlue)
	c.Rect(formLeft, l.y, formWidth, rowHeight, true)
	c.SetColor(colorRed)
	c.SetFont(styleBold, 11)
	c.DrawCentredString(formCenter, l.y+baselineOffset, s.Title)
	c.SetColor(colorBlack)
	l.y += rowHeight + 5

	for i := 0; i < len(s.Fields); i += 2 {
		y := l.y
		c.Line(formCenter, y, formCenter, y+rowHeight)
		c.Line(leftDivider, y, leftDivider, y+rowHeight)
		c.Line(rightDivider, y, rightDivider, y+rowHeight)
		c.Line(formLeft, y+rowHeight, formRight, y+rowHeight)

		left := s.Fields[i]
		c.SetFont(styleBold, 9)
		c.DrawString(formLeft+textInset, y+baselineOffset, left.Label)
		c.SetFont(styleReg, 9)
		c.DrawString(leftValueCol, y+baselineOffset, DisplayValue(left.Key, l.values[left.Key]))

		if i+1 < len(s.Fields) {
			right := s.Fields[i+1]
			c.SetFont(styleBold, 9)
			c.DrawString(rightLabelCol, y+baselineOffset, right.Label)
			c.SetFont(styleReg, 9)
			c.DrawString(rightValueCol, y+baselineOffset, DisplayValue(right.Key, l.values[right.Key]))
		}
		l.y += rowHeight
	}
}

func (l *applicationLayout) drawDeclaration(s Section) {
	c := l.c
	l.drawHeader(s.Title, true)
	l.y += rowHeight

	c.SetFont(styleReg, 9)
	lines := WrapText(l.declText, declarationMaxWidth, c.Measurer(styleReg, declarationFontSize))
	height := DeclarationHeight(len(lines))
	c.Rect(formLeft, l.y, formWidth, height, false)
	for i, line := range lines {
		c.DrawString(formLeft+textInset, l.y+baselineOffset+float64(i)*declarationLeading, line)
	}
	l.y += height

	signatures := []struct{ label, value string }{
		{"Full Name of the Customer", DisplayValue("full_name", l.fullName)},
		{"Signed as on Date", l.signedOn},
		{"Signature", signatureBlank},
	}
	for _, sig := range signatures {
		c.Rect(formLeft, l.y, labelWidth, rowHeight, false)
		c.Rect(valueLeft, l.y, valueWidth, rowHeight, false)
		c.SetFont(styleBold, 9)
		c.DrawString(formLeft+textInset, l.y+baselineOffset, sig.label)
		c.SetFont(styleReg, 9)
		c.DrawString(valueLeft+textInset, l.y+baselineOffset, sig.value)
		l.y += rowHeight
	}
}
