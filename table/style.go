// Package table draws grid tables on a go-pdf/fpdf document.
//
// A Table is built from header rows and body rows of text cells, styled in
// layers, and drawn with Render. Cells wrap their text to the column width
// and rows grow to fit. When a row would cross the bottom margin a page is
// added and the header rows are drawn again.
package table

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// Gray returns the gray with all three components set to v.
func Gray(v int) RGBColor {
	return RGBColor{v, v, v}
}

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // in points
}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// SymmetricPadding creates a Padding with vertical v and horizontal h.
func SymmetricPadding(v, h float64) Padding {
	return Padding{Top: v, Right: h, Bottom: v, Left: h}
}

// BorderStyle defines the appearance of cell borders.
type BorderStyle struct {
	Width float64
	Color RGBColor
}

// Vertical alignments.
const (
	AlignTop    = "T"
	AlignMiddle = "M"
	AlignBottom = "B"
)

// CellStyle defines the visual appearance of a cell. Zero fields are unset
// and leave the value from a lower layer in place.
type CellStyle struct {
	FillColor *RGBColor
	TextColor *RGBColor
	Font      *FontSpec
	Align     string // "L", "C", "R"
	VAlign    string // AlignTop, AlignMiddle, AlignBottom
	Padding   *Padding
	MinHeight float64
}

// AlternateStyle defines alternating row colors.
type AlternateStyle struct {
	Even CellStyle
	Odd  CellStyle
}

// TableStyle defines the overall appearance of a table.
// HeaderStyle applies to header rows and BodyStyle to body rows.
type TableStyle struct {
	Border        *BorderStyle
	AlternateRows *AlternateStyle
	HeaderStyle   *CellStyle
	BodyStyle     *CellStyle
}

// mergeStyle copies set fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src == nil {
		return
	}
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
	if src.VAlign != "" {
		dst.VAlign = src.VAlign
	}
	if src.Padding != nil {
		dst.Padding = src.Padding
	}
	if src.MinHeight > 0 {
		dst.MinHeight = src.MinHeight
	}
}
