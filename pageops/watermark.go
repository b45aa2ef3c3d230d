package pageops

import (
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// TextWatermark defines a text-based watermark.
type TextWatermark struct {
	Text     string   // watermark text
	FontSize float64  // font size in points (default: 60)
	Color    RGBColor // text color (default: light gray)
	Opacity  float64  // 0.0 to 1.0 (default: 0.3)
	Angle    float64  // rotation angle in degrees (default: 45)
}

func (wm TextWatermark) withDefaults() TextWatermark {
	if wm.FontSize == 0 {
		wm.FontSize = 60
	}
	if wm.Opacity == 0 {
		wm.Opacity = 0.3
	}
	if wm.Angle == 0 {
		wm.Angle = 45
	}
	if wm.Color == (RGBColor{}) {
		wm.Color = RGBColor{200, 200, 200}
	}
	return wm
}

// drawTextWatermark renders the watermark text centered on the current page
// using font, which must already be registered on pdf.
func drawTextWatermark(pdf *fpdf.Fpdf, wm TextWatermark, font string) {
	pageW, pageH := pdf.GetPageSize()
	pdf.SetFont(font, "", wm.FontSize)
	pdf.SetTextColor(wm.Color.R, wm.Color.G, wm.Color.B)
	pdf.SetAlpha(wm.Opacity, "Normal")

	textW := pdf.GetStringWidth(wm.Text)
	_, sizeUnit := pdf.GetFontSize()
	cx := pageW / 2
	cy := pageH / 2

	pdf.TransformBegin()
	pdf.TransformRotate(wm.Angle, cx, cy)
	pdf.Text(cx-textW/2, cy+sizeUnit/3, wm.Text)
	pdf.TransformEnd()

	pdf.SetAlpha(1.0, "Normal")
}

// PageNumberStyle defines the appearance and position of page numbers.
type PageNumberStyle struct {
	// Format is the label text; "{page}" is replaced by the page number and
	// "{pages}" by the page count. Default: "{page} / {pages}".
	Format   string
	Position Position // default (and in place of Center): BottomCenter
	FontSize float64  // font size in points (default: 9)
	Color    RGBColor // text color (default: black)
	Margin   float64  // distance from the page edge in document units (default: 4)
}

func (s PageNumberStyle) withDefaults() PageNumberStyle {
	if s.Format == "" {
		s.Format = "{page} / {pages}"
	}
	if s.FontSize == 0 {
		s.FontSize = 9
	}
	if s.Margin == 0 {
		s.Margin = 4
	}
	if s.Position == Center {
		s.Position = BottomCenter
	}
	return s
}

// pageLabel expands the placeholders of format. total <= 0 leaves "{pages}"
// as the page count alias, to be filled in when the document is closed.
func pageLabel(format string, page, total int) string {
	r := strings.NewReplacer("{page}", strconv.Itoa(page))
	s := r.Replace(format)
	if total > 0 {
		s = strings.ReplaceAll(s, "{pages}", strconv.Itoa(total))
	}
	return s
}

// drawPageNumber renders the current page's label.
func drawPageNumber(pdf *fpdf.Fpdf, style PageNumberStyle, font string, total int) {
	pageW, pageH := pdf.GetPageSize()
	text := pageLabel(style.Format, pdf.PageNo(), total)

	pdf.SetFont(font, "", style.FontSize)
	pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
	textW := pdf.GetStringWidth(text)
	_, textH := pdf.GetFontSize()

	x, y := calculatePosition(style.Position, pageW, pageH, textW, textH, style.Margin)
	pdf.Text(x, y+textH, text)
}
