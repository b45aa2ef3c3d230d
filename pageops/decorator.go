package pageops

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Decorator holds the decorations of one document. The zero value draws
// nothing. A Decorator must not be shared between documents.
type Decorator struct {
	Letterhead  *Letterhead
	PageNumbers *PageNumberStyle
	Watermark   *TextWatermark
	QR          *QRCode

	// Font is the registered font family used for page numbers and the
	// watermark.
	Font string
	// TotalPages, when known in advance, is printed for "{pages}".
	// Otherwise the page count alias is used.
	TotalPages int

	letterhead *importedPage
	stamps     int
}

// Empty reports whether d has nothing to draw.
func (d *Decorator) Empty() bool {
	return d == nil || (d.Letterhead == nil && d.PageNumbers == nil && d.Watermark == nil && d.QR == nil)
}

// Install imports the letterhead and registers the page hooks on pdf. It
// must be called before the first page is added.
func (d *Decorator) Install(pdf *fpdf.Fpdf) error {
	if d.Empty() {
		return nil
	}
	if pdf.PageNo() > 0 {
		return fmt.Errorf("pageops: decorator installed after the first page")
	}
	if (d.PageNumbers != nil || d.Watermark != nil) && d.Font == "" {
		return fmt.Errorf("pageops: no font for page decorations")
	}
	if d.Letterhead != nil {
		page, err := importLetterhead(pdf, *d.Letterhead)
		if err != nil {
			return err
		}
		d.letterhead = page
	}

	var wm *TextWatermark
	if d.Watermark != nil && d.Watermark.Text != "" {
		w := d.Watermark.withDefaults()
		wm = &w
	}
	if d.letterhead != nil || wm != nil {
		pdf.SetHeaderFunc(func() {
			if d.letterhead != nil {
				d.letterhead.draw(pdf)
			}
			if wm != nil {
				drawTextWatermark(pdf, *wm, d.Font)
			}
		})
	}

	if d.PageNumbers != nil {
		style := d.PageNumbers.withDefaults()
		if d.TotalPages <= 0 {
			pdf.AliasNbPages("{pages}")
		}
		pdf.SetFooterFunc(func() {
			drawPageNumber(pdf, style, d.Font, d.TotalPages)
		})
	}
	return nil
}

// Stamp draws the QR code, if any, on the current page.
func (d *Decorator) Stamp(pdf *fpdf.Fpdf, info StampInfo) error {
	if d == nil || d.QR == nil || d.QR.Template == "" {
		return nil
	}
	q := d.QR.withDefaults()
	data, err := encodeQR(qrContent(q.Template, info, pdf.PageNo()))
	if err != nil {
		return err
	}
	d.stamps++
	drawQR(pdf, q, fmt.Sprintf("qr-%d", d.stamps), data)
	return nil
}
