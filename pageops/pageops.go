// Package pageops decorates the pages of a document while it is being built:
// a letterhead imported from an existing PDF, page numbers, a text
// watermark and a QR code stamp.
//
// A Decorator is installed once on a new document. The letterhead and the
// watermark are drawn from the page header hook, so they sit underneath the
// page content; page numbers are drawn from the footer hook. QR codes depend
// on what the page shows and are stamped explicitly with Stamp.
//
// Existing PDF pages are imported as templates with the gofpdi contrib
// package.
package pageops

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// Position specifies where to place an element on a page.
type Position int

const (
	Center Position = iota
	TopLeft
	TopCenter
	TopRight
	BottomLeft
	BottomCenter
	BottomRight
)

var positionNames = map[string]Position{
	"center":        Center,
	"top-left":      TopLeft,
	"top-center":    TopCenter,
	"top-right":     TopRight,
	"bottom-left":   BottomLeft,
	"bottom-center": BottomCenter,
	"bottom-right":  BottomRight,
}

// ParsePosition converts a name such as "bottom-right" into a Position.
func ParsePosition(s string) (Position, error) {
	if p, ok := positionNames[s]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("pageops: unknown position %q", s)
}

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// calculatePosition returns the top-left corner of a w x h box placed at pos
// with margin from the page edges.
func calculatePosition(pos Position, pageW, pageH, w, h, margin float64) (x, y float64) {
	switch pos {
	case TopLeft:
		return margin, margin
	case TopCenter:
		return (pageW - w) / 2, margin
	case TopRight:
		return pageW - w - margin, margin
	case BottomLeft:
		return margin, pageH - h - margin
	case BottomRight:
		return pageW - w - margin, pageH - h - margin
	case Center:
		return (pageW - w) / 2, (pageH - h) / 2
	default: // BottomCenter
		return (pageW - w) / 2, pageH - h - margin
	}
}

// CountPages reports the number of pages in the PDF read from rs.
func CountPages(rs io.ReadSeeker) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pageops: reading pdf: %v", r)
		}
	}()
	scratch := fpdf.New("P", "pt", "A4", "")
	scratch.AddPage()
	imp := gofpdi.NewImporter()
	imp.ImportPageFromStream(scratch, &rs, 1, "/MediaBox")
	if n = len(imp.GetPageSizes()); n == 0 {
		return 0, fmt.Errorf("pageops: reading pdf: no pages")
	}
	return n, nil
}
