package pageops

import (
	"bytes"
	"fmt"
	"image/png"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf"
)

// QRCode stamps a QR code on a page. Template may contain "{doc}" (the
// document ID), "{subject}" (what the page shows) and "{page}".
type QRCode struct {
	Template string
	Size     float64  // side length in document units (default: 18)
	Position Position // default (and in place of Center): BottomLeft
	Margin   float64  // distance from the page edge in document units (default: 6)
}

// qrPixels is the raster size the code is scaled to before embedding.
const qrPixels = 256

func (q QRCode) withDefaults() QRCode {
	if q.Size == 0 {
		q.Size = 18
	}
	if q.Margin == 0 {
		q.Margin = 6
	}
	if q.Position == Center {
		q.Position = BottomLeft
	}
	return q
}

// StampInfo describes the page being stamped.
type StampInfo struct {
	DocumentID string
	Subject    string
}

// qrContent expands the template placeholders.
func qrContent(template string, info StampInfo, page int) string {
	return strings.NewReplacer(
		"{doc}", info.DocumentID,
		"{subject}", info.Subject,
		"{page}", strconv.Itoa(page),
	).Replace(template)
}

// encodeQR renders content as a PNG QR code.
func encodeQR(content string) ([]byte, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("pageops: encoding qr code: %w", err)
	}
	code, err = barcode.Scale(code, qrPixels, qrPixels)
	if err != nil {
		return nil, fmt.Errorf("pageops: scaling qr code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("pageops: encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawQR places the PNG on the current page. name must be unique within the
// document.
func drawQR(pdf *fpdf.Fpdf, q QRCode, name string, pngData []byte) {
	pageW, pageH := pdf.GetPageSize()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(pngData))
	x, y := calculatePosition(q.Position, pageW, pageH, q.Size, q.Size, q.Margin)
	pdf.ImageOptions(name, x, y, q.Size, q.Size, false, opts, 0, "")
}
