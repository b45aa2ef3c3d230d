package pageops_test

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/jadwal/schedpdf/pageops"
)

// ExampleDecorator numbers the pages of a two-page document and stamps a QR
// code linking back to each page.
func ExampleDecorator() {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)

	dec := &pageops.Decorator{
		PageNumbers: &pageops.PageNumberStyle{Format: "Page {page} of {pages}"},
		QR:          &pageops.QRCode{Template: "https://school.example/{doc}#{page}", Position: pageops.BottomRight},
		Font:        "Helvetica",
		TotalPages:  2,
	}
	if err := dec.Install(pdf); err != nil {
		fmt.Println(err)
		return
	}
	for i := 1; i <= 2; i++ {
		pdf.AddPage()
		pdf.Text(20, 30, fmt.Sprintf("Timetable %d", i))
		if err := dec.Stamp(pdf, pageops.StampInfo{DocumentID: "timetables"}); err != nil {
			fmt.Println(err)
			return
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		fmt.Println(err)
		return
	}
	n, err := pageops.CountPages(bytes.NewReader(buf.Bytes()))
	fmt.Println(n, err)
	// Output:
	// 2 <nil>
}
