package pageops

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// Letterhead is a page of an existing PDF drawn full-page underneath every
// page of the document.
type Letterhead struct {
	Path string
	Page int // 1-based, default 1
}

type importedPage struct {
	imp *gofpdi.Importer
	tpl int
}

// importLetterhead imports the letterhead page into pdf. gofpdi panics on
// unreadable input; the panic is turned into an error.
func importLetterhead(pdf *fpdf.Fpdf, lh Letterhead) (page *importedPage, err error) {
	if lh.Page <= 0 {
		lh.Page = 1
	}
	if _, err := os.Stat(lh.Path); err != nil {
		return nil, fmt.Errorf("pageops: letterhead: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("pageops: letterhead %s: %v", lh.Path, r)
		}
	}()

	imp := gofpdi.NewImporter()
	tpl := imp.ImportPage(pdf, lh.Path, lh.Page, "/MediaBox")
	if n := len(imp.GetPageSizes()); n < lh.Page {
		return nil, fmt.Errorf("pageops: letterhead %s has %d pages, want page %d", lh.Path, n, lh.Page)
	}
	return &importedPage{imp: imp, tpl: tpl}, nil
}

// draw places the imported page over the whole current page.
func (p *importedPage) draw(pdf *fpdf.Fpdf) {
	pageW, pageH := pdf.GetPageSize()
	p.imp.UseImportedTemplate(pdf, p.tpl, 0, 0, pageW, pageH)
}
