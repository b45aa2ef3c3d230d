package table

import (
	"errors"
	"strings"

	"github.com/go-pdf/fpdf"
)

// lineHeightFactor is the line height as a multiple of the font size.
const lineHeightFactor = 1.15

// minRowHeight applies when neither the row nor its style sets a minimum.
const minRowHeight = 5.0

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width    float64 // Fixed width. 0 means auto/fill.
	MinWidth float64 // Minimum width for auto columns.
	MaxWidth float64 // Maximum width for auto columns. 0 means unlimited.
	// Style applies to this column's body cells, above alternate row colors
	// and below row and cell styles.
	Style *CellStyle
}

// Table is a high-level table builder for generating PDF tables.
type Table struct {
	pdf        *fpdf.Fpdf
	columns    []ColumnDef
	rows       []*Row
	headerRows int
	style      TableStyle
	x, y       float64 // starting position (0,0 means current)
	tableWidth float64 // total table width (0 means page width minus margins)
	noBreak    bool    // draw every row on the current page
}

// New creates a new Table associated with the given PDF document.
func New(pdf *fpdf.Fpdf) *Table {
	return &Table{
		pdf: pdf,
		style: TableStyle{
			BodyStyle: &CellStyle{Padding: &Padding{1, 1, 1, 1}},
		},
	}
}

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...ColumnDef) *Table {
	t.columns = cols
	return t
}

// SetColumnWidths is a convenience method to set column widths directly.
// A width of 0 means the column will auto-fill remaining space.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]ColumnDef, len(widths))
	for i, w := range widths {
		t.columns[i] = ColumnDef{Width: w}
	}
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// SetPosition sets the starting position for the table.
// If not called, the table starts at the current PDF cursor position.
func (t *Table) SetPosition(x, y float64) *Table {
	t.x = x
	t.y = y
	return t
}

// SetWidth sets the total table width. If not called, uses page width minus margins.
func (t *Table) SetWidth(w float64) *Table {
	t.tableWidth = w
	return t
}

// SetAutoPageBreak controls whether a row that would cross the bottom
// margin starts a new page. It is on by default.
func (t *Table) SetAutoPageBreak(auto bool) *Table {
	t.noBreak = !auto
	return t
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a new header row and returns it for chaining.
// Header rows are drawn before body rows and repeated on each new page.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	insertIdx := 0
	for i, existing := range t.rows {
		if !existing.isHeader {
			insertIdx = i
			break
		}
		insertIdx = i + 1
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[insertIdx+1:], t.rows[insertIdx:])
	t.rows[insertIdx] = r
	t.headerRows++
	return r
}

// HeaderRows returns the number of header rows.
func (t *Table) HeaderRows() int { return t.headerRows }

// Render draws the table to the PDF document.
func (t *Table) Render() error {
	if t.pdf.Err() {
		return t.pdf.Error()
	}

	widths := t.calculateWidths()
	if len(widths) == 0 {
		return errors.New("table: no columns")
	}

	startX := t.x
	if startX == 0 {
		startX = t.pdf.GetX()
	}
	if t.y != 0 {
		t.pdf.SetY(t.y)
	}

	var headerRows, bodyRows []*Row
	for _, r := range t.rows {
		if r.isHeader {
			headerRows = append(headerRows, r)
		} else {
			bodyRows = append(bodyRows, r)
		}
	}

	for _, r := range headerRows {
		t.renderRow(r, widths, startX, -1)
	}

	_, pageH := t.pdf.GetPageSize()
	_, _, _, bMargin := t.pdf.GetMargins()
	for i, r := range bodyRows {
		rowH := t.rowHeight(r, widths, i)
		if !t.noBreak && t.pdf.GetY()+rowH > pageH-bMargin && i > 0 {
			t.pdf.AddPage()
			for _, hr := range headerRows {
				t.renderRow(hr, widths, startX, -1)
			}
		}
		t.renderRow(r, widths, startX, i)
		if t.pdf.Err() {
			break
		}
	}

	return t.pdf.Error()
}

// Height returns the height of the table drawn without page breaks. It
// measures with the document's fonts, which must be registered first.
func (t *Table) Height() float64 {
	widths := t.calculateWidths()
	var h float64
	body := 0
	for _, r := range t.rows {
		if r.isHeader {
			h += t.rowHeight(r, widths, -1)
			continue
		}
		h += t.rowHeight(r, widths, body)
		body++
	}
	return h
}

// calculateWidths computes final column widths based on definitions and available space.
func (t *Table) calculateWidths() []float64 {
	totalWidth := t.tableWidth
	if totalWidth == 0 {
		pageW, _ := t.pdf.GetPageSize()
		lMargin, _, rMargin, _ := t.pdf.GetMargins()
		totalWidth = pageW - lMargin - rMargin
	}

	numCols := len(t.columns)
	if numCols == 0 {
		if len(t.rows) > 0 {
			numCols = len(t.rows[0].cells)
		}
		if numCols == 0 {
			return nil
		}
		t.columns = make([]ColumnDef, numCols)
	}

	widths := make([]float64, numCols)
	fixedTotal := 0.0
	autoCount := 0

	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixedTotal += col.Width
		} else {
			autoCount++
		}
	}

	if autoCount > 0 {
		remaining := max(totalWidth-fixedTotal, 0)
		autoWidth := remaining / float64(autoCount)
		for i, col := range t.columns {
			if col.Width == 0 {
				w := autoWidth
				if col.MinWidth > 0 && w < col.MinWidth {
					w = col.MinWidth
				}
				if col.MaxWidth > 0 && w > col.MaxWidth {
					w = col.MaxWidth
				}
				widths[i] = w
			}
		}
	}

	return widths
}

// applyFont sets the font of style on the document, if any.
func (t *Table) applyFont(style CellStyle) {
	if style.Font != nil {
		t.pdf.SetFont(style.Font.Family, style.Font.Style, style.Font.Size)
	}
}

// cellLines splits a cell's text into the lines it is drawn with, using the
// current font. Explicit newlines always break.
func (t *Table) cellLines(text string, contentW float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		split := t.pdf.SplitText(para, contentW)
		if len(split) == 0 {
			split = []string{""}
		}
		lines = append(lines, split...)
	}
	return lines
}

func (t *Table) lineHeight() float64 {
	_, unitSize := t.pdf.GetFontSize()
	return unitSize * lineHeightFactor
}

// rowHeight computes the height needed for a row based on cell content.
func (t *Table) rowHeight(r *Row, widths []float64, bodyIdx int) float64 {
	maxH := minRowHeight
	if r.minH > maxH {
		maxH = r.minH
	}

	for i, cell := range r.cells {
		if i >= len(widths) {
			break
		}
		style := t.resolveCellStyle(cell, r, i, bodyIdx)
		if style.MinHeight > maxH {
			maxH = style.MinHeight
		}
		pad := paddingOf(style)
		contentW := max(widths[i]-pad.Left-pad.Right, 1)

		t.applyFont(style)
		lines := t.cellLines(cell.text, contentW)
		cellH := float64(len(lines))*t.lineHeight() + pad.Top + pad.Bottom
		if cellH > maxH {
			maxH = cellH
		}
	}

	return maxH
}

// renderRow renders a single row to the PDF. bodyIdx is -1 for header rows.
func (t *Table) renderRow(r *Row, widths []float64, startX float64, bodyIdx int) {
	rowH := t.rowHeight(r, widths, bodyIdx)

	t.pdf.SetX(startX)
	y := t.pdf.GetY()
	x := startX

	for i, cell := range r.cells {
		if i >= len(widths) {
			break
		}
		cellW := widths[i]
		style := t.resolveCellStyle(cell, r, i, bodyIdx)
		pad := paddingOf(style)

		if style.FillColor != nil {
			t.pdf.SetFillColor(style.FillColor.R, style.FillColor.G, style.FillColor.B)
			t.pdf.Rect(x, y, cellW, rowH, "F")
		}
		if b := t.style.Border; b != nil {
			t.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
			if b.Width > 0 {
				t.pdf.SetLineWidth(b.Width)
			}
			t.pdf.Rect(x, y, cellW, rowH, "D")
		}

		if style.TextColor != nil {
			t.pdf.SetTextColor(style.TextColor.R, style.TextColor.G, style.TextColor.B)
		}
		t.applyFont(style)

		align := style.Align
		if align == "" {
			align = "L"
		}
		contentW := max(cellW-pad.Left-pad.Right, 1)
		lines := t.cellLines(cell.text, contentW)
		lineH := t.lineHeight()
		textH := float64(len(lines)) * lineH
		innerH := rowH - pad.Top - pad.Bottom

		lineY := y + pad.Top
		switch style.VAlign {
		case AlignTop:
		case AlignBottom:
			lineY += innerH - textH
		default:
			lineY += (innerH - textH) / 2
		}
		for _, line := range lines {
			t.pdf.SetXY(x+pad.Left, lineY)
			t.pdf.CellFormat(contentW, lineH, line, "", 0, align, false, 0, "")
			lineY += lineH
		}

		x += cellW
	}

	t.pdf.SetDrawColor(0, 0, 0)
	t.pdf.SetFillColor(0, 0, 0)
	t.pdf.SetTextColor(0, 0, 0)

	t.pdf.SetXY(startX, y+rowH)
}

// resolveCellStyle determines the effective style for a cell by merging
// table, alternate row, column, row, and cell-level styles. Column styles
// and alternate rows only apply to body rows.
func (t *Table) resolveCellStyle(cell *Cell, row *Row, col, bodyIdx int) CellStyle {
	var result CellStyle

	if row.isHeader {
		mergeStyle(&result, t.style.HeaderStyle)
	} else {
		mergeStyle(&result, t.style.BodyStyle)
		if t.style.AlternateRows != nil && bodyIdx >= 0 {
			if bodyIdx%2 == 0 {
				mergeStyle(&result, &t.style.AlternateRows.Even)
			} else {
				mergeStyle(&result, &t.style.AlternateRows.Odd)
			}
		}
		if col < len(t.columns) {
			mergeStyle(&result, t.columns[col].Style)
		}
	}

	mergeStyle(&result, row.style)
	mergeStyle(&result, cell.style)

	return result
}

func paddingOf(s CellStyle) Padding {
	if s.Padding == nil {
		return Padding{}
	}
	return *s.Padding
}
