package schedpdf

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/jadwal/schedpdf/logging"
	"github.com/jadwal/schedpdf/style"
	"github.com/jadwal/schedpdf/table"
)

// dayColumnWidth is the width of the day column in mm.
const dayColumnWidth = 25

// captionMargin is the distance of the slot-count caption from the side and
// bottom page edges, in mm.
const captionMargin = 15

// layout holds the geometry of one kind of page. Sizes are in points and
// positions in mm.
type layout struct {
	titleSize    float64
	subtitleSize float64
	titleY       float64
	subtitleY    float64
	centred      bool // titles centred, otherwise on the reading side
	gridY        float64
	margin       float64
	bodyPad      table.Padding
	headerPad    table.Padding
	bodyMin      float64
	headerMin    float64
	captionSize  float64
}

var (
	teacherLayout = layout{
		titleSize: 22, subtitleSize: 16, titleY: 15, subtitleY: 25, centred: true,
		gridY: 35, margin: 15,
		bodyPad: table.SymmetricPadding(6, 8), headerPad: table.SymmetricPadding(7, 8),
		bodyMin: 12, headerMin: 14, captionSize: 9,
	}
	classLayout = func() layout {
		l := teacherLayout
		l.gridY = 25
		return l
	}()
	teacherBatchLayout = layout{
		titleSize: 16, subtitleSize: 11, titleY: 15, subtitleY: 23,
		gridY: 30, margin: 12,
		bodyPad: table.SymmetricPadding(5, 7), headerPad: table.SymmetricPadding(6, 7),
		bodyMin: 10, headerMin: 12, captionSize: 8,
	}
	classBatchLayout = func() layout {
		l := teacherBatchLayout
		l.gridY = 22
		return l
	}()
)

func tableColor(c style.RGB) *table.RGBColor {
	r, g, b := c.Ints()
	return &table.RGBColor{R: r, G: g, B: b}
}

// page draws sheets onto one document.
type page struct {
	pdf    *fpdf.Fpdf
	cfg    style.Config
	fonts  roleFonts
	labels Labels
	dir    Direction
}

// drawSheet adds a page and draws sh on it.
func (p *page) drawSheet(sh Sheet, lay layout) error {
	pdf := p.pdf
	pdf.SetMargins(lay.margin, 10, lay.margin)
	pdf.AddPage()

	content := p.cfg.Role(style.Content)
	header := p.cfg.Role(style.Header)

	p.text(sh.Title, p.fonts[style.Header], lay.titleSize, content.Color, lay.titleY, lay.centred, lay.margin)
	if sh.Subtitle != "" {
		p.text(sh.Subtitle, p.fonts[style.Header], lay.subtitleSize, content.Color, lay.subtitleY, lay.centred, lay.margin)
	}

	if err := p.grid(sh, lay, header, content); err != nil {
		return err
	}

	if sh.Caption != "" {
		_, pageH := pdf.GetPageSize()
		p.text(sh.Caption, p.fonts[style.Content], lay.captionSize, content.Color, pageH-10, false, captionMargin)
	}
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}

// text writes a single line with its baseline at y, centred or aligned to
// the reading side at margin from the page edge.
func (p *page) text(s, family string, size float64, color style.RGB, y float64, centred bool, margin float64) {
	pdf := p.pdf
	pdf.SetFont(family, "", size)
	pdf.SetTextColor(color.Ints())
	pageW, _ := pdf.GetPageSize()
	w := pdf.GetStringWidth(s)

	var x float64
	switch {
	case centred:
		x = (pageW - w) / 2
	case p.dir == RightToLeft:
		x = pageW - margin - w
	default:
		x = margin
	}
	pdf.Text(x, y, s)
}

// gridScale shrinks a grid: pad scales cell padding and minimum heights,
// font scales the sizes of the three roles.
type gridScale struct {
	pad, font float64
}

// gridScales are tried in order until a grid fits above the caption. Space
// is taken from padding before text is made smaller.
var gridScales = []gridScale{
	{1, 1}, {0.75, 1}, {0.5, 1}, {0.25, 1}, {0, 1},
	{0, 0.9}, {0, 0.8}, {0, 0.7}, {0, 0.6}, {0, 0.5}, {0, 0.4}, {0, 0.3},
}

func (lay layout) scaled(k float64) layout {
	scale := func(p table.Padding) table.Padding {
		return table.Padding{Top: p.Top * k, Right: p.Right, Bottom: p.Bottom * k, Left: p.Left}
	}
	lay.bodyPad = scale(lay.bodyPad)
	lay.headerPad = scale(lay.headerPad)
	lay.bodyMin *= k
	lay.headerMin *= k
	return lay
}

// grid draws the timetable grid of sh on the current page, shrunk as
// needed so that it never continues on another page.
func (p *page) grid(sh Sheet, lay layout, header, content style.RoleStyle) error {
	_, pageH := p.pdf.GetPageSize()
	room := pageH - captionMargin - lay.gridY

	var tb *table.Table
	for _, sc := range gridScales {
		tb = p.buildGrid(sh, lay.scaled(sc.pad), header, content, sc.font)
		if h := tb.Height(); h <= room {
			if sc.pad < 1 || sc.font < 1 {
				logging.Logger().Debug("grid shrunk to fit page", "sheet", sh.Title, "padding", sc.pad, "font", sc.font)
			}
			break
		}
	}
	return tb.SetAutoPageBreak(false).Render()
}

func (p *page) buildGrid(sh Sheet, lay layout, header, content style.RoleStyle, fontScale float64) *table.Table {
	size := func(rs style.RoleStyle) float64 { return float64(rs.Size) * fontScale }
	day := p.cfg.Role(style.Day)
	dayAlign := "R"
	if p.dir == LeftToRight {
		dayAlign = "L"
	}

	dayCol := table.ColumnDef{
		Width: dayColumnWidth,
		Style: &table.CellStyle{
			Font:      &table.FontSpec{Family: p.fonts[style.Day], Size: size(day)},
			TextColor: tableColor(day.Color),
			Align:     dayAlign,
		},
	}
	periodCols := make([]table.ColumnDef, len(sh.Periods))

	// order maps a drawn column to a period index, or -1 for the day column.
	var cols []table.ColumnDef
	var order []int
	if p.dir == RightToLeft {
		cols = append(periodCols, dayCol)
		for i := len(sh.Periods) - 1; i >= 0; i-- {
			order = append(order, i)
		}
		order = append(order, -1)
	} else {
		cols = append([]table.ColumnDef{dayCol}, periodCols...)
		order = append(order, -1)
		for i := range sh.Periods {
			order = append(order, i)
		}
	}

	pageW, _ := p.pdf.GetPageSize()
	white := table.Gray(255)
	tb := table.New(p.pdf).
		SetColumns(cols...).
		SetPosition(lay.margin, lay.gridY).
		SetWidth(pageW - 2*lay.margin).
		SetStyle(table.TableStyle{
			Border: &table.BorderStyle{Width: 0.1, Color: table.Gray(220)},
			HeaderStyle: &table.CellStyle{
				FillColor: tableColor(p.cfg.Theme),
				TextColor: tableColor(header.Color),
				Font:      &table.FontSpec{Family: p.fonts[style.Header], Size: size(header)},
				Align:     "C",
				VAlign:    table.AlignMiddle,
				Padding:   &lay.headerPad,
				MinHeight: lay.headerMin,
			},
			BodyStyle: &table.CellStyle{
				TextColor: tableColor(content.Color),
				Font:      &table.FontSpec{Family: p.fonts[style.Content], Size: size(content)},
				Align:     "C",
				VAlign:    table.AlignMiddle,
				Padding:   &lay.bodyPad,
				MinHeight: lay.bodyMin,
			},
			AlternateRows: &table.AlternateStyle{
				Even: table.CellStyle{FillColor: &white},
				Odd:  table.CellStyle{FillColor: &table.RGBColor{R: 245, G: 245, B: 245}},
			},
		})

	head := tb.AddHeaderRow()
	for _, i := range order {
		if i < 0 {
			head.AddCell(p.labels.Day)
		} else {
			head.AddCell(fmt.Sprintf(p.labels.Period, sh.Periods[i]))
		}
	}
	for d, dayName := range sh.Days {
		row := tb.AddRow()
		for _, i := range order {
			if i < 0 {
				row.AddCell(p.labels.DayName(dayName))
			} else {
				row.AddCell(sh.Cells[d][i])
			}
		}
	}
	return tb
}
