// Package schedpdf renders school timetables as PDF documents.
//
// Four exports are offered: the timetable of one teacher, of one class, of
// every teacher (one page each) and of every class (one page per grade and
// section). Each draws a grid of weekdays by periods, styled by a
// style.Config: the theme colour fills the header row and each text role
// (header, day, content) has its own font, size and colour.
//
// Exports run on an Exporter configured with functional options. The
// package-level functions use a default Exporter:
//
//	res, err := schedpdf.ExportTeacherSchedule(ctx, w, teacher, slots, nil)
//
// The document is rendered in memory and written to w only once it is
// complete, so a failed export never leaves partial output behind. Font
// problems do not fail an export: the font falls back and the problem is
// reported in Result.Warnings.
package schedpdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/logging"
	"github.com/jadwal/schedpdf/pageops"
	"github.com/jadwal/schedpdf/schedule"
	"github.com/jadwal/schedpdf/style"
)

// Result describes a finished export.
type Result struct {
	FileName   string
	Pages      int
	DocumentID string
	// Warnings lists problems the export recovered from, such as fonts that
	// fell back or slots with unknown teachers.
	Warnings []error
	Sheets   []Sheet
	// Fonts is the font family each role was drawn with.
	Fonts map[style.Role]string
}

// Exporter renders timetables. It is safe for concurrent use.
type Exporter struct {
	cfg   exportConfig
	fonts fontFiles
}

// New creates an Exporter. Without options it draws A4 landscape pages,
// right to left, with Arabic labels and the embedded fallback font.
func New(opts ...Option) *Exporter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Exporter{cfg: cfg}
}

// Labels returns the label set in use.
func (e *Exporter) Labels() Labels { return e.cfg.labels }

// job is one document to render.
type job struct {
	kind     string
	fileName string
	docID    string
	title    string
	layout   layout
	sheets   []Sheet
	warnings []error
}

// ExportTeacherSchedule writes the timetable of one teacher to w.
func (e *Exporter) ExportTeacherSchedule(ctx context.Context, w io.Writer, teacher schedule.Teacher, slots []schedule.TeacherSlot, cfg *style.Config) (*Result, error) {
	sheet := TeacherSheet(e.cfg.labels, teacher, slots)
	return e.render(ctx, w, job{
		kind:     "teacher",
		fileName: FileNameTeacher(e.cfg.labels, teacher.Name),
		docID:    teacherDocID(teacher),
		title:    sheet.Title,
		layout:   teacherLayout,
		sheets:   []Sheet{sheet},
	}, cfg)
}

// ExportClassSchedule writes the timetable of one class to w. Teacher
// names are printed under the subject only when showTeacherNames is set.
func (e *Exporter) ExportClassSchedule(ctx context.Context, w io.Writer, grade, section int, slots []schedule.ClassSlot, showTeacherNames bool, cfg *style.Config) (*Result, error) {
	if grade <= 0 || section <= 0 {
		return nil, errors.Validation("class", schedule.ClassKey{Grade: grade, Section: section}, "grade and section must be positive")
	}
	sheet := ClassSheet(e.cfg.labels, grade, section, slots, showTeacherNames)
	return e.render(ctx, w, job{
		kind:     "class",
		fileName: FileNameClass(e.cfg.labels, grade, section),
		docID:    classDocID(schedule.ClassKey{Grade: grade, Section: section}),
		title:    sheet.Title,
		layout:   classLayout,
		sheets:   []Sheet{sheet},
	}, cfg)
}

// ExportAllTeachers writes one page per teacher to w, in the order of
// teachers.
func (e *Exporter) ExportAllTeachers(ctx context.Context, w io.Writer, teachers []schedule.Teacher, slots []schedule.Slot, cfg *style.Config) (*Result, error) {
	name := FileNameAllTeachers(e.cfg.labels)
	return e.render(ctx, w, job{
		kind:     "teachers",
		fileName: name,
		docID:    DocumentID("teachers", name),
		title:    name,
		layout:   teacherBatchLayout,
		sheets:   TeacherSheets(e.cfg.labels, teachers, slots),
	}, cfg)
}

// ExportAllClasses writes one page per class of sections to w, by
// ascending grade and then section. A nil sections means grades 10 to 12
// with sections 1 to 7.
func (e *Exporter) ExportAllClasses(ctx context.Context, w io.Writer, slots []schedule.Slot, teachers []schedule.Teacher, showTeacherNames bool, cfg *style.Config, sections schedule.Sections) (*Result, error) {
	name := FileNameAllClasses(e.cfg.labels)
	sheets, warnings := ClassSheets(e.cfg.labels, slots, teachers, showTeacherNames, sections)
	return e.render(ctx, w, job{
		kind:     "classes",
		fileName: name,
		docID:    DocumentID("classes", name),
		title:    name,
		layout:   classBatchLayout,
		sheets:   sheets,
		warnings: warnings,
	}, cfg)
}

func (e *Exporter) decorator(font string, pages int) *pageops.Decorator {
	d := &pageops.Decorator{
		Letterhead:  e.cfg.letterhead,
		PageNumbers: e.cfg.pageNumbers,
		Watermark:   e.cfg.watermark,
		QR:          e.cfg.qr,
		Font:        font,
		TotalPages:  pages,
	}
	if d.Empty() {
		return nil
	}
	return d
}

func (e *Exporter) render(ctx context.Context, w io.Writer, j job, cfg *style.Config) (res *Result, err error) {
	log := logging.Logger().With("export", j.kind, "file", j.fileName)
	start := e.cfg.clock()

	sc := style.Default()
	if cfg != nil {
		sc = *cfg
	}
	if err := sc.CheckExport(); err != nil {
		return nil, err
	}
	if len(j.sheets) == 0 {
		return nil, ErrNothingToExport
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer recoverRender(j.kind, &err)

	pdf := fpdf.New(e.cfg.orientation, "mm", e.cfg.pageSize, "")
	if pdf.Err() {
		return nil, errors.Render("New", pdf.Error())
	}
	pdf.SetAutoPageBreak(false, 10)
	pdf.SetTitle(j.title, true)
	pdf.SetKeywords(j.docID, true)
	pdf.SetCreator(e.cfg.creator, true)
	pdf.SetCreationDate(start)

	fonts, warnings, err := e.loadFonts(pdf, sc)
	if err != nil {
		return nil, err
	}
	warnings = append(j.warnings, warnings...)

	dec := e.decorator(fonts[style.Header], len(j.sheets))
	if err := dec.Install(pdf); err != nil {
		return nil, errors.Validation("page decorations", nil, "%v", err)
	}

	pg := &page{pdf: pdf, cfg: sc, fonts: fonts, labels: e.cfg.labels, dir: e.cfg.direction}
	for i, sh := range j.sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := pg.drawSheet(sh, j.layout); err != nil {
			return nil, errors.Render("draw "+sh.Title, err)
		}
		if err := dec.Stamp(pdf, pageops.StampInfo{DocumentID: j.docID, Subject: sh.Subject}); err != nil {
			return nil, errors.Render("stamp "+sh.Title, err)
		}
		log.Debug("sheet drawn", "sheet", i+1, "of", len(j.sheets), "title", sh.Title)
	}

	// Decorations print len(j.sheets) as the page total.
	pages := pdf.PageNo()
	if pages != len(j.sheets) {
		return nil, errors.Render("layout", fmt.Errorf("%d sheets drawn on %d pages", len(j.sheets), pages))
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Render("Output", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return nil, errors.Render("write", err)
	}

	log.Info("export complete", "pages", pages, "bytes", buf.Len(), "warnings", len(warnings),
		"elapsed", e.cfg.clock().Sub(start).Round(time.Millisecond))
	return &Result{
		FileName:   j.fileName,
		Pages:      pages,
		DocumentID: j.docID,
		Warnings:   warnings,
		Sheets:     j.sheets,
		Fonts:      fonts,
	}, nil
}

var defaultExporter = New()

// ExportTeacherSchedule writes the timetable of one teacher to w using the
// default Exporter.
func ExportTeacherSchedule(ctx context.Context, w io.Writer, teacher schedule.Teacher, slots []schedule.TeacherSlot, cfg *style.Config) (*Result, error) {
	return defaultExporter.ExportTeacherSchedule(ctx, w, teacher, slots, cfg)
}

// ExportClassSchedule writes the timetable of one class to w using the
// default Exporter.
func ExportClassSchedule(ctx context.Context, w io.Writer, grade, section int, slots []schedule.ClassSlot, showTeacherNames bool, cfg *style.Config) (*Result, error) {
	return defaultExporter.ExportClassSchedule(ctx, w, grade, section, slots, showTeacherNames, cfg)
}

// ExportAllTeachers writes one page per teacher to w using the default
// Exporter.
func ExportAllTeachers(ctx context.Context, w io.Writer, teachers []schedule.Teacher, slots []schedule.Slot, cfg *style.Config) (*Result, error) {
	return defaultExporter.ExportAllTeachers(ctx, w, teachers, slots, cfg)
}

// ExportAllClasses writes one page per class to w using the default
// Exporter.
func ExportAllClasses(ctx context.Context, w io.Writer, slots []schedule.Slot, teachers []schedule.Teacher, showTeacherNames bool, cfg *style.Config, sections schedule.Sections) (*Result, error) {
	return defaultExporter.ExportAllClasses(ctx, w, slots, teachers, showTeacherNames, cfg, sections)
}
