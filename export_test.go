package schedpdf_test

import (
	"bytes"
	"context"
	"encoding/base64"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jadwal/schedpdf"
	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/fontload"
	"github.com/jadwal/schedpdf/pageops"
	"github.com/jadwal/schedpdf/schedule"
	"github.com/jadwal/schedpdf/style"
)

func pageCount(t *testing.T, pdf []byte) int {
	t.Helper()
	n, err := pageops.CountPages(bytes.NewReader(pdf))
	require.NoError(t, err)
	return n
}

func TestExportTeacherScheduleEmpty(t *testing.T) {
	var buf bytes.Buffer
	res, err := schedpdf.ExportTeacherSchedule(context.Background(), &buf, ahmad, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "جدول_أحمد_علي.pdf", res.FileName)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 1, pageCount(t, buf.Bytes()))
	require.Len(t, res.Sheets, 1)
	assert.Equal(t, "عدد الحصص: 0", res.Sheets[0].Caption)
	for _, c := range cellsOf(res.Sheets[0]) {
		assert.Equal(t, schedpdf.Placeholder, c)
	}
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportClassScheduleHidesTeacherNames(t *testing.T) {
	slots := []schedule.ClassSlot{
		{Day: schedule.Sunday, Period: 1, Subject: "رياضيات", TeacherName: "أحمد علي"},
	}
	res, err := schedpdf.ExportClassSchedule(context.Background(), io.Discard, 11, 2, slots, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "جدول_صف_11_2.pdf", res.FileName)
	for _, c := range cellsOf(res.Sheets[0]) {
		assert.NotContains(t, c, "أحمد")
	}

	_, err = schedpdf.ExportClassSchedule(context.Background(), io.Discard, 0, 2, slots, false, nil)
	assert.True(t, errors.IsValidation(err))
}

func TestExportAllClassesOnePagePerPair(t *testing.T) {
	sections := schedule.Sections{12: {3, 1}, 10: {2, 1, 2}, 11: {4}}
	slots := []schedule.Slot{
		{TeacherID: "t1", Day: schedule.Sunday, Period: 1, Grade: 10, Section: 1},
		{TeacherID: "t2", Day: schedule.Sunday, Period: 2, Grade: 12, Section: 3},
	}

	var buf bytes.Buffer
	res, err := schedpdf.ExportAllClasses(context.Background(), &buf, slots, []schedule.Teacher{ahmad, sara}, true, nil, sections)
	require.NoError(t, err)

	pairs := sections.Pairs()
	require.Len(t, pairs, 5)
	assert.Equal(t, len(pairs), res.Pages)
	assert.Equal(t, len(pairs), pageCount(t, buf.Bytes()))
	require.Len(t, res.Sheets, len(pairs))
	for i, key := range pairs {
		assert.Equal(t, key.String(), res.Sheets[i].Subject)
	}
	assert.Empty(t, res.Warnings)
}

func TestLargestFontsKeepOnePagePerSheet(t *testing.T) {
	cfg := style.Default()
	for _, r := range style.Roles() {
		var err error
		cfg, err = cfg.SetRoleFontSize(r, style.MaxFontSize)
		require.NoError(t, err)
	}

	long := schedule.Teacher{ID: "t3", Name: "عبد الرحمن بن محمد الشهري", Subject: "التربية الإسلامية والدراسات الاجتماعية"}
	teachers := []schedule.Teacher{ahmad, long}
	sections := schedule.Sections{10: {1, 2}}
	var slots []schedule.Slot
	for _, key := range sections.Pairs() {
		for _, day := range schedule.Days {
			for _, period := range schedule.Periods() {
				slots = append(slots, schedule.Slot{
					TeacherID: teachers[(key.Section+period)%2].ID,
					Day:       day, Period: period, Grade: key.Grade, Section: key.Section,
				})
			}
		}
	}
	exp := schedpdf.New(schedpdf.WithPageNumbers(pageops.PageNumberStyle{}))

	var buf bytes.Buffer
	res, err := exp.ExportAllClasses(context.Background(), &buf, slots, teachers, true, &cfg, sections)
	require.NoError(t, err)
	assert.Equal(t, len(sections.Pairs()), res.Pages)
	assert.Equal(t, len(sections.Pairs()), pageCount(t, buf.Bytes()))

	buf.Reset()
	res, err = exp.ExportAllTeachers(context.Background(), &buf, teachers, slots, &cfg)
	require.NoError(t, err)
	assert.Equal(t, len(teachers), res.Pages)
	assert.Equal(t, len(teachers), pageCount(t, buf.Bytes()))
}

func TestExportAllClassesDefaultSections(t *testing.T) {
	var buf bytes.Buffer
	res, err := schedpdf.ExportAllClasses(context.Background(), &buf, nil, nil, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 21, res.Pages)
	assert.Equal(t, 21, pageCount(t, buf.Bytes()))
}

func TestExportAllTeachers(t *testing.T) {
	slots := []schedule.Slot{
		{TeacherID: "t1", Day: schedule.Sunday, Period: 1, Grade: 10, Section: 1},
		{TeacherID: "t2", Day: schedule.Monday, Period: 4, Grade: 11, Section: 3},
	}
	var buf bytes.Buffer
	res, err := schedpdf.ExportAllTeachers(context.Background(), &buf, []schedule.Teacher{ahmad, sara}, slots, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 2, pageCount(t, buf.Bytes()))
	assert.Equal(t, "جداول_جميع_المعلمين.pdf", res.FileName)
	assert.Equal(t, "أحمد علي", res.Sheets[0].Subject)
}

func TestNothingToExport(t *testing.T) {
	var buf bytes.Buffer
	_, err := schedpdf.ExportAllTeachers(context.Background(), &buf, nil, nil, nil)
	assert.ErrorIs(t, err, schedpdf.ErrNothingToExport)
	assert.True(t, errors.IsValidation(err))

	_, err = schedpdf.ExportAllClasses(context.Background(), &buf, nil, nil, false, nil, schedule.Sections{})
	assert.ErrorIs(t, err, schedpdf.ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestExportInvalidStyle(t *testing.T) {
	cfg := style.Default()
	cfg.Content.Size = 99
	var buf bytes.Buffer
	_, err := schedpdf.ExportTeacherSchedule(context.Background(), &buf, ahmad, nil, &cfg)
	assert.True(t, errors.IsValidation(err))
	assert.Zero(t, buf.Len())
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	_, err := schedpdf.ExportAllClasses(ctx, &buf, nil, nil, false, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestMalformedCustomFontFallsBack(t *testing.T) {
	cfg, err := style.Default().SetCustomFont(style.Header, "Broken.ttf", base64.StdEncoding.EncodeToString([]byte("not a font")))
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := schedpdf.ExportTeacherSchedule(context.Background(), &buf, ahmad, nil, &cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)

	require.NotEmpty(t, res.Warnings)
	var fl *errors.FontLoadError
	require.True(t, stderrors.As(res.Warnings[0], &fl))
	assert.Equal(t, "Broken", fl.Font)
	assert.Equal(t, "header", fl.Role)
}

func TestValidCustomFont(t *testing.T) {
	cf, err := fontload.Read(context.Background(), "School.ttf", bytes.NewReader(fontload.Fallback()))
	require.NoError(t, err)
	cfg, err := style.Default().SetUniformCustomFont(cf.Name, cf.Data)
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := schedpdf.ExportTeacherSchedule(context.Background(), &buf, ahmad, nil, &cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	for _, r := range style.Roles() {
		assert.Equal(t, "custom1-School", res.Fonts[r], r.String())
	}
	assert.Equal(t, 1, embeddedFonts(buf.Bytes()))
}

// embeddedFonts counts the font files embedded in a document.
func embeddedFonts(pdf []byte) int {
	return bytes.Count(pdf, []byte("/FontFile2"))
}

func TestCustomFontsSharingAName(t *testing.T) {
	cfg, err := style.Default().SetCustomFont(style.Header, "School.ttf", base64.StdEncoding.EncodeToString(goregular.TTF))
	require.NoError(t, err)
	cfg, err = cfg.SetCustomFont(style.Content, "School.ttf", base64.StdEncoding.EncodeToString(gomono.TTF))
	require.NoError(t, err)
	cfg.Uniform = false

	var buf bytes.Buffer
	res, err := schedpdf.ExportTeacherSchedule(context.Background(), &buf, ahmad, nil, &cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.NotEqual(t, res.Fonts[style.Header], res.Fonts[style.Content])
	assert.Equal(t, fontload.FallbackName, res.Fonts[style.Day])
	assert.Equal(t, 3, embeddedFonts(buf.Bytes()))
}

func TestCustomFontWithoutPayloadFallsBack(t *testing.T) {
	cfg := style.Default()
	cfg.Header.UseCustom = true

	var buf bytes.Buffer
	res, err := schedpdf.ExportTeacherSchedule(context.Background(), &buf, ahmad, nil, &cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, buf.Bytes()))

	require.Len(t, res.Warnings, 3)
	var fl *errors.FontLoadError
	require.True(t, stderrors.As(res.Warnings[0], &fl))
	assert.Equal(t, "header", fl.Role)
	assert.Equal(t, style.DefaultFont, fl.Font)
	for _, r := range style.Roles() {
		assert.Equal(t, fontload.FallbackName, res.Fonts[r])
	}

	cfg.Uniform = false
	res, err = schedpdf.ExportTeacherSchedule(context.Background(), io.Discard, ahmad, nil, &cfg)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.True(t, errors.IsFontLoad(res.Warnings[0]))
}

func TestFontDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, style.DefaultFont+".ttf"), fontload.Fallback(), 0o644))

	exp := schedpdf.New(schedpdf.WithFontDir(dir))
	res, err := exp.ExportTeacherSchedule(context.Background(), io.Discard, ahmad, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	cfg, err := style.Default().ApplyUniformFont("Missing")
	require.NoError(t, err)
	res, err = exp.ExportTeacherSchedule(context.Background(), io.Discard, ahmad, nil, &cfg)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 3)
	assert.True(t, errors.IsFontLoad(res.Warnings[0]))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, stderrors.New("disk full") }

func TestWriteFailureIsRenderError(t *testing.T) {
	_, err := schedpdf.ExportTeacherSchedule(context.Background(), failingWriter{}, ahmad, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsRender(err))
}

func TestExportOptions(t *testing.T) {
	dir := t.TempDir()
	letterhead := filepath.Join(dir, "letterhead.pdf")
	lh := fpdf.New("L", "mm", "A4", "")
	lh.SetFont("Helvetica", "", 14)
	lh.AddPage()
	lh.Text(20, 20, "Al Noor School")
	require.NoError(t, lh.OutputFileAndClose(letterhead))

	fixed := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	exp := schedpdf.New(
		schedpdf.WithDirection(schedpdf.LeftToRight),
		schedpdf.WithLabels(schedpdf.EnglishLabels()),
		schedpdf.WithLetterhead(letterhead, 1),
		schedpdf.WithPageNumbers(pageops.PageNumberStyle{}),
		schedpdf.WithWatermark(pageops.TextWatermark{Text: "DRAFT"}),
		schedpdf.WithQRCode("https://school.example/{doc}/{page}"),
		schedpdf.WithCreator("test"),
		schedpdf.WithClock(func() time.Time { return fixed }),
	)

	var buf bytes.Buffer
	res, err := exp.ExportAllTeachers(context.Background(), &buf, []schedule.Teacher{ahmad, sara}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "schedules_all_teachers.pdf", res.FileName)
	assert.Equal(t, 2, pageCount(t, buf.Bytes()))
	assert.Equal(t, "Lessons: 0", res.Sheets[1].Caption)

	again, err := exp.ExportAllTeachers(context.Background(), io.Discard, []schedule.Teacher{ahmad, sara}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, res.DocumentID, again.DocumentID)
}

func TestMissingLetterhead(t *testing.T) {
	exp := schedpdf.New(schedpdf.WithLetterhead(filepath.Join(t.TempDir(), "none.pdf"), 1))
	var buf bytes.Buffer
	_, err := exp.ExportTeacherSchedule(context.Background(), &buf, ahmad, nil, nil)
	assert.True(t, errors.IsValidation(err))
	assert.Zero(t, buf.Len())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path, res, err := schedpdf.Save(dir, func(w io.Writer) (*schedpdf.Result, error) {
		return schedpdf.ExportClassSchedule(context.Background(), w, 10, 1, nil, false, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, res.FileName), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, data))

	failDir := filepath.Join(dir, "failed")
	_, _, err = schedpdf.Save(failDir, func(w io.Writer) (*schedpdf.Result, error) {
		w.Write([]byte("%PDF-partial"))
		return nil, errors.Render("Output", stderrors.New("boom"))
	})
	require.Error(t, err)
	_, statErr := os.Stat(failDir)
	assert.True(t, os.IsNotExist(statErr), "no output directory or file on failure")
}
