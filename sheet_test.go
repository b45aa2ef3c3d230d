package schedpdf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadwal/schedpdf"
	"github.com/jadwal/schedpdf/schedule"
)

var (
	ahmad = schedule.Teacher{ID: "t1", Name: "أحمد علي", Subject: "رياضيات"}
	sara  = schedule.Teacher{ID: "t2", Name: "سارة حسن", Subject: "فيزياء"}
)

func cellsOf(sh schedpdf.Sheet) []string {
	var out []string
	for _, row := range sh.Cells {
		out = append(out, row...)
	}
	return out
}

func TestTeacherSheetEmpty(t *testing.T) {
	l := schedpdf.ArabicLabels()
	sh := schedpdf.TeacherSheet(l, ahmad, nil)

	require.Len(t, sh.Cells, len(schedule.Days))
	for _, c := range cellsOf(sh) {
		assert.Equal(t, schedpdf.Placeholder, c)
	}
	assert.Equal(t, "عدد الحصص: 0", sh.Caption)
	assert.Equal(t, 0, sh.SlotCount)
	assert.Equal(t, "جدول حصص المعلم: أحمد علي", sh.Title)
	assert.Equal(t, "المادة: رياضيات", sh.Subtitle)
}

func TestTeacherSheetCells(t *testing.T) {
	slots := []schedule.TeacherSlot{
		{Day: schedule.Monday, Period: 3, Grade: 11, Section: 4},
		{Day: schedule.Monday, Period: 3, Grade: 12, Section: 1}, // shadowed by the first
		{Day: schedule.Thursday, Period: 7, Grade: 10, Section: 2},
	}
	sh := schedpdf.TeacherSheet(schedpdf.ArabicLabels(), ahmad, slots)

	assert.Equal(t, "11/4", sh.Cells[1][2])
	assert.Equal(t, "10/2", sh.Cells[4][6])
	assert.Equal(t, schedpdf.Placeholder, sh.Cells[0][0])
	assert.Equal(t, "عدد الحصص: 3", sh.Caption)
}

func TestClassSheetTeacherNames(t *testing.T) {
	slots := []schedule.ClassSlot{
		{Day: schedule.Sunday, Period: 1, Subject: "رياضيات", TeacherName: "أحمد علي"},
		{Day: schedule.Tuesday, Period: 5, Subject: "فيزياء", TeacherName: "سارة حسن"},
	}
	l := schedpdf.ArabicLabels()

	hidden := schedpdf.ClassSheet(l, 10, 3, slots, false)
	for _, c := range cellsOf(hidden) {
		assert.NotContains(t, c, "أحمد")
		assert.NotContains(t, c, "سارة")
		assert.NotContains(t, c, "\n")
	}
	assert.Equal(t, "رياضيات", hidden.Cells[0][0])
	assert.Equal(t, "جدول حصص الصف 10/3", hidden.Title)
	assert.Empty(t, hidden.Caption)

	shown := schedpdf.ClassSheet(l, 10, 3, slots, true)
	assert.Equal(t, "فيزياء\nسارة حسن", shown.Cells[2][4])
}

func TestTeacherSheetsOrderAndFiltering(t *testing.T) {
	slots := []schedule.Slot{
		{TeacherID: "t2", Day: schedule.Sunday, Period: 2, Grade: 11, Section: 1},
		{TeacherID: "t1", Day: schedule.Sunday, Period: 1, Grade: 10, Section: 1},
		{TeacherID: "t1", Day: schedule.Monday, Period: 1, Grade: 10, Section: 2},
	}
	sheets := schedpdf.TeacherSheets(schedpdf.ArabicLabels(), []schedule.Teacher{sara, ahmad}, slots)
	require.Len(t, sheets, 2)
	assert.Equal(t, "جدول حصص: سارة حسن", sheets[0].Title)
	assert.Equal(t, 1, sheets[0].SlotCount)
	assert.Equal(t, 2, sheets[1].SlotCount)
	assert.Equal(t, "11/1", sheets[0].Cells[0][1])
}

func TestClassSheetsOrderAndUnknownTeacher(t *testing.T) {
	slots := []schedule.Slot{
		{TeacherID: "t1", Day: schedule.Sunday, Period: 1, Grade: 11, Section: 2},
		{TeacherID: "ghost", Day: schedule.Monday, Period: 2, Grade: 10, Section: 5},
	}
	sections := schedule.Sections{11: {2, 1}, 10: {5}}
	l := schedpdf.ArabicLabels()

	sheets, warnings := schedpdf.ClassSheets(l, slots, []schedule.Teacher{ahmad}, true, sections)
	require.Len(t, sheets, 3)
	var subjects []string
	for _, sh := range sheets {
		subjects = append(subjects, sh.Subject)
	}
	assert.Equal(t, []string{"10/5", "11/1", "11/2"}, subjects)

	assert.Equal(t, "غير محدد\nغير معروف", sheets[0].Cells[1][1])
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Error(), "ghost")
	assert.Equal(t, "رياضيات\nأحمد علي", sheets[2].Cells[0][0])
}

func TestClassSheetsDefaultSections(t *testing.T) {
	sheets, warnings := schedpdf.ClassSheets(schedpdf.ArabicLabels(), nil, nil, false, nil)
	assert.Empty(t, warnings)
	require.Len(t, sheets, 21)
	assert.Equal(t, "10/1", sheets[0].Subject)
	assert.Equal(t, "12/7", sheets[20].Subject)
}

func TestEnglishLabels(t *testing.T) {
	l := schedpdf.EnglishLabels()
	sh := schedpdf.TeacherSheet(l, schedule.Teacher{Name: "Jane Doe", Subject: "Math"}, nil)
	assert.Equal(t, "Lessons: 0", sh.Caption)
	assert.Equal(t, "Sunday", l.DayName(schedule.Sunday))
	assert.Equal(t, "الأحد", schedpdf.ArabicLabels().DayName(schedule.Sunday))
	assert.True(t, strings.HasPrefix(sh.Title, "Teacher timetable"))
}
