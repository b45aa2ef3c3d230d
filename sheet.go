package schedpdf

import (
	"fmt"

	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/logging"
	"github.com/jadwal/schedpdf/schedule"
)

// Placeholder fills grid cells without a lesson.
const Placeholder = "-"

// Sheet is one timetable page before drawing. Cells[d][p] is the text for
// Days[d] and Periods[p]; Periods are in ascending order regardless of the
// drawing direction.
type Sheet struct {
	Title     string
	Subtitle  string
	Days      []schedule.Day
	Periods   []int
	Cells     [][]string
	Caption   string
	SlotCount int

	// Subject names what the page shows, for QR stamps: the teacher name or
	// the "grade/section" of the class.
	Subject string
}

type slotKey struct {
	day    schedule.Day
	period int
}

// newGrid fills a Days x Periods grid, taking for each cell the first entry
// of texts with that day and period.
func newGrid(texts func(yield func(slotKey, string))) (days []schedule.Day, periods []int, cells [][]string) {
	first := make(map[slotKey]string)
	texts(func(k slotKey, s string) {
		if _, seen := first[k]; !seen {
			first[k] = s
		}
	})

	days = schedule.Days
	periods = schedule.Periods()
	cells = make([][]string, len(days))
	for d, day := range days {
		row := make([]string, len(periods))
		for p, period := range periods {
			if s, ok := first[slotKey{day, period}]; ok {
				row[p] = s
			} else {
				row[p] = Placeholder
			}
		}
		cells[d] = row
	}
	return days, periods, cells
}

func teacherSheet(l Labels, title string, t schedule.Teacher, slots []schedule.TeacherSlot) Sheet {
	days, periods, cells := newGrid(func(yield func(slotKey, string)) {
		for _, s := range slots {
			yield(slotKey{s.Day, s.Period}, fmt.Sprintf("%d/%d", s.Grade, s.Section))
		}
	})
	return Sheet{
		Title:     fmt.Sprintf(title, t.Name),
		Subtitle:  fmt.Sprintf(l.SubjectLine, t.Subject),
		Days:      days,
		Periods:   periods,
		Cells:     cells,
		Caption:   fmt.Sprintf(l.SlotCount, len(slots)),
		SlotCount: len(slots),
		Subject:   t.Name,
	}
}

// TeacherSheet builds the page of a single teacher export. Cells show the
// class taught as "grade/section".
func TeacherSheet(l Labels, t schedule.Teacher, slots []schedule.TeacherSlot) Sheet {
	return teacherSheet(l, l.TeacherTitle, t, slots)
}

// TeacherSheets builds one page per teacher, in the order given, each with
// the slots whose TeacherID matches.
func TeacherSheets(l Labels, teachers []schedule.Teacher, slots []schedule.Slot) []Sheet {
	sheets := make([]Sheet, 0, len(teachers))
	for _, t := range teachers {
		var own []schedule.TeacherSlot
		for _, s := range slots {
			if s.TeacherID == t.ID {
				own = append(own, schedule.TeacherSlot{Day: s.Day, Period: s.Period, Grade: s.Grade, Section: s.Section})
			}
		}
		sheets = append(sheets, teacherSheet(l, l.BatchTitle, t, own))
	}
	return sheets
}

// ClassSheet builds the page of a single class export. Cells show the
// subject, with the teacher's name on a second line only when
// showTeacherNames is set.
func ClassSheet(l Labels, grade, section int, slots []schedule.ClassSlot, showTeacherNames bool) Sheet {
	key := schedule.ClassKey{Grade: grade, Section: section}
	days, periods, cells := newGrid(func(yield func(slotKey, string)) {
		for _, s := range slots {
			text := s.Subject
			if showTeacherNames {
				text = s.Subject + "\n" + s.TeacherName
			}
			yield(slotKey{s.Day, s.Period}, text)
		}
	})
	return Sheet{
		Title:     fmt.Sprintf(l.ClassTitle, key),
		Days:      days,
		Periods:   periods,
		Cells:     cells,
		SlotCount: len(slots),
		Subject:   key.String(),
	}
}

// ClassSheets builds one page per class of sections, by ascending grade and
// then section. A nil sections means schedule.DefaultSections. Slots whose
// teacher is not in teachers are drawn with the unknown subject and teacher
// labels; each such slot is reported in the returned warnings.
func ClassSheets(l Labels, slots []schedule.Slot, teachers []schedule.Teacher, showTeacherNames bool, sections schedule.Sections) ([]Sheet, []error) {
	if sections == nil {
		sections = schedule.DefaultSections()
	}
	index := make(map[string]schedule.Teacher, len(teachers))
	for _, t := range teachers {
		if _, dup := index[t.ID]; !dup {
			index[t.ID] = t
		}
	}

	var warnings []error
	pairs := sections.Pairs()
	sheets := make([]Sheet, 0, len(pairs))
	for _, key := range pairs {
		var own []schedule.ClassSlot
		for _, s := range slots {
			if s.Class() != key {
				continue
			}
			cs := schedule.ClassSlot{Day: s.Day, Period: s.Period}
			if t, ok := index[s.TeacherID]; ok {
				cs.Subject, cs.TeacherName = t.Subject, t.Name
			} else {
				cs.Subject, cs.TeacherName = l.UnknownSubject, l.UnknownTeacher
				err := errors.Validation("slot teacher", s.TeacherID, "class %s, %s period %d: unknown teacher", key, s.Day, s.Period)
				logging.Logger().Warn("unknown teacher in slot", "teacher", s.TeacherID, "class", key.String(), "day", s.Day, "period", s.Period)
				warnings = append(warnings, err)
			}
			own = append(own, cs)
		}
		sheets = append(sheets, ClassSheet(l, key.Grade, key.Section, own, showTeacherNames))
	}
	return sheets, warnings
}
