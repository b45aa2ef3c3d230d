package schedpdf

import (
	"github.com/jadwal/schedpdf/schedule"
)

// Labels is the text an export prints around the data, plus the file name
// patterns. Format verbs are filled as documented per field.
type Labels struct {
	Period       string // period header, %d = period number
	Day          string // day column header
	TeacherTitle string // single teacher title, %s = teacher name
	BatchTitle   string // teacher title in the all-teachers document, %s = name
	SubjectLine  string // %s = subject
	ClassTitle   string // %s = "grade/section"
	SlotCount    string // %d = number of slots

	UnknownSubject string
	UnknownTeacher string

	TeacherFile     string // %s = teacher name
	ClassFile       string // %d, %d = grade, section
	AllTeachersFile string
	AllClassesFile  string

	// DayNames translates weekday names for display. Days without an entry
	// print as they are.
	DayNames map[schedule.Day]string
}

// ArabicLabels returns the default label set.
func ArabicLabels() Labels {
	return Labels{
		Period:          "الحصة %d",
		Day:             "اليوم",
		TeacherTitle:    "جدول حصص المعلم: %s",
		BatchTitle:      "جدول حصص: %s",
		SubjectLine:     "المادة: %s",
		ClassTitle:      "جدول حصص الصف %s",
		SlotCount:       "عدد الحصص: %d",
		UnknownSubject:  "غير محدد",
		UnknownTeacher:  "غير معروف",
		TeacherFile:     "جدول_%s.pdf",
		ClassFile:       "جدول_صف_%d_%d.pdf",
		AllTeachersFile: "جداول_جميع_المعلمين.pdf",
		AllClassesFile:  "جداول_جميع_الصفوف.pdf",
	}
}

// EnglishLabels returns an English label set. Day names are translated.
func EnglishLabels() Labels {
	return Labels{
		Period:          "Period %d",
		Day:             "Day",
		TeacherTitle:    "Teacher timetable: %s",
		BatchTitle:      "Timetable: %s",
		SubjectLine:     "Subject: %s",
		ClassTitle:      "Class timetable %s",
		SlotCount:       "Lessons: %d",
		UnknownSubject:  "Unassigned",
		UnknownTeacher:  "Unknown",
		TeacherFile:     "schedule_%s.pdf",
		ClassFile:       "schedule_class_%d_%d.pdf",
		AllTeachersFile: "schedules_all_teachers.pdf",
		AllClassesFile:  "schedules_all_classes.pdf",
		DayNames: map[schedule.Day]string{
			schedule.Sunday:    "Sunday",
			schedule.Monday:    "Monday",
			schedule.Tuesday:   "Tuesday",
			schedule.Wednesday: "Wednesday",
			schedule.Thursday:  "Thursday",
		},
	}
}

// DayName returns the display name of d.
func (l Labels) DayName(d schedule.Day) string {
	if name, ok := l.DayNames[d]; ok {
		return name
	}
	return string(d)
}
