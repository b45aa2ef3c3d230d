// Package schedule holds the timetable data an export is drawn from:
// teachers, the slots they teach, and the grade/section layout of the school.
//
// The data is owned by the scheduling application; this package only gives
// it a shape and a way to load it from JSON or YAML.
package schedule

import (
	"fmt"
	"slices"
)

// Day is a school weekday, spelled as it appears in the timetable.
type Day string

// The teaching week, Sunday to Thursday.
const (
	Sunday    Day = "الأحد"
	Monday    Day = "الاثنين"
	Tuesday   Day = "الثلاثاء"
	Wednesday Day = "الأربعاء"
	Thursday  Day = "الخميس"
)

// Days is the teaching week in display order.
var Days = []Day{Sunday, Monday, Tuesday, Wednesday, Thursday}

// ValidDay reports whether d is one of Days.
func ValidDay(d Day) bool {
	return slices.Contains(Days, d)
}

// Period bounds, inclusive.
const (
	FirstPeriod = 1
	LastPeriod  = 7
)

// Periods returns FirstPeriod through LastPeriod.
func Periods() []int {
	ps := make([]int, 0, LastPeriod-FirstPeriod+1)
	for p := FirstPeriod; p <= LastPeriod; p++ {
		ps = append(ps, p)
	}
	return ps
}

// ValidPeriod reports whether p is within the school day.
func ValidPeriod(p int) bool {
	return p >= FirstPeriod && p <= LastPeriod
}

// Teacher is a member of staff. ID is unique within a dataset.
type Teacher struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Subject string `json:"subject" yaml:"subject"`
}

// Slot is one lesson: a teacher in front of a class at a given time.
type Slot struct {
	TeacherID string `json:"teacherId" yaml:"teacherId"`
	Day       Day    `json:"day" yaml:"day"`
	Period    int    `json:"period" yaml:"period"`
	Grade     int    `json:"grade" yaml:"grade"`
	Section   int    `json:"section" yaml:"section"`
}

// Class returns the class the slot is taught to.
func (s Slot) Class() ClassKey {
	return ClassKey{Grade: s.Grade, Section: s.Section}
}

// TeacherSlot is a slot seen from a teacher's timetable.
type TeacherSlot struct {
	Day     Day `json:"day" yaml:"day"`
	Period  int `json:"period" yaml:"period"`
	Grade   int `json:"grade" yaml:"grade"`
	Section int `json:"section" yaml:"section"`
}

// ClassSlot is a slot seen from a class's timetable.
type ClassSlot struct {
	Day         Day    `json:"day" yaml:"day"`
	Period      int    `json:"period" yaml:"period"`
	Subject     string `json:"subject" yaml:"subject"`
	TeacherName string `json:"teacherName" yaml:"teacherName"`
}

// ClassKey identifies a class by grade and section.
type ClassKey struct {
	Grade   int
	Section int
}

// String returns "grade/section".
func (k ClassKey) String() string {
	return fmt.Sprintf("%d/%d", k.Grade, k.Section)
}

// Compare orders keys by grade, then section.
func (k ClassKey) Compare(o ClassKey) int {
	if k.Grade != o.Grade {
		return k.Grade - o.Grade
	}
	return k.Section - o.Section
}

// Sections maps a grade to its section numbers.
type Sections map[int][]int

// DefaultSections is grades 10 to 12 with sections 1 to 7 each.
func DefaultSections() Sections {
	s := make(Sections, 3)
	for g := 10; g <= 12; g++ {
		s[g] = []int{1, 2, 3, 4, 5, 6, 7}
	}
	return s
}

// Pairs lists every class in ascending grade, then section order.
// Duplicate sections are listed once.
func (s Sections) Pairs() []ClassKey {
	var keys []ClassKey
	for g, secs := range s {
		for _, sec := range secs {
			keys = append(keys, ClassKey{Grade: g, Section: sec})
		}
	}
	slices.SortFunc(keys, ClassKey.Compare)
	return slices.Compact(keys)
}
