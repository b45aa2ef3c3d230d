package schedule

import (
	"github.com/jadwal/schedpdf/errors"
)

// Dataset is a complete timetable.
type Dataset struct {
	Teachers []Teacher `json:"teachers" yaml:"teachers"`
	Slots    []Slot    `json:"slots" yaml:"slots"`
	// Sections lists the classes of the school. Nil means DefaultSections.
	Sections Sections `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Validate checks that teacher IDs are present and unique and that every
// slot names a known teacher, a school day, a period and a positive class.
func (d *Dataset) Validate() error {
	seen := make(map[string]bool, len(d.Teachers))
	for i, t := range d.Teachers {
		if t.ID == "" {
			return errors.Validation("teacher id", i, "must not be empty")
		}
		if seen[t.ID] {
			return errors.Validation("teacher id", t.ID, "duplicate")
		}
		seen[t.ID] = true
	}
	for i, s := range d.Slots {
		if !ValidDay(s.Day) {
			return errors.Validation("day", s.Day, "slot %d: not a school day", i)
		}
		if !ValidPeriod(s.Period) {
			return errors.Validation("period", s.Period, "slot %d: must be between %d and %d", i, FirstPeriod, LastPeriod)
		}
		if s.Grade <= 0 || s.Section <= 0 {
			return errors.Validation("class", s.Class(), "slot %d: grade and section must be positive", i)
		}
		if !seen[s.TeacherID] {
			return errors.Validation("slot teacher", s.TeacherID, "slot %d: unknown teacher", i)
		}
	}
	for g, secs := range d.Sections {
		if g <= 0 {
			return errors.Validation("grade", g, "must be positive")
		}
		for _, sec := range secs {
			if sec <= 0 {
				return errors.Validation("section", ClassKey{g, sec}, "must be positive")
			}
		}
	}
	return nil
}

// Teacher looks up a teacher by ID.
func (d *Dataset) Teacher(id string) (Teacher, bool) {
	for _, t := range d.Teachers {
		if t.ID == id {
			return t, true
		}
	}
	return Teacher{}, false
}

// TeacherSlots returns the slots taught by id, in input order.
func (d *Dataset) TeacherSlots(id string) []TeacherSlot {
	var out []TeacherSlot
	for _, s := range d.Slots {
		if s.TeacherID == id {
			out = append(out, TeacherSlot{Day: s.Day, Period: s.Period, Grade: s.Grade, Section: s.Section})
		}
	}
	return out
}

// ClassSlots returns the slots taught to key, in input order, with the
// teacher's subject and name filled in. ok is false when any slot names a
// teacher missing from the dataset; those slots are returned with empty
// subject and name.
func (d *Dataset) ClassSlots(key ClassKey) (slots []ClassSlot, ok bool) {
	index := d.teacherIndex()
	ok = true
	for _, s := range d.Slots {
		if s.Class() != key {
			continue
		}
		cs := ClassSlot{Day: s.Day, Period: s.Period}
		if t, found := index[s.TeacherID]; found {
			cs.Subject, cs.TeacherName = t.Subject, t.Name
		} else {
			ok = false
		}
		slots = append(slots, cs)
	}
	return slots, ok
}

// SectionsOrDefault returns d.Sections, or DefaultSections when unset.
func (d *Dataset) SectionsOrDefault() Sections {
	if d.Sections == nil {
		return DefaultSections()
	}
	return d.Sections
}

func (d *Dataset) teacherIndex() map[string]Teacher {
	m := make(map[string]Teacher, len(d.Teachers))
	for _, t := range d.Teachers {
		if _, dup := m[t.ID]; !dup {
			m[t.ID] = t
		}
	}
	return m
}
