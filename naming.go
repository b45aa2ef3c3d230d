package schedpdf

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jadwal/schedpdf/schedule"
)

// documentNamespace scopes the name-based document IDs.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://schedpdf.dev/documents"))

// FileNameTeacher returns the file name of a single teacher export.
func FileNameTeacher(l Labels, teacherName string) string {
	return fmt.Sprintf(l.TeacherFile, safeName(teacherName))
}

// TeacherFileNames returns the file name of each teacher's own export, in
// the order of teachers. Teachers sharing a name get their ID appended, and
// any name still taken gets a counter, so no two names are equal.
func TeacherFileNames(l Labels, teachers []schedule.Teacher) []string {
	count := make(map[string]int, len(teachers))
	for _, t := range teachers {
		count[FileNameTeacher(l, t.Name)]++
	}

	names := make([]string, len(teachers))
	taken := make(map[string]bool, len(teachers))
	for i, t := range teachers {
		name := FileNameTeacher(l, t.Name)
		if count[name] > 1 && t.ID != "" {
			name = FileNameTeacher(l, t.Name+"_"+t.ID)
		}
		for n := 2; taken[name]; n++ {
			name = FileNameTeacher(l, fmt.Sprintf("%s_%d", t.Name, n))
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// FileNameClass returns the file name of a single class export.
func FileNameClass(l Labels, grade, section int) string {
	return fmt.Sprintf(l.ClassFile, grade, section)
}

// FileNameAllTeachers returns the file name of the all-teachers export.
func FileNameAllTeachers(l Labels) string { return l.AllTeachersFile }

// FileNameAllClasses returns the file name of the all-classes export.
func FileNameAllClasses(l Labels) string { return l.AllClassesFile }

// safeName replaces path separators, whitespace and control characters so
// that a name can be used as a single path element.
func safeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case unicode.IsSpace(r) || unicode.IsControl(r):
			return '_'
		}
		return r
	}, name)
}

// DocumentID returns the stable ID of an export subject. Kinds are
// "teacher", "class", "teachers" and "classes"; key identifies the subject
// within its kind.
func DocumentID(kind, key string) string {
	return uuid.NewSHA1(documentNamespace, []byte(kind+":"+key)).String()
}

func teacherDocID(t schedule.Teacher) string {
	key := t.ID
	if key == "" {
		key = t.Name
	}
	return DocumentID("teacher", key)
}

func classDocID(k schedule.ClassKey) string {
	return DocumentID("class", k.String())
}
