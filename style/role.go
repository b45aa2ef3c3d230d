package style

import (
	"github.com/jadwal/schedpdf/errors"
)

// Role identifies which text in a timetable a font selection applies to.
type Role int

const (
	// Header is the period label row ("Period 1", "Period 2", ...).
	Header Role = iota
	// Day is the weekday column.
	Day
	// Content is the grid body.
	Content
)

var roleNames = [...]string{Header: "header", Day: "day", Content: "content"}

// Roles returns all roles in display order.
func Roles() []Role {
	return []Role{Header, Day, Content}
}

func (r Role) String() string {
	if r < Header || r > Content {
		return "unknown"
	}
	return roleNames[r]
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r >= Header && r <= Content
}

// ParseRole converts "header", "day" or "content" into a Role.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, errors.Validation("role", s, "must be header, day or content")
}
