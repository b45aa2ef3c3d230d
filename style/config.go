// Package style describes how an exported timetable looks: the theme colour
// that fills header cells and, for each text role (header, day, content),
// the font, size and colour to draw with.
//
// A Config is a plain value. Every edit returns a new Config and leaves the
// receiver untouched, so an editing session can keep the last accepted value
// and discard rejected edits:
//
//	cfg := style.Default()
//	cfg, err := cfg.SetRoleFontSize(style.Header, 18)
//	if err != nil {
//	    // cfg is still the previous value
//	}
//
// Custom fonts override the named font of a role. The named font is kept
// underneath and comes back when the override is cleared.
package style

import (
	"strings"

	"github.com/jadwal/schedpdf/errors"
)

// Font size bounds in points, inclusive.
const (
	MinFontSize = 8
	MaxFontSize = 24
)

// DefaultFont is the named font every role starts with.
const DefaultFont = "Vazirmatn"

// CustomFont is an uploaded font: a display name and the base64-encoded
// font file.
type CustomFont struct {
	Name string `json:"name"`
	Data string `json:"base64Data"`
}

// Present reports whether both name and payload are set.
func (f *CustomFont) Present() bool {
	return f != nil && f.Name != "" && f.Data != ""
}

// RoleStyle is the stored selection for one role.
type RoleStyle struct {
	Font      string      `json:"font"`
	Size      int         `json:"fontSize"`
	Color     RGB         `json:"textColor"`
	UseCustom bool        `json:"useCustomFont"`
	Custom    *CustomFont `json:"customFont,omitempty"`
}

// customActive reports whether the role's override is switched on and usable.
func (s RoleStyle) customActive() bool {
	return s.UseCustom && s.Custom.Present()
}

// Config is the complete style of an export.
type Config struct {
	Theme   RGB       `json:"themeColor"`
	Header  RoleStyle `json:"header"`
	Day     RoleStyle `json:"day"`
	Content RoleStyle `json:"content"`
	// Uniform makes the header selection (font or custom override) apply to
	// all three roles. Sizes and colours stay per role.
	Uniform bool `json:"uniform"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Theme:   RGB{66, 139, 202},
		Header:  RoleStyle{Font: DefaultFont, Size: 16, Color: White},
		Day:     RoleStyle{Font: DefaultFont, Size: 13, Color: Black},
		Content: RoleStyle{Font: DefaultFont, Size: 11, Color: Black},
		Uniform: true,
	}
}

// FontChoice is the font a role will be drawn with.
type FontChoice struct {
	Name   string
	Custom *CustomFont // nil unless an override is in effect
}

// IsCustom reports whether the choice is an uploaded font.
func (c FontChoice) IsCustom() bool { return c.Custom != nil }

// Role returns the stored selection for r.
func (c Config) Role(r Role) RoleStyle {
	switch r {
	case Day:
		return c.Day
	case Content:
		return c.Content
	default:
		return c.Header
	}
}

// role returns a pointer to the selection for r inside c.
func (c *Config) role(r Role) *RoleStyle {
	switch r {
	case Day:
		return &c.Day
	case Content:
		return &c.Content
	default:
		return &c.Header
	}
}

// Font resolves the effective font for r. A role's own active override wins;
// in uniform mode the header override, then the header font, apply to every
// role; otherwise the role's named font is used.
func (c Config) Font(r Role) FontChoice {
	own := c.Role(r)
	if own.customActive() {
		return FontChoice{Name: own.Custom.Name, Custom: own.Custom}
	}
	if c.Uniform {
		if c.Header.customActive() {
			return FontChoice{Name: c.Header.Custom.Name, Custom: c.Header.Custom}
		}
		return FontChoice{Name: c.Header.Font}
	}
	return FontChoice{Name: own.Font}
}

// SetThemeColor sets the header fill colour.
func (c Config) SetThemeColor(rgb RGB) Config {
	c.Theme = rgb
	return c
}

// SetThemeHex parses hex and sets the header fill colour.
func (c Config) SetThemeHex(hex string) (Config, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return c, err
	}
	return c.SetThemeColor(rgb), nil
}

// SetRoleFont selects a named font for r and switches off r's override.
func (c Config) SetRoleFont(r Role, name string) (Config, error) {
	if err := checkRole(r); err != nil {
		return c, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return c, errors.Validation(r.String()+" font", nil, "name must not be empty")
	}
	rs := c.role(r)
	rs.Font = name
	rs.UseCustom = false
	return c, nil
}

// SetRoleFontSize sets the size of r in points. Sizes outside
// [MinFontSize, MaxFontSize] are rejected.
func (c Config) SetRoleFontSize(r Role, size int) (Config, error) {
	if err := checkRole(r); err != nil {
		return c, err
	}
	if err := checkSize(r, size); err != nil {
		return c, err
	}
	c.role(r).Size = size
	return c, nil
}

// SetRoleTextColor sets the text colour of r.
func (c Config) SetRoleTextColor(r Role, rgb RGB) (Config, error) {
	if err := checkRole(r); err != nil {
		return c, err
	}
	c.role(r).Color = rgb
	return c, nil
}

// SetRoleTextHex parses hex and sets the text colour of r.
func (c Config) SetRoleTextHex(r Role, hex string) (Config, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return c, err
	}
	return c.SetRoleTextColor(r, rgb)
}

// SetCustomFont installs an uploaded font as the override for r.
// A trailing ".ttf" is dropped from name.
func (c Config) SetCustomFont(r Role, name, base64Data string) (Config, error) {
	if err := checkRole(r); err != nil {
		return c, err
	}
	cf, err := newCustomFont(name, base64Data)
	if err != nil {
		return c, err
	}
	rs := c.role(r)
	rs.UseCustom = true
	rs.Custom = cf
	return c, nil
}

// ClearCustomFont removes the override for r; its named font applies again.
func (c Config) ClearCustomFont(r Role) Config {
	if !r.Valid() {
		return c
	}
	rs := c.role(r)
	rs.UseCustom = false
	rs.Custom = nil
	return c
}

// ApplyUniformFont selects name for all three roles, removes every override
// and turns uniform mode on.
func (c Config) ApplyUniformFont(name string) (Config, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, errors.Validation("font", nil, "name must not be empty")
	}
	for _, r := range Roles() {
		rs := c.role(r)
		rs.Font = name
		rs.UseCustom = false
		rs.Custom = nil
	}
	c.Uniform = true
	return c, nil
}

// SetUniformCustomFont installs the same uploaded font on all three roles
// and turns uniform mode on.
func (c Config) SetUniformCustomFont(name, base64Data string) (Config, error) {
	cf, err := newCustomFont(name, base64Data)
	if err != nil {
		return c, err
	}
	for _, r := range Roles() {
		rs := c.role(r)
		rs.UseCustom = true
		rs.Custom = cf
	}
	c.Uniform = true
	return c, nil
}

// SetUniform switches uniform mode.
func (c Config) SetUniform(on bool) Config {
	c.Uniform = on
	return c
}

// Validate checks the invariants every edit maintains. It is useful for
// configurations built by hand or decoded from elsewhere.
func (c Config) Validate() error {
	return c.check(true)
}

// CheckExport checks what an export cannot recover from: empty font names
// and sizes out of range. An override switched on without a payload passes;
// the export draws the role with its named font and reports a warning.
func (c Config) CheckExport() error {
	return c.check(false)
}

// MissingCustom reports whether the override that decides the font of r is
// switched on without a name and payload. It returns the incomplete
// override, which may be nil.
func (c Config) MissingCustom(r Role) (*CustomFont, bool) {
	own := c.Role(r)
	if own.customActive() {
		return nil, false
	}
	if own.UseCustom {
		return own.Custom, true
	}
	if c.Uniform && c.Header.UseCustom && !c.Header.customActive() {
		return c.Header.Custom, true
	}
	return nil, false
}

func (c Config) check(custom bool) error {
	for _, r := range Roles() {
		rs := c.Role(r)
		if strings.TrimSpace(rs.Font) == "" {
			return errors.Validation(r.String()+" font", nil, "name must not be empty")
		}
		if err := checkSize(r, rs.Size); err != nil {
			return err
		}
		if custom && rs.UseCustom && !rs.Custom.Present() {
			return errors.Validation(r.String()+" custom font", nil, "enabled without a name and payload")
		}
	}
	return nil
}

func newCustomFont(name, base64Data string) (*CustomFont, error) {
	name = strings.TrimSpace(name)
	if trimmed := strings.TrimSuffix(strings.TrimSuffix(name, ".ttf"), ".TTF"); trimmed != "" {
		name = trimmed
	}
	if name == "" {
		return nil, errors.Validation("custom font", nil, "name must not be empty")
	}
	if base64Data == "" {
		return nil, errors.Validation("custom font", name, "payload must not be empty")
	}
	return &CustomFont{Name: name, Data: base64Data}, nil
}

func checkRole(r Role) error {
	if !r.Valid() {
		return errors.Validation("role", int(r), "unknown role")
	}
	return nil
}

func checkSize(r Role, size int) error {
	if size < MinFontSize || size > MaxFontSize {
		return errors.Validation(r.String()+" font size", size, "must be between %d and %d", MinFontSize, MaxFontSize)
	}
	return nil
}
