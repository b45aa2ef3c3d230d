package style

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jadwal/schedpdf/errors"
)

// A preset is a TOML file holding a Config:
//
//	theme = "#428bca"
//	uniform = false
//
//	[header]
//	font = "Amiri"
//	size = 16
//	color = "#ffffff"
//
//	[content.custom]
//	name = "MyFont"
//	file = "fonts/MyFont.ttf"   # or data = "<base64>"
//
// Keys that are left out keep their Default value.

type presetFile struct {
	Theme   *RGB        `toml:"theme,omitempty"`
	Uniform *bool       `toml:"uniform,omitempty"`
	Header  *presetRole `toml:"header,omitempty"`
	Day     *presetRole `toml:"day,omitempty"`
	Content *presetRole `toml:"content,omitempty"`
}

type presetRole struct {
	Font   string      `toml:"font,omitempty"`
	Size   int         `toml:"size,omitempty"`
	Color  *RGB        `toml:"color,omitempty"`
	Custom *presetFont `toml:"custom,omitempty"`
}

type presetFont struct {
	Name string `toml:"name,omitempty"`
	Data string `toml:"data,omitempty"`
	File string `toml:"file,omitempty"`
}

// FontReader loads a font file referenced by a preset.
type FontReader func(path string) (CustomFont, error)

// LoadPreset decodes a TOML preset from r on top of Default. Presets read
// this way may only embed fonts as base64 data; use LoadPresetFile for file
// references.
func LoadPreset(r io.Reader) (Config, error) {
	return decodePreset(r, "", nil)
}

// LoadPresetFile reads a TOML preset from path. Custom font files are
// resolved relative to the preset's directory and read with read.
func LoadPresetFile(path string, read FontReader) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("style: opening preset: %w", err)
	}
	defer f.Close()
	return decodePreset(f, filepath.Dir(path), read)
}

func decodePreset(r io.Reader, dir string, read FontReader) (Config, error) {
	var pf presetFile
	if _, err := toml.NewDecoder(r).Decode(&pf); err != nil {
		return Config{}, fmt.Errorf("style: decoding preset: %w", err)
	}

	cfg := Default()
	if pf.Theme != nil {
		cfg = cfg.SetThemeColor(*pf.Theme)
	}
	if pf.Uniform != nil {
		cfg = cfg.SetUniform(*pf.Uniform)
	}

	var err error
	for _, entry := range []struct {
		role Role
		p    *presetRole
	}{{Header, pf.Header}, {Day, pf.Day}, {Content, pf.Content}} {
		if entry.p == nil {
			continue
		}
		if cfg, err = applyPresetRole(cfg, entry.role, entry.p, dir, read); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyPresetRole(cfg Config, r Role, p *presetRole, dir string, read FontReader) (Config, error) {
	var err error
	if p.Font != "" {
		if cfg, err = cfg.SetRoleFont(r, p.Font); err != nil {
			return cfg, err
		}
	}
	if p.Size != 0 {
		if cfg, err = cfg.SetRoleFontSize(r, p.Size); err != nil {
			return cfg, err
		}
	}
	if p.Color != nil {
		if cfg, err = cfg.SetRoleTextColor(r, *p.Color); err != nil {
			return cfg, err
		}
	}
	if p.Custom == nil {
		return cfg, nil
	}

	cf := CustomFont{Name: p.Custom.Name, Data: p.Custom.Data}
	if p.Custom.File != "" {
		if read == nil {
			return cfg, errors.Validation(r.String()+" custom font", p.Custom.File, "font files are not supported here; embed data instead")
		}
		path := p.Custom.File
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		loaded, err := read(path)
		if err != nil {
			return cfg, err
		}
		cf.Data = loaded.Data
		if cf.Name == "" {
			cf.Name = loaded.Name
		}
	}
	return cfg.SetCustomFont(r, cf.Name, cf.Data)
}

// WritePreset encodes cfg as a TOML preset. Custom fonts are embedded as
// base64 data.
func WritePreset(w io.Writer, cfg Config) error {
	uniform := cfg.Uniform
	theme := cfg.Theme
	pf := presetFile{
		Theme:   &theme,
		Uniform: &uniform,
		Header:  toPresetRole(cfg.Header),
		Day:     toPresetRole(cfg.Day),
		Content: toPresetRole(cfg.Content),
	}
	if err := toml.NewEncoder(w).Encode(pf); err != nil {
		return fmt.Errorf("style: encoding preset: %w", err)
	}
	return nil
}

func toPresetRole(rs RoleStyle) *presetRole {
	color := rs.Color
	p := &presetRole{Font: rs.Font, Size: rs.Size, Color: &color}
	if rs.customActive() {
		p.Custom = &presetFont{Name: rs.Custom.Name, Data: rs.Custom.Data}
	}
	return p
}
