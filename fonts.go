package schedpdf

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-pdf/fpdf"

	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/fontload"
	"github.com/jadwal/schedpdf/logging"
	"github.com/jadwal/schedpdf/style"
)

// roleFonts holds the registered font family of each style role.
type roleFonts map[style.Role]string

// fontFiles caches named font files read from the font directory. It is
// shared by concurrent exports of one Exporter.
type fontFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (c *fontFiles) read(path string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.files[path]; ok {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := fontload.Validate(data); err != nil {
		return nil, err
	}
	if c.files == nil {
		c.files = make(map[string][]byte)
	}
	c.files[path] = data
	return data, nil
}

// fontRegistry registers each distinct font on a document once.
type fontRegistry struct {
	pdf        *fpdf.Fpdf
	registered map[string]bool
}

func (r *fontRegistry) add(family string, data []byte) (err error) {
	if r.registered[family] {
		return nil
	}
	defer recoverRender("AddUTF8FontFromBytes", &err)
	r.pdf.AddUTF8FontFromBytes(family, "", data)
	if r.pdf.Err() {
		return errors.Render("AddUTF8FontFromBytes", r.pdf.Error())
	}
	r.registered[family] = true
	return nil
}

// probeFont checks that the engine accepts data as a font by registering
// it on a scratch document and measuring a string.
func probeFont(data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("font rejected by pdf engine: %v", r)
		}
	}()
	scratch := fpdf.New("P", "mm", "A4", "")
	scratch.AddUTF8FontFromBytes("probe", "", data)
	scratch.SetFont("probe", "", 12)
	scratch.GetStringWidth("الحصة 1 Period")
	if scratch.Err() {
		return scratch.Error()
	}
	return nil
}

// loadFonts resolves and registers the font of every role. Fonts that
// cannot be loaded fall back, first to the named font of the role and then
// to the embedded fallback; each fallback is returned as a FontLoadError
// warning. The error result is only set for engine failures.
func (e *Exporter) loadFonts(pdf *fpdf.Fpdf, cfg style.Config) (roleFonts, []error, error) {
	reg := &fontRegistry{pdf: pdf, registered: make(map[string]bool)}
	fonts := make(roleFonts, 3)
	var warnings []error
	warn := func(err *errors.FontLoadError) {
		logging.Logger().Warn("font fallback", "role", err.Role, "font", err.Font, "err", err.Err)
		warnings = append(warnings, err)
	}

	// customs maps a custom font payload to its family. Uploads may share a
	// display name, so families are numbered.
	customs := make(map[string]string)

	for _, role := range style.Roles() {
		choice := cfg.Font(role)

		if cf, missing := cfg.MissingCustom(role); missing {
			name := choice.Name
			if cf != nil && cf.Name != "" {
				name = cf.Name
			}
			warn(errors.FontLoad(role.String(), name, errNoCustomPayload))
		}

		if choice.IsCustom() {
			if family, ok := customs[choice.Custom.Data]; ok {
				fonts[role] = family
				continue
			}
			data, err := fontload.Decode(*choice.Custom)
			if err == nil {
				err = probeFont(data)
			}
			if err == nil {
				family := fmt.Sprintf("custom%d-%s", len(customs)+1, choice.Name)
				if err := reg.add(family, data); err != nil {
					return nil, warnings, err
				}
				customs[choice.Custom.Data] = family
				fonts[role] = family
				continue
			}
			warn(errors.FontLoad(role.String(), choice.Name, unwrapFontLoad(err)))
			choice = style.FontChoice{Name: namedFont(cfg, role)}
		}

		if path, ok := fontload.Locate(e.cfg.fontDir, choice.Name); ok {
			data, err := e.fonts.read(path)
			if err == nil {
				if err := reg.add(choice.Name, data); err != nil {
					return nil, warnings, err
				}
				fonts[role] = choice.Name
				continue
			}
			warn(errors.FontLoad(role.String(), choice.Name, err))
		} else if e.cfg.fontDir != "" {
			warn(errors.FontLoad(role.String(), choice.Name, fmt.Errorf("not found in %s", e.cfg.fontDir)))
		} else {
			logging.Logger().Debug("no font directory, using fallback font", "role", role.String(), "font", choice.Name)
		}

		if err := reg.add(fontload.FallbackName, fontload.Fallback()); err != nil {
			return nil, warnings, err
		}
		fonts[role] = fontload.FallbackName
	}
	return fonts, warnings, nil
}

// namedFont is the font a role uses once custom overrides are set aside.
func namedFont(cfg style.Config, role style.Role) string {
	if cfg.Uniform {
		return cfg.Header.Font
	}
	return cfg.Role(role).Font
}

// unwrapFontLoad strips a FontLoadError so that it is not nested in the one
// reported for the role.
func unwrapFontLoad(err error) error {
	if fl, ok := err.(*errors.FontLoadError); ok {
		return fl.Err
	}
	return err
}
