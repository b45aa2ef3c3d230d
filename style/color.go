package style

import (
	"strconv"
	"strings"

	"github.com/jadwal/schedpdf/errors"
)

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Common colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

const hexDigits = "0123456789abcdef"

// ParseHex parses "#rrggbb", "rrggbb" or the "#rgb" shorthand.
// Letters may be upper or lower case.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, errors.Validation("colour", s, "want #rrggbb")
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, errors.Validation("colour", s, "not a hex colour")
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// It is meant for package-level colour constants.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as lowercase "#rrggbb".
func (c RGB) Hex() string {
	b := [7]byte{'#'}
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		b[1+2*i] = hexDigits[v>>4]
		b[2+2*i] = hexDigits[v&0x0f]
	}
	return string(b[:])
}

// String implements fmt.Stringer.
func (c RGB) String() string { return c.Hex() }

// Ints returns the components as ints, the form the PDF engine takes.
func (c RGB) Ints() (r, g, b int) {
	return int(c.R), int(c.G), int(c.B)
}

// MarshalText encodes the colour in hex form.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes a hex colour.
func (c *RGB) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
