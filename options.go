package schedpdf

import (
	"time"

	"github.com/jadwal/schedpdf/pageops"
)

// Page orientations and sizes accepted by WithOrientation and WithPageSize.
const (
	OrientationLandscape = "L"
	OrientationPortrait  = "P"

	PageSizeA3     = "A3"
	PageSizeA4     = "A4"
	PageSizeLetter = "Letter"
)

// Direction is the reading direction of the timetable grid.
type Direction int

const (
	// RightToLeft puts the day column on the right and the periods in
	// descending order towards the left.
	RightToLeft Direction = iota
	// LeftToRight mirrors RightToLeft.
	LeftToRight
)

func (d Direction) String() string {
	if d == LeftToRight {
		return "ltr"
	}
	return "rtl"
}

// Option is a functional option for configuring an Exporter via New.
type Option func(*exportConfig)

type exportConfig struct {
	orientation string
	pageSize    string
	fontDir     string
	direction   Direction
	labels      Labels
	letterhead  *pageops.Letterhead
	pageNumbers *pageops.PageNumberStyle
	watermark   *pageops.TextWatermark
	qr          *pageops.QRCode
	creator     string
	clock       func() time.Time
}

func defaultConfig() exportConfig {
	return exportConfig{
		orientation: OrientationLandscape,
		pageSize:    PageSizeA4,
		direction:   RightToLeft,
		labels:      ArabicLabels(),
		creator:     "schedpdf",
		clock:       time.Now,
	}
}

// WithOrientation sets the page orientation.
// Use OrientationLandscape (the default) or OrientationPortrait.
func WithOrientation(orientation string) Option {
	return func(c *exportConfig) {
		c.orientation = orientation
	}
}

// WithPageSize sets the page size by name, e.g. PageSizeA4 (the default).
func WithPageSize(size string) Option {
	return func(c *exportConfig) {
		c.pageSize = size
	}
}

// WithFontDir sets the directory searched for named fonts as <Name>.ttf.
func WithFontDir(dir string) Option {
	return func(c *exportConfig) {
		c.fontDir = dir
	}
}

// WithDirection sets the grid direction.
func WithDirection(d Direction) Option {
	return func(c *exportConfig) {
		c.direction = d
	}
}

// WithLabels replaces the printed labels and file name patterns.
func WithLabels(l Labels) Option {
	return func(c *exportConfig) {
		c.labels = l
	}
}

// WithLetterhead draws the given page of an existing PDF under every page.
func WithLetterhead(path string, page int) Option {
	return func(c *exportConfig) {
		c.letterhead = &pageops.Letterhead{Path: path, Page: page}
	}
}

// WithPageNumbers prints page numbers in the given style.
func WithPageNumbers(s pageops.PageNumberStyle) Option {
	return func(c *exportConfig) {
		c.pageNumbers = &s
	}
}

// WithWatermark draws a translucent text watermark on every page.
func WithWatermark(wm pageops.TextWatermark) Option {
	return func(c *exportConfig) {
		c.watermark = &wm
	}
}

// WithQRCode stamps a QR code on every page. The template may use {doc},
// {subject} and {page}.
func WithQRCode(template string) Option {
	return func(c *exportConfig) {
		c.qr = &pageops.QRCode{Template: template}
	}
}

// WithCreator sets the creator recorded in the document metadata.
func WithCreator(creator string) Option {
	return func(c *exportConfig) {
		c.creator = creator
	}
}

// WithClock sets the time source for the creation date and timings.
func WithClock(now func() time.Time) Option {
	return func(c *exportConfig) {
		if now != nil {
			c.clock = now
		}
	}
}
