package errors_test

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jadwal/schedpdf/errors"
)

func TestValidationErrorMessage(t *testing.T) {
	err := errors.Validation("header font size", 30, "must be between %d and %d", 8, 24)
	assert.Equal(t, "invalid header font size 30: must be between 8 and 24", err.Error())

	err = errors.Validation("teacher id", nil, "must not be empty")
	assert.Equal(t, "invalid teacher id: must not be empty", err.Error())
}

func TestHelpersSeeThroughWrapping(t *testing.T) {
	v := fmt.Errorf("edit: %w", errors.Validation("colour", "#zz", "not hex"))
	f := fmt.Errorf("export: %w", errors.FontLoad("header", "Amiri", io.ErrUnexpectedEOF))
	r := fmt.Errorf("export: %w", errors.Render("Output", io.ErrShortWrite))

	assert.True(t, errors.IsValidation(v))
	assert.False(t, errors.IsValidation(f))
	assert.True(t, errors.IsFontLoad(f))
	assert.False(t, errors.IsFontLoad(r))
	assert.True(t, errors.IsRender(r))
	assert.False(t, errors.IsRender(v))

	assert.True(t, stderrors.Is(f, io.ErrUnexpectedEOF))
	assert.True(t, stderrors.Is(r, io.ErrShortWrite))
}

func TestFontLoadErrorMessage(t *testing.T) {
	err := errors.FontLoad("", "Cairo", io.EOF)
	assert.Equal(t, `font "Cairo": EOF`, err.Error())

	err = errors.FontLoad("day", "Cairo", io.EOF)
	assert.Equal(t, `font "Cairo" (day): EOF`, err.Error())
}

func TestRenderErrorWithoutCause(t *testing.T) {
	assert.Equal(t, "render AddPage: unknown error", (&errors.RenderError{Op: "AddPage"}).Error())
}
