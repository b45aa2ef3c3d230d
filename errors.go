package schedpdf

import (
	"fmt"

	"github.com/jadwal/schedpdf/errors"
)

// ErrNothingToExport is returned when an export has no teachers or no
// classes to draw. No document is produced.
var ErrNothingToExport = &errors.ValidationError{Field: "export", Reason: "nothing to export"}

// errNoCustomPayload is the cause of the warning for a role whose custom
// font is switched on without a file.
var errNoCustomPayload = fmt.Errorf("custom font switched on without a file")

// recoverRender turns a panic inside the PDF engine into a RenderError
// stored in *errp.
func recoverRender(op string, errp *error) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			*errp = errors.Render(op, err)
			return
		}
		*errp = errors.Render(op, fmt.Errorf("%v", r))
	}
}
