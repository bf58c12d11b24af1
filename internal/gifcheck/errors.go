package gifcheck

import "errors"

// Validation failure kinds. A *ValidationError matches its kind with errors.Is.
var (
	ErrNotFound           = errors.New("file not found")
	ErrIO                 = errors.New("read error")
	ErrBadMagic           = errors.New("bad magic")
	ErrTruncated          = errors.New("truncated header")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
	ErrMissingPalette     = errors.New("global color table flag not set")
	ErrDecode             = errors.New("decode failed")
	ErrNoFrames           = errors.New("no frames")
	ErrMissingPaletteData = errors.New("no palette")
	ErrPaletteTooSmall    = errors.New("palette too small")
	ErrPaletteMismatch    = errors.New("palette mismatch")
)

// ValidationError is returned for the first check that fails.
// Msg is the human-readable line printed after "FAIL: ".
type ValidationError struct {
	Kind error
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Is reports whether target is the failure kind of e.
func (e *ValidationError) Is(target error) bool {
	return e.Kind == target
}

// Unwrap exposes the kind so wrapped ValidationErrors still match.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func fail(kind error, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Msg: msg}
}
