package gifcheck

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/JPM1118/cimcheck/internal/logger"
)

// DefaultExpectedSize is the square dimension CimBar frames are rendered at.
const DefaultExpectedSize = 256

// Check names, in the order they run.
const (
	CheckRead             = "read"
	CheckMagic            = "magic"
	CheckDimensions       = "dimensions"
	CheckPaletteFlag      = "global color table flag"
	CheckFrames           = "frames"
	CheckPalette          = "palette"
	CheckReferencePalette = "reference palette"
)

// Status is the outcome of a single check.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusSkip
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// Check records one performed (or skipped) assertion.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Report collects everything learned about one file.
type Report struct {
	Path         string
	ExpectedSize int
	Header       Header
	Frames       int
	Palette      Palette
	Digest       uint64
	Checks       []Check
	Err          error
}

// Passed reports whether no check failed.
func (r *Report) Passed() bool {
	return r.Err == nil
}

// Skipped returns the names of checks that were not performed.
func (r *Report) Skipped() []string {
	var names []string
	for _, c := range r.Checks {
		if c.Status == StatusSkip {
			names = append(names, c.Name)
		}
	}
	return names
}

// Validator runs the structural checks against a GIF file.
type Validator struct {
	// Decoder enables the frame and palette checks. Nil skips them.
	Decoder Decoder
	// Out receives one status line per passing check. Nil discards.
	Out io.Writer
}

// New returns a Validator using the standard GIF decoder.
func New(out io.Writer) *Validator {
	return &Validator{Decoder: GIFDecoder{}, Out: out}
}

// Validate checks the file at path, stopping at the first failure.
// The returned error is a *ValidationError.
func (v *Validator) Validate(path string, expectedSize int) (*Report, error) {
	out := v.Out
	if out == nil {
		out = io.Discard
	}
	run := &validation{
		report: &Report{Path: path, ExpectedSize: expectedSize},
		p:      newPrinter(out),
	}

	err := run.mandatory(path, expectedSize)
	if err == nil {
		err = run.extended(v.Decoder)
	}
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			run.report.Checks = append(run.report.Checks, Check{Name: run.current, Status: StatusFail, Detail: ve.Msg})
		}
		logger.Debug("gif validation failed", zap.String("path", path), zap.String("check", run.current), zap.Error(err))
	}
	run.report.Err = err
	return run.report, err
}

type validation struct {
	report  *Report
	p       printer
	data    []byte
	current string
}

func (v *validation) pass(name, line string) {
	v.report.Checks = append(v.report.Checks, Check{Name: name, Status: StatusPass, Detail: line})
	v.p.pass(line)
}

func (v *validation) mandatory(path string, expectedSize int) error {
	v.current = CheckRead
	//nolint:gosec // G304: path is the file under test
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(ErrNotFound, "File not found: "+path)
		}
		return fail(ErrIO, fmt.Sprintf("Cannot read %s: %v", path, err))
	}
	v.data = data
	v.report.Digest = xxhash.Sum64(data)
	logger.Debug("read gif",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.String("xxhash", fmt.Sprintf("%016x", v.report.Digest)))

	v.current = CheckMagic
	magic := data[:min(len(Signature), len(data))]
	if string(magic) != Signature {
		return fail(ErrBadMagic, fmt.Sprintf("Bad magic: %q", magic))
	}
	v.pass(CheckMagic, "magic "+Signature)

	v.current = CheckDimensions
	h, err := ParseHeader(data)
	if err != nil {
		return fail(ErrTruncated, fmt.Sprintf("Truncated header: %d bytes, need %d", len(data), MinHeaderSize))
	}
	v.report.Header = h
	logger.Debug("gif header",
		zap.Uint16("width", h.Width),
		zap.Uint16("height", h.Height),
		zap.Bool("global_color_table", h.HasGlobalColorTable()),
		zap.Int("declared_entries", h.GlobalColorTableEntries()))
	if int(h.Width) != expectedSize {
		return fail(ErrDimensionMismatch, fmt.Sprintf("Width  %d  != %d", h.Width, expectedSize))
	}
	if int(h.Height) != expectedSize {
		return fail(ErrDimensionMismatch, fmt.Sprintf("Height %d != %d", h.Height, expectedSize))
	}
	v.pass(CheckDimensions, fmt.Sprintf("dimensions %d×%d", h.Width, h.Height))

	v.current = CheckPaletteFlag
	if !h.HasGlobalColorTable() {
		return fail(ErrMissingPalette, "Global color table flag not set")
	}
	v.pass(CheckPaletteFlag, "global color table flag")
	return nil
}

func (v *validation) extended(dec Decoder) error {
	if dec == nil {
		for _, name := range []string{CheckFrames, CheckPalette, CheckReferencePalette} {
			v.report.Checks = append(v.report.Checks, Check{Name: name, Status: StatusSkip, Detail: "decoder unavailable"})
		}
		v.p.skip("(decoder unavailable, skipping frame/palette checks)")
		return nil
	}

	v.current = CheckFrames
	anim, err := dec.Decode(v.data)
	if err != nil {
		return fail(ErrDecode, fmt.Sprintf("Decode failed: %v", err))
	}
	v.report.Frames = anim.Frames
	if anim.Frames < 1 {
		return fail(ErrNoFrames, "No frames found")
	}
	v.pass(CheckFrames, fmt.Sprintf("frames: %d", anim.Frames))

	v.current = CheckPalette
	pal := anim.Palette
	v.report.Palette = pal
	if pal == nil {
		return fail(ErrMissingPaletteData, "No palette")
	}
	if len(pal) < len(ReferencePalette) {
		return fail(ErrPaletteTooSmall, fmt.Sprintf("Palette too small: %d entries", len(pal)))
	}
	v.pass(CheckPalette, fmt.Sprintf("palette: %d entries", len(pal)))

	v.current = CheckReferencePalette
	if i := ComparePrefix(pal, ReferencePalette); i >= 0 {
		return fail(ErrPaletteMismatch, fmt.Sprintf("Palette slot %d: got %s, expected %s", i, pal[i], ReferencePalette[i]))
	}
	v.pass(CheckReferencePalette, "CimBar base palette entries")
	return nil
}
