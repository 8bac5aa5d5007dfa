package reportpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the library. Use [errors.Is] to test for them;
// returned errors usually wrap one of these with more context.
var (
	// ErrPrecondition is returned when report data is shaped incorrectly,
	// for example a table row whose cell count differs from its header count.
	// It aborts generation of the whole document.
	ErrPrecondition = errors.New("reportpdf: precondition violated")

	// ErrImageCapture is returned when a chart image has no usable pixel data.
	// The generator recovers from it by printing a notice in place of the chart.
	ErrImageCapture = errors.New("reportpdf: chart image capture failed")

	// ErrSerialization is returned when the finished document cannot be
	// written out as PDF bytes.
	ErrSerialization = errors.New("reportpdf: serialization failed")

	// ErrSealed is returned when drawing on a document that is no longer
	// being built.
	ErrSealed = errors.New("reportpdf: document is sealed")

	// ErrInterrupted is returned when the caller's context is cancelled or
	// its deadline passes before the report is complete. The returned error
	// also wraps the context error.
	ErrInterrupted = errors.New("reportpdf: generation interrupted")
)

func interrupted(cause error) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, cause)
}
