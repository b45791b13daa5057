// Package errs defines the errors returned by the mozcdata packages.
//
// Load-time failures fall into two families that callers can test with
// errors.Is:
//
//   - ErrIntegrity: the buffer is not the dataset it claims to be (magic
//     marker or checksum mismatch).
//   - ErrFormat: the buffer carries the right marker but its footer or a
//     section descriptor violates a layout invariant.
//
// Every specific sentinel below wraps one of the two family errors, so
// errors.Is(err, errs.ErrFormat) holds for any descriptor problem while
// errors.Is(err, errs.ErrStrideMismatch) pinpoints the exact cause.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrIntegrity is the family error for buffers that fail identity checks.
	ErrIntegrity = errors.New("dataset integrity error")
	// ErrFormat is the family error for buffers with a malformed layout.
	ErrFormat = errors.New("dataset format error")
)

// Integrity errors.
var (
	// ErrMagicMismatch indicates the leading magic marker differs from the expected one.
	ErrMagicMismatch = fmt.Errorf("%w: magic marker mismatch", ErrIntegrity)
	// ErrChecksumMismatch indicates the footer checksum does not match the buffer contents.
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrIntegrity)
)

// Format errors.
var (
	ErrTruncated            = fmt.Errorf("%w: truncated buffer", ErrFormat)
	ErrInvalidFooter        = fmt.Errorf("%w: invalid footer", ErrFormat)
	ErrUnsupportedVersion   = fmt.Errorf("%w: unsupported format version", ErrFormat)
	ErrInvalidDescriptor    = fmt.Errorf("%w: invalid section descriptor", ErrFormat)
	ErrSectionOutOfBounds   = fmt.Errorf("%w: section out of bounds", ErrFormat)
	ErrStrideMismatch       = fmt.Errorf("%w: section stride mismatch", ErrFormat)
	ErrShapeMismatch        = fmt.Errorf("%w: section shape mismatch", ErrFormat)
	ErrUnknownSection       = fmt.Errorf("%w: unknown section", ErrFormat)
	ErrDuplicateSection     = fmt.Errorf("%w: duplicate section", ErrFormat)
	ErrMissingSection       = fmt.Errorf("%w: missing required section", ErrFormat)
	ErrUnsorted             = fmt.Errorf("%w: sorted section out of order", ErrFormat)
	ErrInvalidMatrix        = fmt.Errorf("%w: invalid boundary matrix", ErrFormat)
	ErrInvalidStringArray   = fmt.Errorf("%w: invalid string array", ErrFormat)
	ErrInconsistentSections = fmt.Errorf("%w: inconsistent sections", ErrFormat)
)

// Builder and codec errors.
var (
	// ErrTooManyGroups is returned when a permission table has more distinct rows
	// or columns than a uint16 remap entry can address.
	ErrTooManyGroups = errors.New("too many boundary groups")
	// ErrRaggedTable is returned when permission table rows have different lengths.
	ErrRaggedTable = errors.New("permission table rows differ in length")
	// ErrSectionTooLarge is returned when a section does not fit the 32-bit descriptor fields.
	ErrSectionTooLarge = errors.New("section too large")
	// ErrUnsupportedCompression is returned for an unknown envelope compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)

// ErrPasswordNotFound is returned by credential stores that hold no password.
var ErrPasswordNotFound = errors.New("password not found")

// FormatError attaches the offending section to a format error.
type FormatError struct {
	Section string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Section == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("section %s: %v", e.Section, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// NewFormatError wraps err with the name of the offending section.
func NewFormatError(section string, err error) *FormatError {
	return &FormatError{Section: section, Err: err}
}

// ContractViolation is the panic value raised when a caller passes an argument
// outside the space declared by the dataset, such as a raw ID beyond a remap
// table or a section ID the layout does not define. It is a programming error
// and is never returned as an error value.
type ContractViolation struct {
	Op     string
	Detail string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Detail)
}

// Violate panics with a ContractViolation.
func Violate(op string, format string, args ...any) {
	panic(&ContractViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
}
