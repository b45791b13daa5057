package dataset

import (
	"github.com/arloliu/mozcdata/boundary"
	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/format"
	"github.com/arloliu/mozcdata/sorted"
)

// View is a read-only, zero-copy window onto one section of a loaded dataset.
//
// Views are small values; copying one never copies section bytes. The zero
// View is empty.
type View struct {
	id      format.SectionID
	shape   format.ShapeKind
	stride  int
	data    []byte
	present bool
	engine  endian.EndianEngine

	// Decoded shape state, set at load time.
	matrix  boundary.Matrix
	strings sorted.StringArray
}

// emptyView returns the view served for an optional section that is absent
// from the buffer.
func emptyView(id format.SectionID, shape format.ShapeKind, stride int, engine endian.EndianEngine) View {
	return View{id: id, shape: shape, stride: stride, engine: engine}
}

// ID returns the section identifier.
func (v View) ID() format.SectionID {
	return v.id
}

// Shape returns the section shape kind.
func (v View) Shape() format.ShapeKind {
	return v.shape
}

// Stride returns the record size of a struct section, or the record arity of
// a string array section.
func (v View) Stride() int {
	return v.stride
}

// Bytes returns the raw section payload. The slice aliases the dataset buffer
// and must not be modified.
func (v View) Bytes() []byte {
	return v.data
}

// Size returns the payload size in bytes.
func (v View) Size() int {
	return len(v.data)
}

// Present reports whether the section exists in the dataset.
func (v View) Present() bool {
	return v.present
}

// IsEmpty reports whether the view has no elements.
func (v View) IsEmpty() bool {
	return v.Len() == 0
}

// Len returns the number of elements in the section: bytes for raw sections,
// records for struct and string array sections, raw left IDs for a bit matrix.
func (v View) Len() int {
	switch v.shape {
	case format.ShapeStruct:
		if v.stride == 0 {
			return 0
		}

		return len(v.data) / v.stride
	case format.ShapeStringArray, format.ShapeSortedStringArray:
		return v.strings.Records()
	case format.ShapeBitMatrix:
		return v.matrix.LeftIDs()
	default:
		return len(v.data)
	}
}

// At returns record i of a struct section. The returned slice aliases the
// dataset buffer and must not be modified.
//
// Panics with a ContractViolation if the view is not a struct section or i is
// outside [0, Len()).
func (v View) At(i int) []byte {
	if v.shape != format.ShapeStruct {
		errs.Violate("dataset.View.At", "section %s has shape %s", v.id, v.shape)
	}
	if n := v.Len(); i < 0 || i >= n {
		errs.Violate("dataset.View.At", "record %d outside [0, %d) in section %s", i, n, v.id)
	}

	start := i * v.stride
	end := start + v.stride

	return v.data[start:end:end]
}

// Uint16 decodes the uint16 at byte offset off of record i.
func (v View) Uint16(i, off int) uint16 {
	return v.engine.Uint16(v.field(i, off, 2))
}

// Int16 decodes the int16 at byte offset off of record i.
func (v View) Int16(i, off int) int16 {
	return int16(v.engine.Uint16(v.field(i, off, 2))) //nolint:gosec
}

// Uint32 decodes the uint32 at byte offset off of record i.
func (v View) Uint32(i, off int) uint32 {
	return v.engine.Uint32(v.field(i, off, 4))
}

func (v View) field(i, off, size int) []byte {
	rec := v.At(i)
	if off < 0 || off+size > len(rec) {
		errs.Violate("dataset.View.field", "%d-byte field at offset %d outside %d-byte record", size, off, len(rec))
	}

	return rec[off : off+size]
}

// Matrix returns the decoded boundary matrix of a bit matrix section.
//
// Panics with a ContractViolation if the view has another shape.
func (v View) Matrix() boundary.Matrix {
	if v.shape != format.ShapeBitMatrix {
		errs.Violate("dataset.View.Matrix", "section %s has shape %s", v.id, v.shape)
	}

	return v.matrix
}

// Strings returns the decoded string array of a string array section. The
// array of an absent optional section is empty.
//
// Panics with a ContractViolation if the view has another shape.
func (v View) Strings() sorted.StringArray {
	if !v.shape.IsStringArray() {
		errs.Violate("dataset.View.Strings", "section %s has shape %s", v.id, v.shape)
	}

	return v.strings
}

// Engine returns the byte order of the section payload.
func (v View) Engine() endian.EndianEngine {
	return v.engine
}
