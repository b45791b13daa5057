package dataset

import (
	"fmt"

	"github.com/arloliu/mozcdata/boundary"
	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/format"
	"github.com/arloliu/mozcdata/internal/hash"
	"github.com/arloliu/mozcdata/internal/options"
	"github.com/arloliu/mozcdata/internal/pool"
	"github.com/arloliu/mozcdata/section"
	"github.com/arloliu/mozcdata/sorted"
)

// Builder assembles a dataset buffer section by section.
//
// Sections may be added in any order; Finish writes them in layout order so
// the output is deterministic. A Builder is not safe for concurrent use.
type Builder struct {
	layout   *section.Layout
	engine   endian.EndianEngine
	footer   section.Footer
	payloads [][]byte // layout order, nil when not added
	added    []bool
}

// NewBuilder creates a builder for the default layout in little-endian order.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	b := &Builder{
		layout: section.LayoutV1(),
		engine: endian.GetLittleEndianEngine(),
	}
	if err := options.Apply(b, opts...); err != nil {
		return nil, err
	}

	b.footer.Version = b.layout.Version()
	b.payloads = make([][]byte, b.layout.Len())
	b.added = make([]bool, b.layout.Len())

	return b, nil
}

// Engine returns the byte order the builder encodes with.
func (b *Builder) Engine() endian.EndianEngine {
	return b.engine
}

func (b *Builder) claim(id format.SectionID, shape format.ShapeKind) (int, section.Spec, error) {
	pos, ok := b.layout.Position(id)
	if !ok {
		return 0, section.Spec{}, fmt.Errorf("%w: %s", errs.ErrUnknownSection, id)
	}
	spec := b.layout.At(pos)
	if spec.Shape != shape {
		return 0, section.Spec{}, fmt.Errorf("%w: %s is %s, not %s", errs.ErrShapeMismatch, id, spec.Shape, shape)
	}
	if b.added[pos] {
		return 0, section.Spec{}, fmt.Errorf("%w: %s", errs.ErrDuplicateSection, id)
	}

	return pos, spec, nil
}

func (b *Builder) put(pos int, payload []byte) error {
	if uint64(len(payload)) > section.MaxSectionBytes {
		return fmt.Errorf("%w: %s has %d bytes", errs.ErrSectionTooLarge, b.layout.At(pos).ID, len(payload))
	}

	b.payloads[pos] = payload
	b.added[pos] = true

	return nil
}

// AddRaw adds an opaque section. data is copied.
func (b *Builder) AddRaw(id format.SectionID, data []byte) error {
	pos, _, err := b.claim(id, format.ShapeRaw)
	if err != nil {
		return err
	}

	return b.put(pos, append([]byte(nil), data...))
}

// AddStructs adds a struct section. data must hold whole records of the
// stride the layout declares; it is copied.
func (b *Builder) AddStructs(id format.SectionID, data []byte) error {
	pos, spec, err := b.claim(id, format.ShapeStruct)
	if err != nil {
		return err
	}
	if uint64(len(data))%uint64(spec.Stride) != 0 {
		return fmt.Errorf("%w: %s has %d bytes, stride %d", errs.ErrStrideMismatch, id, len(data), spec.Stride)
	}

	return b.put(pos, append([]byte(nil), data...))
}

// AddMatrix adds a boundary matrix section.
func (b *Builder) AddMatrix(id format.SectionID, table boundary.Table) error {
	pos, _, err := b.claim(id, format.ShapeBitMatrix)
	if err != nil {
		return err
	}

	return b.put(pos, table.Bytes(b.engine))
}

// AddStrings adds a string array section. strs holds the records flattened
// field by field; its length must be a multiple of the layout arity.
func (b *Builder) AddStrings(id format.SectionID, strs []string) error {
	pos, spec, err := b.claim(id, format.ShapeStringArray)
	if err != nil {
		return err
	}

	return b.putStrings(pos, spec, strs)
}

// AddSortedStrings adds a sorted string array section. Records must already
// be ordered by key; duplicates are allowed.
func (b *Builder) AddSortedStrings(id format.SectionID, strs []string) error {
	pos, spec, err := b.claim(id, format.ShapeSortedStringArray)
	if err != nil {
		return err
	}
	if len(strs)%int(spec.Stride) == 0 {
		keys := make(sorted.Strings, 0, len(strs)/int(spec.Stride))
		for i := 0; i < len(strs); i += int(spec.Stride) {
			keys = append(keys, strs[i])
		}
		if !sorted.IsSorted(keys) {
			return fmt.Errorf("%w: %s", errs.ErrUnsorted, id)
		}
	}

	return b.putStrings(pos, spec, strs)
}

func (b *Builder) putStrings(pos int, spec section.Spec, strs []string) error {
	if len(strs)%int(spec.Stride) != 0 {
		return fmt.Errorf("%w: %d strings do not form records of %d", errs.ErrStrideMismatch, len(strs), spec.Stride)
	}

	payload, err := sorted.AppendStringArray(make([]byte, 0, sorted.EncodedSize(strs)), b.engine, strs)
	if err != nil {
		return err
	}

	return b.put(pos, payload)
}

// Finish assembles the dataset behind magic and returns a newly allocated
// buffer. The builder can be finished again with another marker.
//
// Returns errs.ErrMissingSection when a required section was never added.
func (b *Builder) Finish(magic []byte) ([]byte, error) {
	for pos, ok := range b.added {
		if spec := b.layout.At(pos); !ok && !spec.Optional {
			return nil, fmt.Errorf("%w: %s", errs.ErrMissingSection, spec.ID)
		}
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	buf.MustWrite(magic)
	buf.Pad(section.Alignment)
	payloadOffset := buf.Len()

	descriptors := make([]section.Descriptor, 0, len(b.payloads))
	for pos, payload := range b.payloads {
		if !b.added[pos] {
			continue
		}

		spec := b.layout.At(pos)
		offset := buf.Len()
		if uint64(offset)+uint64(len(payload)) > section.MaxSectionBytes {
			return nil, fmt.Errorf("%w: %s ends beyond the 32-bit offset range", errs.ErrSectionTooLarge, spec.ID)
		}

		descriptors = append(descriptors, section.Descriptor{
			ID:     spec.ID,
			Shape:  spec.Shape,
			Stride: spec.Stride,
			Offset: uint32(offset),       //nolint:gosec
			Length: uint32(len(payload)), //nolint:gosec
		})
		buf.MustWrite(payload)
		buf.Pad(section.Alignment)
	}

	footer := b.footer
	footer.DescriptorCount = uint32(len(descriptors)) //nolint:gosec
	footer.DirectoryOffset = uint64(buf.Len())        //nolint:gosec
	footer.PayloadOffset = uint64(payloadOffset)      //nolint:gosec

	var desc [section.DescriptorSize]byte
	for i := range descriptors {
		descriptors[i].WriteToSlice(desc[:], 0, b.engine)
		buf.MustWrite(desc[:])
	}

	var tail [section.FooterSize]byte
	footer.WriteToSlice(tail[:])
	buf.MustWrite(tail[:])

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	footer.Checksum = hash.Checksum(out[:len(out)-section.ChecksumSize])
	footer.WriteToSlice(out[len(out)-section.FooterSize:])

	return out, nil
}
