package dataset

import (
	"bytes"
	"fmt"

	"github.com/arloliu/mozcdata/boundary"
	"github.com/arloliu/mozcdata/compress"
	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/format"
	"github.com/arloliu/mozcdata/internal/hash"
	"github.com/arloliu/mozcdata/internal/options"
	"github.com/arloliu/mozcdata/section"
	"github.com/arloliu/mozcdata/sorted"
)

// Container is a validated, indexed dataset buffer.
//
// A Container is immutable and safe for concurrent use by multiple goroutines.
type Container struct {
	data      []byte
	footer    section.Footer
	engine    endian.EndianEngine
	layout    *section.Layout
	directory []section.Descriptor // buffer order
	views     []View               // layout order
}

// Load validates data against the expected magic marker and indexes every
// section.
//
// The returned container owns data; the caller must not modify it
// afterwards. Load never copies the buffer.
//
// Parameters:
//   - data: Whole dataset buffer
//   - magic: Expected marker at offset 0, compared byte for byte
//   - opts: Load options (logger, layout, checksum verification)
//
// Returns:
//   - *Container: Ready to serve sections
//   - error: errs.ErrIntegrity for magic or checksum mismatch, *errs.FormatError
//     wrapping errs.ErrFormat for layout violations
func Load(data []byte, magic []byte, opts ...LoadOption) (*Container, error) {
	cfg := newLoadConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], magic) {
		cfg.logger.Debug("dataset magic mismatch", "size", len(data), "magic_size", len(magic))
		return nil, fmt.Errorf("dataset: %w", errs.ErrMagicMismatch)
	}
	if len(data) < section.Align(len(magic))+section.FooterSize {
		return nil, errs.NewFormatError("", fmt.Errorf("%w: %d bytes cannot hold a footer", errs.ErrTruncated, len(data)))
	}

	footer, err := section.ParseFooter(data)
	if err != nil {
		return nil, errs.NewFormatError("footer", err)
	}

	if cfg.checksum {
		if sum := hash.Checksum(data[:len(data)-section.ChecksumSize]); sum != footer.Checksum {
			return nil, fmt.Errorf("dataset: %w: computed %016x, footer has %016x",
				errs.ErrChecksumMismatch, sum, footer.Checksum)
		}
	}

	if footer.Version != cfg.layout.Version() {
		return nil, errs.NewFormatError("footer", fmt.Errorf("%w: %d, expected %d",
			errs.ErrUnsupportedVersion, footer.Version, cfg.layout.Version()))
	}
	if err := footer.ValidateBounds(len(data), len(magic)); err != nil {
		return nil, errs.NewFormatError("footer", err)
	}

	c := &Container{
		data:   data,
		footer: footer,
		engine: footer.Flag.GetEndianEngine(),
		layout: cfg.layout,
		views:  make([]View, cfg.layout.Len()),
	}

	if err := c.parseDirectory(); err != nil {
		return nil, err
	}

	missing, err := c.fillAbsent()
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("dataset loaded",
		"size", len(data),
		"version", footer.Version,
		"endian", endian.Name(c.engine),
		"sections", len(c.directory),
		"missing_optional", missing,
	)

	return c, nil
}

// LoadCompressed inflates a compressed dataset envelope exactly once and
// loads the result. The inflated buffer becomes the container's buffer.
func LoadCompressed(packed []byte, ct format.CompressionType, magic []byte, opts ...LoadOption) (*Container, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	data, err := codec.Decompress(packed)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	return Load(data, magic, opts...)
}

func (c *Container) parseDirectory() error {
	count := int(c.footer.DescriptorCount)
	dirStart := int(c.footer.DirectoryOffset) //nolint:gosec
	payloadStart := c.footer.PayloadOffset
	payloadEnd := c.footer.DirectoryOffset

	c.directory = make([]section.Descriptor, 0, count)
	seen := make([]bool, c.layout.Len())

	for i := range count {
		off := dirStart + i*section.DescriptorSize
		desc, err := section.ParseDescriptor(c.data[off:off+section.DescriptorSize], c.engine)
		if err != nil {
			return errs.NewFormatError(fmt.Sprintf("descriptor %d", i), err)
		}

		name := desc.ID.String()
		pos, ok := c.layout.Position(desc.ID)
		if !ok {
			return errs.NewFormatError(name, fmt.Errorf("%w: id %d is not in layout version %d",
				errs.ErrUnknownSection, desc.ID, c.layout.Version()))
		}
		if seen[pos] {
			return errs.NewFormatError(name, errs.ErrDuplicateSection)
		}
		seen[pos] = true

		if desc.Offset%section.Alignment != 0 {
			return errs.NewFormatError(name, fmt.Errorf("%w: offset %d is not %d-byte aligned",
				errs.ErrInvalidDescriptor, desc.Offset, section.Alignment))
		}
		if err := desc.ValidateBounds(payloadStart, payloadEnd); err != nil {
			return errs.NewFormatError(name, err)
		}
		if prev, ok := overlapping(c.directory, desc); ok {
			return errs.NewFormatError(name, fmt.Errorf("%w: [%d, %d) overlaps %s [%d, %d)",
				errs.ErrInvalidDescriptor, desc.Offset, desc.End(), prev.ID, prev.Offset, prev.End()))
		}

		spec := c.layout.At(pos)
		if err := desc.ValidateAgainst(spec); err != nil {
			return errs.NewFormatError(name, err)
		}

		view, err := c.decodeView(desc)
		if err != nil {
			return errs.NewFormatError(name, err)
		}

		c.views[pos] = view
		c.directory = append(c.directory, desc)
	}

	return nil
}

// overlapping returns the first descriptor in dir whose payload shares bytes
// with desc. Empty payloads never overlap.
func overlapping(dir []section.Descriptor, desc section.Descriptor) (section.Descriptor, bool) {
	if desc.Length == 0 {
		return section.Descriptor{}, false
	}

	for _, d := range dir {
		if d.Length != 0 && uint64(d.Offset) < desc.End() && uint64(desc.Offset) < d.End() {
			return d, true
		}
	}

	return section.Descriptor{}, false
}

func (c *Container) decodeView(desc section.Descriptor) (View, error) {
	v := View{
		id:      desc.ID,
		shape:   desc.Shape,
		stride:  int(desc.Stride),
		data:    c.data[desc.Offset:desc.End():desc.End()],
		present: true,
		engine:  c.engine,
	}

	var err error
	switch desc.Shape {
	case format.ShapeBitMatrix:
		v.matrix, err = boundary.Decode(v.data, c.engine)
	case format.ShapeStringArray:
		v.strings, err = sorted.DecodeStringArray(v.data, c.engine, v.stride)
	case format.ShapeSortedStringArray:
		v.strings, err = sorted.DecodeSortedStringArray(v.data, c.engine, v.stride)
	}

	return v, err
}

// fillAbsent installs empty views for absent optional sections and rejects
// absent required ones. It returns the names of the missing optional sections.
func (c *Container) fillAbsent() ([]string, error) {
	var missing []string
	for pos := range c.views {
		if c.views[pos].present {
			continue
		}

		spec := c.layout.At(pos)
		if !spec.Optional {
			return nil, errs.NewFormatError(spec.ID.String(), errs.ErrMissingSection)
		}

		c.views[pos] = emptyView(spec.ID, spec.Shape, int(spec.Stride), c.engine)
		missing = append(missing, spec.ID.String())
	}

	return missing, nil
}

// Section returns the view of section id.
//
// An optional section absent from the dataset yields an empty view.
//
// Panics with a ContractViolation if the container's layout does not declare id.
func (c *Container) Section(id format.SectionID) View {
	pos, ok := c.layout.Position(id)
	if !ok {
		errs.Violate("dataset.Container.Section", "section %s is not declared by layout version %d",
			id, c.layout.Version())
	}

	return c.views[pos]
}

// Lookup returns the view of section id and whether the dataset contains it.
// Unlike Section it never panics.
func (c *Container) Lookup(id format.SectionID) (View, bool) {
	pos, ok := c.layout.Position(id)
	if !ok {
		return View{}, false
	}

	v := c.views[pos]

	return v, v.present
}

// Directory returns a copy of the section descriptors in buffer order.
func (c *Container) Directory() []section.Descriptor {
	out := make([]section.Descriptor, len(c.directory))
	copy(out, c.directory)

	return out
}

// Bytes returns the whole dataset buffer. It must not be modified.
func (c *Container) Bytes() []byte {
	return c.data
}

// Size returns the dataset size in bytes.
func (c *Container) Size() int {
	return len(c.data)
}

// Version returns the format version recorded in the footer.
func (c *Container) Version() uint16 {
	return c.footer.Version
}

// Engine returns the byte order of the dataset body.
func (c *Container) Engine() endian.EndianEngine {
	return c.engine
}

// Layout returns the layout the dataset was validated against.
func (c *Container) Layout() *section.Layout {
	return c.layout
}

// Checksum returns the footer checksum.
func (c *Container) Checksum() uint64 {
	return c.footer.Checksum
}
