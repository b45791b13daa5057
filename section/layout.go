package section

import (
	"fmt"

	"github.com/arloliu/mozcdata/format"
)

// Spec declares one section a layout expects.
type Spec struct {
	ID    format.SectionID
	Shape format.ShapeKind
	// Stride is the record size of a struct section, or the record arity of a
	// string array. Zero for raw and bit matrix sections.
	Stride uint32
	// Optional sections may be compiled out of a dataset; their absence
	// yields an empty view instead of a load error.
	Optional bool
}

// Layout is the fixed, ordered set of sections of one format version.
// A Layout is immutable once built and safe for concurrent use.
type Layout struct {
	version  uint16
	specs    []Spec
	position [MaxSectionID + 1]int16 // section ID -> index into specs, -1 if absent
}

// NewLayout builds a layout for version from specs in directory order.
//
// Returns an error if an ID repeats, exceeds MaxSectionID, or a spec carries
// a stride its shape cannot have.
func NewLayout(version uint16, specs ...Spec) (*Layout, error) {
	l := &Layout{version: version, specs: make([]Spec, 0, len(specs))}
	for i := range l.position {
		l.position[i] = -1
	}

	for _, s := range specs {
		if s.ID == 0 || int(s.ID) > MaxSectionID {
			return nil, fmt.Errorf("layout: section id %d out of range [1, %d]", s.ID, MaxSectionID)
		}
		if l.position[s.ID] >= 0 {
			return nil, fmt.Errorf("layout: section %s declared twice", s.ID)
		}
		switch s.Shape {
		case format.ShapeRaw, format.ShapeBitMatrix:
			if s.Stride != 0 {
				return nil, fmt.Errorf("layout: %s section %s must have zero stride", s.Shape, s.ID)
			}
		case format.ShapeStruct, format.ShapeStringArray, format.ShapeSortedStringArray:
			if s.Stride == 0 {
				return nil, fmt.Errorf("layout: %s section %s needs a stride", s.Shape, s.ID)
			}
		default:
			return nil, fmt.Errorf("layout: section %s has unknown shape %d", s.ID, s.Shape)
		}

		l.position[s.ID] = int16(len(l.specs)) //nolint:gosec
		l.specs = append(l.specs, s)
	}

	return l, nil
}

// MustLayout is like NewLayout but panics on error. It is meant for
// package-level layout declarations.
func MustLayout(version uint16, specs ...Spec) *Layout {
	l, err := NewLayout(version, specs...)
	if err != nil {
		panic(err)
	}

	return l
}

// Version returns the format version the layout describes.
func (l *Layout) Version() uint16 {
	return l.version
}

// Len returns the number of declared sections.
func (l *Layout) Len() int {
	return len(l.specs)
}

// At returns the i-th spec in directory order.
func (l *Layout) At(i int) Spec {
	return l.specs[i]
}

// Specs returns a copy of the declared specs in directory order.
func (l *Layout) Specs() []Spec {
	out := make([]Spec, len(l.specs))
	copy(out, l.specs)

	return out
}

// Position returns the directory position of id, or false if the layout does
// not declare it.
func (l *Layout) Position(id format.SectionID) (int, bool) {
	if int(id) > MaxSectionID {
		return 0, false
	}

	pos := l.position[id]

	return int(pos), pos >= 0
}

// Lookup returns the spec declared for id.
func (l *Layout) Lookup(id format.SectionID) (Spec, bool) {
	pos, ok := l.Position(id)
	if !ok {
		return Spec{}, false
	}

	return l.specs[pos], true
}

var layoutV1 = MustLayout(FormatVersion1,
	Spec{ID: format.SectionPosGroup, Shape: format.ShapeRaw},
	Spec{ID: format.SectionConnector, Shape: format.ShapeRaw},
	Spec{ID: format.SectionSystemDictionary, Shape: format.ShapeRaw},
	Spec{ID: format.SectionSegmenterMatrix, Shape: format.ShapeBitMatrix},
	Spec{ID: format.SectionSegmenterBoundary, Shape: format.ShapeStruct, Stride: 4},
	Spec{ID: format.SectionSuffixKeys, Shape: format.ShapeSortedStringArray, Stride: 1},
	Spec{ID: format.SectionSuffixValues, Shape: format.ShapeStringArray, Stride: 1},
	Spec{ID: format.SectionSuffixTokens, Shape: format.ShapeStruct, Stride: 8},
	Spec{ID: format.SectionReadingCorrections, Shape: format.ShapeStringArray, Stride: 3},
	Spec{ID: format.SectionCollocation, Shape: format.ShapeRaw},
	Spec{ID: format.SectionCollocationSuppression, Shape: format.ShapeRaw},
	Spec{ID: format.SectionSuggestionFilter, Shape: format.ShapeRaw},
	Spec{ID: format.SectionSymbolRewriter, Shape: format.ShapeSortedStringArray, Stride: 3},
	Spec{ID: format.SectionUsageBaseConjugationSuffix, Shape: format.ShapeStringArray, Stride: 2, Optional: true},
	Spec{ID: format.SectionUsageConjugationSuffix, Shape: format.ShapeStringArray, Stride: 2, Optional: true},
	Spec{ID: format.SectionUsageConjugationIndex, Shape: format.ShapeStruct, Stride: 4, Optional: true},
	Spec{ID: format.SectionUsageItems, Shape: format.ShapeStruct, Stride: 20, Optional: true},
	Spec{ID: format.SectionUsageStrings, Shape: format.ShapeStringArray, Stride: 1, Optional: true},
	Spec{ID: format.SectionCounterSuffix, Shape: format.ShapeSortedStringArray, Stride: 1},
)

// LayoutV1 returns the format version 1 layout.
func LayoutV1() *Layout {
	return layoutV1
}
