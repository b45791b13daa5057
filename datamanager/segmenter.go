package datamanager

import (
	"fmt"

	"github.com/arloliu/mozcdata/boundary"
	"github.com/arloliu/mozcdata/dataset"
	"github.com/arloliu/mozcdata/errs"
)

// Segmenter answers segment boundary questions for the converter.
type Segmenter struct {
	matrix   boundary.Matrix
	boundary dataset.View // {prefix penalty int16, suffix penalty int16} per POS ID
}

func newSegmenter(matrix boundary.Matrix, penalties dataset.View) (Segmenter, error) {
	ids := max(matrix.LeftIDs(), matrix.RightIDs())
	if penalties.Len() < ids {
		return Segmenter{}, fmt.Errorf("%w: %d boundary entries for %d segmenter IDs",
			errs.ErrInconsistentSections, penalties.Len(), ids)
	}

	return Segmenter{matrix: matrix, boundary: penalties}, nil
}

// IsBoundary reports whether a segment boundary is allowed between a token
// with right ID left and a token with left ID right.
//
// Panics with a ContractViolation for IDs outside the matrix ID space.
func (s Segmenter) IsBoundary(left, right int) bool {
	return s.matrix.Query(left, right)
}

// Boundary returns the prefix and suffix penalties of POS id.
func (s Segmenter) Boundary(id int) (prefix, suffix int16) {
	return s.boundary.Int16(id, 0), s.boundary.Int16(id, 2)
}

// Matrix returns the underlying boundary matrix.
func (s Segmenter) Matrix() boundary.Matrix {
	return s.matrix
}

// Len returns the number of POS IDs with boundary penalties.
func (s Segmenter) Len() int {
	return s.boundary.Len()
}
