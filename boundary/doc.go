// Package boundary encodes and decodes the segmentation boundary matrix.
//
// The matrix answers whether a segment boundary is allowed between a left
// unit and a right unit, each identified by a raw ID from spaces of up to
// tens of thousands of IDs. Storing one bit per raw pair would be far too
// large, so raw IDs are first remapped to equivalence groups (units that
// always behave the same share a group) and the matrix keeps one bit per
// (left group, right group) pair.
//
// # Encoding
//
//	Bytes   | Field        | Type              | Description
//	--------|--------------|-------------------|--------------------------------
//	0-3     | LeftIDs      | uint32            | size of the left raw ID space
//	4-7     | RightIDs     | uint32            | size of the right raw ID space
//	8-11    | LeftGroups   | uint32            | number of left groups
//	12-15   | RightGroups  | uint32            | number of right groups
//	16-...  | LeftRemap    | uint16[LeftIDs]   | raw left ID -> left group
//	...     | RightRemap   | uint16[RightIDs]  | raw right ID -> right group
//	...     | Padding      | 0-7 bytes         | to an 8-byte boundary
//	...     | Bits         | bytes             | LeftGroups*RightGroups bits,
//	        |              |                   | padded to an 8-byte multiple
//
// Bit i of the matrix is bit (i % 8) of byte i / 8, least significant first,
// with i = leftGroup*RightGroups + rightGroup.
//
// # Usage
//
//	table, _ := boundary.Compress(permissions) // [][]bool, [left][right]
//	data := table.Bytes(engine)
//
//	m, err := boundary.Decode(data, engine)
//	if m.Query(leftID, rightID) {
//	    // boundary allowed
//	}
//
// # Thread Safety
//
// Matrix is immutable after Decode and safe for concurrent use; Query does
// not allocate.
package boundary
