// Package sorted implements binary-search lookups over immutable, pre-sorted
// byte-string arrays, and the zero-copy string array encoding those arrays
// are stored in.
//
// # Lookups
//
// Every lookup works on the Keys interface, so the same search code serves
// string arrays decoded from a dataset section, record keys of multi-field
// string arrays, and plain []string slices in tests and tooling:
//
//	lo, hi := sorted.FindPrefixRange(arr.Keys(), []byte("app"))
//	for i := lo; i < hi; i++ {
//	    fmt.Printf("%s\n", arr.Keys().Key(i))
//	}
//
// Keys are compared byte-lexicographically (bytes.Compare). Arrays must be
// non-decreasing; duplicate keys are allowed and handled by FindAll, which
// returns the whole run of equal keys.
//
// A failed Find reports ok == false. Not finding a key is an ordinary
// outcome, not an error.
//
// # String Array Encoding
//
//	Bytes        | Field    | Type           | Description
//	-------------|----------|----------------|------------------------------
//	0-3          | Count    | uint32         | number of strings
//	4-(8+4N)     | Offsets  | uint32[N+1]    | start of string i in data area
//	...          | Data     | bytes          | concatenated string bytes
//
// Offsets are relative to the data area, non-decreasing, and the final
// offset equals the data area length, so string i is
// data[offsets[i]:offsets[i+1]] without any terminator or copy.
//
// Strings are grouped into records of a fixed arity (for example
// {key, value, description}); the first string of each record is its key.
//
// # Thread Safety
//
// All types are immutable after decoding and safe for concurrent use.
package sorted
