// Package section defines the low-level binary structures and constants of
// the dataset container format.
//
// This package handles binary serialization and deserialization of the
// footer and the section descriptors, and declares the section layouts of
// each format version. It performs structural checks only; decoding of
// section payloads belongs to the boundary and sorted packages, and the
// dataset package ties everything together at load time.
//
// # Dataset Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Magic marker (build-configured length)                  │
//	│ Padding (0-7 bytes, for 8-byte alignment)               │
//	├─────────────────────────────────────────────────────────┤ PayloadOffset
//	│ Section payloads (variable, each 8-byte aligned)        │
//	│  - Raw byte ranges                                      │
//	│  - Fixed-stride struct arrays                           │
//	│  - Bit-packed boundary matrices                         │
//	│  - (Sorted) string arrays                               │
//	├─────────────────────────────────────────────────────────┤ DirectoryOffset
//	│ Directory (N × 16 bytes, fixed per descriptor)          │
//	├─────────────────────────────────────────────────────────┤
//	│ Footer (32 bytes, fixed)                                │
//	│  - Flag, Version, DescriptorCount                       │
//	│  - DirectoryOffset, PayloadOffset                       │
//	│  - Checksum (xxHash64 of all preceding bytes)           │
//	└─────────────────────────────────────────────────────────┘
//
// The footer sits at the end so a builder can stream payloads first and
// write the directory once every offset is known.
//
// # Layouts
//
// The set and order of sections is fixed per format version rather than
// discovered from the buffer. LayoutV1 declares every table the data
// manager exposes; sections marked Optional (the usage rewriter tables)
// may be compiled out of a dataset for some platforms.
//
// # Thread Safety
//
// Footer and Descriptor are plain values. Layout is immutable after
// construction and safe for concurrent use.
package section
