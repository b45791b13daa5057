// Package dataset loads and serves the embedded linguistic dataset.
//
// A dataset is one contiguous, immutable byte buffer produced at build time.
// It starts with a magic marker, carries a sequence of 8-byte aligned
// section payloads, and ends with a directory of section descriptors and a
// fixed 32-byte footer:
//
//	+--------------------------------------+ 0
//	| magic, zero padded to 8 bytes        |
//	+--------------------------------------+ PayloadOffset
//	| section payloads, 8-byte aligned     |
//	+--------------------------------------+ DirectoryOffset
//	| N × 16-byte section descriptors      |
//	+--------------------------------------+ len-32
//	| footer                               |
//	+--------------------------------------+
//
// Load validates the whole buffer once (magic, checksum, footer, every
// descriptor and every shaped payload) and returns a Container. Afterwards
// every Section call is an O(1) index into a prebuilt view table and never
// copies bytes: a View is a sub-slice of the loaded buffer.
//
// # Error Model
//
// Load reports errs.ErrIntegrity when the buffer is not the expected dataset
// (magic or checksum mismatch) and a *errs.FormatError wrapping errs.ErrFormat
// for layout violations. A failed Load never returns a partially usable
// container.
//
// Asking a Container for a section its layout does not declare is a
// programming error and panics with *errs.ContractViolation. An optional
// section that was compiled out of the dataset yields an empty View.
//
// # Concurrency
//
// A Container and its Views are immutable after Load returns and can be read
// from any number of goroutines without locking. The caller must not modify
// the buffer passed to Load.
//
// # Building
//
// Builder assembles well-formed datasets. It is used by tests and by tooling
// that repacks datasets; production binaries only load.
package dataset
