// Package mozcdata loads the read-only dataset a Japanese input method
// engine ships with and serves typed, zero-copy views of its tables.
//
// A dataset is one contiguous buffer: a magic marker, 8-aligned section
// payloads, a section directory and a fixed-size footer. Loading validates
// the whole layout once, after which every accessor is a bounds-checked
// view over the caller's buffer. Nothing is copied and nothing is mutated,
// so a loaded dataset is safe for concurrent use.
//
// # Basic Usage
//
// Loading the embedded dataset:
//
//	import "github.com/arloliu/mozcdata"
//
//	//go:embed mozc.data
//	var embedded []byte
//
//	dm := mozcdata.MustOpen(embedded)
//	if dm.Segmenter().IsBoundary(left, right) {
//	    // split the segment
//	}
//
// Loading a compressed envelope with diagnostics:
//
//	dm, err := mozcdata.Open(packed,
//	    datamanager.WithCompression(format.CompressionZstd),
//	    datamanager.WithLogger(slog.Default()),
//	)
//
// # Package Structure
//
// This package is a thin wrapper around datamanager. Lower layers are
// usable on their own:
//
//   - dataset: container loading, section views and the Builder
//   - section: descriptor, footer and layout encoding
//   - boundary: the compressed segment boundary matrix
//   - sorted: offset-indexed string arrays and binary search
//   - compress: envelope codecs (zstd, s2, lz4)
//   - credential: the local session password store
//   - reading: display readings for conversion keys
package mozcdata

import (
	"github.com/arloliu/mozcdata/datamanager"
)

// Open loads an embedded dataset and returns its data manager.
//
// The buffer is owned by the returned manager and must stay unmodified for
// as long as the manager or any view obtained from it is in use.
//
// Parameters:
//   - data: Dataset buffer, or a compressed envelope when WithCompression is set
//   - opts: datamanager options
//
// Returns:
//   - *datamanager.Manager: Loaded data manager
//   - error: Integrity or format error when the buffer is not a valid dataset
func Open(data []byte, opts ...datamanager.Option) (*datamanager.Manager, error) {
	return datamanager.New(data, opts...)
}

// MustOpen is like Open but panics when the dataset cannot be loaded.
func MustOpen(data []byte, opts ...datamanager.Option) *datamanager.Manager {
	return datamanager.MustNew(data, opts...)
}

// DefaultMagic returns the magic marker Open expects unless overridden.
func DefaultMagic() []byte {
	return datamanager.MagicNumber()
}
