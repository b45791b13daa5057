// Package datamanager exposes the embedded dataset to the conversion engine
// through typed, zero-copy accessors.
//
// A Manager is created once at process start from the embedded buffer. It
// loads the buffer with the build-configured magic marker, checks that
// related sections agree with each other (suffix keys, values and tokens
// have the same length, usage references stay in range, ...) and then hands
// out typed views such as Segmenter or SuffixDictionary.
//
// # Build Configuration
//
// The expected magic marker is fixed at build time:
//
//	go build -ldflags "-X github.com/arloliu/mozcdata/datamanager.magicNumber=..."
//
// The platform variant is selected with build tags: the default build is
// "oss", the chromeos and android tags select their platform names. The
// nousagerewriter tag compiles the usage rewriter out; UsageRewriter then
// always returns empty data even if the dataset carries usage sections.
//
// # Concurrency
//
// A Manager and every view it returns are immutable and safe for concurrent
// use.
package datamanager
