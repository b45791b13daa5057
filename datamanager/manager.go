package datamanager

import (
	"fmt"

	"github.com/arloliu/mozcdata/dataset"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/format"
	"github.com/arloliu/mozcdata/internal/options"
)

// DataManager is the read-only interface the conversion engine consumes.
//
// Raw sections are returned as byte slices aliasing the dataset buffer;
// callers must not modify them.
type DataManager interface {
	PosGroup() []byte
	Connector() []byte
	SystemDictionary() []byte
	Segmenter() Segmenter
	SuffixDictionary() SuffixDictionary
	ReadingCorrections() ReadingCorrections
	Collocation() []byte
	CollocationSuppression() []byte
	SuggestionFilter() []byte
	SymbolRewriter() SymbolDictionary
	UsageRewriter() UsageData
	CounterSuffixes() CounterSuffixes
	Platform() string
}

// Manager serves the typed views of one loaded dataset.
type Manager struct {
	container   *dataset.Container
	segmenter   Segmenter
	suffix      SuffixDictionary
	corrections ReadingCorrections
	symbols     SymbolDictionary
	usage       UsageData
	counters    CounterSuffixes
}

var _ DataManager = (*Manager)(nil)

// New loads data and builds the typed views.
//
// Parameters:
//   - data: Embedded dataset buffer, owned by the Manager afterwards
//   - opts: Options (logger, magic override, compression, checksum)
//
// Returns:
//   - *Manager: Ready for concurrent use
//   - error: Any dataset load error, or errs.ErrInconsistentSections when
//     related sections disagree
func New(data []byte, opts ...Option) (*Manager, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	c, err := dataset.LoadCompressed(data, cfg.compression, cfg.magic,
		dataset.WithLogger(cfg.logger),
		dataset.WithChecksum(cfg.checksum),
	)
	if err != nil {
		return nil, err
	}

	m, err := newManager(c)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("data manager ready",
		"platform", platformName,
		"usage_rewriter", !m.usage.IsEmpty(),
		"suffix_entries", m.suffix.Len(),
		"counter_suffixes", m.counters.Len(),
	)

	return m, nil
}

// MustNew is like New but panics if the dataset cannot be loaded. An
// embedded dataset that fails to load is a broken build.
func MustNew(data []byte, opts ...Option) *Manager {
	m, err := New(data, opts...)
	if err != nil {
		panic(fmt.Sprintf("datamanager: embedded dataset is broken: %v", err))
	}

	return m
}

func newManager(c *dataset.Container) (*Manager, error) {
	m := &Manager{container: c}

	var err error
	m.segmenter, err = newSegmenter(
		c.Section(format.SectionSegmenterMatrix).Matrix(),
		c.Section(format.SectionSegmenterBoundary),
	)
	if err != nil {
		return nil, errs.NewFormatError(format.SectionSegmenterBoundary.String(), err)
	}

	m.suffix, err = newSuffixDictionary(
		c.Section(format.SectionSuffixKeys).Strings(),
		c.Section(format.SectionSuffixValues).Strings(),
		c.Section(format.SectionSuffixTokens),
	)
	if err != nil {
		return nil, errs.NewFormatError(format.SectionSuffixTokens.String(), err)
	}

	m.corrections = ReadingCorrections{items: c.Section(format.SectionReadingCorrections).Strings()}
	m.symbols = SymbolDictionary{tokens: c.Section(format.SectionSymbolRewriter).Strings()}
	m.counters = CounterSuffixes{words: c.Section(format.SectionCounterSuffix).Strings()}

	if usageRewriterEnabled {
		m.usage, err = newUsageData(
			c.Section(format.SectionUsageBaseConjugationSuffix).Strings(),
			c.Section(format.SectionUsageConjugationSuffix).Strings(),
			c.Section(format.SectionUsageConjugationIndex),
			c.Section(format.SectionUsageItems),
			c.Section(format.SectionUsageStrings).Strings(),
		)
		if err != nil {
			return nil, errs.NewFormatError(format.SectionUsageItems.String(), err)
		}
	}

	return m, nil
}

// Container returns the underlying dataset container.
func (m *Manager) Container() *dataset.Container {
	return m.container
}

func (m *Manager) raw(id format.SectionID) []byte {
	return m.container.Section(id).Bytes()
}

// PosGroup returns the POS group table.
func (m *Manager) PosGroup() []byte { return m.raw(format.SectionPosGroup) }

// Connector returns the connection cost matrix.
func (m *Manager) Connector() []byte { return m.raw(format.SectionConnector) }

// SystemDictionary returns the system dictionary image.
func (m *Manager) SystemDictionary() []byte { return m.raw(format.SectionSystemDictionary) }

// Collocation returns the collocation filter image.
func (m *Manager) Collocation() []byte { return m.raw(format.SectionCollocation) }

// CollocationSuppression returns the collocation suppression filter image.
func (m *Manager) CollocationSuppression() []byte {
	return m.raw(format.SectionCollocationSuppression)
}

// SuggestionFilter returns the suggestion filter image.
func (m *Manager) SuggestionFilter() []byte { return m.raw(format.SectionSuggestionFilter) }

// Segmenter returns the segment boundary tables.
func (m *Manager) Segmenter() Segmenter { return m.segmenter }

// SuffixDictionary returns the suffix dictionary.
func (m *Manager) SuffixDictionary() SuffixDictionary { return m.suffix }

// ReadingCorrections returns the reading correction table.
func (m *Manager) ReadingCorrections() ReadingCorrections { return m.corrections }

// SymbolRewriter returns the symbol dictionary.
func (m *Manager) SymbolRewriter() SymbolDictionary { return m.symbols }

// UsageRewriter returns the usage dictionary.
func (m *Manager) UsageRewriter() UsageData { return m.usage }

// CounterSuffixes returns the counter suffix list.
func (m *Manager) CounterSuffixes() CounterSuffixes { return m.counters }

// Platform returns the platform variant the binary was built for.
func (m *Manager) Platform() string { return platformName }
