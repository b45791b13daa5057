package dataset

import (
	"log/slog"

	"github.com/arloliu/mozcdata/internal/logging"
	"github.com/arloliu/mozcdata/internal/options"
	"github.com/arloliu/mozcdata/section"
)

type loadConfig struct {
	logger   *slog.Logger
	layout   *section.Layout
	checksum bool
}

func newLoadConfig() *loadConfig {
	return &loadConfig{
		logger:   logging.Discard(),
		layout:   section.LayoutV1(),
		checksum: true,
	}
}

// LoadOption configures Load and LoadCompressed.
type LoadOption = options.Option[*loadConfig]

// WithLogger sets the logger receiving load diagnostics. A nil logger
// disables logging.
func WithLogger(logger *slog.Logger) LoadOption {
	return options.NoError(func(c *loadConfig) {
		c.logger = logging.OrDiscard(logger)
	})
}

// WithLayout sets the section layout the buffer is validated against.
// The default is section.LayoutV1.
func WithLayout(layout *section.Layout) LoadOption {
	return options.NoError(func(c *loadConfig) {
		if layout != nil {
			c.layout = layout
		}
	})
}

// WithChecksum enables or disables footer checksum verification.
// Verification is enabled by default.
func WithChecksum(enabled bool) LoadOption {
	return options.NoError(func(c *loadConfig) {
		c.checksum = enabled
	})
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*Builder]

// WithBigEndian encodes the dataset body in big-endian byte order.
func WithBigEndian() BuilderOption {
	return options.NoError(func(b *Builder) {
		b.footer.Flag.WithBigEndian()
		b.engine = b.footer.Flag.GetEndianEngine()
	})
}

// WithLittleEndian encodes the dataset body in little-endian byte order.
// This is the default.
func WithLittleEndian() BuilderOption {
	return options.NoError(func(b *Builder) {
		b.footer.Flag.WithLittleEndian()
		b.engine = b.footer.Flag.GetEndianEngine()
	})
}

// WithTargetLayout sets the layout the builder encodes for. The default is
// section.LayoutV1.
func WithTargetLayout(layout *section.Layout) BuilderOption {
	return options.NoError(func(b *Builder) {
		if layout != nil {
			b.layout = layout
		}
	})
}
