package datamanager

import (
	"errors"
	"log/slog"

	"github.com/arloliu/mozcdata/format"
	"github.com/arloliu/mozcdata/internal/logging"
	"github.com/arloliu/mozcdata/internal/options"
)

type config struct {
	logger      *slog.Logger
	magic       []byte
	compression format.CompressionType
	checksum    bool
}

func newConfig() *config {
	return &config{
		logger:      logging.Discard(),
		magic:       MagicNumber(),
		compression: format.CompressionNone,
		checksum:    true,
	}
}

// Option configures New.
type Option = options.Option[*config]

// WithLogger sets the logger for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = logging.OrDiscard(logger)
	})
}

// WithMagic overrides the build-configured magic marker.
func WithMagic(magic []byte) Option {
	return options.New(func(c *config) error {
		if len(magic) == 0 {
			return errors.New("datamanager: magic marker must not be empty")
		}
		c.magic = append([]byte(nil), magic...)

		return nil
	})
}

// WithCompression declares that the embedded buffer is a compressed envelope.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(c *config) {
		c.compression = ct
	})
}

// WithChecksum enables or disables footer checksum verification.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.checksum = enabled
	})
}
