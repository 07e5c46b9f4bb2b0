package rewrite

import (
	"github.com/pkg/errors"

	encparquet "github.com/kelvincesar/parquet-enconding/pkg/parquet"
)

// Config holds the read and write settings of a Rewriter.
type Config struct {
	// BatchSize bounds the number of rows decoded into one batch. It tunes
	// memory and throughput only.
	BatchSize int
	Writer    encparquet.WriterConfig
}

// DefaultConfig returns batches of DefaultBatchSize rows written with the
// default writer configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize: encparquet.DefaultBatchSize,
		Writer:    encparquet.DefaultWriterConfig(),
	}
}

// Validate reports the first invalid setting of c.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return errors.Errorf("invalid batch size %d: must be positive", c.BatchSize)
	}
	return errors.Wrap(c.Writer.Validate(), "invalid writer config")
}
