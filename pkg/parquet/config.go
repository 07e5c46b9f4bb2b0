package parquet

import (
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/encoding"
	"github.com/pkg/errors"

	"github.com/kelvincesar/parquet-enconding/pkg/build"
)

const (
	// FormatVersion1 is the baseline parquet format version (data page v1).
	FormatVersion1 = 1
	// FormatVersion2 writes data page v2 headers.
	FormatVersion2 = 2

	DefaultMaxRowsPerRowGroup = 1024 * 1024
	DefaultCreatedBy          = "parquet-encoder"
)

// WriterConfig describes the output-side encoding policy of a rewrite.
// It is built once before the output file is opened and never changes after.
type WriterConfig struct {
	FormatVersion      int
	Dictionary         bool
	MaxRowsPerRowGroup int64
	CreatedBy          string
}

// DefaultWriterConfig returns the baseline format version with dictionary
// encoding enabled.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		FormatVersion:      FormatVersion1,
		Dictionary:         true,
		MaxRowsPerRowGroup: DefaultMaxRowsPerRowGroup,
		CreatedBy:          DefaultCreatedBy,
	}
}

func (c WriterConfig) Validate() error {
	if c.FormatVersion != FormatVersion1 && c.FormatVersion != FormatVersion2 {
		return errors.Errorf("invalid format version %d: must be %d or %d", c.FormatVersion, FormatVersion1, FormatVersion2)
	}
	if c.MaxRowsPerRowGroup <= 0 {
		return errors.Errorf("invalid max rows per row group %d: must be positive", c.MaxRowsPerRowGroup)
	}
	return nil
}

// DictionaryEncoding returns the encoding applied to eligible columns, or nil
// when dictionary encoding is disabled.
func (c WriterConfig) DictionaryEncoding() encoding.Encoding {
	if !c.Dictionary {
		return nil
	}
	return &parquet.RLEDictionary
}

// WriterOptions returns the parquet-go writer options for a file with the
// given schema.
func (c WriterConfig) WriterOptions(schema *parquet.Schema) []parquet.WriterOption {
	return []parquet.WriterOption{
		schema,
		parquet.DataPageVersion(c.FormatVersion),
		parquet.MaxRowsPerRowGroup(c.MaxRowsPerRowGroup),
		parquet.CreatedBy(c.CreatedBy, build.Version, build.GitSHA),
	}
}
