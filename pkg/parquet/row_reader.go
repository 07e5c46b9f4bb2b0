package parquet

import (
	"io"

	"github.com/grafana/dskit/multierror"
	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultBatchSize is the maximum number of rows decoded into one batch.
const DefaultBatchSize = 8192

// RecordBatch is a contiguous chunk of rows decoded from one row group.
// All batches read from the same file share the same schema pointer.
type RecordBatch struct {
	Schema *parquet.Schema
	Rows   []parquet.Row
}

func (b RecordBatch) NumRows() int { return len(b.Rows) }

// OpenFile opens the parquet footer of f.
func OpenFile(f afero.File, options ...parquet.FileOption) (*parquet.File, error) {
	stats, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return parquet.OpenFile(f, stats.Size(), options...)
}

// ReadBatches decodes every row group of file, in order, into batches of at
// most batchSize rows. Batches never span row groups.
func ReadBatches(file *parquet.File, batchSize int) ([]RecordBatch, error) {
	if batchSize <= 0 {
		return nil, errors.Errorf("invalid batch size %d", batchSize)
	}
	var (
		schema  = file.Schema()
		buf     = make([]parquet.Row, batchSize)
		batches []RecordBatch
	)
	for i, rg := range file.RowGroups() {
		rgBatches, err := readRowGroup(schema, rg, buf)
		if err != nil {
			return nil, errors.Wrapf(err, "reading row group %d", i)
		}
		batches = append(batches, rgBatches...)
	}
	return batches, nil
}

func readRowGroup(schema *parquet.Schema, rg parquet.RowGroup, buf []parquet.Row) (batches []RecordBatch, err error) {
	rows := rg.Rows()
	defer func() {
		err = multierror.New(err, rows.Close()).Err()
	}()

	var filled int
	flush := func() {
		if filled == 0 {
			return
		}
		batch := RecordBatch{Schema: schema, Rows: make([]parquet.Row, filled)}
		for i := range buf[:filled] {
			batch.Rows[i] = buf[i].Clone()
		}
		batches = append(batches, batch)
		filled = 0
	}

	for {
		n, err := rows.ReadRows(buf[filled:])
		filled += n
		if filled == len(buf) {
			flush()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				flush()
				return batches, nil
			}
			return nil, err
		}
		if n == 0 {
			flush()
			return batches, nil
		}
	}
}
