package parquet

import (
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

// BatchWriter writes record batches to a parquet file using the encoding
// policy of a WriterConfig.
type BatchWriter struct {
	writer  *parquet.Writer
	schema  *parquet.Schema
	numRows int64
}

// NewBatchWriter opens a parquet writer on w for rows of the given schema.
// The schema is rewritten with DictionarySchema before the writer is created.
//
// parquet-go panics on schemas or options it cannot encode, those panics are
// returned as errors.
func NewBatchWriter(w io.Writer, schema *parquet.Schema, cfg WriterConfig, options ...parquet.WriterOption) (bw *BatchWriter, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			bw, err = nil, errors.Errorf("cannot encode schema %s: %v", schema.Name(), r)
		}
	}()
	out := DictionarySchema(schema, cfg)
	return &BatchWriter{
		writer: parquet.NewWriter(w, append(cfg.WriterOptions(out), options...)...),
		schema: out,
	}, nil
}

// Schema returns the schema the file is written with.
func (w *BatchWriter) Schema() *parquet.Schema { return w.schema }

// NumRows returns the number of rows written so far.
func (w *BatchWriter) NumRows() int64 { return w.numRows }

// WriteBatch writes all rows of the batch, preserving their order.
func (w *BatchWriter) WriteBatch(batch RecordBatch) error {
	n, err := w.writer.WriteRows(batch.Rows)
	w.numRows += int64(n)
	if err != nil {
		return err
	}
	if n != len(batch.Rows) {
		return errors.Errorf("short write: %d of %d rows written", n, len(batch.Rows))
	}
	return nil
}

// Close flushes buffered rows and writes the file footer. It does not close
// the underlying writer.
func (w *BatchWriter) Close() error {
	return w.writer.Close()
}

// WriteBatches writes batches to dst in order and returns the total number of
// rows written.
func WriteBatches(dst *BatchWriter, batches []RecordBatch) (total int64, err error) {
	for i, batch := range batches {
		if err := dst.WriteBatch(batch); err != nil {
			return dst.NumRows(), errors.Wrapf(err, "writing batch %d", i)
		}
	}
	return dst.NumRows(), nil
}
