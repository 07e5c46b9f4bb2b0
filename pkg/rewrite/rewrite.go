// Package rewrite reads a parquet file fully into memory and writes it back
// with the configured encoding policy.
package rewrite

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/dskit/runutil"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	encparquet "github.com/kelvincesar/parquet-enconding/pkg/parquet"
	"github.com/kelvincesar/parquet-enconding/pkg/util"
)

const parquetReadBufferSize = 256 << 10 // 256KB

// Input is the fully decoded content of a parquet file.
type Input struct {
	Path      string
	Batches   []encparquet.RecordBatch
	RowGroups int
	Metadata  []format.KeyValue
}

// Schema returns the schema shared by all batches.
func (in *Input) Schema() *parquet.Schema {
	if len(in.Batches) == 0 {
		return nil
	}
	return in.Batches[0].Schema
}

// NumRows returns the number of rows across all batches.
func (in *Input) NumRows() int64 {
	var n int64
	for _, b := range in.Batches {
		n += int64(b.NumRows())
	}
	return n
}

// Stats summarizes a completed rewrite.
type Stats struct {
	Rows           int64
	Batches        int
	InputRowGroups int
	Columns        int
}

// Rewriter copies a parquet file with the encoding policy of its Config.
type Rewriter struct {
	logger log.Logger
	fs     afero.Fs
	cfg    Config
}

// New returns a Rewriter reading and writing files on fs.
func New(logger log.Logger, fs afero.Fs, cfg Config) (*Rewriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Rewriter{logger: logger, fs: fs, cfg: cfg}, nil
}

// Rewrite reads every batch of inputPath and writes them to outputPath with the
// configured writer options. The input is fully read before the output file
// is created.
func (r *Rewriter) Rewrite(inputPath, outputPath string) (*Stats, error) {
	in, err := r.Read(inputPath)
	if err != nil {
		return nil, err
	}
	if err := r.Write(outputPath, in); err != nil {
		return nil, err
	}
	return &Stats{
		Rows:           in.NumRows(),
		Batches:        len(in.Batches),
		InputRowGroups: in.RowGroups,
		Columns:        len(in.Schema().Columns()),
	}, nil
}

// Read decodes all batches of the parquet file at path. It fails with
// ErrEmptyInput when the file holds no rows.
func (r *Rewriter) Read(path string) (*Input, error) {
	logger := util.LoggerWithPath(path, r.logger)

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, ioError(err, "opening input file")
	}
	defer runutil.CloseWithLogOnErr(logger, f, "closing input file %s", path)

	stats, err := f.Stat()
	if err != nil {
		return nil, ioError(err, "getting stat of input file %s", path)
	}

	pf, err := parquet.OpenFile(f, stats.Size(),
		parquet.SkipBloomFilters(true),
		parquet.ReadBufferSize(parquetReadBufferSize),
	)
	if err != nil {
		return nil, formatError(err, "reading parquet footer of %s", path)
	}
	level.Debug(logger).Log("msg", "opened input file", "rows", pf.NumRows(), "row_groups", len(pf.RowGroups()), "batch_size", r.cfg.BatchSize)

	batches, err := encparquet.ReadBatches(pf, r.cfg.BatchSize)
	if err != nil {
		return nil, formatError(err, "decoding %s", path)
	}
	if len(batches) == 0 {
		return nil, errors.Wrapf(ErrEmptyInput, "reading %s", path)
	}

	in := &Input{
		Path:      path,
		Batches:   batches,
		RowGroups: len(pf.RowGroups()),
		Metadata:  pf.Metadata().KeyValueMetadata,
	}
	level.Debug(logger).Log("msg", "decoded input file", "batches", len(in.Batches), "rows", in.NumRows())
	return in, nil
}

// Write creates the file at path and writes every batch of in, in order.
//
// The output file is closed on every path but the parquet footer is only
// written when all batches were written successfully.
func (r *Rewriter) Write(path string, in *Input) (err error) {
	if len(in.Batches) == 0 {
		return errors.Wrapf(ErrEmptyInput, "writing %s", path)
	}
	logger := util.LoggerWithPath(path, r.logger)

	f, err := r.fs.Create(path)
	if err != nil {
		return ioError(err, "creating output file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ioError(cerr, "closing output file %s", path)
		}
	}()

	options := make([]parquet.WriterOption, 0, len(in.Metadata))
	for _, kv := range in.Metadata {
		options = append(options, parquet.KeyValueMetadata(kv.Key, kv.Value))
	}
	w, err := encparquet.NewBatchWriter(f, in.Schema(), r.cfg.Writer, options...)
	if err != nil {
		return formatError(err, "opening parquet writer for %s", path)
	}
	level.Debug(logger).Log(
		"msg", "opened parquet writer",
		"format_version", r.cfg.Writer.FormatVersion,
		"dictionary", r.cfg.Writer.Dictionary,
		"max_rows_per_row_group", r.cfg.Writer.MaxRowsPerRowGroup,
	)

	n, err := encparquet.WriteBatches(w, in.Batches)
	if err != nil {
		return writeError(err, "writing %s", path)
	}
	if err := w.Close(); err != nil {
		return writeError(err, "finalizing %s", path)
	}
	level.Info(logger).Log("msg", "rewrote parquet file", "input", in.Path, "rows", n, "batches", len(in.Batches))
	return nil
}
