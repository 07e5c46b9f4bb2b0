// Package inspect reports how the columns of a parquet file are laid out and
// encoded.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/grafana/dskit/runutil"
	"github.com/olekukonko/tablewriter"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/xlab/treeprint"

	encparquet "github.com/kelvincesar/parquet-enconding/pkg/parquet"
)

type Column struct {
	Path             string
	Type             string
	Codec            string
	NumValues        int64
	Encodings        []format.Encoding
	CompressedSize   int64
	UncompressedSize int64
}

// Dictionary reports whether the column chunk has dictionary encoded pages.
func (c Column) Dictionary() bool {
	return lo.ContainsBy(c.Encodings, isDictionaryEncoding)
}

type RowGroup struct {
	NumRows       int64
	TotalByteSize int64
	Columns       []Column
}

type Report struct {
	Path      string
	Schema    string
	CreatedBy string
	NumRows   int64
	RowGroups []RowGroup
}

// Open reads the footer of the parquet file at path on fs and builds its
// report.
func Open(fs afero.Fs, path string) (_ *Report, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer runutil.CloseWithErrCapture(&err, f, "closing parquet file %s", path)

	pf, err := encparquet.OpenFile(f, parquet.SkipBloomFilters(true))
	if err != nil {
		return nil, errors.Wrapf(err, "reading parquet footer of %s", path)
	}
	return FromFile(path, pf), nil
}

// FromFile builds the report of an already opened parquet file.
func FromFile(path string, pf *parquet.File) *Report {
	meta := pf.Metadata()
	r := &Report{
		Path:      path,
		Schema:    schemaTree(pf.Schema()),
		CreatedBy: meta.CreatedBy,
		NumRows:   meta.NumRows,
		RowGroups: make([]RowGroup, len(meta.RowGroups)),
	}
	for i, rg := range meta.RowGroups {
		r.RowGroups[i] = RowGroup{
			NumRows:       rg.NumRows,
			TotalByteSize: rg.TotalByteSize,
			Columns: lo.Map(rg.Columns, func(cc format.ColumnChunk, _ int) Column {
				return Column{
					Path:             strings.Join(cc.MetaData.PathInSchema, "/"),
					Type:             cc.MetaData.Type.String(),
					Codec:            cc.MetaData.Codec.String(),
					NumValues:        cc.MetaData.NumValues,
					Encodings:        cc.MetaData.Encoding,
					CompressedSize:   cc.MetaData.TotalCompressedSize,
					UncompressedSize: cc.MetaData.TotalUncompressedSize,
				}
			}),
		}
	}
	return r
}

// DictionaryColumns returns, per column path, whether every chunk of the
// column is dictionary encoded.
func (r *Report) DictionaryColumns() map[string]bool {
	columns := make(map[string]bool)
	for _, rg := range r.RowGroups {
		for _, c := range rg.Columns {
			encoded, seen := columns[c.Path]
			columns[c.Path] = c.Dictionary() && (encoded || !seen)
		}
	}
	return columns
}

// Render prints the report as one table per row group.
func (r *Report) Render(out io.Writer) {
	fmt.Fprintln(out, "schema:")
	fmt.Fprintln(out, r.Schema)
	fmt.Fprintln(out, "Num Rows:", r.NumRows)
	if r.CreatedBy != "" {
		fmt.Fprintln(out, "Created By:", r.CreatedBy)
	}
	for i, rg := range r.RowGroups {
		fmt.Fprintln(out, "\t Row group:", i)
		fmt.Fprintln(out, "\t\t Row Count:", rg.NumRows)
		fmt.Fprintln(out, "\t\t Row size:", humanize.Bytes(uint64(rg.TotalByteSize)))
		fmt.Fprintln(out, "\t\t Columns:")
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{
			"Col", "Type", "NumVal", "Encodings", "Dictionary", "Codec", "TotalCompressedSize", "TotalUncompressedSize",
		})
		for _, c := range rg.Columns {
			table.Append([]string{
				c.Path,
				c.Type,
				fmt.Sprintf("%d", c.NumValues),
				strings.Join(lo.Map(c.Encodings, func(e format.Encoding, _ int) string { return e.String() }), ","),
				fmt.Sprintf("%t", c.Dictionary()),
				c.Codec,
				humanize.Bytes(uint64(c.CompressedSize)),
				humanize.Bytes(uint64(c.UncompressedSize)),
			})
		}
		table.Render()
	}
}

func isDictionaryEncoding(e format.Encoding) bool {
	return e == format.PlainDictionary || e == format.RLEDictionary
}

// schemaTree renders the schema as a tree with one node per field.
func schemaTree(schema *parquet.Schema) string {
	tree := treeprint.NewWithRoot(schema.Name())
	addFields(tree, schema.Fields())
	return strings.TrimSpace(tree.String())
}

func addFields(tree treeprint.Tree, fields []parquet.Field) {
	for _, f := range fields {
		if f.Leaf() {
			tree.AddNode(fmt.Sprintf("%s: %s %s", f.Name(), repetition(f), f.Type()))
			continue
		}
		addFields(tree.AddBranch(fmt.Sprintf("%s: %s group", f.Name(), repetition(f))), f.Fields())
	}
}

func repetition(n parquet.Node) string {
	switch {
	case n.Optional():
		return "optional"
	case n.Repeated():
		return "repeated"
	default:
		return "required"
	}
}
