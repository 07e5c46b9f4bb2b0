package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go/format"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvincesar/parquet-enconding/pkg/testhelper"
)

func TestOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/data/records.parquet"
	require.NoError(t, afero.WriteFile(fs, path, testhelper.EncodeRows(t, testhelper.Records(250), 100), 0o644))

	r, err := Open(fs, path)
	require.NoError(t, err)

	assert.Equal(t, path, r.Path)
	assert.Equal(t, int64(250), r.NumRows)
	require.Len(t, r.RowGroups, 3)
	assert.Equal(t, []int64{100, 100, 50}, []int64{r.RowGroups[0].NumRows, r.RowGroups[1].NumRows, r.RowGroups[2].NumRows})

	paths := make([]string, 0, len(r.RowGroups[0].Columns))
	for _, c := range r.RowGroups[0].Columns {
		paths = append(paths, c.Path)
	}
	assert.Equal(t, []string{"id", "name", "country", "score", "active", "location/zip", "location/city"}, paths)
	assert.Len(t, r.DictionaryColumns(), 7)

	assert.Contains(t, r.Schema, "score: optional DOUBLE")
	assert.Contains(t, r.Schema, "location: required group")
	assert.Contains(t, r.Schema, "zip: required INT32")
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(afero.NewOsFs(), filepath.Join(t.TempDir(), "missing.parquet"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/garbage.parquet", []byte("not parquet"), 0o644))
	_, err = Open(fs, "/garbage.parquet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading parquet footer of /garbage.parquet")
}

func TestColumn_Dictionary(t *testing.T) {
	for _, tc := range []struct {
		encodings []format.Encoding
		expected  bool
	}{
		{encodings: nil},
		{encodings: []format.Encoding{format.Plain, format.RLE}},
		{encodings: []format.Encoding{format.Plain, format.RLE, format.RLEDictionary}, expected: true},
		{encodings: []format.Encoding{format.PlainDictionary}, expected: true},
	} {
		assert.Equal(t, tc.expected, Column{Encodings: tc.encodings}.Dictionary(), tc.encodings)
	}
}

func TestReport_DictionaryColumns(t *testing.T) {
	dict := []format.Encoding{format.Plain, format.RLEDictionary}
	plain := []format.Encoding{format.Plain}
	r := &Report{
		RowGroups: []RowGroup{
			{Columns: []Column{{Path: "a", Encodings: dict}, {Path: "b", Encodings: dict}, {Path: "c", Encodings: plain}}},
			{Columns: []Column{{Path: "a", Encodings: dict}, {Path: "b", Encodings: plain}, {Path: "c", Encodings: dict}}},
		},
	}
	assert.Equal(t, map[string]bool{"a": true, "b": false, "c": false}, r.DictionaryColumns())
}

func TestReport_Render(t *testing.T) {
	r := &Report{
		Schema:    "message records { required int64 id; }",
		CreatedBy: "parquet-encoder version 1.0.0",
		NumRows:   10,
		RowGroups: []RowGroup{{
			NumRows:       10,
			TotalByteSize: 2048,
			Columns: []Column{{
				Path:             "id",
				Type:             "INT64",
				Codec:            "SNAPPY",
				NumValues:        10,
				Encodings:        []format.Encoding{format.Plain, format.RLEDictionary},
				CompressedSize:   1024,
				UncompressedSize: 2048,
			}},
		}},
	}
	var buf bytes.Buffer
	r.Render(&buf)

	out := buf.String()
	assert.Contains(t, out, "Num Rows: 10")
	assert.Contains(t, out, "Created By: parquet-encoder version 1.0.0")
	assert.Contains(t, out, "Row group: 0")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "ENCODINGS")
	assert.Contains(t, out, "PLAIN,RLE_DICTIONARY")
	assert.Contains(t, out, "true")
}
