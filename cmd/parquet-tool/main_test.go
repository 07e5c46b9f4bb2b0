package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvincesar/parquet-enconding/pkg/testhelper"
)

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/data/records.parquet"
	require.NoError(t, afero.WriteFile(fs, path, testhelper.EncodeRows(t, testhelper.Records(20), 0), 0o644))

	var buf bytes.Buffer
	assert.Equal(t, 0, run(&buf, fs, []string{path}))
	assert.Contains(t, buf.String(), "file: "+path)
	assert.Contains(t, buf.String(), "Num Rows: 20")
	assert.Contains(t, buf.String(), "Dictionary encoded columns:")

	buf.Reset()
	assert.Equal(t, 1, run(&buf, fs, []string{"/data/missing.parquet", path}))
	assert.Contains(t, buf.String(), "file: "+path)
}
