package testhelper

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

// Record is the row type of the parquet fixtures. Its columns are declared in
// non-alphabetical order on purpose.
type Record struct {
	ID       int64    `parquet:"id"`
	Name     string   `parquet:"name"`
	Country  string   `parquet:"country"`
	Score    *float64 `parquet:"score,optional"`
	Active   bool     `parquet:"active"`
	Location Location `parquet:"location"`
}

type Location struct {
	Zip  int32  `parquet:"zip"`
	City string `parquet:"city"`
}

// OptionalRecord has only optional leaves. OptionalRecords never leaves one of
// them null.
type OptionalRecord struct {
	ID    int64   `parquet:"id"`
	Count *int32  `parquet:"count,optional"`
	Label *string `parquet:"label,optional"`
	Flag  *bool   `parquet:"flag,optional"`
}

// Event mixes repeated groups (LIST and MAP) with logical type leaves.
type Event struct {
	UUID  [16]byte         `parquet:"uuid,uuid"`
	Time  time.Time        `parquet:"time,timestamp(millisecond)"`
	Tags  []string         `parquet:"tags,list"`
	Attrs map[string]int64 `parquet:"attrs"`
	Code  [4]byte          `parquet:"code"`
}

var (
	countries = []string{"BR", "US", "DE", "JP"}
	cities    = []string{"Curitiba", "Lisbon", "Osaka"}
	tags      = []string{"db", "api", "batch", "cron"}
)

// Records returns n deterministic records with low cardinality string
// columns and every fifth score unset.
func Records(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			ID:      int64(i),
			Name:    fmt.Sprintf("name-%d", i%50),
			Country: countries[i%len(countries)],
			Active:  i%3 == 0,
			Location: Location{
				Zip:  int32(80000 + i%7),
				City: cities[i%len(cities)],
			},
		}
		if i%5 != 0 {
			score := float64(i) / 2
			records[i].Score = &score
		}
	}
	return records
}

// OptionalRecords returns n records with every optional column set.
func OptionalRecords(n int) []OptionalRecord {
	records := make([]OptionalRecord, n)
	for i := range records {
		count := int32(i % 10)
		label := countries[i%len(countries)]
		flag := i%2 == 0
		records[i] = OptionalRecord{ID: int64(i), Count: &count, Label: &label, Flag: &flag}
	}
	return records
}

// Events returns n deterministic events with one to three tags and two
// attributes each.
func Events(n int) []Event {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	events := make([]Event, n)
	for i := range events {
		e := Event{
			Time: base.Add(time.Duration(i%100) * time.Second).Add(time.Duration(i%7) * time.Millisecond),
			Tags: make([]string, 1+i%3),
			Attrs: map[string]int64{
				"retries": int64(i % 4),
				"status":  int64(200 + i%3),
			},
			Code: [4]byte{'E', byte('0' + i%10), byte('0' + i%3), 'X'},
		}
		e.UUID[0], e.UUID[15] = byte(i%16), byte(i%5)
		for j := range e.Tags {
			e.Tags[j] = tags[(i+j)%len(tags)]
		}
		events[i] = e
	}
	return events
}

// EncodeRows encodes rows as a parquet file, cutting a row group every
// rowGroupSize rows. With rowGroupSize <= 0 a single row group is written.
func EncodeRows[T any](t testing.TB, rows []T, rowGroupSize int, options ...parquet.WriterOption) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[T](&buf, options...)
	if rowGroupSize <= 0 {
		rowGroupSize = len(rows)
	}
	for start := 0; start < len(rows); start += rowGroupSize {
		end := min(start+rowGroupSize, len(rows))
		_, err := w.Write(rows[start:end])
		require.NoError(t, err)
		require.NoError(t, w.Flush())
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// WriteRows writes rows to a new parquet file at path. See EncodeRows for the
// row group layout.
func WriteRows[T any](t testing.TB, path string, rows []T, rowGroupSize int, options ...parquet.WriterOption) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, EncodeRows(t, rows, rowGroupSize, options...), 0o644))
}

// ReadRows reads back every row of the parquet file at path.
func ReadRows[T any](t testing.TB, path string) []T {
	t.Helper()
	return readRows[T](t, OpenFile(t, path))
}

// DecodeRows reads back every row of an in-memory parquet file.
func DecodeRows[T any](t testing.TB, data []byte) []T {
	t.Helper()
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return readRows[T](t, pf)
}

func readRows[T any](t testing.TB, pf *parquet.File) []T {
	r := parquet.NewGenericReader[T](pf)
	defer func() { require.NoError(t, r.Close()) }()

	rows := make([]T, pf.NumRows())
	var n int
	for n < len(rows) {
		m, err := r.Read(rows[n:])
		n += m
		if err != io.EOF {
			require.NoError(t, err)
		}
		if err == io.EOF || m == 0 {
			break
		}
	}
	require.Equal(t, len(rows), n)
	return rows
}

// OpenFile opens the parquet file at path. The file is closed when the test
// ends.
func OpenFile(t testing.TB, path string) *parquet.File {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	stats, err := f.Stat()
	require.NoError(t, err)
	pf, err := parquet.OpenFile(f, stats.Size())
	require.NoError(t, err)
	return pf
}
