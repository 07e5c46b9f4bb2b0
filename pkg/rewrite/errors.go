package rewrite

import (
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

var (
	// ErrIO is returned when a file cannot be opened, read, written or closed.
	ErrIO = errors.New("io error")
	// ErrFormat is returned when the input is not a valid parquet file or the
	// writer cannot encode the schema with the configured options.
	ErrFormat = errors.New("format error")
	// ErrEmptyInput is returned when the input file yields no batches.
	ErrEmptyInput = errors.New("no data found in the input parquet file")
)

// kindError tags err with one of the error kinds above so callers can match it
// with errors.Is while the message stays the wrapped one.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string        { return e.err.Error() }
func (e *kindError) Unwrap() error        { return e.err }
func (e *kindError) Is(target error) bool { return target == e.kind }

func ioError(err error, format string, args ...interface{}) error {
	return &kindError{kind: ErrIO, err: errors.Wrapf(err, format, args...)}
}

func formatError(err error, format string, args ...interface{}) error {
	return &kindError{kind: ErrFormat, err: errors.Wrapf(err, format, args...)}
}

// writeError classifies an error returned while encoding or flushing the
// output. Filesystem failures surface from the os.File as *fs.PathError.
func writeError(err error, format string, args ...interface{}) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) || errors.Is(err, io.ErrShortWrite) || errors.Is(err, os.ErrClosed) {
		return ioError(err, format, args...)
	}
	return formatError(err, format, args...)
}
