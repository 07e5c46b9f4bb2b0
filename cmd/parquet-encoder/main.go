package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/kelvincesar/parquet-enconding/pkg/build"
	"github.com/kelvincesar/parquet-enconding/pkg/inspect"
	"github.com/kelvincesar/parquet-enconding/pkg/rewrite"
	"github.com/kelvincesar/parquet-enconding/pkg/util"
)

type config struct {
	verbose bool
	input   string
	output  string
}

var consoleOutput = os.Stderr

func main() {
	var cfg config
	ctx := withOutput(context.Background(), os.Stdout)

	app := newApp(&cfg)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := util.NewLogger(consoleOutput, cfg.verbose)
	os.Exit(checkError(rewriteFile(ctx, logger, cfg)))
}

func newApp(cfg *config) *kingpin.Application {
	app := kingpin.New(filepath.Base(os.Args[0]), "Rewrites a Parquet file with dictionary encoding.").UsageWriter(os.Stdout)
	app.Version(build.Summary("parquet-encoder"))
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable verbose logging and print the encoding report of the output file.").Short('v').Default("false").BoolVar(&cfg.verbose)
	app.Flag("input", "Input Parquet file.").Short('i').Required().PlaceHolder("INPUT").StringVar(&cfg.input)
	app.Flag("output", "Output Parquet file.").Short('o').Required().PlaceHolder("OUTPUT").StringVar(&cfg.output)
	return app
}

func rewriteFile(ctx context.Context, logger log.Logger, cfg config) error {
	out := output(ctx)

	fs := afero.NewOsFs()
	r, err := rewrite.New(logger, fs, rewrite.DefaultConfig())
	if err != nil {
		return err
	}

	stop := startSpinner(out, " reading "+cfg.input)
	in, err := r.Read(cfg.input)
	stop()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Read %d batches from the input Parquet file\n", len(in.Batches))

	stop = startSpinner(out, " writing "+cfg.output)
	err = r.Write(cfg.output, in)
	stop()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Rewritten Parquet file with dictionary encoding enabled to: %s\n", cfg.output)

	if cfg.verbose {
		report, err := inspect.Open(fs, cfg.output)
		if err != nil {
			return err
		}
		report.Render(out)
	}
	return nil
}

// startSpinner shows a spinner on out while a step runs. It is a no-op unless
// out is a terminal.
func startSpinner(out io.Writer, suffix string) (stop func()) {
	f, ok := out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return func() {}
	}
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithHiddenCursor(true),
		spinner.WithWriter(out),
	)
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

func checkError(err error) int {
	switch err {
	case nil:
		return 0
	default:
		fmt.Fprintf(os.Stderr, "%s%v\n", color.RedString("Error: "), err)
	}
	return 1
}

type contextKey uint8

const (
	contextKeyOutput contextKey = iota
)

func withOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, contextKeyOutput, w)
}

func output(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(contextKeyOutput).(io.Writer); ok {
		return w
	}
	return os.Stdout
}
