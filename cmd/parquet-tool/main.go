package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/kelvincesar/parquet-enconding/pkg/inspect"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: parquet-tool <file>...")
		os.Exit(1)
	}
	os.Exit(run(os.Stdout, afero.NewOsFs(), os.Args[1:]))
}

func run(out io.Writer, fs afero.Fs, paths []string) int {
	code := 0
	for _, path := range paths {
		r, err := inspect.Open(fs, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s%v\n", color.RedString("Error: "), err)
			code = 1
			continue
		}
		fmt.Fprintln(out, "file:", path)
		r.Render(out)
		printDictionarySummary(out, r)
	}
	return code
}

func printDictionarySummary(out io.Writer, r *inspect.Report) {
	columns := r.DictionaryColumns()
	paths := lo.Keys(columns)
	sort.Strings(paths)
	plain := lo.Filter(paths, func(p string, _ int) bool { return !columns[p] })
	fmt.Fprintf(out, "Dictionary encoded columns: %d/%d\n", len(paths)-len(plain), len(paths))
	if len(plain) > 0 {
		fmt.Fprintln(out, "Not dictionary encoded:", plain)
	}
}
