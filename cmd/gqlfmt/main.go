// Command gqlfmt parses a GraphQL schema or executable document,
// reports any diagnostics, and prints the document back out via its
// lossless CST.
//
// No CLI framework (cobra, urfave/cli, pflag) appears anywhere in this
// module's dependency pack, so this command sticks to the standard
// library's flag package rather than introducing one.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/parser"
	"github.com/shyptr/gqlcore/source"
)

func main() {
	color := flag.Bool("color", false, "colorize diagnostic output")
	check := flag.Bool("check", false, "only report diagnostics, do not print the document")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gqlfmt [-check] [-color] <file.graphql>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fset := source.NewFileSet()
	file := fset.Add(path, string(text), source.Mixed)
	result := parser.Parse(file, string(text), parser.DefaultOptions())

	if len(result.Diagnostics) > 0 {
		fmt.Fprint(os.Stderr, diagnostic.ReportAll(fset, result.Diagnostics, *color))
	}

	if *check {
		if hasError(result.Diagnostics) {
			os.Exit(1)
		}
		return
	}

	fmt.Print(result.Root.Text())

	if hasError(result.Diagnostics) {
		os.Exit(1)
	}
}

func hasError(ds []diagnostic.Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == diagnostic.SeverityError {
			return true
		}
	}
	return false
}
