// Command linter runs the forbiddencalls analyzer.
package main

import (
	"github.com/MikhailRaia/shorturls/cmd/linter/analyzer"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
