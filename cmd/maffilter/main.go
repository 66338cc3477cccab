// maffilter keeps only the PASS records of a tab-delimited mutation
// annotation file.
package main

import (
	"os"

	"github.com/hupe1980/maffilter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
