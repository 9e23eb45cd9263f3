// Command corec is the thin CLI harness over the compiler pipeline: parse,
// check, irgen and version subcommands, each a few lines over
// internal/compiler. It carries no behavior of its own.
package main

import (
	"os"

	"github.com/cwbudde/corec/cmd/corec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
