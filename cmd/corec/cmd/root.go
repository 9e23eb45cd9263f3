package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "corec",
	Short: "corec compiler front end and mid-end",
	Long: `corec parses, analyzes and lowers a small statically-typed systems
language to SSA IR.

It covers the pipeline from source through semantic analysis to an SSA
intermediate representation ready for a code generator:
  - arena-backed AST with static #if/#version/#foreach expansion
  - lazy, cycle-detecting name registration, resolution and type checking
  - direct SSA construction (Braun et al.) with trivial-phi elimination

Target-specific lowering, register allocation and object-file emission are
out of scope: corec's output is a printable, inspectable IR.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
