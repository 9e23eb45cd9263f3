package cmd

import (
	"fmt"

	"github.com/cwbudde/corec/internal/compiler"
	"github.com/cwbudde/corec/internal/ir"
	"github.com/spf13/cobra"
)

var irgenVersions []string

var irgenCmd = &cobra.Command{
	Use:   "irgen [file]",
	Short: "Compile a source file down to SSA IR and print it",
	Long: `Run the full pipeline - parsing, name resolution, type checking and
SSA IR generation - over a source file, then print the generated IR in a
disassembler-style listing.

If no file is given, reads from stdin. Use --version to enable a #version
identifier, repeatable for more than one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIrgen,
}

func init() {
	rootCmd.AddCommand(irgenCmd)
	irgenCmd.Flags().StringArrayVar(&irgenVersions, "version", nil, "enable a #version identifier")
}

func runIrgen(cmd *cobra.Command, args []string) error {
	f, err := loadInput(args)
	if err != nil {
		return err
	}
	files := []compiler.SourceFile{f}

	ctx := compiler.NewContext(compiler.CompileOptions{EnabledVersions: irgenVersions})
	modules, _ := compiler.Load(ctx, files)
	compiler.Compile(ctx, modules)
	printDiagnostics(ctx, files)

	if ctx.Sink.HasErrors() {
		return fmt.Errorf("irgen failed")
	}

	fmt.Print(ir.NewPrinter(ctx.Program).PrintProgram())
	return nil
}
