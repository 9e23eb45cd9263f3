package cmd

import (
	"fmt"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/compiler"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and report syntax diagnostics",
	Long: `Parse a source file through the lexer and parser, applying static
#if/#version/#foreach/#assert expansion, and report any syntax diagnostics.

If no file is given, reads from stdin. Use --dump-ast to print the parsed
tree back out (printed through the AST printer, not byte-identical to
the input).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "print the parsed tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := loadInput(args)
	if err != nil {
		return err
	}
	files := []compiler.SourceFile{f}

	ctx := compiler.NewContext(compiler.CompileOptions{})
	modules, _ := compiler.Load(ctx, files)
	printDiagnostics(ctx, files)

	if parseDumpAST {
		printer := ast.NewPrinter(ctx.Store, ctx.Ids)
		for _, m := range modules {
			fmt.Print(printer.Print(m.Node))
		}
	}

	if ctx.Sink.HasErrors() {
		return fmt.Errorf("parse failed")
	}
	return nil
}
