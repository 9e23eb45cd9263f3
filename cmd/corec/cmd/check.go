package cmd

import (
	"fmt"

	"github.com/cwbudde/corec/internal/compiler"
	"github.com/spf13/cobra"
)

var checkVersions []string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Resolve names and type-check a source file",
	Long: `Run name registration, name resolution and type checking over a
source file without generating IR.

If no file is given, reads from stdin. Use --version to enable a
#version identifier, repeatable for more than one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringArrayVar(&checkVersions, "version", nil, "enable a #version identifier")
}

func runCheck(cmd *cobra.Command, args []string) error {
	f, err := loadInput(args)
	if err != nil {
		return err
	}
	files := []compiler.SourceFile{f}

	ctx := compiler.NewContext(compiler.CompileOptions{EnabledVersions: checkVersions})
	modules, _ := compiler.Load(ctx, files)
	compiler.TypeCheck(ctx, modules)
	printDiagnostics(ctx, files)

	if ctx.Sink.HasErrors() {
		return fmt.Errorf("check failed")
	}
	fmt.Println("ok")
	return nil
}
