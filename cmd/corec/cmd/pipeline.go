package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/corec/internal/compiler"
)

// loadInput reads a single named file, or stdin when no file is given, into
// the compiler.SourceFile shape every subcommand feeds to compiler.Load.
func loadInput(args []string) (compiler.SourceFile, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return compiler.SourceFile{}, fmt.Errorf("reading stdin: %w", err)
		}
		return compiler.SourceFile{Path: "<stdin>", Text: string(data)}, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return compiler.SourceFile{}, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return compiler.SourceFile{Path: args[0], Text: string(data)}, nil
}

// printDiagnostics renders every accumulated report to stderr, source-line
// context included when the report's file index matches one of files.
func printDiagnostics(ctx *compiler.CompilationContext, files []compiler.SourceFile) {
	for _, r := range ctx.Sink.Reports() {
		source, name := "", fmt.Sprintf("file%d", r.File)
		if int(r.File) < len(files) {
			source, name = files[r.File].Text, files[r.File].Path
		}
		fmt.Fprintln(os.Stderr, r.Format(source, name, false))
	}
}
