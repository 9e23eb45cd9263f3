package compiler

import (
	"strings"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/lexer"
	"github.com/cwbudde/corec/internal/parser"
	"github.com/cwbudde/corec/internal/token"
)

// SourceFile is one input to the loader: a path for diagnostics and the
// file's full text.
type SourceFile struct {
	Path string
	Text string
}

// LoadedModule pairs a parsed Module declaration with the file it came from
// and the dotted path under which it was keyed.
type LoadedModule struct {
	Path string
	File string
	Node ast.Index
}

// Registry is the package tree: a map from dotted module path to the module that
// owns that identity for `import` resolution. Modules form this tree purely
// by their declared dotted path; there is no on-disk directory structure
// requirement.
type Registry struct {
	byPath map[string]ast.Index
}

func newRegistry() *Registry {
	return &Registry{byPath: make(map[string]ast.Index)}
}

// Resolve looks up the module that owns path, following the same
// first-registrant-wins rule Load enforces for conflicting declarations.
func (r *Registry) Resolve(path string) (ast.Index, bool) {
	m, ok := r.byPath[path]
	return m, ok
}

// Load parses every file in files, groups them by declared dotted module
// path (peeked from a leading `module a.b;` line, or derived from the file's
// base name when absent), and reports a NamModuleConflict diagnostic citing
// both file names whenever two files claim the same path.
// Every file is still parsed and its Module node is always returned — a
// conflict never silently drops a module — but only the first file to claim
// a given path is registered in the returned Registry, so later `import`
// resolution against that path (and RegisterModule's name registration,
// since both declare into the same Global scope) succeeds unambiguously
// through the winner.
func Load(ctx *CompilationContext, files []SourceFile) ([]LoadedModule, *Registry) {
	reg := newRegistry()
	owners := make(map[string]string) // path -> first file that claimed it
	out := make([]LoadedModule, 0, len(files))

	for fileID, f := range files {
		pathText, explicit := peekModulePath(f.Text)
		if !explicit {
			pathText = derivePathFromFileName(f.Path)
		}
		pathID := ctx.Ids.GetOrIntern(pathText)

		buf := lexer.Scan(uint32(fileID), f.Text)
		p := parser.New(buf, ctx.Store, ctx.Ids, ctx.Sink)
		mod := p.ParseModule(pathID)

		if owner, conflict := owners[pathText]; conflict {
			ctx.Sink.Add(&diag.Report{
				Code:    diag.NamModuleConflict,
				Phase:   diag.PhaseName,
				Message: "module `" + pathText + "` declared in both " + owner + " and " + f.Path,
				File:    uint32(fileID),
			})
		} else {
			owners[pathText] = f.Path
			reg.byPath[pathText] = mod
		}

		out = append(out, LoadedModule{Path: pathText, File: f.Path, Node: mod})
	}
	return out, reg
}

// peekModulePath lexes just enough of src to read a leading `module a.b;`
// declaration, returning its dotted spelling. It does not consume any
// parser state: the full parse still encounters and records the same
// `module` line as an ordinary leading item (parser.parseModuleDecl), which
// is what lets a mismatch between the peeked and the parsed path (were the
// two ever to disagree) be caught there instead.
func peekModulePath(src string) (string, bool) {
	buf := lexer.Scan(0, src)
	if buf.Len() == 0 || buf.Kinds[0] != token.KwModule {
		return "", false
	}
	var sb strings.Builder
	i := 1
	for i < buf.Len() && buf.Kinds[i] == token.Ident {
		sb.WriteString(buf.Text(i))
		i++
		if i < buf.Len() && buf.Kinds[i] == token.Dot {
			sb.WriteByte('.')
			i++
			continue
		}
		break
	}
	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}

// derivePathFromFileName turns a bare file path with no explicit `module`
// declaration into a single-segment dotted identity: its base name (any
// directories dropped) with the extension stripped and remaining dots
// folded to `_`, so it can never collide with a multi-segment declared
// path by accident.
func derivePathFromFileName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return strings.ReplaceAll(base, ".", "_")
}
