package compiler

import "github.com/cwbudde/corec/internal/ast"

// Compile is the entry point to the entire pipeline: register every loaded
// module's top-level names, then for each module require type_check_done on
// every declaration and ir_gen_done on every function body, exactly the
// two-step sweep described for the whole-program driving loop. Registration
// happens for every module before any type checking does, so a forward
// reference from module A to a name declared in module B (loaded after A)
// still resolves — PropNameResolve pulls B's registration in lazily via the
// Driver if it has not run yet, but the name itself must already be visible
// in the Global scope, which only RegisterModule can put it in.
func Compile(ctx *CompilationContext, modules []LoadedModule) {
	if !TypeCheck(ctx, modules) {
		return
	}
	for _, m := range modules {
		for _, it := range ctx.Store.ModuleItems(m.Node) {
			if it.Kind() == ast.KindFuncDecl {
				ctx.Driver.Require(it, ast.PropIrGen)
			}
		}
	}
}

// TypeCheck registers every loaded module's top-level names, then requires
// type_check_done on every declaration. It is the half of Compile a `check`
// subcommand needs without reaching IR generation, and is also what Compile
// itself runs first. It reports whether it reached full type checking: when
// ctx.Options.SkipTypeCheck is set, only name resolution runs (a tooling use
// such as go-to-definition, which never needs a type) and it returns false.
func TypeCheck(ctx *CompilationContext, modules []LoadedModule) bool {
	for _, m := range modules {
		ctx.Analyzer.RegisterModule(m.Node)
	}
	if ctx.Options.SkipTypeCheck {
		for _, m := range modules {
			for _, it := range ctx.Store.ModuleItems(m.Node) {
				ctx.Driver.Require(it, ast.PropNameRegisterNested)
				ctx.Driver.Require(it, ast.PropNameResolve)
			}
		}
		return false
	}
	for _, m := range modules {
		for _, it := range ctx.Store.ModuleItems(m.Node) {
			ctx.Driver.Require(it, ast.PropNameRegisterNested)
			ctx.Driver.Require(it, ast.PropNameResolve)
			ctx.Driver.Require(it, ast.PropType)
		}
	}
	return true
}
