// Package analyzer reports calls that bypass error returns or structured logging.
package analyzer

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "forbiddencalls"
	analyzerDoc  = "reports panic, log.Fatal and os.Exit outside func main, and fmt.Print* outside package main"
)

// Analyzer checks for forbidden function calls.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	insp.WithStack(nodeFilter, func(node ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		checkCall(pass, node.(*ast.CallExpr), inMainFunc(stack))
		return true
	})

	return nil, nil
}

func checkCall(pass *analysis.Pass, call *ast.CallExpr, inMain bool) {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		if fn.Name != "panic" {
			return
		}
		if _, ok := pass.TypesInfo.Uses[fn].(*types.Builtin); ok {
			pass.Reportf(call.Pos(), "panic is forbidden")
		}
	case *ast.SelectorExpr:
		checkSelector(pass, fn, call, inMain)
	}
}

func checkSelector(pass *analysis.Pass, sel *ast.SelectorExpr, call *ast.CallExpr, inMain bool) {
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return
	}

	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return
	}

	name := sel.Sel.Name

	switch pkgName.Imported().Path() {
	case "log":
		if name == "Fatal" && !inMain {
			pass.Reportf(call.Pos(), "log.Fatal is forbidden outside main function")
		}
	case "os":
		if name == "Exit" && !inMain {
			pass.Reportf(call.Pos(), "os.Exit is forbidden outside main function")
		}
	case "fmt":
		if strings.HasPrefix(name, "Print") && pass.Pkg.Name() != "main" {
			pass.Reportf(call.Pos(), "fmt.%s is forbidden outside package main, use the logger", name)
		}
	}
}

// inMainFunc reports whether the innermost enclosing declaration is the
// top-level func main. Closures inside main count as main.
func inMainFunc(stack []ast.Node) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		if decl, ok := stack[i].(*ast.FuncDecl); ok {
			return decl.Recv == nil && decl.Name.Name == "main"
		}
	}
	return false
}
