// File: internal/sandbox/sandbox.go
// Description: Executes calculation snippets against a persistent variable
// store. Starlark gives a Python-like expression language whose universe
// contains only pure built-ins: there is no mechanism to load modules or
// reach files, the network, or processes. This is a convenience sandbox for
// arithmetic, not a security boundary.
package sandbox

import (
	"errors"
	"strings"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

// Context is the persistent mapping from variable name to value. It lives
// for the whole process and is mutated only by successful executions.
type Context = starlark.StringDict

// fileOptions enables the top-level forms models actually emit: loops,
// conditionals, sets, and rebinding a name within one snippet.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// maxExecutionSteps bounds a single snippet so a runaway loop cannot hang
// the agent cycle.
const maxExecutionSteps = 1 << 22

// Evaluator runs snippets in an isolated Starlark thread.
type Evaluator struct {
	logger *zap.Logger
}

// NewEvaluator returns a sandbox evaluator.
func NewEvaluator(logger *zap.Logger) *Evaluator {
	return &Evaluator{logger: logger.Named("sandbox")}
}

// Execute runs one snippet with ctx as its environment. New top-level
// bindings are reported as "name = value" pairs joined by "; " in source
// order, or "OK" when the snippet bound nothing new. Errors never propagate:
// they come back as "ERROR: <kind>: <message>" with ctx unchanged.
func (e *Evaluator) Execute(code string, ctx Context) (string, Context) {
	thread := &starlark.Thread{
		Name: "calc",
		Print: func(_ *starlark.Thread, msg string) {
			e.logger.Debug("Sandbox print", zap.String("output", msg))
		},
	}
	thread.SetMaxExecutionSteps(maxExecutionSteps)

	predeclared := make(starlark.StringDict, len(ctx))
	for name, value := range ctx {
		predeclared[name] = value
	}

	globals, err := starlark.ExecFileOptions(fileOptions, thread, "calc.star", code, predeclared)
	if err != nil {
		e.logger.Debug("Sandbox execution failed", zap.Error(err))
		return formatError(err), ctx
	}

	newCtx := make(Context, len(ctx)+len(globals))
	for name, value := range ctx {
		newCtx[name] = value
	}
	for name, value := range globals {
		newCtx[name] = value
	}

	var parts []string
	for _, name := range orderedBindings(code, globals) {
		if _, existed := ctx[name]; existed {
			continue
		}
		parts = append(parts, name+" = "+globals[name].String())
	}
	if len(parts) == 0 {
		return "OK", newCtx
	}
	return strings.Join(parts, "; "), newCtx
}

// orderedBindings returns the names bound by the snippet in source order.
// The execution above already succeeded, so the parse cannot fail; if it
// somehow does, or a binding is not visible in the tree, lexical order from
// the globals dict is the fallback.
func orderedBindings(code string, globals starlark.StringDict) []string {
	ordered := make([]string, 0, len(globals))
	seen := make(map[string]bool, len(globals))

	add := func(name string) {
		if _, bound := globals[name]; bound && !seen[name] {
			seen[name] = true
			ordered = append(ordered, name)
		}
	}

	if file, err := fileOptions.Parse("calc.star", code, 0); err == nil {
		collectBindings(file.Stmts, add)
	}
	for _, name := range globals.Keys() {
		add(name)
	}
	return ordered
}

// collectBindings walks top-level statements in source order and reports
// every name they may bind.
func collectBindings(stmts []syntax.Stmt, add func(string)) {
	var lhs func(expr syntax.Expr)
	lhs = func(expr syntax.Expr) {
		switch expr := expr.(type) {
		case *syntax.Ident:
			add(expr.Name)
		case *syntax.TupleExpr:
			for _, elem := range expr.List {
				lhs(elem)
			}
		case *syntax.ListExpr:
			for _, elem := range expr.List {
				lhs(elem)
			}
		case *syntax.ParenExpr:
			lhs(expr.X)
		}
	}

	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *syntax.AssignStmt:
			if stmt.Op == syntax.EQ {
				lhs(stmt.LHS)
			}
		case *syntax.DefStmt:
			add(stmt.Name.Name)
		case *syntax.ForStmt:
			lhs(stmt.Vars)
			collectBindings(stmt.Body, add)
		case *syntax.WhileStmt:
			collectBindings(stmt.Body, add)
		case *syntax.IfStmt:
			collectBindings(stmt.True, add)
			collectBindings(stmt.False, add)
		}
	}
}

// formatError renders any Starlark failure in the "ERROR: <kind>: <message>"
// shape the reflection prompt expects.
func formatError(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return "ERROR: EvalError: " + evalErr.Msg
	}
	var syntaxErr syntax.Error
	if errors.As(err, &syntaxErr) {
		return "ERROR: SyntaxError: " + syntaxErr.Msg
	}
	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) && len(resolveErrs) > 0 {
		return "ERROR: NameError: " + resolveErrs[0].Msg
	}
	return "ERROR: " + err.Error()
}
