// Package dsl compiles dataquery DSL text into DuckDB-compatible SQL.
//
// The DSL is a single-statement SQL dialect (SELECT, INSERT, UPDATE, DELETE) with a few
// convenience functions that are rewritten to their DuckDB equivalents during compilation.
// Compilation may yield a non-fatal warning alongside the compiled Query.
package dsl

import (
	"strings"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

// FunctionRule defines how a DSL function is translated.
type FunctionRule struct {
	Name       string                       // DuckDB function name (for simple renames)
	Arity      int                          // Required argument count, 0 for variadic
	Deprecated bool                         // Emit a warning pointing at Name
	Rewrite    func(fn *sqlparser.FuncExpr) // In-place rewrite for non-rename translations
}

// Compiler turns normalized DSL text into a Query.
// A Compiler is safe for concurrent use; its function table is read-only after construction.
type Compiler struct {
	functions map[string]FunctionRule
}

// NewCompiler creates a compiler with the default DSL function table.
func NewCompiler() *Compiler {
	c := &Compiler{
		functions: make(map[string]FunctionRule),
	}
	c.registerFunctions()
	return c
}

func (c *Compiler) registerFunctions() {
	c.functions["IFF"] = FunctionRule{Name: "IF", Arity: 3}
	c.functions["NVL"] = FunctionRule{Name: "COALESCE", Arity: 2, Deprecated: true}
	c.functions["IFNULL"] = FunctionRule{Name: "COALESCE", Arity: 2, Deprecated: true}
	c.functions["LISTAGG"] = FunctionRule{Name: "STRING_AGG"}

	// NVL2(a, b, c) → IF(a is not null, b, c)
	c.functions["NVL2"] = FunctionRule{
		Arity: 3,
		Rewrite: func(fn *sqlparser.FuncExpr) {
			first, ok := fn.Exprs[0].(*sqlparser.AliasedExpr)
			if !ok {
				return
			}
			fn.Name = sqlparser.NewColIdent("IF")
			fn.Exprs[0] = &sqlparser.AliasedExpr{
				Expr: &sqlparser.IsExpr{
					Operator: "is not null",
					Expr:     first.Expr,
				},
			}
		},
	}
}

// Normalize cleans up raw query text. See the package-level Normalize.
func (c *Compiler) Normalize(raw string) (string, error) {
	return Normalize(raw)
}

// Compile parses normalized DSL text, rewrites DSL functions and checks the statement.
// On success it returns the compiled Query and a warning that is empty when the
// compiler has nothing to flag. Failures are always *CompileError.
func (c *Compiler) Compile(text string) (Query, string, error) {
	if strings.TrimSpace(text) == "" {
		return Query{}, "", newCompileError(CodeEmptyQuery, "query text is empty")
	}

	stmt, err := sqlparser.Parse(text)
	if err != nil {
		return Query{}, "", &CompileError{Code: CodeSyntaxError, Message: err.Error(), Err: err}
	}

	kind := kindOf(stmt)
	if !kind.Supported() {
		return Query{}, "", newCompileError(CodeUnsupportedStatement,
			"unsupported statement: %s", firstWord(text))
	}

	var warnings []string
	if err := c.translate(stmt, &warnings); err != nil {
		return Query{}, "", err
	}
	warnings = append(warnings, inspect(stmt)...)

	return Query{stmt: stmt, kind: kind, source: text}, strings.Join(warnings, "; "), nil
}

// translate rewrites DSL functions in place. It runs before the Query is handed out.
func (c *Compiler) translate(stmt sqlparser.Statement, warnings *[]string) error {
	seen := make(map[string]bool)
	return sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		fn, ok := node.(*sqlparser.FuncExpr)
		if !ok {
			return true, nil
		}
		funcName := strings.ToUpper(fn.Name.String())
		rule, ok := c.functions[funcName]
		if !ok {
			return true, nil
		}
		if rule.Arity > 0 && len(fn.Exprs) != rule.Arity {
			return false, newCompileError(CodeFunctionArity,
				"function %s expects %d arguments, got %d", funcName, rule.Arity, len(fn.Exprs))
		}
		if rule.Deprecated && !seen[funcName] {
			seen[funcName] = true
			*warnings = append(*warnings, "function "+funcName+" is deprecated, use "+rule.Name)
		}
		switch {
		case rule.Rewrite != nil:
			rule.Rewrite(fn)
		case rule.Name != "":
			fn.Name = sqlparser.NewColIdent(rule.Name)
		}
		return true, nil
	}, stmt)
}

// inspect flags constructs that compile but are likely mistakes.
func inspect(stmt sqlparser.Statement) []string {
	var warnings []string
	switch s := stmt.(type) {
	case *sqlparser.Select:
		if hasStar(s.SelectExprs) {
			warnings = append(warnings, "query selects all columns with *, list the fields explicitly")
		}
	case *sqlparser.Update:
		if s.Where == nil {
			warnings = append(warnings, "UPDATE without WHERE affects every row")
		}
	case *sqlparser.Delete:
		if s.Where == nil {
			warnings = append(warnings, "DELETE without WHERE affects every row")
		}
	}
	return warnings
}

func hasStar(exprs sqlparser.SelectExprs) bool {
	for _, e := range exprs {
		if _, ok := e.(*sqlparser.StarExpr); ok {
			return true
		}
	}
	return false
}

func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
