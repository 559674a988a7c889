package common

import (
	"github.com/iley/fang/internal/ast"
)

// GatherLiterals interns every string, prompt and real constant of the program
// into pool in traversal order. It must run before any code is emitted so the
// data section can be written in one piece.
func GatherLiterals(pool *LiteralPool, program *ast.Program) {
	if program == nil {
		return
	}
	for _, stmt := range program.Statements {
		if ast.IsNil(stmt) {
			continue
		}
		switch stmt := stmt.(type) {
		case *ast.Assign:
			gatherExpressionLiterals(pool, stmt.Value)
		case *ast.Print:
			gatherExpressionLiterals(pool, stmt.Value)
		case *ast.PrintList:
			for _, v := range stmt.Values {
				gatherExpressionLiterals(pool, v)
			}
		}
	}
}

func gatherExpressionLiterals(pool *LiteralPool, expr ast.Expression) {
	if ast.IsNil(expr) {
		return
	}
	switch expr := expr.(type) {
	case *ast.RealLiteral:
		pool.InternReal(expr.Value)
	case *ast.StringLiteral:
		pool.InternString(expr.Text)
	case *ast.Input:
		pool.InternString(expr.Prompt)
	case *ast.BinaryOp:
		gatherExpressionLiterals(pool, expr.Left)
		gatherExpressionLiterals(pool, expr.Right)
	}
}

// GatherVariables returns the names of all variables the program assigns or
// reads, in first-seen order.
func GatherVariables(program *ast.Program) []string {
	if program == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var result []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}

	var visit func(ast.Expression)
	visit = func(expr ast.Expression) {
		if ast.IsNil(expr) {
			return
		}
		switch expr := expr.(type) {
		case *ast.VariableRef:
			add(expr.Name)
		case *ast.BinaryOp:
			visit(expr.Left)
			visit(expr.Right)
		}
	}

	for _, stmt := range program.Statements {
		if ast.IsNil(stmt) {
			continue
		}
		switch stmt := stmt.(type) {
		case *ast.Assign:
			add(stmt.Name)
			visit(stmt.Value)
		case *ast.Print:
			visit(stmt.Value)
		case *ast.PrintList:
			for _, v := range stmt.Values {
				visit(v)
			}
		}
	}
	return result
}
