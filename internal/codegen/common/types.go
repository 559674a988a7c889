package common

import (
	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/symbols"
)

// IsReal reports whether expr computes a real value on its own. A single real
// leaf anywhere below a binary operation makes the whole operation real.
// Strings and input reads have no domain of their own and report false; the
// consuming context decides for them. Unknown variables count as integers.
func IsReal(syms *symbols.Table, expr ast.Expression) bool {
	if ast.IsNil(expr) {
		return false
	}
	switch expr := expr.(type) {
	case *ast.RealLiteral:
		return true
	case *ast.VariableRef:
		return syms.TypeOf(expr.Name).IsReal()
	case *ast.BinaryOp:
		return IsReal(syms, expr.Left) || IsReal(syms, expr.Right)
	case *ast.IntegerLiteral, *ast.StringLiteral, *ast.Input:
		return false
	}
	return false
}
