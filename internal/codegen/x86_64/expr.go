package x86_64

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/iley/fang/internal/asm"
	"github.com/iley/fang/internal/ast"
)

// Result locations: integers end up in %rax, reals in %xmm0.
//
// generateExpression leaves the value of expr in %xmm0 when expr is real on its
// own or expectReal is set, and in %rax otherwise. Integer leaves evaluated in
// a real context are converted.
func generateExpression(cc *CodegenContext, expr ast.Expression, expectReal bool) []asm.Line {
	if ast.IsNil(expr) {
		log.Warn("missing expression, using zero", "real", expectReal)
		return zero(expectReal)
	}

	switch expr := expr.(type) {
	case *ast.IntegerLiteral:
		lines := []asm.Line{asm.Op2("movq", asm.Imm(expr.Value), asm.RAX)}
		if expectReal {
			lines = append(lines, promoteToReal())
		}
		return lines
	case *ast.RealLiteral:
		label := cc.pool.InternReal(expr.Value)
		return []asm.Line{asm.Op2("movsd", asm.RIP(label), asm.XMM0)}
	case *ast.VariableRef:
		return generateVariableLoad(cc, expr.Name, expectReal)
	case *ast.Input:
		return generateRead(cc, cc.pool.InternString(expr.Prompt), expectReal)
	case *ast.StringLiteral:
		log.Warn("string literal used as a number, using zero", "text", expr.Text)
		return zero(expectReal)
	case *ast.BinaryOp:
		if cc.isReal(expr) || expectReal {
			return generateRealBinaryOp(cc, expr)
		}
		return generateIntegerBinaryOp(cc, expr)
	}
	panic(fmt.Sprintf("unknown expression type %T", expr))
}

func promoteToReal() asm.Line {
	return asm.Op2("cvtsi2sdq", asm.RAX, asm.XMM0)
}

func generateVariableLoad(cc *CodegenContext, name string, expectReal bool) []asm.Line {
	if cc.isRealVariable(name) {
		return []asm.Line{asm.Op2("movsd", asm.RIP(variableLabel(name)), asm.XMM0)}
	}
	lines := []asm.Line{asm.Op2("movq", asm.RIP(variableLabel(name)), asm.RAX)}
	if expectReal {
		lines = append(lines, promoteToReal())
	}
	return lines
}

// generateRealBinaryOp parks the left operand in %xmm2 while the right one is
// evaluated. There is only one such scratch register: a real binary operation
// nested as the right operand, or an input read there, overwrites it.
func generateRealBinaryOp(cc *CodegenContext, binop *ast.BinaryOp) []asm.Line {
	var lines []asm.Line
	lines = append(lines, generateExpression(cc, binop.Left, true)...)
	lines = append(lines, asm.Op2("movsd", asm.XMM0, asm.XMM2))
	lines = append(lines, generateExpression(cc, binop.Right, true)...)
	lines = append(lines, asm.Op2("movsd", asm.XMM2, asm.XMM1))

	switch binop.Operator {
	case ast.OpAdd:
		lines = append(lines, asm.Op2("addsd", asm.XMM0, asm.XMM1))
	case ast.OpSub:
		lines = append(lines, asm.Op2("subsd", asm.XMM0, asm.XMM1))
	case ast.OpMul:
		lines = append(lines, asm.Op2("mulsd", asm.XMM0, asm.XMM1))
	case ast.OpDiv:
		lines = append(lines, asm.Op2("divsd", asm.XMM0, asm.XMM1))
	default:
		log.Warn("unknown binary operator, using zero", "op", binop.Operator)
		return append(lines, zero(true)...)
	}

	lines = append(lines, asm.Op2("movsd", asm.XMM1, asm.XMM0))
	return lines
}

// generateIntegerBinaryOp saves the left operand on the stack while the right
// one is evaluated. Slots are 16 bytes so that calls made by the right operand
// (input reads) still see an aligned stack.
func generateIntegerBinaryOp(cc *CodegenContext, binop *ast.BinaryOp) []asm.Line {
	var lines []asm.Line
	lines = append(lines, generateExpression(cc, binop.Left, false)...)
	lines = append(lines,
		asm.Op2("subq", asm.Imm(16), asm.RSP),
		asm.Op2("movq", asm.RAX, asm.Deref(asm.RSP)))
	lines = append(lines, generateExpression(cc, binop.Right, false)...)
	lines = append(lines,
		asm.Op2("movq", asm.Deref(asm.RSP), asm.RCX),
		asm.Op2("addq", asm.Imm(16), asm.RSP))

	// Left operand is in %rcx, right operand in %rax.
	switch binop.Operator {
	case ast.OpAdd:
		lines = append(lines, asm.Op2("addq", asm.RCX, asm.RAX))
	case ast.OpSub:
		lines = append(lines,
			asm.Op2("subq", asm.RAX, asm.RCX),
			asm.Op2("movq", asm.RCX, asm.RAX))
	case ast.OpMul:
		lines = append(lines, asm.Op2("imulq", asm.RCX, asm.RAX))
	case ast.OpDiv:
		// Truncating signed division. A zero divisor faults at run time.
		lines = append(lines,
			asm.Op2("xchgq", asm.RCX, asm.RAX),
			asm.Op0("cqto"),
			asm.Op1("idivq", asm.RCX))
	default:
		log.Warn("unknown binary operator, using zero", "op", binop.Operator)
		lines = append(lines, zero(false)...)
	}
	return lines
}
