package x86_64

import (
	"fmt"

	"github.com/iley/fang/internal/asm"
	"github.com/iley/fang/internal/ast"
)

func generateStatement(cc *CodegenContext, stmt ast.Statement) []asm.Line {
	if ast.IsNil(stmt) {
		return nil
	}

	switch stmt := stmt.(type) {
	case *ast.Assign:
		return generateAssignment(cc, stmt)
	case *ast.Print:
		return generatePrintItems(cc, []ast.Expression{stmt.Value})
	case *ast.PrintList:
		return generatePrintItems(cc, stmt.Values)
	}
	panic(fmt.Sprintf("unknown statement type %T", stmt))
}

// generateAssignment stores into the target using the target's declared type.
// A real value assigned to an integer variable is stored bit for bit, not converted.
func generateAssignment(cc *CodegenContext, assign *ast.Assign) []asm.Line {
	if ast.IsNil(assign.Value) {
		return nil
	}

	var lines []asm.Line
	targetReal := cc.isRealVariable(assign.Name)
	target := asm.RIP(variableLabel(assign.Name))

	if input, ok := assign.Value.(*ast.Input); ok {
		lines = append(lines, generateRead(cc, cc.pool.InternString(input.Prompt), targetReal)...)
	} else {
		lines = append(lines, generateExpression(cc, assign.Value, targetReal)...)
		if !targetReal && cc.isReal(assign.Value) {
			lines = append(lines, asm.Op2("movq", asm.XMM0, asm.RAX))
		}
	}

	if targetReal {
		lines = append(lines, asm.Op2("movsd", asm.XMM0, target))
	} else {
		lines = append(lines, asm.Op2("movq", asm.RAX, target))
	}
	return lines
}

func generatePrintItems(cc *CodegenContext, items []ast.Expression) []asm.Line {
	var lines []asm.Line
	for _, item := range items {
		if str, ok := item.(*ast.StringLiteral); ok && str != nil {
			lines = append(lines,
				asm.Op2("leaq", asm.RIP(cc.pool.InternString(str.Text)), asm.RSI),
				asm.Op2("leaq", asm.RIP(fmtStrPrint), asm.RDI),
				asm.Op2("xorl", asm.EAX, asm.EAX),
				asm.Op1("call", asm.Ref("printf@PLT")))
			continue
		}

		isReal := cc.isReal(item)
		lines = append(lines, generateExpression(cc, item, isReal)...)
		if isReal {
			// %al carries the number of vector registers used by a variadic call.
			lines = append(lines,
				asm.Op2("leaq", asm.RIP(fmtDoublePrint), asm.RDI),
				asm.Op2("movl", asm.Imm(1), asm.EAX),
				asm.Op1("call", asm.Ref("printf@PLT")))
		} else {
			lines = append(lines,
				asm.Op2("movq", asm.RAX, asm.RSI),
				asm.Op2("leaq", asm.RIP(fmtIntPrint), asm.RDI),
				asm.Op2("xorl", asm.EAX, asm.EAX),
				asm.Op1("call", asm.Ref("printf@PLT")))
		}
	}
	return lines
}
