package tac

import (
	"fmt"
	"strconv"

	"github.com/iley/fang/internal/ast"
)

type Generator struct {
	nextTempIndex int
	ops           []Op
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers program to three-address code. Temporaries are numbered
// from t0 on every call.
func (g *Generator) Generate(program *ast.Program) Program {
	g.nextTempIndex = 0
	g.ops = nil
	if program != nil {
		for _, stmt := range program.Statements {
			g.generateStatement(stmt)
		}
	}
	return Program{Ops: g.ops}
}

func (g *Generator) allocTemp() string {
	name := fmt.Sprintf("t%d", g.nextTempIndex)
	g.nextTempIndex++
	return name
}

func (g *Generator) emit(op Op) {
	g.ops = append(g.ops, op)
}

func (g *Generator) generateStatement(stmt ast.Statement) {
	if ast.IsNil(stmt) {
		return
	}
	switch stmt := stmt.(type) {
	case *ast.Assign:
		value := g.generateExpression(stmt.Value)
		g.emit(Assign{Target: stmt.Name, Value: value})
	case *ast.Print:
		g.emit(Print{Value: g.generateExpression(stmt.Value)})
	case *ast.PrintList:
		for _, item := range stmt.Values {
			g.emit(Print{Value: g.generateExpression(item)})
		}
	default:
		panic(fmt.Sprintf("unknown statement type %T", stmt))
	}
}

// generateExpression emits the ops computing expr and returns the operand
// holding its value.
func (g *Generator) generateExpression(expr ast.Expression) string {
	if ast.IsNil(expr) {
		return "<nil>"
	}
	switch expr := expr.(type) {
	case *ast.IntegerLiteral:
		return strconv.FormatInt(expr.Value, 10)
	case *ast.RealLiteral:
		return fmt.Sprintf("%f", expr.Value)
	case *ast.VariableRef:
		return expr.Name
	case *ast.StringLiteral:
		target := g.allocTemp()
		g.emit(LoadString{Target: target, Text: expr.Text})
		return target
	case *ast.Input:
		target := g.allocTemp()
		g.emit(Read{Target: target, Prompt: expr.Prompt})
		return target
	case *ast.BinaryOp:
		left := g.generateExpression(expr.Left)
		right := g.generateExpression(expr.Right)
		target := g.allocTemp()
		g.emit(BinaryOp{Target: target, Operator: string(expr.Operator), Left: left, Right: right})
		return target
	}
	panic(fmt.Sprintf("unknown expression type %T", expr))
}
