package common

import (
	"slices"
	"testing"

	"github.com/iley/fang/internal/ast"
)

func TestGatherLiteralsOrder(t *testing.T) {
	program := &ast.Program{
		Statements: []ast.Statement{
			&ast.Assign{Name: "y", Value: &ast.Input{Prompt: "Enter y: "}},
			&ast.Assign{Name: "z", Value: &ast.BinaryOp{
				Operator: ast.OpMul,
				Left:     &ast.RealLiteral{Value: 1.5},
				Right:    &ast.RealLiteral{Value: 0.25},
			}},
			&ast.PrintList{Values: []ast.Expression{
				&ast.StringLiteral{Text: "hi"},
				&ast.RealLiteral{Value: 1.5},
				&ast.StringLiteral{Text: "Enter y: "},
			}},
			&ast.Print{Value: &ast.StringLiteral{Text: "hi"}},
		},
	}

	pool := NewLiteralPool()
	GatherLiterals(pool, program)

	var texts []string
	for _, s := range pool.Strings() {
		texts = append(texts, s.Label+"="+s.Text)
	}
	expectedTexts := []string{"str_0=Enter y: ", "str_1=hi"}
	if !slices.Equal(texts, expectedTexts) {
		t.Errorf("strings = %v, want %v", texts, expectedTexts)
	}

	var reals []float64
	for _, r := range pool.Reals() {
		reals = append(reals, r.Value)
	}
	expectedReals := []float64{1.5, 0.25}
	if !slices.Equal(reals, expectedReals) {
		t.Errorf("reals = %v, want %v", reals, expectedReals)
	}
}

func TestGatherLiteralsToleratesNil(t *testing.T) {
	var nilAssign *ast.Assign
	program := &ast.Program{
		Statements: []ast.Statement{
			nil,
			nilAssign,
			&ast.Assign{Name: "x"},
			&ast.Print{},
			&ast.PrintList{Values: []ast.Expression{nil}},
			&ast.Print{Value: &ast.BinaryOp{Operator: ast.OpAdd}},
		},
	}

	pool := NewLiteralPool()
	GatherLiterals(pool, program)
	GatherLiterals(pool, nil)
	if pool.Len() != 0 {
		t.Errorf("Len() = %d, want 0", pool.Len())
	}
}

func TestGatherVariables(t *testing.T) {
	program := &ast.Program{
		Statements: []ast.Statement{
			&ast.Assign{Name: "b", Value: &ast.BinaryOp{
				Operator: ast.OpAdd,
				Left:     &ast.VariableRef{Name: "a"},
				Right:    &ast.VariableRef{Name: "b"},
			}},
			&ast.PrintList{Values: []ast.Expression{&ast.VariableRef{Name: "c"}}},
			&ast.Print{Value: &ast.VariableRef{Name: "a"}},
		},
	}

	got := GatherVariables(program)
	expected := []string{"b", "a", "c"}
	if !slices.Equal(got, expected) {
		t.Errorf("GatherVariables() = %v, want %v", got, expected)
	}
}
