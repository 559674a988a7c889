package tac

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/iley/fang/internal/ast"
)

func TestGenerate(t *testing.T) {
	testCases := []struct {
		name     string
		program  *ast.Program
		expected []Op
	}{
		{
			name:     "nil program",
			program:  nil,
			expected: nil,
		},
		{
			name: "assignment of a sum",
			program: &ast.Program{Statements: []ast.Statement{
				&ast.Assign{Name: "x", Value: &ast.BinaryOp{
					Operator: ast.OpAdd,
					Left:     &ast.IntegerLiteral{Value: 3},
					Right:    &ast.IntegerLiteral{Value: 4},
				}},
				&ast.Print{Value: &ast.VariableRef{Name: "x"}},
			}},
			expected: []Op{
				BinaryOp{Target: "t0", Operator: "+", Left: "3", Right: "4"},
				Assign{Target: "x", Value: "t0"},
				Print{Value: "x"},
			},
		},
		{
			name: "nested operands are lowered left first",
			program: &ast.Program{Statements: []ast.Statement{
				&ast.Assign{Name: "y", Value: &ast.BinaryOp{
					Operator: ast.OpMul,
					Left: &ast.BinaryOp{
						Operator: ast.OpSub,
						Left:     &ast.VariableRef{Name: "a"},
						Right:    &ast.RealLiteral{Value: 1.5},
					},
					Right: &ast.Input{Prompt: "n: "},
				}},
			}},
			expected: []Op{
				BinaryOp{Target: "t0", Operator: "-", Left: "a", Right: "1.500000"},
				Read{Target: "t1", Prompt: "n: "},
				BinaryOp{Target: "t2", Operator: "*", Left: "t0", Right: "t1"},
				Assign{Target: "y", Value: "t2"},
			},
		},
		{
			name: "print list prints every item",
			program: &ast.Program{Statements: []ast.Statement{
				&ast.PrintList{Values: []ast.Expression{
					&ast.StringLiteral{Text: "sum:"},
					&ast.IntegerLiteral{Value: 10},
				}},
			}},
			expected: []Op{
				LoadString{Target: "t0", Text: "sum:"},
				Print{Value: "t0"},
				Print{Value: "10"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := NewGenerator().Generate(tc.program)
			if !reflect.DeepEqual(result.Ops, tc.expected) {
				t.Errorf("Generate() ops = %v, want %v", result.Ops, tc.expected)
			}
		})
	}
}

func TestGenerateRestartsTemporaries(t *testing.T) {
	program := &ast.Program{Statements: []ast.Statement{
		&ast.Print{Value: &ast.StringLiteral{Text: "a"}},
	}}
	g := NewGenerator()
	g.Generate(program)
	result := g.Generate(program)
	if got := result.Ops[0].GetTarget(); got != "t0" {
		t.Errorf("second Generate() first target = %q, want t0", got)
	}
}

func TestProgramPrint(t *testing.T) {
	program := Program{Ops: []Op{
		LoadString{Target: "t0", Text: "hi\n"},
		Print{Value: "t0"},
	}}
	var buf bytes.Buffer
	program.Print(&buf)

	expected := "=== Three-Address Code ===\n" +
		"t0 = \"hi\\n\"\n" +
		"print t0\n" +
		"==========================\n"
	if buf.String() != expected {
		t.Errorf("Print() = %q, want %q", buf.String(), expected)
	}
}
