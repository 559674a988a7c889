package x86_64

import (
	"reflect"
	"testing"

	"github.com/iley/fang/internal/asm"
	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/symbols"
)

func inputProgram() *ast.Program {
	return &ast.Program{
		Statements: []ast.Statement{
			&ast.Assign{Name: "r", Value: &ast.Input{Prompt: "Enter r: "}},
			&ast.Assign{Name: "i", Value: &ast.BinaryOp{
				Operator: ast.OpAdd,
				Left:     &ast.Input{Prompt: "Enter i: "},
				Right:    &ast.IntegerLiteral{Value: 1},
			}},
			&ast.PrintList{Values: []ast.Expression{
				&ast.StringLiteral{Text: "hi"},
				&ast.VariableRef{Name: "r"},
				&ast.StringLiteral{Text: "hi"},
				&ast.RealLiteral{Value: 0.5},
			}},
		},
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate(inputProgram(), testSymbols())
	second := Generate(inputProgram(), testSymbols())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over the same program differ")
	}
}

func TestGenerateStartsFreshContext(t *testing.T) {
	for run := 0; run < 2; run++ {
		p := Generate(inputProgram(), testSymbols())
		var labels []string
		for _, line := range p.Functions[0].Lines {
			if line.Label != "" {
				labels = append(labels, line.Label)
			}
		}
		expected := []string{".Ldrain_0", ".Ldrain_0_end", ".Ldrain_1", ".Ldrain_1_end"}
		if !reflect.DeepEqual(labels, expected) {
			t.Errorf("run %d: labels = %v, want %v", run, labels, expected)
		}
	}
}

func TestGenerateDataSections(t *testing.T) {
	p := Generate(inputProgram(), testSymbols())

	expectedStrings := []asm.StringLiteral{
		{Label: "str_0", Text: "Enter r: "},
		{Label: "str_1", Text: "Enter i: "},
		{Label: "str_2", Text: "hi"},
	}
	if !reflect.DeepEqual(p.StringLiterals, expectedStrings) {
		t.Errorf("StringLiterals = %#v, want %#v", p.StringLiterals, expectedStrings)
	}

	expectedFloats := []asm.FloatLiteral{{Label: "real_0", Value: 0.5}}
	if !reflect.DeepEqual(p.FloatLiterals, expectedFloats) {
		t.Errorf("FloatLiterals = %#v, want %#v", p.FloatLiterals, expectedFloats)
	}

	expectedGlobals := []asm.GlobalVariable{
		{Label: "input_val_int"},
		{Label: "input_val_real", Float: true},
		{Label: "var_d", Float: true},
		{Label: "var_i"},
		{Label: "var_j"},
		{Label: "var_r", Float: true},
	}
	if !reflect.DeepEqual(p.GlobalVariables, expectedGlobals) {
		t.Errorf("GlobalVariables = %#v, want %#v", p.GlobalVariables, expectedGlobals)
	}

	if len(p.FormatStrings) != 6 {
		t.Errorf("len(FormatStrings) = %d, want 6", len(p.FormatStrings))
	}
}

func TestGenerateAllocatesUnlistedVariables(t *testing.T) {
	syms := symbols.NewTable()
	syms.Add("x", symbols.Identifier, symbols.Integer)
	syms.Add("42", symbols.Literal, symbols.Integer)

	program := &ast.Program{
		Statements: []ast.Statement{
			&ast.Assign{Name: "x", Value: &ast.VariableRef{Name: "a"}},
		},
	}

	p := Generate(program, syms)
	expectedGlobals := []asm.GlobalVariable{
		{Label: "input_val_int"},
		{Label: "input_val_real", Float: true},
		{Label: "var_a"},
		{Label: "var_x"},
	}
	if !reflect.DeepEqual(p.GlobalVariables, expectedGlobals) {
		t.Errorf("GlobalVariables = %#v, want %#v", p.GlobalVariables, expectedGlobals)
	}
}

func TestGenerateSingleProcedure(t *testing.T) {
	tests := []struct {
		name    string
		program *ast.Program
		syms    *symbols.Table
	}{
		{"nil program", nil, nil},
		{"empty program", &ast.Program{}, symbols.NewTable()},
		{"program with nil statement", &ast.Program{Statements: []ast.Statement{nil}}, testSymbols()},
		{"full program", inputProgram(), testSymbols()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Generate(tt.program, tt.syms)
			if len(p.Functions) != 1 || p.Functions[0].Name != "main" {
				t.Fatalf("Functions = %#v, want a single main", p.Functions)
			}
			lines := p.Functions[0].Lines
			prologue := []asm.Line{
				asm.Op1("pushq", asm.RBP),
				asm.Op2("movq", asm.RSP, asm.RBP),
			}
			if !reflect.DeepEqual(lines[:2], prologue) {
				t.Errorf("prologue = %#v", lines[:2])
			}
			epilogue := []asm.Line{
				asm.Op2("xorl", asm.EAX, asm.EAX),
				asm.Op2("movq", asm.RBP, asm.RSP),
				asm.Op1("popq", asm.RBP),
				asm.Op0("ret"),
			}
			if !reflect.DeepEqual(lines[len(lines)-4:], epilogue) {
				t.Errorf("epilogue = %#v", lines[len(lines)-4:])
			}
		})
	}
}

func TestGenerateDeduplicatesPrintedString(t *testing.T) {
	program := &ast.Program{
		Statements: []ast.Statement{
			&ast.Print{Value: &ast.StringLiteral{Text: "hi"}},
			&ast.Print{Value: &ast.StringLiteral{Text: "hi"}},
		},
	}

	p := Generate(program, symbols.NewTable())
	if len(p.StringLiterals) != 1 {
		t.Fatalf("StringLiterals = %#v, want exactly one", p.StringLiterals)
	}
	ref := asm.Op2("leaq", asm.RIP(p.StringLiterals[0].Label), asm.RSI)
	if got := countLine(p.Functions[0].Lines, ref); got != 2 {
		t.Errorf("references to %s = %d, want 2", p.StringLiterals[0].Label, got)
	}
}
