package x86_64

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/iley/fang/internal/asm"
	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/codegen/common"
	"github.com/iley/fang/internal/symbols"
)

const (
	fmtIntPrint    = "fmt_int_print"
	fmtIntScan     = "fmt_int_scan"
	fmtDoublePrint = "fmt_double_print"
	fmtDoubleScan  = "fmt_double_scan"
	fmtStrPrint    = "fmt_str_print"
	fmtPrompt      = "fmt_prompt"

	entryPoint = "main"
)

var formatStrings = []asm.StringLiteral{
	{Label: fmtIntPrint, Text: "%ld\n"},
	{Label: fmtIntScan, Text: "%ld"},
	{Label: fmtDoublePrint, Text: "%f\n"},
	{Label: fmtDoubleScan, Text: "%lf"},
	{Label: fmtStrPrint, Text: "%s\n"},
	{Label: fmtPrompt, Text: "%s"},
}

// Generate lowers a whole program into a single main procedure. It never fails:
// unknown variables are integers and missing nodes become zeros.
func Generate(program *ast.Program, syms *symbols.Table) asm.Program {
	cc := newContext(syms)
	if program == nil {
		program = &ast.Program{}
	}

	// All constants are known before the first instruction is emitted.
	common.GatherLiterals(cc.pool, program)

	fn := asm.Function{Name: entryPoint}
	fn.Lines = append(fn.Lines,
		asm.Op1("pushq", asm.RBP),
		asm.Op2("movq", asm.RSP, asm.RBP))

	for i, stmt := range program.Statements {
		if ast.IsNil(stmt) {
			continue
		}
		fn.Lines = append(fn.Lines, asm.Comment(fmt.Sprintf("stmt %d: %s", i, stmt)))
		fn.Lines = append(fn.Lines, generateStatement(cc, stmt)...)
	}

	fn.Lines = append(fn.Lines,
		asm.Op2("xorl", asm.EAX, asm.EAX),
		asm.Op2("movq", asm.RBP, asm.RSP),
		asm.Op1("popq", asm.RBP),
		asm.Op0("ret"))

	return asm.Program{
		FormatStrings:   formatStrings,
		StringLiterals:  cc.pool.Strings(),
		FloatLiterals:   cc.pool.Reals(),
		GlobalVariables: generateGlobalVariables(cc, program),
		Functions:       []asm.Function{fn},
	}
}

// generateGlobalVariables lays out the two input scratch cells followed by one
// cell per identifier in the symbol table, sorted by name. Variables the program
// uses without a symbol get an integer cell too, so the output always assembles.
func generateGlobalVariables(cc *CodegenContext, program *ast.Program) []asm.GlobalVariable {
	result := []asm.GlobalVariable{
		{Label: inputIntCell},
		{Label: inputRealCell, Float: true},
	}

	names := cc.symbols.Identifiers()
	for _, name := range common.GatherVariables(program) {
		if slices.Contains(names, name) {
			continue
		}
		if _, ok := cc.symbols.Lookup(name); !ok {
			log.Warn("variable has no symbol, allocating integer storage", "name", name)
		}
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		result = append(result, asm.GlobalVariable{
			Label: variableLabel(name),
			Float: cc.symbols.TypeOf(name).IsReal(),
		})
	}
	return result
}
