package x86_64

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/iley/fang/internal/asm"
	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/codegen/common"
	"github.com/iley/fang/internal/symbols"
)

// CodegenContext holds everything one generation run mutates. A fresh context
// is created for every Generate call, so separate runs never share labels.
type CodegenContext struct {
	pool    *common.LiteralPool
	symbols *symbols.Table

	// Suffix for the next input drain loop. Label text must be unique across the file.
	nextDrainIndex int
}

func newContext(syms *symbols.Table) *CodegenContext {
	if syms == nil {
		syms = symbols.NewTable()
	}
	return &CodegenContext{
		pool:    common.NewLiteralPool(),
		symbols: syms,
	}
}

func (cc *CodegenContext) allocDrainLabel() string {
	idx := cc.nextDrainIndex
	cc.nextDrainIndex++
	return fmt.Sprintf(".Ldrain_%d", idx)
}

func (cc *CodegenContext) isReal(expr ast.Expression) bool {
	return common.IsReal(cc.symbols, expr)
}

// isRealVariable reports the declared domain of a variable. Variables missing
// from the symbol table are treated as integers.
func (cc *CodegenContext) isRealVariable(name string) bool {
	sym, ok := cc.symbols.Lookup(name)
	if !ok {
		log.Debug("variable not in symbol table, treating as integer", "name", name)
		return false
	}
	return sym.ValueType.IsReal()
}

func variableLabel(name string) string {
	return "var_" + name
}

// zero leaves a zero of the requested domain in the result location.
func zero(asReal bool) []asm.Line {
	if asReal {
		return []asm.Line{asm.Op2("pxor", asm.XMM0, asm.XMM0)}
	}
	return []asm.Line{asm.Op2("movq", asm.Imm(0), asm.RAX)}
}
