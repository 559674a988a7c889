package x86_64_linux

import (
	"io"

	"github.com/iley/fang/internal/asm"
	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/codegen/x86_64"
	"github.com/iley/fang/internal/symbols"
)

type CodeGenerator struct{}

func (cg *CodeGenerator) Generate(program *ast.Program, syms *symbols.Table) asm.Program {
	return x86_64.Generate(program, syms)
}

func (cg *CodeGenerator) Format(out io.Writer, p asm.Program) error {
	return formatProgram(out, p)
}
