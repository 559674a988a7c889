package common

import (
	"io"

	"github.com/iley/fang/internal/asm"
	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/symbols"
)

type CodeGenerator interface {
	Generate(*ast.Program, *symbols.Table) asm.Program
	Format(io.Writer, asm.Program) error
}
