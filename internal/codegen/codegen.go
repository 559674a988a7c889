package codegen

import (
	"fmt"
	"io"
	"os"

	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/codegen/common"
	"github.com/iley/fang/internal/codegen/x86_64_linux"
	"github.com/iley/fang/internal/symbols"
)

type Target int

const (
	TargetX86_64Linux Target = iota
)

func TargetFromName(name string) (Target, error) {
	switch name {
	case "x86_64-linux", "amd64-linux":
		return TargetX86_64Linux, nil
	}
	return 0, fmt.Errorf("unknown target: %s", name)
}

// Generate writes the assembly for program to out. Generation itself is total;
// the only possible error comes from writing to out.
func Generate(out io.Writer, target Target, program *ast.Program, syms *symbols.Table) error {
	var cg common.CodeGenerator
	switch target {
	case TargetX86_64Linux:
		cg = &x86_64_linux.CodeGenerator{}
	default:
		return fmt.Errorf("unknown target: %v", target)
	}

	asmProgram := cg.Generate(program, syms)
	if err := cg.Format(out, asmProgram); err != nil {
		return fmt.Errorf("error writing assembly: %w", err)
	}
	return nil
}

// GenerateFile is Generate into a newly created file at path.
func GenerateFile(path string, target Target, program *ast.Program, syms *symbols.Table) (err error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if closeErr := outputFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing output file: %w", closeErr)
		}
	}()

	return Generate(outputFile, target, program, syms)
}
