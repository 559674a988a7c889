package x86_64_linux

import (
	"fmt"
	"io"
	"strconv"

	"github.com/iley/fang/internal/asm"
	"github.com/iley/fang/internal/util"
)

// formatter remembers the first write error so that the section writers do not
// have to check every Fprintf.
type formatter struct {
	out io.Writer
	err error
}

func (f *formatter) printf(format string, args ...any) {
	if f.err != nil {
		return
	}
	_, f.err = fmt.Fprintf(f.out, format, args...)
}

func formatProgram(out io.Writer, p asm.Program) error {
	f := &formatter{out: out}

	f.printf(".section .rodata\n")
	f.formatStringLiterals(p.FormatStrings)
	f.formatStringLiterals(p.StringLiterals)
	f.formatFloatLiterals(p.FloatLiterals)
	f.formatGlobalVariables(p.GlobalVariables)

	for _, fn := range p.Functions {
		f.formatFunction(fn)
	}

	// Mark the stack non-executable so the linker does not warn.
	f.printf(".section .note.GNU-stack,\"\",@progbits\n")
	return f.err
}

func (f *formatter) formatFunction(fn asm.Function) {
	f.printf("\n.text\n")
	f.printf(".globl %s\n", fn.Name)
	f.printf(".type %s, @function\n", fn.Name)
	f.printf("%s:\n", fn.Name)

	for _, line := range fn.Lines {
		f.formatLine(line)
	}
	f.printf(".size %s, .-%s\n", fn.Name, fn.Name)
}

func (f *formatter) formatLine(line asm.Line) {
	if line.Label != "" {
		f.printf("%s:", line.Label)
	} else if line.Op != "" {
		f.printf("  %s", line.Op)
		if line.Arity >= 1 {
			f.printf(" %s", argToString(line.Arg1))
		}
		if line.Arity >= 2 {
			f.printf(", %s", argToString(line.Arg2))
		}
	}

	if line.Comment != "" {
		if line.Label != "" || line.Op != "" {
			f.printf("  ")
		}
		f.printf("# %s", line.Comment)
	}

	f.printf("\n")
}

func argToString(arg asm.Arg) string {
	// RIP-relative data reference: label(%rip).
	if arg.Label != "" && arg.Reg != "" {
		return fmt.Sprintf("%s(%%%s)", arg.Label, arg.Reg)
	}

	if arg.Deref && arg.Reg == "" {
		panic(fmt.Errorf("invalid arg %#v. dereferencing only supported for registers", arg))
	}

	if arg.Reg != "" {
		if arg.Deref {
			return fmt.Sprintf("(%%%s)", arg.Reg)
		}
		return fmt.Sprintf("%%%s", arg.Reg)
	} else if arg.Label != "" {
		return arg.Label
	} else if arg.Imm != nil {
		return fmt.Sprintf("$%d", *arg.Imm)
	}
	panic(fmt.Errorf("invalid arg %#v", arg))
}

func (f *formatter) formatStringLiterals(stringLiterals []asm.StringLiteral) {
	for _, sl := range stringLiterals {
		f.printf("%s:\n", sl.Label)
		f.printf("  .string \"%s\"\n", util.EscapeString(sl.Text))
	}
}

func (f *formatter) formatFloatLiterals(floatLiterals []asm.FloatLiteral) {
	if len(floatLiterals) == 0 {
		return
	}
	f.printf(".align 8\n")
	for _, fl := range floatLiterals {
		f.printf("%s:\n", fl.Label)
		f.printf("  .double %s\n", formatDouble(fl.Value))
	}
}

// formatDouble renders v with the shortest decimal text that reads back as the same double.
func formatDouble(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f *formatter) formatGlobalVariables(globals []asm.GlobalVariable) {
	if len(globals) == 0 {
		return
	}

	f.printf("\n.data\n")
	f.printf(".align 8\n")
	for _, g := range globals {
		f.printf(".globl %s\n", g.Label)
		f.printf(".type %s, @object\n", g.Label)
		f.printf(".size %s, 8\n", g.Label)
		f.printf("%s:\n", g.Label)
		if g.Float {
			f.printf("  .double 0.0\n")
		} else {
			f.printf("  .quad 0\n")
		}
	}
}
