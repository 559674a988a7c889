package x86_64

import (
	"github.com/iley/fang/internal/asm"
)

const (
	inputIntCell  = "input_val_int"
	inputRealCell = "input_val_real"
)

// generateRead prompts, reads one value into the shared scratch cell, drops the
// rest of the input line and moves the value into the result location.
// The scratch cells are not reentrant: the value must be consumed before the next read.
func generateRead(cc *CodegenContext, promptLabel string, asReal bool) []asm.Line {
	cell, scanFormat := inputIntCell, fmtIntScan
	if asReal {
		cell, scanFormat = inputRealCell, fmtDoubleScan
	}

	lines := []asm.Line{
		asm.Comment("read " + promptLabel),
		asm.Op2("leaq", asm.RIP(fmtPrompt), asm.RDI),
		asm.Op2("leaq", asm.RIP(promptLabel), asm.RSI),
		asm.Op2("xorl", asm.EAX, asm.EAX),
		asm.Op1("call", asm.Ref("printf@PLT")),
		// The prompt has no newline, so stdout must be flushed before blocking.
		asm.Op2("xorl", asm.EDI, asm.EDI),
		asm.Op1("call", asm.Ref("fflush@PLT")),
		asm.Op2("leaq", asm.RIP(cell), asm.RSI),
		asm.Op2("leaq", asm.RIP(scanFormat), asm.RDI),
		asm.Op2("xorl", asm.EAX, asm.EAX),
		asm.Op1("call", asm.Ref("scanf@PLT")),
	}
	lines = append(lines, generateDrainLoop(cc)...)

	if asReal {
		lines = append(lines, asm.Op2("movsd", asm.RIP(cell), asm.XMM0))
	} else {
		lines = append(lines, asm.Op2("movq", asm.RIP(cell), asm.RAX))
	}
	return lines
}

// generateDrainLoop discards input up to and including the next newline or EOF.
func generateDrainLoop(cc *CodegenContext) []asm.Line {
	loop := cc.allocDrainLabel()
	end := loop + "_end"
	return []asm.Line{
		asm.Label(loop),
		asm.Op1("call", asm.Ref("getchar@PLT")),
		asm.Op2("cmpl", asm.Imm(-1), asm.EAX),
		asm.Op1("je", asm.Ref(end)),
		asm.Op2("cmpl", asm.Imm('\n'), asm.EAX),
		asm.Op1("jne", asm.Ref(loop)),
		asm.Label(end),
	}
}
