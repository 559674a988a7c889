package x86_64

import (
	"reflect"
	"testing"

	"github.com/iley/fang/internal/asm"
)

func TestGenerateRead(t *testing.T) {
	cc := newContext(testSymbols())
	lines := generateRead(cc, "str_3", false)

	expected := []asm.Line{
		asm.Comment("read str_3"),
		asm.Op2("leaq", asm.RIP("fmt_prompt"), asm.RDI),
		asm.Op2("leaq", asm.RIP("str_3"), asm.RSI),
		asm.Op2("xorl", asm.EAX, asm.EAX),
		asm.Op1("call", asm.Ref("printf@PLT")),
		asm.Op2("xorl", asm.EDI, asm.EDI),
		asm.Op1("call", asm.Ref("fflush@PLT")),
		asm.Op2("leaq", asm.RIP("input_val_int"), asm.RSI),
		asm.Op2("leaq", asm.RIP("fmt_int_scan"), asm.RDI),
		asm.Op2("xorl", asm.EAX, asm.EAX),
		asm.Op1("call", asm.Ref("scanf@PLT")),
		asm.Label(".Ldrain_0"),
		asm.Op1("call", asm.Ref("getchar@PLT")),
		asm.Op2("cmpl", asm.Imm(-1), asm.EAX),
		asm.Op1("je", asm.Ref(".Ldrain_0_end")),
		asm.Op2("cmpl", asm.Imm(10), asm.EAX),
		asm.Op1("jne", asm.Ref(".Ldrain_0")),
		asm.Label(".Ldrain_0_end"),
		asm.Op2("movq", asm.RIP("input_val_int"), asm.RAX),
	}

	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("generateRead() =\n%#v\nwant\n%#v", lines, expected)
	}
}

func TestGenerateReadReal(t *testing.T) {
	cc := newContext(testSymbols())
	lines := generateRead(cc, "str_0", true)

	scan := asm.Op2("leaq", asm.RIP("fmt_double_scan"), asm.RDI)
	cell := asm.Op2("leaq", asm.RIP("input_val_real"), asm.RSI)
	if countLine(lines, scan) != 1 || countLine(lines, cell) != 1 {
		t.Errorf("real read does not scan into the real cell:\n%#v", lines)
	}
	last := asm.Op2("movsd", asm.RIP("input_val_real"), asm.XMM0)
	if !reflect.DeepEqual(lines[len(lines)-1], last) {
		t.Errorf("last line = %#v, want %#v", lines[len(lines)-1], last)
	}
}

func TestDrainLabelsAreUnique(t *testing.T) {
	cc := newContext(testSymbols())
	var lines []asm.Line
	lines = append(lines, generateRead(cc, "str_0", false)...)
	lines = append(lines, generateRead(cc, "str_0", true)...)
	lines = append(lines, generateRead(cc, "str_1", false)...)

	seen := map[string]bool{}
	for _, line := range lines {
		if line.Label == "" {
			continue
		}
		if seen[line.Label] {
			t.Errorf("label %s defined twice", line.Label)
		}
		seen[line.Label] = true
	}
	if len(seen) != 6 {
		t.Errorf("got %d labels, want 6", len(seen))
	}
}
