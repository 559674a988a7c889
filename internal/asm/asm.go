package asm

var (
	RAX  = Arg{Reg: "rax"}
	RCX  = Arg{Reg: "rcx"}
	RDI  = Arg{Reg: "rdi"}
	RSI  = Arg{Reg: "rsi"}
	RSP  = Arg{Reg: "rsp"}
	RBP  = Arg{Reg: "rbp"}
	EAX  = Arg{Reg: "eax"}
	EDI  = Arg{Reg: "edi"}
	XMM0 = Arg{Reg: "xmm0"}
	XMM1 = Arg{Reg: "xmm1"}
	XMM2 = Arg{Reg: "xmm2"}
)

// Program is a whole assembly file. Sections are written in field order:
// read-only data first, then mutable data, then code.
type Program struct {
	FormatStrings   []StringLiteral
	StringLiterals  []StringLiteral
	FloatLiterals   []FloatLiteral
	GlobalVariables []GlobalVariable
	Functions       []Function
}

type Function struct {
	Name  string
	Lines []Line
}

type Line struct {
	Comment string
	Label   string
	Op      string
	Arity   int
	Arg1    Arg
	Arg2    Arg
}

type Arg struct {
	Reg   string
	Label string
	Imm   *int64
	Deref bool
}

func (a Arg) AsDeref() Arg {
	result := a
	result.Deref = true
	return result
}

type StringLiteral struct {
	Label string
	Text  string
}

type FloatLiteral struct {
	Label string
	Value float64
}

// GlobalVariable is an eight byte zero-initialized cell holding either a
// 64-bit integer or a double.
type GlobalVariable struct {
	Label string
	Float bool
}

func Imm(value int64) Arg {
	return Arg{Imm: &value}
}

func Reg(reg string) Arg {
	return Arg{Reg: reg}
}

// Ref is a bare symbol reference, used for jump and call targets.
func Ref(label string) Arg {
	return Arg{Label: label}
}

// RIP addresses a data label relative to the instruction pointer.
func RIP(label string) Arg {
	return Arg{Label: label, Reg: "rip"}
}

func Deref(arg Arg) Arg {
	return arg.AsDeref()
}

func Op0(op string) Line {
	return Line{Op: op}
}

func Op1(op string, arg Arg) Line {
	return Line{Op: op, Arity: 1, Arg1: arg}
}

func Op2(op string, arg1, arg2 Arg) Line {
	return Line{Op: op, Arity: 2, Arg1: arg1, Arg2: arg2}
}

func Comment(text string) Line {
	return Line{Comment: text}
}

func Label(text string) Line {
	return Line{Label: text}
}
