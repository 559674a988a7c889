package tac

import (
	"fmt"
	"io"

	"github.com/iley/fang/internal/util"
)

/*
Three-address code for Fang programs. It is a debugging view only: the x86-64
backend works directly on the AST.

Every intermediate value gets a fresh temporary t0, t1, ... Operands are either
temporaries, variable names or literal constants.

 * Assign(Target, Value) - store a value into a named variable.
 * BinaryOp(Target, Operator, Left, Right) - arithmetic on two operands.
 * LoadString(Target, Text) - materialize a string constant.
 * Read(Target, Prompt) - prompt the user and read a number.
 * Print(Value) - print one item.
*/

type Program struct {
	Ops []Op
}

func (p Program) Print(writer io.Writer) {
	fmt.Fprintf(writer, "=== Three-Address Code ===\n")
	for _, op := range p.Ops {
		fmt.Fprintf(writer, "%s\n", op)
	}
	fmt.Fprintf(writer, "==========================\n")
}

type Op interface {
	fmt.Stringer
	// GetTarget returns the name written by the op or an empty string.
	GetTarget() string
}

type Assign struct {
	Target string
	Value  string
}

func (a Assign) String() string {
	return fmt.Sprintf("%s = %s", a.Target, a.Value)
}

func (a Assign) GetTarget() string {
	return a.Target
}

type BinaryOp struct {
	Target   string
	Operator string
	Left     string
	Right    string
}

func (b BinaryOp) String() string {
	return fmt.Sprintf("%s = %s %s %s", b.Target, b.Left, b.Operator, b.Right)
}

func (b BinaryOp) GetTarget() string {
	return b.Target
}

type LoadString struct {
	Target string
	Text   string
}

func (l LoadString) String() string {
	return fmt.Sprintf("%s = \"%s\"", l.Target, util.EscapeString(l.Text))
}

func (l LoadString) GetTarget() string {
	return l.Target
}

type Read struct {
	Target string
	Prompt string
}

func (r Read) String() string {
	return fmt.Sprintf("%s = input(%s)", r.Target, util.EscapeString(r.Prompt))
}

func (r Read) GetTarget() string {
	return r.Target
}

type Print struct {
	Value string
}

func (p Print) String() string {
	return fmt.Sprintf("print %s", p.Value)
}

func (p Print) GetTarget() string {
	return ""
}
