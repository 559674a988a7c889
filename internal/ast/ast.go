package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iley/fang/internal/util"
)

// AstNode is implemented by every statement and expression variant. The set of
// variants is closed: consumers switch over the concrete types below.
type AstNode interface {
	fmt.Stringer
	isNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	var sb strings.Builder
	sb.WriteString("(program")
	for _, stmt := range p.Statements {
		sb.WriteString(" ")
		sb.WriteString(nodeString(stmt))
	}
	sb.WriteString(")")
	return sb.String()
}

// Statement types.

type Statement interface {
	AstNode
	isStatement()
}

type Assign struct {
	Name  string
	Value Expression
}

func (a *Assign) isNode()      {}
func (a *Assign) isStatement() {}

func (a *Assign) String() string {
	return fmt.Sprintf("(= %s %s)", a.Name, nodeString(a.Value))
}

type Print struct {
	Value Expression
}

func (p *Print) isNode()      {}
func (p *Print) isStatement() {}

func (p *Print) String() string {
	return fmt.Sprintf("(print %s)", nodeString(p.Value))
}

// PrintList prints several items in one statement. It behaves exactly like a
// sequence of Print statements.
type PrintList struct {
	Values []Expression
}

func (p *PrintList) isNode()      {}
func (p *PrintList) isStatement() {}

func (p *PrintList) String() string {
	var sb strings.Builder
	sb.WriteString("(print-list")
	for _, v := range p.Values {
		sb.WriteString(" ")
		sb.WriteString(nodeString(v))
	}
	sb.WriteString(")")
	return sb.String()
}

// Expression types.

type Expression interface {
	AstNode
	isExpression()
}

type IntegerLiteral struct {
	Value int64
}

func (l *IntegerLiteral) isNode()       {}
func (l *IntegerLiteral) isExpression() {}

func (l *IntegerLiteral) String() string {
	return strconv.FormatInt(l.Value, 10)
}

type RealLiteral struct {
	Value float64
}

func (l *RealLiteral) isNode()       {}
func (l *RealLiteral) isExpression() {}

func (l *RealLiteral) String() string {
	s := strconv.FormatFloat(l.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

type StringLiteral struct {
	Text string
}

func (l *StringLiteral) isNode()       {}
func (l *StringLiteral) isExpression() {}

func (l *StringLiteral) String() string {
	return fmt.Sprintf("\"%s\"", util.EscapeString(l.Text))
}

type VariableRef struct {
	Name string
}

func (v *VariableRef) isNode()       {}
func (v *VariableRef) isExpression() {}

func (v *VariableRef) String() string {
	return v.Name
}

type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

func (o Operator) IsValid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

type BinaryOp struct {
	Operator Operator
	Left     Expression
	Right    Expression
}

func (b *BinaryOp) isNode()       {}
func (b *BinaryOp) isExpression() {}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Operator, nodeString(b.Left), nodeString(b.Right))
}

// Input reads one value from the console after showing Prompt. The value has
// no type of its own: the consuming context decides whether an integer or a
// real is read.
type Input struct {
	Prompt string
}

func (i *Input) isNode()       {}
func (i *Input) isExpression() {}

func (i *Input) String() string {
	return fmt.Sprintf("(input \"%s\")", util.EscapeString(i.Prompt))
}

// nodeString tolerates missing children so that partially built trees can still be printed.
func nodeString(n AstNode) string {
	if IsNil(n) {
		return "<nil>"
	}
	return n.String()
}

// IsNil reports whether n is nil or a typed nil pointer to one of the variants.
func IsNil(n AstNode) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Assign:
		return n == nil
	case *Print:
		return n == nil
	case *PrintList:
		return n == nil
	case *IntegerLiteral:
		return n == nil
	case *RealLiteral:
		return n == nil
	case *StringLiteral:
		return n == nil
	case *VariableRef:
		return n == nil
	case *BinaryOp:
		return n == nil
	case *Input:
		return n == nil
	}
	return false
}
