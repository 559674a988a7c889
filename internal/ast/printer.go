package ast

import (
	"fmt"
	"io"

	"github.com/iley/fang/internal/symbols"
)

// Printer draws a program as a box-drawing tree. Children of nodes with exactly
// two children are tagged [L] and [R]; other children of the root are tagged [child].
type Printer struct {
	output  io.Writer
	symbols *symbols.Table
}

func NewPrinter(output io.Writer, syms *symbols.Table) *Printer {
	return &Printer{output: output, symbols: syms}
}

func (p *Printer) write(line string) {
	fmt.Fprint(p.output, line)
}

func (p *Printer) writeln(line string) {
	p.write(line)
	p.write("\n")
}

func (p *Printer) PrintProgram(program *Program) {
	if program == nil {
		return
	}
	p.printNode(treeNode{name: "Program", children: p.statementChildren(program.Statements)}, "", true, "root")
}

type treeNode struct {
	name     string
	children []treeNode
}

func (p *Printer) printNode(node treeNode, prefix string, isLast bool, role string) {
	branch := "├── "
	if isLast {
		branch = "└── "
	}
	p.write(prefix + branch)
	if role != "" {
		p.write("[" + role + "] ")
	}
	p.writeln(node.name)

	childPrefix := prefix + "│   "
	if isLast {
		childPrefix = prefix + "    "
	}
	for i, child := range node.children {
		childRole := ""
		if len(node.children) == 2 {
			childRole = "L"
			if i == 1 {
				childRole = "R"
			}
		} else if role == "root" {
			childRole = "child"
		}
		p.printNode(child, childPrefix, i == len(node.children)-1, childRole)
	}
}

func (p *Printer) statementChildren(stmts []Statement) []treeNode {
	var result []treeNode
	for _, stmt := range stmts {
		if IsNil(stmt) {
			continue
		}
		result = append(result, p.statementNode(stmt))
	}
	return result
}

func (p *Printer) statementNode(stmt Statement) treeNode {
	switch stmt := stmt.(type) {
	case *Assign:
		// Assignments are drawn as a binary "=" node with the target on the left.
		children := []treeNode{p.variableNode(stmt.Name)}
		if !IsNil(stmt.Value) {
			children = append(children, p.expressionNode(stmt.Value))
		}
		return treeNode{name: "Binary(=)", children: children}
	case *Print:
		return treeNode{name: "Print", children: p.expressionChildren([]Expression{stmt.Value})}
	case *PrintList:
		return treeNode{name: "PrintList", children: p.expressionChildren(stmt.Values)}
	}
	panic(fmt.Sprintf("unknown statement type %T", stmt))
}

func (p *Printer) expressionChildren(exprs []Expression) []treeNode {
	var result []treeNode
	for _, expr := range exprs {
		if IsNil(expr) {
			continue
		}
		result = append(result, p.expressionNode(expr))
	}
	return result
}

func (p *Printer) expressionNode(expr Expression) treeNode {
	switch expr := expr.(type) {
	case *IntegerLiteral:
		return treeNode{name: fmt.Sprintf("Integer(%d)", expr.Value)}
	case *RealLiteral:
		return treeNode{name: fmt.Sprintf("Real(%f)", expr.Value)}
	case *StringLiteral:
		return treeNode{name: fmt.Sprintf("String(%s)", expr.Text)}
	case *VariableRef:
		return p.variableNode(expr.Name)
	case *BinaryOp:
		return treeNode{
			name:     fmt.Sprintf("Binary(%s)", expr.Operator),
			children: p.expressionChildren([]Expression{expr.Left, expr.Right}),
		}
	case *Input:
		return treeNode{name: "Input", children: []treeNode{{name: fmt.Sprintf("String(%s)", expr.Prompt)}}}
	}
	panic(fmt.Sprintf("unknown expression type %T", expr))
}

func (p *Printer) variableNode(name string) treeNode {
	valueType := string(p.symbols.TypeOf(name))
	if valueType == "" {
		valueType = "unknown"
	}
	return treeNode{name: fmt.Sprintf("Var(%s:%s)", name, valueType)}
}
