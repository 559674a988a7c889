// Package document loads a program and its symbol table from the JSON
// interchange format produced by the Fang front end.
//
//	{
//	  "symbols": [{"name": "x", "kind": "ident", "value_type": "int"}],
//	  "program": [
//	    {"node": "assign", "name": "x", "value": {"node": "binary", "op": "+",
//	      "left": {"node": "int", "value": 3}, "right": {"node": "int", "value": 4}}},
//	    {"node": "print", "value": {"node": "var", "name": "x"}}
//	  ]
//	}
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iley/fang/internal/ast"
	"github.com/iley/fang/internal/symbols"
)

type Document struct {
	Program *ast.Program
	Symbols *symbols.Table
}

type rawDocument struct {
	Symbols []rawSymbol       `json:"symbols"`
	Program []json.RawMessage `json:"program"`
}

type rawSymbol struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	ValueType string `json:"value_type"`
}

// rawNode holds the union of the fields of every node kind. Which fields are
// meaningful depends on Node.
type rawNode struct {
	Node   string            `json:"node"`
	Name   string            `json:"name"`
	Value  json.RawMessage   `json:"value"`
	Values []json.RawMessage `json:"values"`
	Text   string            `json:"text"`
	Prompt string            `json:"prompt"`
	Op     string            `json:"op"`
	Left   json.RawMessage   `json:"left"`
	Right  json.RawMessage   `json:"right"`
}

func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func Load(r io.Reader) (*Document, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}

	table := symbols.NewTable()
	for i, sym := range raw.Symbols {
		kind, err := parseKind(sym.Kind)
		if err != nil {
			return nil, fmt.Errorf("symbols[%d]: %w", i, err)
		}
		if sym.Name == "" {
			return nil, fmt.Errorf("symbols[%d]: missing name", i)
		}
		table.Add(sym.Name, kind, symbols.ValueType(sym.ValueType))
	}

	program := &ast.Program{Statements: []ast.Statement{}}
	for i, msg := range raw.Program {
		stmt, err := decodeStatement(msg, fmt.Sprintf("program[%d]", i))
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	return &Document{Program: program, Symbols: table}, nil
}

func parseKind(s string) (symbols.Kind, error) {
	switch symbols.Kind(s) {
	case "", symbols.Identifier:
		return symbols.Identifier, nil
	case symbols.Literal:
		return symbols.Literal, nil
	}
	return "", fmt.Errorf("unknown symbol kind %q", s)
}

func isNull(msg json.RawMessage) bool {
	trimmed := bytes.TrimSpace(msg)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeNode(msg json.RawMessage, path string) (*rawNode, error) {
	var node rawNode
	if err := json.Unmarshal(msg, &node); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &node, nil
}

// decodeStatement returns a nil statement for a JSON null.
func decodeStatement(msg json.RawMessage, path string) (ast.Statement, error) {
	if isNull(msg) {
		return nil, nil
	}
	node, err := decodeNode(msg, path)
	if err != nil {
		return nil, err
	}

	switch node.Node {
	case "assign":
		if node.Name == "" {
			return nil, fmt.Errorf("%s: assign without a name", path)
		}
		value, err := decodeExpression(node.Value, path+".value")
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: node.Name, Value: value}, nil
	case "print":
		value, err := decodeExpression(node.Value, path+".value")
		if err != nil {
			return nil, err
		}
		return &ast.Print{Value: value}, nil
	case "print_list":
		values := make([]ast.Expression, 0, len(node.Values))
		for i, item := range node.Values {
			value, err := decodeExpression(item, fmt.Sprintf("%s.values[%d]", path, i))
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return &ast.PrintList{Values: values}, nil
	}
	return nil, fmt.Errorf("%s: unknown statement node %q", path, node.Node)
}

// decodeExpression returns a nil expression for a missing or null value.
func decodeExpression(msg json.RawMessage, path string) (ast.Expression, error) {
	if isNull(msg) {
		return nil, nil
	}
	node, err := decodeNode(msg, path)
	if err != nil {
		return nil, err
	}

	switch node.Node {
	case "int":
		var value int64
		if err := json.Unmarshal(node.Value, &value); err != nil {
			return nil, fmt.Errorf("%s: bad integer value: %w", path, err)
		}
		return &ast.IntegerLiteral{Value: value}, nil
	case "real":
		var value float64
		if err := json.Unmarshal(node.Value, &value); err != nil {
			return nil, fmt.Errorf("%s: bad real value: %w", path, err)
		}
		return &ast.RealLiteral{Value: value}, nil
	case "string":
		return &ast.StringLiteral{Text: node.Text}, nil
	case "var":
		if node.Name == "" {
			return nil, fmt.Errorf("%s: var without a name", path)
		}
		return &ast.VariableRef{Name: node.Name}, nil
	case "input":
		return &ast.Input{Prompt: node.Prompt}, nil
	case "binary":
		op := ast.Operator(node.Op)
		if !op.IsValid() {
			return nil, fmt.Errorf("%s: unknown operator %q", path, node.Op)
		}
		left, err := decodeExpression(node.Left, path+".left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node.Right, path+".right")
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Operator: op, Left: left, Right: right}, nil
	}
	return nil, fmt.Errorf("%s: unknown expression node %q", path, node.Node)
}
