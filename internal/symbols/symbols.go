package symbols

import (
	"fmt"
	"io"
	"slices"
)

type Kind string

const (
	Identifier Kind = "ident"
	Literal    Kind = "literal"
)

// ValueType is the declared type spelling recorded by the front end.
// Several spellings mean the same domain, see IsReal.
type ValueType string

const (
	Unknown ValueType = ""
	Integer ValueType = "int"
	Real    ValueType = "real"
)

// IsReal reports whether the spelling names a floating point type.
func (v ValueType) IsReal() bool {
	switch v {
	case "real", "double", "float":
		return true
	}
	return false
}

type Symbol struct {
	Name      string
	Kind      Kind
	ValueType ValueType
}

// Table is an insertion-ordered set of symbols, unique by name.
type Table struct {
	symbols []Symbol
	index   map[string]int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add registers a symbol. If the name is already present, its kind and value
// type are filled in only when the stored value type is still unknown.
func (t *Table) Add(name string, kind Kind, valueType ValueType) {
	if i, ok := t.index[name]; ok {
		if valueType != Unknown && t.symbols[i].ValueType == Unknown {
			t.symbols[i].Kind = kind
			t.symbols[i].ValueType = valueType
		}
		return
	}
	t.index[name] = len(t.symbols)
	t.symbols = append(t.symbols, Symbol{Name: name, Kind: kind, ValueType: valueType})
}

func (t *Table) Lookup(name string) (Symbol, bool) {
	if t == nil {
		return Symbol{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return Symbol{}, false
	}
	return t.symbols[i], true
}

// TypeOf returns the value type of name, or Unknown if it is not in the table.
func (t *Table) TypeOf(name string) ValueType {
	sym, _ := t.Lookup(name)
	return sym.ValueType
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.symbols)
}

func (t *Table) All() []Symbol {
	if t == nil {
		return nil
	}
	return slices.Clone(t.symbols)
}

// Identifiers returns the names of all identifier symbols in sorted order.
func (t *Table) Identifiers() []string {
	var names []string
	for _, sym := range t.All() {
		if sym.Kind == Identifier {
			names = append(names, sym.Name)
		}
	}
	slices.Sort(names)
	return names
}

func (t *Table) Print(out io.Writer) {
	fmt.Fprintf(out, "=== Symbol Table ===\n")
	fmt.Fprintf(out, "%-20s %-10s %-10s\n", "Name", "Type", "ValueType")
	fmt.Fprintf(out, "%-20s %-10s %-10s\n", "-------------------", "---------", "---------")
	for _, sym := range t.All() {
		fmt.Fprintf(out, "%-20s %-10s %-10s\n", sym.Name, sym.Kind, sym.ValueType)
	}
	fmt.Fprintf(out, "=====================\n")
}
