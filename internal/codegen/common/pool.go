package common

import (
	"fmt"
	"math"

	"github.com/iley/fang/internal/asm"
)

// LiteralPool deduplicates string and real constants and hands out stable labels.
// Labels are allocated in first-seen order: str_0, str_1, ... and real_0, real_1, ...
type LiteralPool struct {
	strings      []asm.StringLiteral
	stringLabels map[string]string
	reals        []asm.FloatLiteral
	realLabels   map[uint64]string
}

func NewLiteralPool() *LiteralPool {
	return &LiteralPool{
		stringLabels: make(map[string]string),
		realLabels:   make(map[uint64]string),
	}
}

func (p *LiteralPool) InternString(text string) string {
	if label, ok := p.stringLabels[text]; ok {
		return label
	}
	label := fmt.Sprintf("str_%d", len(p.strings))
	p.stringLabels[text] = label
	p.strings = append(p.strings, asm.StringLiteral{Label: label, Text: text})
	return label
}

// InternReal keys on the exact bit pattern, so 0.0 and -0.0 get separate labels.
func (p *LiteralPool) InternReal(value float64) string {
	bits := math.Float64bits(value)
	if label, ok := p.realLabels[bits]; ok {
		return label
	}
	label := fmt.Sprintf("real_%d", len(p.reals))
	p.realLabels[bits] = label
	p.reals = append(p.reals, asm.FloatLiteral{Label: label, Value: value})
	return label
}

func (p *LiteralPool) Strings() []asm.StringLiteral {
	return p.strings
}

func (p *LiteralPool) Reals() []asm.FloatLiteral {
	return p.reals
}

func (p *LiteralPool) Len() int {
	return len(p.strings) + len(p.reals)
}
