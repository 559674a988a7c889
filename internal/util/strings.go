package util

import (
	"fmt"
	"strings"
)

// EscapeString makes s safe to embed between double quotes in a GNU assembler
// .string directive. Bytes outside printable ASCII are written as three-digit
// octal escapes, since a hex escape would swallow any hex digits that follow it.
func EscapeString(s string) string {
	sb := strings.Builder{}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '"':
			sb.WriteString(`\"`)
		case b == '\\':
			sb.WriteString(`\\`)
		case b == '\n':
			sb.WriteString(`\n`)
		case b == '\t':
			sb.WriteString(`\t`)
		case b >= 0x20 && b < 0x7f:
			sb.WriteByte(b)
		default:
			sb.WriteString(fmt.Sprintf("\\%03o", b))
		}
	}
	return sb.String()
}
