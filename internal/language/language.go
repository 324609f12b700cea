// Package language is the only package that talks to the GraphQL parser.
// It re-exports the parser's AST value types and adds helpers for working
// with standalone literals.
package language

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseValue parses a standalone GraphQL literal such as `{a: 1, b: [true]}`.
// The parser only accepts values inside a document, so the literal is planted
// as a field argument in a synthetic operation and extracted back out.
func ParseValue(source string) (*Value, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: "{__value(v: " + source + ")}"})
	if err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	if len(doc.Operations) != 1 || len(doc.Operations[0].SelectionSet) != 1 {
		return nil, fmt.Errorf("parse value: input is not a single literal")
	}
	field, ok := doc.Operations[0].SelectionSet[0].(*Field)
	if !ok || len(field.Arguments) != 1 {
		return nil, fmt.Errorf("parse value: input is not a single literal")
	}
	return field.Arguments[0].Value, nil
}

// FormatValue renders an AST value as GraphQL source text. Object fields are
// emitted in stored order. Block strings come back as ordinary quoted strings.
func FormatValue(v *Value) string {
	var b strings.Builder
	formatValue(&b, v)
	return b.String()
}

func formatValue(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("null")
		return
	}
	switch v.Kind {
	case Variable:
		b.WriteString("$")
		b.WriteString(strings.TrimPrefix(v.Raw, "$"))
	case StringValue, BlockValue:
		quoteString(b, v.Raw)
	case ListValue:
		b.WriteString("[")
		for i, c := range v.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			formatValue(b, c.Value)
		}
		b.WriteString("]")
	case ObjectValue:
		b.WriteString("{")
		for i, c := range v.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
			b.WriteString(": ")
			formatValue(b, c.Value)
		}
		b.WriteString("}")
	default:
		// Int, Float, Boolean, Null and Enum literals are their raw text.
		b.WriteString(v.Raw)
	}
}

// quoteString writes s as a GraphQL string literal. GraphQL strings use the
// JSON escape set, so strconv.Quote (Go escapes) is not usable here.
func quoteString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
