package value

import (
	"strconv"
	"strings"

	"github.com/hanpama/gqlvalue/internal/language"
)

// maxASTDepth bounds recursion in FromAST; parser output is untrusted and a
// deeply nested literal must not grow the call stack without limit.
const maxASTDepth = 512

// FromAST converts a parsed AST value node to its canonical Value. The
// conversion is partial: it reports false for variable nodes (which have no
// literal form and must be resolved through variable bindings elsewhere),
// for object nodes with duplicate field names, for int literals outside the
// 32-bit range, and whenever any nested node fails. Absence here is ordinary
// control flow, not an error.
func FromAST(node *language.Value) (Value, bool) {
	return fromAST(node, 0)
}

func fromAST(node *language.Value, depth int) (Value, bool) {
	if node == nil || depth > maxASTDepth {
		return nil, false
	}
	switch node.Kind {
	case language.IntValue:
		n, err := strconv.ParseInt(node.Raw, 10, 32)
		if err != nil {
			return nil, false
		}
		return Int(n), true
	case language.FloatValue:
		f, err := strconv.ParseFloat(node.Raw, 64)
		if err != nil {
			return nil, false
		}
		return Float(f), true
	case language.BooleanValue:
		return Boolean(node.Raw == "true"), true
	case language.StringValue, language.BlockValue:
		return String(node.Raw), true
	case language.EnumValue:
		name, ok := MakeName(node.Raw)
		if !ok {
			return nil, false
		}
		return Enum(name), true
	case language.NullValue:
		return Null{}, true
	case language.ListValue:
		out := make(List, 0, len(node.Children))
		for _, c := range node.Children {
			v, ok := fromAST(c.Value, depth+1)
			if !ok {
				return nil, false
			}
			out = append(out, v)
		}
		return out, true
	case language.ObjectValue:
		fields := make([]ObjectField, 0, len(node.Children))
		for _, c := range node.Children {
			name, ok := MakeName(c.Name)
			if !ok {
				return nil, false
			}
			v, ok := fromAST(c.Value, depth+1)
			if !ok {
				return nil, false
			}
			fields = append(fields, ObjectField{Name: name, Value: v})
		}
		return MakeObject(fields)
	default:
		// Variable nodes and unknown kinds have no canonical form.
		return nil, false
	}
}

// ToAST converts a canonical Value back to an AST node. It is total and the
// near-inverse of FromAST: every variant has a direct AST counterpart, and
// FromAST(ToAST(v)) always yields a Value equal to v, field order intact.
// Numeric raws come out canonical, so AST round-trips are exact for
// canonically written literals.
func ToAST(v Value) *language.Value {
	switch v := v.(type) {
	case Int:
		return &language.Value{Kind: language.IntValue, Raw: strconv.FormatInt(int64(v), 10)}
	case Float:
		return &language.Value{Kind: language.FloatValue, Raw: formatFloatRaw(float64(v))}
	case Boolean:
		return &language.Value{Kind: language.BooleanValue, Raw: strconv.FormatBool(bool(v))}
	case String:
		return &language.Value{Kind: language.StringValue, Raw: string(v)}
	case Enum:
		return &language.Value{Kind: language.EnumValue, Raw: string(v)}
	case List:
		children := make(language.ChildValueList, len(v))
		for i, item := range v {
			children[i] = &language.ChildValue{Value: ToAST(item)}
		}
		return &language.Value{Kind: language.ListValue, Children: children}
	case Object:
		fields := v.Fields()
		children := make(language.ChildValueList, len(fields))
		for i, f := range fields {
			children[i] = &language.ChildValue{Name: string(f.Name), Value: ToAST(f.Value)}
		}
		return &language.Value{Kind: language.ObjectValue, Children: children}
	default: // Null
		return &language.Value{Kind: language.NullValue, Raw: "null"}
	}
}

// formatFloatRaw renders f so the lexer reads it back as a float literal,
// never an int.
func formatFloatRaw(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
