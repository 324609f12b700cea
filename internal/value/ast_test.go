package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlvalue/internal/language"
)

// astValueEq compares AST nodes on kind, raw text and children, ignoring
// positions.
func astValueEq(a, b *language.Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Raw != b.Raw || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if a.Children[i].Name != b.Children[i].Name {
			return false
		}
		if !astValueEq(a.Children[i].Value, b.Children[i].Value) {
			return false
		}
	}
	return true
}

func parseLiteral(t *testing.T, src string) *language.Value {
	t.Helper()
	node, err := language.ParseValue(src)
	require.NoError(t, err, "parse %q", src)
	return node
}

func TestFromAST_Scalars(t *testing.T) {
	cases := []struct {
		src  string
		want Value
	}{
		{"42", Int(42)},
		{"-7", Int(-7)},
		{"1.5", Float(1.5)},
		{"true", Boolean(true)},
		{"false", Boolean(false)},
		{`"hello"`, String("hello")},
		{"RED", Enum("RED")},
		{"null", Null{}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got, ok := FromAST(parseLiteral(t, tc.src))
			if !ok {
				t.Fatalf("FromAST(%s) absent", tc.src)
			}
			if !Equal(got, tc.want) {
				t.Fatalf("FromAST(%s) = %#v, want %#v", tc.src, got, tc.want)
			}
		})
	}
}

func TestFromAST_BlockString(t *testing.T) {
	node := &language.Value{Kind: language.BlockValue, Raw: "multi\nline"}
	got, ok := FromAST(node)
	if !ok || !Equal(got, String("multi\nline")) {
		t.Fatalf("FromAST(block) = (%#v, %v)", got, ok)
	}
}

func TestFromAST_VariableIsAbsent(t *testing.T) {
	node := &language.Value{Kind: language.Variable, Raw: "limit"}
	if v, ok := FromAST(node); ok {
		t.Fatalf("FromAST(variable) = %#v, want absence", v)
	}
}

func TestFromAST_VariableInListPropagates(t *testing.T) {
	node := parseLiteral(t, `[1, $x, 3]`)
	if v, ok := FromAST(node); ok {
		t.Fatalf("FromAST([1, $x, 3]) = %#v, want absence", v)
	}
}

func TestFromAST_IntOutside32BitsIsAbsent(t *testing.T) {
	if v, ok := FromAST(parseLiteral(t, "2147483648")); ok {
		t.Fatalf("FromAST(2147483648) = %#v, want absence", v)
	}
	got, ok := FromAST(parseLiteral(t, "2147483647"))
	if !ok || !Equal(got, Int(2147483647)) {
		t.Fatalf("FromAST(2147483647) = (%#v, %v)", got, ok)
	}
}

func TestFromAST_DuplicateObjectFieldIsAbsent(t *testing.T) {
	if v, ok := FromAST(parseLiteral(t, `{a: 1, a: 2}`)); ok {
		t.Fatalf("FromAST({a:1,a:2}) = %#v, want absence", v)
	}
}

func TestFromAST_DepthGuard(t *testing.T) {
	node := &language.Value{Kind: language.IntValue, Raw: "1"}
	for i := 0; i < maxASTDepth+10; i++ {
		node = &language.Value{
			Kind:     language.ListValue,
			Children: language.ChildValueList{{Value: node}},
		}
	}
	if _, ok := FromAST(node); ok {
		t.Fatal("FromAST accepted a pathologically deep literal")
	}
}

func TestRoundTrip_ASTToValueToAST(t *testing.T) {
	// Canonically written literals survive the round trip exactly.
	sources := []string{
		"1",
		"-12",
		"1.5",
		"true",
		"null",
		`"text"`,
		"BLUE",
		"[]",
		"[1, 2, 3]",
		`[1, "two", RED]`,
		`{x: 1, y: null}`,
		`{b: 1, a: {c: [true]}}`,
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			parsed := parseLiteral(t, src)
			v, ok := FromAST(parsed)
			if !ok {
				t.Fatalf("FromAST(%s) absent", src)
			}
			back := ToAST(v)
			if !astValueEq(parsed, back) {
				t.Fatalf("round trip changed the AST:\n  in:  %s\n  out: %s",
					language.FormatValue(parsed), language.FormatValue(back))
			}
		})
	}
}

func TestRoundTrip_ValueToASTToValue(t *testing.T) {
	values := []Value{
		Int(0),
		Int(-2147483648),
		Float(2.25),
		Float(1), // integral float keeps its variant
		Boolean(true),
		String(""),
		String("with \"quotes\" and \n"),
		Enum("GREEN"),
		Null{},
		List{},
		List{Int(1), List{String("nested")}, Null{}},
		mustObject(t,
			field(t, "x", Int(1)),
			field(t, "y", Null{}),
		),
	}
	for _, v := range values {
		got, ok := FromAST(ToAST(v))
		if !ok {
			t.Fatalf("FromAST(ToAST(%#v)) absent", v)
		}
		if !Equal(got, v) {
			t.Fatalf("round trip changed the value: %#v -> %#v", v, got)
		}
	}
}

func TestRoundTrip_ObjectFieldOrderSurvives(t *testing.T) {
	v := mustObject(t,
		field(t, "x", Int(1)),
		field(t, "y", Null{}),
	)
	got, ok := FromAST(ToAST(v))
	require.True(t, ok)
	obj, ok := ToObject(got)
	require.True(t, ok)

	fields := obj.Fields()
	require.Len(t, fields, 2)
	if fields[0].Name != "x" || fields[1].Name != "y" {
		t.Fatalf("field order changed: %v, %v", fields[0].Name, fields[1].Name)
	}
}
