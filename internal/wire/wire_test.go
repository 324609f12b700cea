package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlvalue/internal/value"
)

func obj(t *testing.T, fields ...value.ObjectField) value.Object {
	t.Helper()
	o, ok := value.MakeObject(fields)
	require.True(t, ok, "MakeObject failed")
	return o
}

func fld(name value.Name, v value.Value) value.ObjectField {
	return value.ObjectField{Name: name, Value: v}
}

func TestMarshal_Scalars(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want string
	}{
		{"int", value.Int(42), "42"},
		{"negative int", value.Int(-1), "-1"},
		{"float", value.Float(1.5), "1.5"},
		{"boolean", value.Boolean(false), "false"},
		{"string", value.String("hi"), `"hi"`},
		{"string escapes", value.String("a\"b\nc"), `"a\"b\nc"`},
		{"enum is a bare name string", value.Enum("RED"), `"RED"`},
		{"null", value.Null{}, "null"},
		{"empty list", value.List{}, "[]"},
		{"list", value.List{value.Int(1), value.Boolean(true)}, "[1,true]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.v)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(got))
		})
	}
}

func TestMarshal_ObjectKeepsFieldOrder(t *testing.T) {
	o := obj(t, fld("b", value.Int(1)), fld("a", value.Int(2)))
	got, err := Marshal(o)
	require.NoError(t, err)
	// Stored order, not lexicographic.
	require.Equal(t, `{"b":1,"a":2}`, string(got))
}

func TestMarshal_NestedOrder(t *testing.T) {
	inner := obj(t, fld("y", value.Null{}), fld("x", value.Int(1)))
	o := obj(t,
		fld("list", value.List{inner}),
		fld("z", value.String("last")),
	)
	got, err := Marshal(o)
	require.NoError(t, err)
	require.Equal(t, `{"list":[{"y":null,"x":1}],"z":"last"}`, string(got))
}

func TestMarshal_NonFiniteFloatFails(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Marshal(value.Float(f)); err == nil {
			t.Errorf("Marshal(%v) succeeded, want error", f)
		}
	}
}

func TestMarshalIndent(t *testing.T) {
	o := obj(t, fld("a", value.Int(1)))
	got, err := MarshalIndent(o)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1\n}", string(got))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, value.List{value.Int(1)}))
	require.Equal(t, "[1]", buf.String())
}

func TestUnmarshal_PreservesKeyOrder(t *testing.T) {
	v, err := Unmarshal([]byte(`{"b":1,"a":2}`))
	require.NoError(t, err)
	o, ok := value.ToObject(v)
	require.True(t, ok)

	fields := o.Fields()
	require.Len(t, fields, 2)
	require.Equal(t, value.Name("b"), fields[0].Name)
	require.Equal(t, value.Name("a"), fields[1].Name)
}

func TestUnmarshal_Numbers(t *testing.T) {
	cases := []struct {
		src  string
		want value.Value
	}{
		{"7", value.Int(7)},
		{"-2147483648", value.Int(math.MinInt32)},
		{"2147483647", value.Int(math.MaxInt32)},
		{"2147483648", value.Float(2147483648)}, // too wide for Int
		{"1.25", value.Float(1.25)},
		{"1e3", value.Float(1000)},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := Unmarshal([]byte(tc.src))
			require.NoError(t, err)
			if !value.Equal(got, tc.want) {
				t.Fatalf("Unmarshal(%s) = %#v, want %#v", tc.src, got, tc.want)
			}
		})
	}
}

func TestUnmarshal_RejectsDuplicateKeys(t *testing.T) {
	_, err := Unmarshal([]byte(`{"a":1,"a":2}`))
	require.Error(t, err)
}

func TestUnmarshal_RejectsInvalidKey(t *testing.T) {
	_, err := Unmarshal([]byte(`{"not a name":1}`))
	require.Error(t, err)
}

func TestUnmarshal_RejectsTrailingData(t *testing.T) {
	_, err := Unmarshal([]byte(`1 2`))
	require.Error(t, err)
}

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	v := obj(t,
		fld("b", value.List{value.Int(1), value.Null{}, value.String("s")}),
		fld("a", obj(t, fld("nested", value.Boolean(true)))),
	)
	data, err := Marshal(v)
	require.NoError(t, err)
	back, err := Unmarshal(data)
	require.NoError(t, err)
	if !value.Equal(value.Value(v), back) {
		t.Fatalf("wire round trip changed the value:\n  in:  %#v\n  out: %#v", v, back)
	}
}

func TestDepthGuard(t *testing.T) {
	deep := value.Value(value.Int(1))
	for i := 0; i < maxWireDepth+10; i++ {
		deep = value.List{deep}
	}
	if _, err := Marshal(deep); err == nil {
		t.Fatal("Marshal accepted a pathologically deep value")
	}

	src := bytes.Repeat([]byte("["), maxWireDepth+10)
	if _, err := Unmarshal(src); err == nil {
		t.Fatal("Unmarshal accepted pathologically deep input")
	}
}
