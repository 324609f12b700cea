// Package protobridge moves canonical Values across the protobuf boundary:
// google.protobuf.Value/Struct in both directions and dynamic messages by
// descriptor.
package protobridge

import (
	"fmt"
	"math"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/hanpama/gqlvalue/internal/value"
)

// ToStructValue converts v to a google.protobuf.Value. Struct fields are a
// plain map on the proto side, so Object field order does not survive this
// direction; Int travels as a float64 number because structpb has no
// integer kind.
func ToStructValue(v value.Value) (*structpb.Value, error) {
	switch v := v.(type) {
	case value.Int:
		return structpb.NewNumberValue(float64(v)), nil
	case value.Float:
		return structpb.NewNumberValue(float64(v)), nil
	case value.Boolean:
		return structpb.NewBoolValue(bool(v)), nil
	case value.String:
		return structpb.NewStringValue(string(v)), nil
	case value.Enum:
		return structpb.NewStringValue(string(v)), nil
	case value.List:
		values := make([]*structpb.Value, len(v))
		for i, item := range v {
			sv, err := ToStructValue(item)
			if err != nil {
				return nil, err
			}
			values[i] = sv
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	case value.Object:
		s, err := ToStruct(v)
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(s), nil
	case value.Null, nil:
		return structpb.NewNullValue(), nil
	default:
		return nil, fmt.Errorf("unknown value kind %s", v.Kind())
	}
}

// ToStruct converts an Object to a google.protobuf.Struct.
func ToStruct(o value.Object) (*structpb.Struct, error) {
	fields := make(map[string]*structpb.Value, o.Len())
	for _, f := range o.Fields() {
		sv, err := ToStructValue(f.Value)
		if err != nil {
			return nil, err
		}
		fields[string(f.Name)] = sv
	}
	return &structpb.Struct{Fields: fields}, nil
}

// FromStructValue converts a google.protobuf.Value to a canonical Value.
// Numbers that are integral and fit int32 become Int, the rest Float.
func FromStructValue(v *structpb.Value) (value.Value, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue, nil:
		return value.Null{}, nil
	case *structpb.Value_BoolValue:
		return value.Boolean(kind.BoolValue), nil
	case *structpb.Value_NumberValue:
		f := kind.NumberValue
		if f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32 {
			return value.Int(int32(f)), nil
		}
		return value.Float(f), nil
	case *structpb.Value_StringValue:
		return value.String(kind.StringValue), nil
	case *structpb.Value_ListValue:
		items := kind.ListValue.GetValues()
		out := make(value.List, len(items))
		for i, item := range items {
			cv, err := FromStructValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	case *structpb.Value_StructValue:
		return FromStruct(kind.StructValue)
	default:
		return nil, fmt.Errorf("unknown struct value kind %T", kind)
	}
}

// FromStruct converts a google.protobuf.Struct to an Object. Struct fields
// carry no order, so keys are taken in sorted order for determinism.
func FromStruct(s *structpb.Struct) (value.Object, error) {
	keys := make([]string, 0, len(s.GetFields()))
	for k := range s.GetFields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]value.ObjectField, 0, len(keys))
	for _, k := range keys {
		name, ok := value.MakeName(k)
		if !ok {
			return value.Object{}, fmt.Errorf("struct key %q is not a valid name", k)
		}
		cv, err := FromStructValue(s.Fields[k])
		if err != nil {
			return value.Object{}, err
		}
		fields = append(fields, value.ObjectField{Name: name, Value: cv})
	}
	obj, ok := value.MakeObject(fields)
	if !ok {
		return value.Object{}, fmt.Errorf("struct has a duplicate key")
	}
	return obj, nil
}
