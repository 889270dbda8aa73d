package codec

import (
	"fmt"
	"reflect"

	"github.com/verdant-robotics/cbuf/pkg/schema"
)

// resolveValue applies spec §4.8's field-value lookup order: the payload's
// own entry, then the field's declared default, then nil (meaning "the
// type's zero value", applied by the caller per field kind).
func resolveValue(f *schema.Field, payload map[string]any) any {
	if payload != nil {
		if v, ok := payload[f.Name]; ok && v != nil {
			return v
		}
	}
	if f.HasDefault {
		return f.DefaultValue
	}
	return nil
}

// toSlice flattens any slice or array value (a generic []any, or a
// concrete typed slice such as []int32 or []map[string]any) into []any,
// mirroring the teacher's reflect-based ValidateArray rather than
// type-switching over every possible element type.
func toSlice(value any) ([]any, error) {
	if value == nil {
		return nil, nil
	}
	if s, ok := value.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("codec: expected array value, got %T", value)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func valueOrZero(v any, zero any) any {
	if v == nil {
		return zero
	}
	return v
}

func coerceBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case float64:
		return t != 0, nil
	default:
		return false, fmt.Errorf("codec: expected bool, got %T", v)
	}
}

func coerceInt(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case float32:
		return int64(t), nil
	default:
		return 0, fmt.Errorf("codec: expected integer, got %T", v)
	}
}

func coerceUint(v any) (uint64, error) {
	switch t := v.(type) {
	case uint64:
		return t, nil
	case uint32:
		return uint64(t), nil
	case uint16:
		return uint64(t), nil
	case uint8:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case int32:
		return uint64(t), nil
	case int16:
		return uint64(t), nil
	case int8:
		return uint64(t), nil
	case int:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case float32:
		return uint64(t), nil
	default:
		return 0, fmt.Errorf("codec: expected unsigned integer, got %T", v)
	}
}

func coerceFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("codec: expected float, got %T", v)
	}
}

func coerceString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("codec: expected string, got %T", v)
	}
	return s, nil
}

// primitiveWidth is the fixed wire width of a scalar primitive; 0 for
// string, whose width depends on the field (bounded or length-prefixed).
func primitiveWidth(tag string) int {
	switch tag {
	case schema.Bool, schema.Int8, schema.Uint8:
		return 1
	case schema.Int16, schema.Uint16:
		return 2
	case schema.Int32, schema.Uint32, schema.Float32:
		return 4
	case schema.Int64, schema.Uint64, schema.Float64:
		return 8
	default:
		return 0
	}
}

func isNumeric(tag string) bool {
	switch tag {
	case schema.Int8, schema.Uint8, schema.Int16, schema.Uint16,
		schema.Int32, schema.Uint32, schema.Int64, schema.Uint64,
		schema.Float32, schema.Float64:
		return true
	default:
		return false
	}
}
