package domain

import (
	"encoding/json"
	"reflect"
)

// Itemer is implemented by boxed scalar containers, such as zero-dimensional
// tensors, that can surrender their single value.
type Itemer interface {
	Item() float64
}

// ExtractValue reduces a metric function's return value to a plain float64.
//
// Accepted: any Go integer or float kind (including named types), json.Number,
// an Itemer, or a slice or array holding exactly one accepted value.
// Anything else yields an *UnsupportedMetricTypeError.
func ExtractValue(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, &UnsupportedMetricTypeError{Value: v}
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case Itemer:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return 0, &UnsupportedMetricTypeError{Value: v}
		}
		return x.Item(), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, &UnsupportedMetricTypeError{Value: v}
		}
		return f, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Slice, reflect.Array:
		if rv.Len() != 1 {
			return 0, &UnsupportedMetricTypeError{Value: v}
		}
		f, err := ExtractValue(rv.Index(0).Interface())
		if err != nil {
			return 0, &UnsupportedMetricTypeError{Value: v}
		}
		return f, nil
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, &UnsupportedMetricTypeError{Value: v}
		}
		return ExtractValue(rv.Elem().Interface())
	}
	return 0, &UnsupportedMetricTypeError{Value: v}
}
