package util

import "reflect"

// IsZeroVal reports whether v holds the zero value of its type.
// Used for config merging: zero fields are treated as "not set".
func IsZeroVal(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}

func IsZero(i interface{}) bool {
	return IsZeroVal(reflect.ValueOf(i))
}
