// Package helpers holds fail-fast checks used by constructors.
package helpers

import "reflect"

// StrPanic panics with panicMessage if s is empty, otherwise returns s.
// Used for required configuration strings such as base URLs.
func StrPanic(s string, panicMessage string) string {
	if s == "" {
		panic(panicMessage)
	}
	return s
}

// NilPanic panics with panicMessage if v is nil (including typed nil pointers, maps,
// slices, channels, funcs and interfaces), otherwise returns v.
//
// Called from constructors in service, registrar and adapters to validate required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
