// Package casing translates keys between the lowerCamelCase used in JSON
// payloads and the snake_case used for table columns.
package casing

import "strings"

// ToStorageCase converts a wire-case key to storage case: every ASCII upper
// case letter becomes an underscore followed by its lower case form.
func ToStorageCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i := 0; i < len(key); i++ {
		ch := key[i]
		if ch >= 'A' && ch <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(ch + ('a' - 'A'))
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// ToWireCase converts a storage-case key to wire case. A '-' or '_' directly
// followed by an ASCII letter is dropped and the letter is upper cased.
func ToWireCase(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		ch := key[i]
		if (ch == '_' || ch == '-') && i+1 < len(key) && isLetter(key[i+1]) {
			next := key[i+1]
			if next >= 'a' && next <= 'z' {
				next -= 'a' - 'A'
			}
			b.WriteByte(next)
			i++
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// KeysToWire returns a copy of v with every map key converted by ToWireCase.
func KeysToWire(v any) any {
	return convertKeys(v, ToWireCase)
}

// KeysToStorage returns a copy of v with every map key converted by ToStorageCase.
func KeysToStorage(v any) any {
	return convertKeys(v, ToStorageCase)
}

// convertKeys walks sequences and maps; scalars and unknown types are
// returned as they are. The input is never modified.
func convertKeys(v any, fn func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fn(k)] = convertKeys(item, fn)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = convertKeys(item, fn)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = convertKeys(item, fn)
		}
		return out
	default:
		return v
	}
}

// MapToWire is KeysToWire for a single row.
func MapToWire(row map[string]any) map[string]any {
	return convertKeys(row, ToWireCase).(map[string]any)
}

// MapToStorage is KeysToStorage for a single row.
func MapToStorage(row map[string]any) map[string]any {
	return convertKeys(row, ToStorageCase).(map[string]any)
}

// RowsToWire converts every row of a result set to wire case, keeping order.
func RowsToWire(rows []map[string]any) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		out[i] = MapToWire(row)
	}
	return out
}
