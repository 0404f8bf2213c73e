// Package ptr provides utility functions for working with pointers.
package ptr

// Deref returns the value pointed to by the given pointer, or the zero
// value for a nil pointer. Handy for optional fields in decoded payloads.
func Deref[T any](ptr *T) T {
	if ptr == nil {
		var zero T

		return zero
	}

	return *ptr
}
