// Package mathutil holds small pure arithmetic helpers.
package mathutil

// Number is satisfied by every built-in integer and floating-point type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Add returns a + b.  Integer overflow wraps.
func Add[T Number](a, b T) T {
	return a + b
}

// Multiply returns a * b.  Integer overflow wraps.
func Multiply[T Number](a, b T) T {
	return a * b
}
