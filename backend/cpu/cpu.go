// Package cpu implements the CPU compute backends for Kranium tensors.
//
// Two variants are provided: Backend is the single-threaded reference
// implementation, Parallel partitions work across a goroutine pool. Both
// satisfy tensor.Backend and produce bit-identical results for identical
// inputs.
package cpu

import (
	"fmt"

	"github.com/ArnaudDumanois/Kranium/tensor"
)

// Backend is the sequential CPU backend. It is stateless; the zero value is
// ready to use and copies are interchangeable.
type Backend[T tensor.Numeric] struct{}

// New creates a new sequential CPU backend.
func New[T tensor.Numeric]() Backend[T] {
	return Backend[T]{}
}

// Name returns the backend name.
func (Backend[T]) Name() string {
	return "CPU"
}

// Allocate returns a buffer sized for the shape. Contents are unspecified
// (the Go zero value).
func (Backend[T]) Allocate(shape tensor.Shape) []T {
	return make([]T, shape.NumElements())
}

// Zeros returns a buffer of shape.NumElements() zero values.
func (Backend[T]) Zeros(shape tensor.Shape) []T {
	return make([]T, shape.NumElements())
}

// Ones returns a buffer of shape.NumElements() one values.
func (Backend[T]) Ones(shape tensor.Shape) []T {
	out := make([]T, shape.NumElements())
	for i := range out {
		out[i] = T(1)
	}
	return out
}

// Add performs element-wise addition.
func (Backend[T]) Add(a, b []T) []T {
	checkLen("add", a, b)
	out := make([]T, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// Sub performs element-wise subtraction.
func (Backend[T]) Sub(a, b []T) []T {
	checkLen("sub", a, b)
	out := make([]T, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// Mul performs element-wise multiplication.
func (Backend[T]) Mul(a, b []T) []T {
	checkLen("mul", a, b)
	out := make([]T, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

// Div performs element-wise division.
func (Backend[T]) Div(a, b []T) []T {
	checkLen("div", a, b)
	out := make([]T, len(a))
	for i := range a {
		out[i] = a[i] / b[i]
	}
	return out
}

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
func (Backend[T]) MatMul(a []T, aShape tensor.Shape, b []T, bShape tensor.Shape) []T {
	m, k, n := checkMatMul(aShape, bShape)

	out := make([]T, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = dot(a, b, i, j, k, n)
		}
	}
	return out
}

// dot accumulates one output cell, ascending over the contraction index.
// Both backends must use this exact order so floating-point rounding is
// identical across variants.
func dot[T tensor.Numeric](a, b []T, i, j, k, n int) T {
	var sum T
	for l := 0; l < k; l++ {
		sum += a[i*k+l] * b[l*n+j]
	}
	return sum
}

// checkLen guards the element-wise kernels: inputs must have equal length,
// never silent truncation.
func checkLen[T tensor.Numeric](op string, a, b []T) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("%s: length mismatch %d vs %d", op, len(a), len(b)))
	}
}

// checkMatMul validates the matmul preconditions and returns (m, k, n).
func checkMatMul(aShape, bShape tensor.Shape) (m, k, n int) {
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]",
			aShape[0], aShape[1], bShape[0], bShape[1]))
	}
	return aShape[0], aShape[1], bShape[1]
}
