package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations: they work on
// flat row-major buffers plus explicit shape metadata and carry no state of
// their own, so a backend value can be freely copied wherever a tensor is
// cloned or derived.
//
// Implementations:
//   - backend/cpu: sequential reference implementation
//   - backend/cpu (Parallel): work-partitioned over a goroutine pool
//
// Any future backend (GPU-resident, distributed) must satisfy the same
// contracts: Allocate/Zeros/Ones return buffers of exactly
// shape.NumElements() elements, the elementwise ops require equal-length
// inputs, MatMul requires 2-D operands with matching inner dimensions, and
// every operation returns a newly allocated buffer — inputs are never
// mutated.
//
// MatMul accumulates each output cell in ascending order over the
// contraction index. Implementations must preserve that order so
// floating-point results are bit-identical across backends.
//
// Example:
//
//	backend := cpu.New[float32]()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend[T Numeric] interface {
	// Allocation. Allocate returns a buffer sized for the shape with
	// unspecified (zero) contents; Zeros and Ones fill with the zero value
	// and the synthesized one value respectively.
	Allocate(shape Shape) []T
	Zeros(shape Shape) []T
	Ones(shape Shape) []T

	// Element-wise binary operations. Inputs must have equal length.
	Add(a, b []T) []T // Element-wise addition.
	Sub(a, b []T) []T // Element-wise subtraction.
	Mul(a, b []T) []T // Element-wise multiplication.
	Div(a, b []T) []T // Element-wise division.

	// MatMul computes the dense matrix product of a (aShape) and b (bShape).
	// Both shapes must be 2-D with aShape[1] == bShape[0]; the result is
	// row-major with aShape[0]*bShape[1] elements.
	MatMul(a []T, aShape Shape, b []T, bShape Shape) []T

	// Name returns the backend name (e.g., "CPU", "CPU-Parallel").
	Name() string
}
