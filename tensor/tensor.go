package tensor

import "fmt"

// Tensor is a generic n-dimensional array with element type T and backend B.
//
// A tensor exclusively owns its flat row-major buffer; operations that
// logically change shape (Reshape, Transpose) materialize a new tensor with
// its own copy of the data rather than aliasing the source. The backend is a
// stateless value carried along into every derived tensor.
//
// Example:
//
//	backend := cpu.New[float32]()
//	t := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)
//	result := t.Add(t)
type Tensor[T Numeric, B Backend[T]] struct {
	data    []T
	shape   Shape
	strides []int
	backend B
}

// wrap builds a tensor around a backend-produced buffer.
// The buffer length must already match the shape.
func wrap[T Numeric, B Backend[T]](data []T, shape Shape, b B) *Tensor[T, B] {
	return &Tensor[T, B]{
		data:    data,
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		backend: b,
	}
}

func mustValidate(shape Shape) {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
}

// New creates a tensor of the given shape with unspecified (zero) contents.
func New[T Numeric, B Backend[T]](shape Shape, b B) *Tensor[T, B] {
	mustValidate(shape)
	return wrap(b.Allocate(shape), shape, b)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New[float32]()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func Zeros[T Numeric, B Backend[T]](shape Shape, b B) *Tensor[T, B] {
	mustValidate(shape)
	return wrap(b.Zeros(shape), shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T Numeric, B Backend[T]](shape Shape, b B) *Tensor[T, B] {
	mustValidate(shape)
	return wrap(b.Ones(shape), shape, b)
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's own buffer.
func FromSlice[T Numeric, B Backend[T]](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	buf := make([]T, len(data))
	copy(buf, data)
	return wrap(buf, shape, b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's row-major strides.
func (t *Tensor[T, B]) Strides() []int {
	return t.strides
}

// NumElements returns the total number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return len(t.data)
}

// NDim returns the number of dimensions.
func (t *Tensor[T, B]) NDim() int {
	return len(t.shape)
}

// Data returns the tensor's backing buffer.
// The slice directly accesses the underlying memory (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T, B]) Data() []T {
	return t.data
}

// Backend returns the computation backend.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Clone creates a deep copy of the tensor.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	buf := make([]T, len(t.data))
	copy(buf, t.data)
	return wrap(buf, t.shape, t.backend)
}

// String returns a human-readable representation of the tensor.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor%v on %s", t.shape, t.backend.Name())
}

// flatIndex computes the linear offset for a multi-dimensional coordinate.
// Panics on a rank mismatch or an out-of-bounds index.
func (t *Tensor[T, B]) flatIndex(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		offset += idx * t.strides[i]
	}
	return offset
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
//
// Example:
//
//	t := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)
//	value := t.At(1, 2) // Row 1, column 2
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.data[t.flatIndex(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.data[t.flatIndex(indices)] = value
}

// requireSameShape guards the elementwise operations. No broadcasting:
// shapes must match exactly.
func (t *Tensor[T, B]) requireSameShape(op string, other *Tensor[T, B]) {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, t.shape, other.shape))
	}
}

// Add returns the element-wise sum of t and other.
// Both tensors must have exactly the same shape.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	t.requireSameShape("add", other)
	return wrap(t.backend.Add(t.data, other.data), t.shape, t.backend)
}

// Sub returns the element-wise difference of t and other.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	t.requireSameShape("sub", other)
	return wrap(t.backend.Sub(t.data, other.data), t.shape, t.backend)
}

// Mul returns the element-wise product of t and other.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	t.requireSameShape("mul", other)
	return wrap(t.backend.Mul(t.data, other.data), t.shape, t.backend)
}

// Div returns the element-wise quotient of t and other.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	t.requireSameShape("div", other)
	return wrap(t.backend.Div(t.data, other.data), t.shape, t.backend)
}

// MatMul computes the matrix product of two 2-D tensors.
// For t of shape (M, K) and other of shape (K, N) the result has shape (M, N).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(t.shape), len(other.shape)))
	}
	if t.shape[1] != other.shape[0] {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]",
			t.shape[0], t.shape[1], other.shape[0], other.shape[1]))
	}

	out := t.backend.MatMul(t.data, t.shape, other.data, other.shape)
	return wrap(out, Shape{t.shape[0], other.shape[1]}, t.backend)
}

// Reshape returns a tensor with the same elements in the given shape.
// The element count must be preserved. The result owns a fresh copy of the
// data; it never aliases the source buffer.
func (t *Tensor[T, B]) Reshape(newShape Shape) *Tensor[T, B] {
	mustValidate(newShape)
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("cannot reshape tensor of size %d to shape %v with size %d",
			t.NumElements(), newShape, newShape.NumElements()))
	}

	buf := make([]T, len(t.data))
	copy(buf, t.data)
	return wrap(buf, newShape, t.backend)
}

// Transpose returns the transpose of a 2-D tensor.
// The result is an independently materialized copy, not a strided view.
func (t *Tensor[T, B]) Transpose() *Tensor[T, B] {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D tensors supported, got %dD", len(t.shape)))
	}

	rows, cols := t.shape[0], t.shape[1]
	buf := make([]T, len(t.data))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			buf[j*rows+i] = t.data[i*cols+j]
		}
	}
	return wrap(buf, Shape{cols, rows}, t.backend)
}
