package cpu

import (
	"github.com/ArnaudDumanois/Kranium/internal/parallel"
	"github.com/ArnaudDumanois/Kranium/tensor"
)

// Parallel is the data-parallel CPU backend. MatMul and the element-wise
// kernels fan their output indices across a goroutine pool sized to the
// available hardware parallelism; every call still returns synchronously
// after all workers have joined.
//
// Each work item reads only the immutable input buffers and writes a single
// disjoint output slot, so the join barrier is the only synchronization.
// Per-cell accumulation order matches the sequential backend, making the two
// variants bit-identical.
type Parallel[T tensor.Numeric] struct {
	cfg parallel.Config
}

// NewParallel creates a parallel CPU backend sized to runtime.NumCPU().
func NewParallel[T tensor.Numeric]() Parallel[T] {
	return Parallel[T]{cfg: parallel.DefaultConfig()}
}

// NewParallelWithConfig creates a parallel CPU backend with an explicit
// worker configuration. Useful for tests and for callers embedding the
// library into a pipeline with its own CPU budget.
func NewParallelWithConfig[T tensor.Numeric](cfg parallel.Config) Parallel[T] {
	return Parallel[T]{cfg: cfg}
}

// Name returns the backend name.
func (Parallel[T]) Name() string {
	return "CPU-Parallel"
}

// Allocate returns a buffer sized for the shape. Contents are unspecified
// (the Go zero value).
func (Parallel[T]) Allocate(shape tensor.Shape) []T {
	return make([]T, shape.NumElements())
}

// Zeros returns a buffer of shape.NumElements() zero values.
func (Parallel[T]) Zeros(shape tensor.Shape) []T {
	return make([]T, shape.NumElements())
}

// Ones returns a buffer of shape.NumElements() one values.
func (p Parallel[T]) Ones(shape tensor.Shape) []T {
	out := make([]T, shape.NumElements())
	parallel.ForRange(len(out), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = T(1)
		}
	}, p.cfg)
	return out
}

// Add performs element-wise addition across the worker pool.
func (p Parallel[T]) Add(a, b []T) []T {
	checkLen("add", a, b)
	return p.mapPairwise(a, b, func(x, y T) T { return x + y })
}

// Sub performs element-wise subtraction across the worker pool.
func (p Parallel[T]) Sub(a, b []T) []T {
	checkLen("sub", a, b)
	return p.mapPairwise(a, b, func(x, y T) T { return x - y })
}

// Mul performs element-wise multiplication across the worker pool.
func (p Parallel[T]) Mul(a, b []T) []T {
	checkLen("mul", a, b)
	return p.mapPairwise(a, b, func(x, y T) T { return x * y })
}

// Div performs element-wise division across the worker pool.
func (p Parallel[T]) Div(a, b []T) []T {
	checkLen("div", a, b)
	return p.mapPairwise(a, b, func(x, y T) T { return x / y })
}

// mapPairwise applies f per index. The operator is pointwise, so the work
// items are order-insensitive and freely partitionable.
func (p Parallel[T]) mapPairwise(a, b []T, f func(x, y T) T) []T {
	out := make([]T, len(a))
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f(a[i], b[i])
		}
	}, p.cfg)
	return out
}

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
// The m*n output cells are partitioned into contiguous ranges, one range per
// worker; each cell is accumulated in the same ascending order as the
// sequential backend.
func (p Parallel[T]) MatMul(a []T, aShape tensor.Shape, b []T, bShape tensor.Shape) []T {
	m, k, n := checkMatMul(aShape, bShape)

	out := make([]T, m*n)
	parallel.ForRange(m*n, func(start, end int) {
		for idx := start; idx < end; idx++ {
			out[idx] = dot(a, b, idx/n, idx%n, k, n)
		}
	}, p.cfg)
	return out
}
