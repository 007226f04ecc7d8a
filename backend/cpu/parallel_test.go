package cpu_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ArnaudDumanois/Kranium/backend/cpu"
	"github.com/ArnaudDumanois/Kranium/internal/parallel"
	"github.com/ArnaudDumanois/Kranium/tensor"
)

func randomFloat32(rng *rand.Rand, n int) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = rng.Float32()*2 - 1
	}
	return buf
}

func randomFloat64(rng *rand.Rand, n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return buf
}

// TestMatMulBitIdentical verifies the required property that sequential and
// parallel matmul agree bit-for-bit: both accumulate each output cell in the
// same ascending order, so floating-point rounding cannot diverge.
func TestMatMulBitIdentical(t *testing.T) {
	seq := cpu.New[float32]()
	par := cpu.NewParallel[float32]()
	rng := rand.New(rand.NewSource(42))

	sizes := []struct{ m, k, n int }{
		{1, 1, 1},
		{2, 3, 2},
		{7, 5, 3},
		{16, 16, 16},
		{33, 65, 17},
		{128, 64, 96},
	}

	for _, sz := range sizes {
		t.Run(fmt.Sprintf("%dx%dx%d", sz.m, sz.k, sz.n), func(t *testing.T) {
			a := randomFloat32(rng, sz.m*sz.k)
			b := randomFloat32(rng, sz.k*sz.n)
			aShape := tensor.Shape{sz.m, sz.k}
			bShape := tensor.Shape{sz.k, sz.n}

			want := seq.MatMul(a, aShape, b, bShape)
			got := par.MatMul(a, aShape, b, bShape)

			// Exact equality, not approximate: the accumulation order is
			// pinned, so every bit must match.
			require.Equal(t, want, got)
		})
	}
}

func TestElementwiseMatchesSequential(t *testing.T) {
	seq := cpu.New[float32]()
	par := cpu.NewParallel[float32]()
	rng := rand.New(rand.NewSource(7))

	// Large enough to cross the parallel threshold.
	a := randomFloat32(rng, 10000)
	b := randomFloat32(rng, 10000)
	for i := range b {
		if b[i] == 0 {
			b[i] = 1 // keep Div well-defined
		}
	}

	assert.Equal(t, seq.Add(a, b), par.Add(a, b))
	assert.Equal(t, seq.Sub(a, b), par.Sub(a, b))
	assert.Equal(t, seq.Mul(a, b), par.Mul(a, b))
	assert.Equal(t, seq.Div(a, b), par.Div(a, b))
}

// TestMatMulAgainstGonum cross-checks both backends against gonum's mat.Dense
// as an independent oracle. Gonum's kernels do not pin accumulation order, so
// the comparison is approximate.
func TestMatMulAgainstGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m, k, n := 17, 23, 11

	a := randomFloat64(rng, m*k)
	b := randomFloat64(rng, k*n)

	var want mat.Dense
	want.Mul(mat.NewDense(m, k, a), mat.NewDense(k, n, b))

	for name, backend := range map[string]tensor.Backend[float64]{
		"sequential": cpu.New[float64](),
		"parallel":   cpu.NewParallel[float64](),
	} {
		t.Run(name, func(t *testing.T) {
			got := backend.MatMul(a, tensor.Shape{m, k}, b, tensor.Shape{k, n})
			require.Len(t, got, m*n)
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					assert.InDelta(t, want.At(i, j), got[i*n+j], 1e-12)
				}
			}
		})
	}
}

func TestParallelWithExplicitConfig(t *testing.T) {
	// A disabled pool still satisfies the full contract.
	disabled := cpu.NewParallelWithConfig[float32](parallel.Config{Enabled: false})
	two := cpu.NewParallelWithConfig[float32](parallel.Config{
		Enabled:      true,
		NumWorkers:   2,
		MinChunkSize: 1,
	})

	a := []float32{1, 2, 3, 4, 5, 6}
	b := []float32{7, 8, 9, 10, 11, 12}
	aShape := tensor.Shape{2, 3}
	bShape := tensor.Shape{3, 2}
	want := []float32{58, 64, 139, 154}

	assert.Equal(t, want, disabled.MatMul(a, aShape, b, bShape))
	assert.Equal(t, want, two.MatMul(a, aShape, b, bShape))
	assert.Equal(t, []float32{8, 10, 12, 14, 16, 18}, two.Add(a, b))
}

func TestParallelOnes(t *testing.T) {
	par := cpu.NewParallel[int32]()
	ones := par.Ones(tensor.Shape{100, 3})

	require.Len(t, ones, 300)
	for _, v := range ones {
		assert.Equal(t, int32(1), v)
	}
}

func BenchmarkMatMul(b *testing.B) {
	rng := rand.New(rand.NewSource(3))
	m, k, n := 128, 128, 128
	x := randomFloat32(rng, m*k)
	y := randomFloat32(rng, k*n)
	xShape := tensor.Shape{m, k}
	yShape := tensor.Shape{k, n}

	b.Run("sequential", func(b *testing.B) {
		backend := cpu.New[float32]()
		for i := 0; i < b.N; i++ {
			backend.MatMul(x, xShape, y, yShape)
		}
	})

	b.Run("parallel", func(b *testing.B) {
		backend := cpu.NewParallel[float32]()
		for i := 0; i < b.N; i++ {
			backend.MatMul(x, xShape, y, yShape)
		}
	})
}
