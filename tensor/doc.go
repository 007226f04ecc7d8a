// Package tensor provides a generic n-dimensional array with a pluggable
// compute backend.
//
// # Overview
//
// A Tensor owns a flat row-major buffer, a shape, and the strides derived
// from that shape. All numeric work is delegated to an injected Backend: the
// tensor validates shapes and indices, the backend runs the kernels over raw
// buffers. Backends are stateless values and interchangeable at every call
// site.
//
// # Basic Usage
//
//	import (
//	    "github.com/ArnaudDumanois/Kranium/backend/cpu"
//	    "github.com/ArnaudDumanois/Kranium/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New[float32]()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    z := x.Add(y)
//	    w := z.MatMul(y.Transpose())
//	}
//
// # Supported Element Types
//
// Any type satisfying the Numeric constraint can be a tensor element:
// float32, float64, int32, int64, uint8.
//
// # Error Model
//
// Shape and index preconditions are programmer errors, not runtime
// conditions: a violated precondition panics before any computation runs.
// The only error-returning entry point is FromSlice, where the data length
// comes from the caller.
package tensor
