package tensor

// Numeric is the constraint for supported tensor element types.
//
// Every member of the type set is copyable, has a zero value, converts from
// small integer literals (so backends can synthesize a "one"), and supports
// the four arithmetic operators plus compound addition. Values are safe to
// share across goroutines.
type Numeric interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}
