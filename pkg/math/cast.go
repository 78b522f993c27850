package math

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

func isSigned[T constraints.Integer]() bool {
	var v T
	v--
	return v < 0
}

func bitSize[T constraints.Integer]() uintptr {
	var v T
	return unsafe.Sizeof(v) * 8
}

// Max returns the largest value representable by T.
func Max[T constraints.Integer]() T {
	if isSigned[T]() {
		return T(1)<<(bitSize[T]()-1) - 1
	}
	var v T
	return ^v
}

// Min returns the smallest value representable by T.
func Min[T constraints.Integer]() T {
	if isSigned[T]() {
		return T(1) << (bitSize[T]() - 1)
	}
	return 0
}

// SafeCastTo converts from to T, failing instead of truncating when the value does not fit.
func SafeCastTo[T, F constraints.Integer](from F) (T, error) {
	if from > 0 && uint64(Max[T]()) < uint64(from) {
		return T(0), fmt.Errorf("value(%v) exceeds the maximum value for type(%v)", from, Max[T]())
	}
	if from < 0 && int64(Min[T]()) > int64(from) {
		return T(0), fmt.Errorf("value(%v) exceeds the minimum value for type(%v)", from, Min[T]())
	}
	return T(from), nil
}
