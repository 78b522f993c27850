package message

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// encodeUint returns the minimal big-endian representation of value: leading zero
// bytes are dropped, so 0 encodes as an empty slice.
func encodeUint[T constraints.Unsigned](value T) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	i := 0
	for i < len(buf) && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// decodeUint interprets buf as a big-endian number zero-extended to the width of T.
// Only the first sizeof(T) bytes are considered, the option registry rejects longer values.
func decodeUint[T constraints.Unsigned](buf []byte) T {
	var v T
	if size := int(unsafe.Sizeof(v)); len(buf) > size {
		buf = buf[:size]
	}
	var value uint64
	for _, b := range buf {
		value = value<<8 | uint64(b)
	}
	return T(value)
}

func EncodeUint8(value uint8) []byte {
	return encodeUint(value)
}

func EncodeUint16(value uint16) []byte {
	return encodeUint(value)
}

func EncodeUint32(value uint32) []byte {
	return encodeUint(value)
}

func DecodeUint16(buf []byte) uint16 {
	return decodeUint[uint16](buf)
}

func DecodeUint32(buf []byte) uint32 {
	return decodeUint[uint32](buf)
}
