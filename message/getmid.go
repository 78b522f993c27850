package message

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"time"

	pkgRand "github.com/plgd-dev/go-libcoap/pkg/rand"
	"go.uber.org/atomic"
)

var weakRng = pkgRand.NewRand(time.Now().UnixNano())

var msgID = atomic.NewUint32(uint32(RandMID()))

// GetMID generates a message id. (0 <= mid <= 65535)
func GetMID() int32 {
	return int32(uint16(msgID.Inc()))
}

// RandMID returns a random message id, used to seed the GetMID sequence.
func RandMID() int32 {
	b := make([]byte, 4)
	_, err := rand.Read(b)
	if err != nil {
		// fallback to cryptographically insecure pseudo-random generator
		return int32(uint16(weakRng.Uint32() >> 16))
	}
	return int32(uint16(binary.BigEndian.Uint32(b)))
}

// ValidateMID validates a message id. (0 <= mid <= 65535)
func ValidateMID(mid int32) bool {
	return mid >= 0 && mid <= math.MaxUint16
}
