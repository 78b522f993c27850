package engine

import (
	"io"
	"sync"

	"github.com/dsnet/golib/memfile"
	"go.uber.org/atomic"
)

// Transfer is a payload whose ownership moves to the engine. Once handed over via
// Engine.AddLargePayload the producer must not touch it; the engine reads the body and
// finishes the transfer with Complete.
type Transfer struct {
	mutex      sync.Mutex
	body       *memfile.File
	size       int
	completed  atomic.Bool
	onComplete func()
}

// NewTransfer takes ownership of data. onComplete, when not nil, is invoked by Complete.
func NewTransfer(data []byte, onComplete func()) *Transfer {
	return &Transfer{
		body:       memfile.New(data),
		size:       len(data),
		onComplete: onComplete,
	}
}

// Size returns the length of the payload.
func (t *Transfer) Size() int {
	return t.size
}

// Body returns a reader over the payload. It returns nil once the transfer is completed.
func (t *Transfer) Body() io.ReadSeeker {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.body == nil {
		return nil
	}
	return t.body
}

// Bytes returns a copy of the payload, nil once the transfer is completed.
func (t *Transfer) Bytes() []byte {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.body == nil {
		return nil
	}
	data := t.body.Bytes()
	c := make([]byte, len(data))
	copy(c, data)
	return c
}

// Complete releases the payload and runs the completion callback. Only the first call
// has an effect, it reports whether this call completed the transfer.
func (t *Transfer) Complete() bool {
	if !t.completed.CAS(false, true) {
		return false
	}
	t.mutex.Lock()
	t.body = nil
	t.mutex.Unlock()
	if t.onComplete != nil {
		t.onComplete()
	}
	return true
}

// Completed reports whether Complete was called.
func (t *Transfer) Completed() bool {
	return t.completed.Load()
}
