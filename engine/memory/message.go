package memory

import (
	"github.com/plgd-dev/go-libcoap/engine"
	"github.com/plgd-dev/go-libcoap/message/codes"
)

// Message is the native message of the memory engine.
type Message struct {
	typ     uint8
	code    codes.Code
	mid     uint16
	maxSize int
	token   []byte
	options []engine.RawOption
	payload []byte
	large   *engine.Transfer
}

var _ engine.NativeMessage = (*Message)(nil)

// NewIncomingMessage builds a message as the engine would parse it from the network.
// Such messages are owned by the caller and are not tracked by an Engine.
func NewIncomingMessage(typ uint8, code codes.Code, mid uint16, token []byte, options []engine.RawOption, payload []byte) *Message {
	m := &Message{
		typ:     typ,
		code:    code,
		mid:     mid,
		token:   append([]byte(nil), token...),
		payload: append([]byte(nil), payload...),
	}
	for _, o := range options {
		m.options = append(m.options, engine.RawOption{Number: o.Number, Value: append([]byte(nil), o.Value...)})
	}
	return m
}

func (m *Message) Type() uint8 {
	return m.typ
}

func (m *Message) Code() codes.Code {
	return m.code
}

func (m *Message) MessageID() uint16 {
	return m.mid
}

func (m *Message) Token() []byte {
	return m.token
}

func (m *Message) Options() []engine.RawOption {
	return append([]engine.RawOption(nil), m.options...)
}

func (m *Message) Payload() []byte {
	return m.payload
}

// LargePayload returns the transfer handed over by AddLargePayload.
func (m *Message) LargePayload() *engine.Transfer {
	return m.large
}

func (m *Message) size() int {
	n := len(m.token) + len(m.payload)
	for _, o := range m.options {
		n += len(o.Value)
	}
	return n
}
