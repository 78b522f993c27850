// Package engine declares the contract between the message and session model of this
// module and the external network engine which owns sockets, retransmission,
// block-wise transfers and the canonical session objects.
package engine

import (
	"net"
	"strconv"

	"github.com/plgd-dev/go-libcoap/message/codes"
)

// SessionType classifies a native session.
type SessionType uint8

const (
	SessionTypeNone SessionType = iota
	SessionTypeClient
	SessionTypeServer
	// SessionTypeHello is a server-side session which has not finished its DTLS handshake yet.
	SessionTypeHello
)

func (t SessionType) String() string {
	switch t {
	case SessionTypeNone:
		return "None"
	case SessionTypeClient:
		return "Client"
	case SessionTypeServer:
		return "Server"
	case SessionTypeHello:
		return "Hello"
	}
	return "SessionType(" + strconv.FormatInt(int64(t), 10) + ")"
}

// IsServer reports whether a server-side session handle may wrap a session of this type.
func (t SessionType) IsServer() bool {
	return t == SessionTypeServer || t == SessionTypeHello
}

// RawOption is an option as the engine sees it: a number and the encoded value.
type RawOption struct {
	Number uint16
	Value  []byte
}

// Session is the engine-owned session object.
type Session interface {
	Type() SessionType
	// Reference increments the engine-side reference count.
	Reference()
	// Release decrements the engine-side reference count; the engine frees the session
	// when it drops to zero and the session is no longer used by the engine.
	Release()
	// AppData returns the side-channel slot, zero when empty.
	AppData() uint64
	// SetAppData stores v in the side-channel slot, zero clears it.
	SetAppData(v uint64)
	IfIndex() int
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

// NativeMessage is the engine's representation of a message (PDU).
type NativeMessage interface {
	Type() uint8
	Code() codes.Code
	MessageID() uint16
	Token() []byte
	// Options returns the options in the order they are stored by the engine.
	Options() []RawOption
	// Payload returns the payload, the slice is owned by the engine and must be copied.
	Payload() []byte
}

// Engine is the native message API of the external engine.
type Engine interface {
	// MaxPDUSize returns the maximum size of a message sent over the session.
	MaxPDUSize(s Session) int
	// NewMessage creates an empty native message.
	NewMessage(typ uint8, code codes.Code, mid uint16, maxSize int) (NativeMessage, error)
	// DeleteMessage releases a native message which was not handed over by Send.
	DeleteMessage(m NativeMessage)
	AddToken(m NativeMessage, token []byte) error
	// AddOptions appends options, the engine sorts them by number.
	AddOptions(m NativeMessage, opts []RawOption) error
	// AddPayload attaches a payload which fits into a single message.
	AddPayload(m NativeMessage, payload []byte) error
	// AddLargePayload hands payload over to the engine's block-wise transfer.
	// The engine owns payload from now on and calls payload.Complete exactly once
	// when the transfer finishes or is abandoned.
	AddLargePayload(s Session, m NativeMessage, payload *Transfer)
	// Send queues m for transmission over s. The engine owns m afterwards.
	Send(s Session, m NativeMessage) error
}
