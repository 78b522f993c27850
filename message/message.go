package message

import (
	"fmt"
	"strings"

	"github.com/plgd-dev/go-libcoap/message/codes"
)

// Message is the generic envelope of a CoAP message. It is built empty with a type and a
// code, mutated through its setters and converted once into a native message.
type Message struct {
	typ       Type
	code      codes.Code
	messageID int32 // uint16 is valid, -1 is used for unset
	options   []Option
	token     Token
	hasToken  bool
	payload   []byte
}

// NewMessage creates an envelope without message id, token, options and payload.
func NewMessage(typ Type, code codes.Code) *Message {
	return &Message{
		typ:       typ,
		code:      code,
		messageID: -1,
	}
}

func (r *Message) Type() Type {
	return r.typ
}

func (r *Message) SetType(typ Type) {
	r.typ = typ
}

func (r *Message) Code() codes.Code {
	return r.code
}

func (r *Message) SetCode(code codes.Code) {
	r.code = code
}

// MessageID returns 0 to 2^16-1 when set, otherwise -1.
func (r *Message) MessageID() int32 {
	return r.messageID
}

func (r *Message) SetMessageID(mid uint16) {
	r.messageID = int32(mid)
}

func (r *Message) ClearMessageID() {
	r.messageID = -1
}

// UpsertMessageID sets the message id only when it is not set yet.
func (r *Message) UpsertMessageID(mid uint16) {
	if ValidateMID(r.messageID) {
		return
	}
	r.SetMessageID(mid)
}

// AddOption appends o. Options keep their insertion order.
func (r *Message) AddOption(o Option) {
	r.options = append(r.options, o)
}

func (r *Message) ClearOptions() {
	r.options = nil
}

// Options returns the options in insertion order.
func (r *Message) Options() []Option {
	return append([]Option(nil), r.options...)
}

// RemoveOptions drops all options for which remove returns true.
func (r *Message) RemoveOptions(remove func(o Option) bool) {
	kept := r.options[:0]
	for _, o := range r.options {
		if !remove(o) {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(r.options); i++ {
		r.options[i] = nil
	}
	r.options = kept
}

// Token returns the token; ok is false when no token was set. A zero-length token
// set via SetToken counts as set.
func (r *Message) Token() (token Token, ok bool) {
	return r.token, r.hasToken
}

func (r *Message) SetToken(token Token) {
	r.token = append(Token{}, token...)
	r.hasToken = true
}

func (r *Message) ClearToken() {
	r.token = nil
	r.hasToken = false
}

// Payload returns the payload, nil when absent.
func (r *Message) Payload() []byte {
	return r.payload
}

// SetPayload sets the payload, an empty payload is treated as absent.
func (r *Message) SetPayload(payload []byte) {
	if len(payload) == 0 {
		r.payload = nil
		return
	}
	r.payload = payload
}

func (r *Message) HasPayload() bool {
	return len(r.payload) > 0
}

func (r *Message) String() string {
	if r == nil {
		return "nil"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %v, Code: %v", r.typ, r.code)
	if ValidateMID(r.messageID) {
		fmt.Fprintf(&b, ", MessageID: %v", r.messageID)
	}
	if r.hasToken {
		fmt.Fprintf(&b, ", Token: %v", r.token)
	}
	if len(r.options) > 0 {
		ids := make([]string, 0, len(r.options))
		for _, o := range r.options {
			ids = append(ids, o.ID().String())
		}
		fmt.Fprintf(&b, ", Options: [%v]", strings.Join(ids, " "))
	}
	if len(r.payload) > 0 {
		fmt.Fprintf(&b, ", PayloadLen: %v", len(r.payload))
	}
	return b.String()
}
