package message

import (
	"fmt"
	"sort"

	"github.com/plgd-dev/go-libcoap/engine"
	"github.com/plgd-dev/go-libcoap/pkg/fn"
)

func encodeOptions(options []Option) ([]engine.RawOption, error) {
	raw := make([]engine.RawOption, 0, len(options))
	for _, o := range options {
		id, value, err := EncodeOption(o)
		if err != nil {
			return nil, NewInvalidOptionValueError(o.ID(), err)
		}
		raw = append(raw, engine.RawOption{Number: uint16(id), Value: value})
	}
	// the wire format requires ascending numbers, repeated options keep their order
	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].Number < raw[j].Number
	})
	return raw, nil
}

// ToNative converts the envelope into a native message of eng for the session sess.
//
// A request payload is moved into an engine.Transfer and handed to the engine's
// large payload API, the envelope does not hold it afterwards. A response payload is
// copied into the native message. When an error is returned after the native message
// was created, the native message is deleted.
func (r *Message) ToNative(eng engine.Engine, sess engine.Session) (engine.NativeMessage, error) {
	return r.ToNativeWithCompletion(eng, sess, nil)
}

// ToNativeWithCompletion works like ToNative; onComplete is called once the engine
// completes or abandons the transfer of a request payload.
func (r *Message) ToNativeWithCompletion(eng engine.Engine, sess engine.Session, onComplete func()) (engine.NativeMessage, error) {
	if !ValidateType(r.typ) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessageType, r.typ)
	}
	if !ValidateMID(r.messageID) {
		return nil, ErrMissingMessageID
	}
	nm, err := eng.NewMessage(uint8(r.typ), r.code, uint16(r.messageID), eng.MaxPDUSize(sess))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot create message: %v", ErrUnknown, err)
	}
	if nm == nil {
		return nil, fmt.Errorf("%w: cannot create message", ErrUnknown)
	}
	cleanUp := fn.FuncList{func() {
		eng.DeleteMessage(nm)
	}}
	defer func() {
		cleanUp.Execute()
	}()

	if !r.hasToken {
		return nil, ErrMissingToken
	}
	if len(r.token) > MaxTokenSize {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTokenLen, len(r.token))
	}
	if err = eng.AddToken(nm, r.token); err != nil {
		return nil, fmt.Errorf("%w: cannot add token: %v", ErrUnknown, err)
	}

	raw, err := encodeOptions(r.options)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err = eng.AddOptions(nm, raw); err != nil {
			return nil, fmt.Errorf("%w: cannot add options: %v", ErrUnknown, err)
		}
	}

	if r.HasPayload() {
		switch {
		case r.code.IsRequest():
			payload := r.payload
			r.payload = nil
			eng.AddLargePayload(sess, nm, engine.NewTransfer(payload, onComplete))
		case r.code.IsEmpty():
			return nil, ErrDataInEmptyMessage
		default:
			if err = eng.AddPayload(nm, r.payload); err != nil {
				return nil, fmt.Errorf("%w: cannot add payload: %v", ErrUnknown, err)
			}
		}
	}
	cleanUp.Disarm()
	return nm, nil
}

// FromNative copies a native message into a new envelope, decoding every option.
// It fails on the first option which cannot be decoded.
func FromNative(nm engine.NativeMessage) (*Message, error) {
	if typ := Type(nm.Type()); !ValidateType(typ) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessageType, typ)
	}
	raw := nm.Options()
	options := make([]Option, 0, len(raw))
	for _, o := range raw {
		opt, err := DecodeOption(OptionID(o.Number), o.Value)
		if err != nil {
			return nil, NewInvalidOptionValueError(OptionID(o.Number), err)
		}
		options = append(options, opt)
	}
	r := NewMessage(Type(nm.Type()), nm.Code())
	r.SetMessageID(nm.MessageID())
	r.options = options
	r.SetToken(nm.Token())
	if payload := nm.Payload(); len(payload) > 0 {
		r.payload = append([]byte(nil), payload...)
	}
	return r, nil
}
