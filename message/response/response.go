// Package response interprets a message as a CoAP response and builds responses from
// typed fields.
package response

import (
	"fmt"

	"github.com/plgd-dev/go-libcoap/message"
	"github.com/plgd-dev/go-libcoap/message/codes"
	"github.com/plgd-dev/go-libcoap/message/uri"
)

// Response is a message with the response options extracted into typed fields.
// Fields left unset are not emitted by IntoMessage.
type Response struct {
	msg           *message.Message
	contentFormat *message.MediaType
	maxAge        *uint32
	etag          []byte
	echo          []byte
	observe       *uint32
	location      *Location
	additional    []message.Option
}

func validateCode(code codes.Code) error {
	if !code.IsResponse() {
		return fmt.Errorf("code %v: %w", code, message.ErrInvalidCodeForRole)
	}
	return nil
}

// New creates a response. Reset messages carry no response and are rejected.
func New(typ message.Type, code codes.Code) (*Response, error) {
	switch typ {
	case message.Confirmable, message.NonConfirmable, message.Acknowledgement:
	default:
		return nil, fmt.Errorf("type %v: %w", typ, message.ErrInvalidMessageType)
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	return &Response{
		msg: message.NewMessage(typ, code),
	}, nil
}

type decoder struct {
	r             Response
	seen          map[message.OptionID]bool
	locationPath  []string
	locationQuery []string
	hasLocation   bool
}

func (d *decoder) once(id message.OptionID) error {
	if d.seen[id] {
		return message.NewNonRepeatableOptionRepeatedError(id)
	}
	d.seen[id] = true
	return nil
}

// decode interprets o; it reports whether o was consumed into a typed field.
func (d *decoder) decode(o message.Option) (bool, error) {
	switch v := o.(type) {
	case message.LocationPathOption:
		d.hasLocation = true
		d.locationPath = append(d.locationPath, string(v))
		return true, nil
	case message.LocationQueryOption:
		d.hasLocation = true
		d.locationQuery = append(d.locationQuery, string(v))
		return true, nil
	case message.ETagOption:
		if err := d.once(v.ID()); err != nil {
			return false, err
		}
		d.r.etag = append([]byte(nil), v...)
		return true, nil
	case message.MaxAgeOption:
		if err := d.once(v.ID()); err != nil {
			return false, err
		}
		maxAge := uint32(v)
		d.r.maxAge = &maxAge
		return true, nil
	case message.ObserveOption:
		if err := d.once(v.ID()); err != nil {
			return false, err
		}
		observe := uint32(v)
		d.r.observe = &observe
		return true, nil
	case message.ContentFormatOption:
		if err := d.once(v.ID()); err != nil {
			return false, err
		}
		cf := message.MediaType(v)
		d.r.contentFormat = &cf
		return true, nil
	case message.EchoOption:
		if err := d.once(v.ID()); err != nil {
			return false, err
		}
		d.r.echo = append([]byte(nil), v...)
		return true, nil
	case message.IfMatchOption, message.IfNoneMatchOption, message.URIHostOption, message.URIPortOption,
		message.URIPathOption, message.URIQueryOption, message.ProxyURIOption, message.ProxySchemeOption,
		message.AcceptOption, message.Size1Option, message.Block1Option, message.HopLimitOption,
		message.NoResponseOption:
		return false, message.NewInvalidOptionForMessageTypeError(o.ID())
	case message.Size2Option, message.Block2Option, message.QBlock1Option, message.QBlock2Option,
		message.RequestTagOption, message.OSCOREOption:
		// handled by the engine
		return false, nil
	case message.Other:
		d.r.additional = append(d.r.additional, v)
		return false, nil
	}
	return false, fmt.Errorf("option %T: %w", o, message.ErrIllegalValue)
}

// FromMessage interprets msg as a response and takes ownership of it. Options which are
// not valid in a response and repeated single-valued options fail the conversion.
// Interpreted options are moved into the typed fields; engine-handled and unrecognized
// options stay in the message.
func FromMessage(msg *message.Message) (*Response, error) {
	if err := validateCode(msg.Code()); err != nil {
		return nil, err
	}
	d := decoder{
		r:    Response{msg: msg},
		seen: make(map[message.OptionID]bool),
	}
	opts := msg.Options()
	kept := make([]message.Option, 0, len(opts))
	for _, o := range opts {
		consumed, err := d.decode(o)
		if err != nil {
			return nil, err
		}
		if !consumed {
			kept = append(kept, o)
		}
	}
	if d.hasLocation {
		loc, err := NewLocation(uri.URI{Path: d.locationPath, Query: d.locationQuery})
		if err != nil {
			return nil, message.NewInvalidOptionValueError(message.LocationPath, err)
		}
		d.r.location = &loc
	}
	msg.ClearOptions()
	for _, o := range kept {
		msg.AddOption(o)
	}
	return &d.r, nil
}

// IntoMessage folds the typed fields back into the message and returns it. The
// response must not be used afterwards. Echo is never emitted, the engine handles it.
func (r *Response) IntoMessage() *message.Message {
	msg := r.msg
	if r.location != nil {
		for _, o := range r.location.IntoOptions() {
			msg.AddOption(o)
		}
	}
	if r.maxAge != nil {
		msg.AddOption(message.MaxAgeOption(*r.maxAge))
	}
	if r.contentFormat != nil {
		msg.AddOption(message.ContentFormatOption(*r.contentFormat))
	}
	if r.etag != nil {
		msg.AddOption(message.ETagOption(r.etag))
	}
	if r.observe != nil {
		msg.AddOption(message.ObserveOption(*r.observe))
	}
	r.msg = nil
	return msg
}

// Message gives access to the underlying envelope for the token, the message id and
// the payload.
func (r *Response) Message() *message.Message {
	return r.msg
}

func (r *Response) Type() message.Type {
	return r.msg.Type()
}

func (r *Response) Code() codes.Code {
	return r.msg.Code()
}

// SetCode fails with message.ErrInvalidCodeForRole when code is not a response code.
func (r *Response) SetCode(code codes.Code) error {
	if err := validateCode(code); err != nil {
		return err
	}
	r.msg.SetCode(code)
	return nil
}

func (r *Response) ContentFormat() (message.MediaType, bool) {
	if r.contentFormat == nil {
		return 0, false
	}
	return *r.contentFormat, true
}

func (r *Response) SetContentFormat(cf message.MediaType) {
	r.contentFormat = &cf
}

func (r *Response) ClearContentFormat() {
	r.contentFormat = nil
}

// MaxAge returns the number of seconds the response may be cached.
func (r *Response) MaxAge() (uint32, bool) {
	if r.maxAge == nil {
		return 0, false
	}
	return *r.maxAge, true
}

func (r *Response) SetMaxAge(seconds uint32) {
	r.maxAge = &seconds
}

func (r *Response) ClearMaxAge() {
	r.maxAge = nil
}

func (r *Response) ETag() ([]byte, bool) {
	return r.etag, r.etag != nil
}

// SetETag sets the entity tag, nil clears it.
func (r *Response) SetETag(etag []byte) {
	if etag == nil {
		r.etag = nil
		return
	}
	r.etag = append([]byte{}, etag...)
}

func (r *Response) Echo() ([]byte, bool) {
	return r.echo, r.echo != nil
}

// SetEcho sets the echo value, nil clears it.
func (r *Response) SetEcho(echo []byte) {
	if echo == nil {
		r.echo = nil
		return
	}
	r.echo = append([]byte{}, echo...)
}

// Observe returns the notification sequence number.
func (r *Response) Observe() (uint32, bool) {
	if r.observe == nil {
		return 0, false
	}
	return *r.observe, true
}

func (r *Response) SetObserve(seq uint32) {
	r.observe = &seq
}

func (r *Response) ClearObserve() {
	r.observe = nil
}

func (r *Response) Location() (Location, bool) {
	if r.location == nil {
		return Location{}, false
	}
	return *r.location, true
}

// SetLocation sets the location. It fails with message.ErrIllegalValue when u has a
// scheme, a host or a port.
func (r *Response) SetLocation(u uri.URI) error {
	loc, err := NewLocation(u)
	if err != nil {
		return err
	}
	r.location = &loc
	return nil
}

func (r *Response) ClearLocation() {
	r.location = nil
}

// AdditionalOptions returns the unrecognized options found by FromMessage.
func (r *Response) AdditionalOptions() []message.Option {
	return append([]message.Option(nil), r.additional...)
}

func (r *Response) String() string {
	return fmt.Sprintf("Response{%v}", r.msg)
}
