package codes

import (
	"fmt"
	"strconv"
)

// A Code is an unsigned 16-bit coap code as defined in RFC 7252.
// Only the low byte is carried on the wire: class (3 bits) and detail (5 bits).
type Code uint16

// Request Codes
const (
	GET    Code = 1
	POST   Code = 2
	PUT    Code = 3
	DELETE Code = 4
	FETCH  Code = 5
	PATCH  Code = 6
	IPATCH Code = 7
)

// Response Codes
const (
	Empty                   Code = 0
	Created                 Code = 65
	Deleted                 Code = 66
	Valid                   Code = 67
	Changed                 Code = 68
	Content                 Code = 69
	Continue                Code = 95
	BadRequest              Code = 128
	Unauthorized            Code = 129
	BadOption               Code = 130
	Forbidden               Code = 131
	NotFound                Code = 132
	MethodNotAllowed        Code = 133
	NotAcceptable           Code = 134
	RequestEntityIncomplete Code = 136
	Conflict                Code = 137
	PreconditionFailed      Code = 140
	RequestEntityTooLarge   Code = 141
	UnsupportedMediaType    Code = 143
	UnprocessableEntity     Code = 150
	TooManyRequests         Code = 157
	InternalServerError     Code = 160
	NotImplemented          Code = 161
	BadGateway              Code = 162
	ServiceUnavailable      Code = 163
	GatewayTimeout          Code = 164
	ProxyingNotSupported    Code = 165
	HopLimitReached         Code = 168
)

const _maxCode = 255

var strToCode = map[string]Code{
	`"Empty"`:                   Empty,
	`"GET"`:                     GET,
	`"POST"`:                    POST,
	`"PUT"`:                     PUT,
	`"DELETE"`:                  DELETE,
	`"FETCH"`:                   FETCH,
	`"PATCH"`:                   PATCH,
	`"iPATCH"`:                  IPATCH,
	`"Created"`:                 Created,
	`"Deleted"`:                 Deleted,
	`"Valid"`:                   Valid,
	`"Changed"`:                 Changed,
	`"Content"`:                 Content,
	`"Continue"`:                Continue,
	`"BadRequest"`:              BadRequest,
	`"Unauthorized"`:            Unauthorized,
	`"BadOption"`:               BadOption,
	`"Forbidden"`:               Forbidden,
	`"NotFound"`:                NotFound,
	`"MethodNotAllowed"`:        MethodNotAllowed,
	`"NotAcceptable"`:           NotAcceptable,
	`"RequestEntityIncomplete"`: RequestEntityIncomplete,
	`"Conflict"`:                Conflict,
	`"PreconditionFailed"`:      PreconditionFailed,
	`"RequestEntityTooLarge"`:   RequestEntityTooLarge,
	`"UnsupportedMediaType"`:    UnsupportedMediaType,
	`"UnprocessableEntity"`:     UnprocessableEntity,
	`"TooManyRequests"`:         TooManyRequests,
	`"InternalServerError"`:     InternalServerError,
	`"NotImplemented"`:          NotImplemented,
	`"BadGateway"`:              BadGateway,
	`"ServiceUnavailable"`:      ServiceUnavailable,
	`"GatewayTimeout"`:          GatewayTimeout,
	`"ProxyingNotSupported"`:    ProxyingNotSupported,
	`"HopLimitReached"`:         HopLimitReached,
}

// Class returns the class part (the digit before the dot) of the code.
func (c Code) Class() uint8 {
	return uint8(c>>5) & 0x7
}

// Detail returns the detail part (the two digits after the dot) of the code.
func (c Code) Detail() uint8 {
	return uint8(c) & 0x1f
}

// IsEmpty reports whether c is the code of an empty message (0.00).
func (c Code) IsEmpty() bool {
	return c == Empty
}

// IsRequest reports whether c is a request method (class 0, detail > 0).
func (c Code) IsRequest() bool {
	return c <= _maxCode && c.Class() == 0 && c.Detail() != 0
}

// IsResponse reports whether c is a response code (classes 2 to 5).
func (c Code) IsResponse() bool {
	return c <= _maxCode && c.Class() >= 2 && c.Class() <= 5
}

// Dotted returns the c.dd representation used by RFC 7252, e.g. "4.04".
func (c Code) Dotted() string {
	return fmt.Sprintf("%d.%02d", c.Class(), c.Detail())
}

// UnmarshalJSON unmarshals b into the Code.
func (c *Code) UnmarshalJSON(b []byte) error {
	// From json.Unmarshaler: By convention, to approximate the behavior of
	// Unmarshal itself, Unmarshalers implement UnmarshalJSON([]byte("null")) as
	// a no-op.
	if string(b) == "null" {
		return nil
	}
	if c == nil {
		return fmt.Errorf("nil receiver passed to UnmarshalJSON")
	}

	if ci, err := strconv.ParseUint(string(b), 10, 32); err == nil {
		if ci > _maxCode {
			return fmt.Errorf("invalid code: %q", ci)
		}

		*c = Code(ci)
		return nil
	}

	if jc, ok := strToCode[string(b)]; ok {
		*c = jc
		return nil
	}
	return fmt.Errorf("invalid code: %q", string(b))
}

// ToCode converts a code name, as returned by String, into the Code.
func ToCode(v string) (Code, error) {
	var c Code
	if err := c.UnmarshalJSON([]byte(`"` + v + `"`)); err != nil {
		return Empty, err
	}
	return c, nil
}
