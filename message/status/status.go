// Package status carries a CoAP response code inside an error, so request handlers
// can fail with the code which is sent back to the peer.
package status

import (
	"errors"
	"fmt"

	"github.com/plgd-dev/go-libcoap/message/codes"
)

const (
	OK      codes.Code = 10000
	Unknown codes.Code = 10003
)

// Status holds error of coap
type Status struct {
	err  error
	code codes.Code
}

func CodeToString(c codes.Code) string {
	switch c {
	case OK:
		return "OK"
	case Unknown:
		return "Unknown"
	}
	return c.String()
}

func (se Status) Error() string {
	return fmt.Sprintf("coap error: code = %s desc = %v", CodeToString(se.code), se.err)
}

func (se Status) Unwrap() error {
	return se.err
}

// Code returns the status code contained in se.
func (se Status) Code() codes.Code {
	return se.code
}

// COAPError just for check interface
func (se Status) COAPError() Status {
	return se
}

// Error returns an error representing code and err.
func Error(code codes.Code, err error) Status {
	return Status{
		code: code,
		err:  err,
	}
}

// Errorf returns Error(code, fmt.Errorf(format, a...)).
func Errorf(code codes.Code, format string, a ...interface{}) Status {
	return Error(code, fmt.Errorf(format, a...))
}

// FromError returns a Status representing err if it was produced from this
// package or has a method `COAPError() Status`. Otherwise, ok is false and a
// Status is returned with Unknown and the original error.
func FromError(err error) (s Status, ok bool) {
	if err == nil {
		return Status{
			code: OK,
		}, true
	}
	var se interface {
		COAPError() Status
	}
	if errors.As(err, &se) {
		return se.COAPError(), true
	}
	return Status{
		code: Unknown,
		err:  err,
	}, false
}

// Convert is a convenience function which removes the need to handle the
// boolean return value from FromError.
func Convert(err error) Status {
	s, _ := FromError(err)
	return s
}

// Code returns the Code of the error if it is a Status error, OK if err
// is nil, or Unknown otherwise.
func Code(err error) codes.Code {
	return Convert(err).Code()
}

// ResponseCode returns the response code sent for err: the carried code when it is a
// response code, otherwise InternalServerError.
func ResponseCode(err error) codes.Code {
	if c := Code(err); c.IsResponse() {
		return c
	}
	return codes.InternalServerError
}
