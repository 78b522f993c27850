// Package noresponse implements the suppression rules of the No-Response option (RFC 7967).
package noresponse

import (
	"errors"
	"fmt"

	"github.com/plgd-dev/go-libcoap/message/codes"
)

var ErrMessageNotInterested = errors.New("message not to be sent due to disinterest")

var (
	resp2XXCodes = []codes.Code{codes.Created, codes.Deleted, codes.Valid, codes.Changed, codes.Content, codes.Continue}
	resp4XXCodes = []codes.Code{
		codes.BadRequest, codes.Unauthorized, codes.BadOption, codes.Forbidden, codes.NotFound,
		codes.MethodNotAllowed, codes.NotAcceptable, codes.RequestEntityIncomplete, codes.Conflict,
		codes.PreconditionFailed, codes.RequestEntityTooLarge, codes.UnsupportedMediaType,
		codes.UnprocessableEntity, codes.TooManyRequests,
	}
	resp5XXCodes = []codes.Code{
		codes.InternalServerError, codes.NotImplemented, codes.BadGateway, codes.ServiceUnavailable,
		codes.GatewayTimeout, codes.ProxyingNotSupported, codes.HopLimitReached,
	}
	noResponseValueMap = map[uint8][]codes.Code{
		2:  resp2XXCodes,
		8:  resp4XXCodes,
		16: resp5XXCodes,
	}
)

// decodeNoResponseOption returns the codes suppressed by the option value v.
func decodeNoResponseOption(v uint8) []codes.Code {
	var c []codes.Code
	for _, bit := range []uint8{2, 8, 16} {
		if v&bit != 0 {
			c = append(c, noResponseValueMap[bit]...)
		}
	}
	return c
}

// IsNoResponseCode returns ErrMessageNotInterested when the peer is not interested
// in a response with code.
func IsNoResponseCode(code codes.Code, v uint8) error {
	for _, c := range decodeNoResponseOption(v) {
		if c == code {
			return fmt.Errorf("%w: %v", ErrMessageNotInterested, code)
		}
	}
	return nil
}
