package config

import (
	"fmt"

	"github.com/alecthomas/units"
	"github.com/plgd-dev/go-libcoap/message"
	"github.com/plgd-dev/go-libcoap/message/response"
	"github.com/plgd-dev/go-libcoap/session"
	"go.uber.org/zap"
)

type (
	ErrorFunc = func(error)
	// HandlerFunc handles a request received over a session. The returned response,
	// when not nil, is sent back with the token of the request. An error is answered
	// with the code carried by a status error, see package message/status.
	HandlerFunc func(s *session.ServerSession, req *message.Message) (*response.Response, error)
	// ResponseHandlerFunc handles a response received over a session.
	ResponseHandlerFunc func(s *session.ServerSession, resp *response.Response)
)

type Common struct {
	Errors         ErrorFunc
	Logger         *zap.Logger
	MaxMessageSize units.Base2Bytes
}

func NewCommon() Common {
	return Common{
		MaxMessageSize: 64 * units.KiB,
		Errors: func(err error) {
			fmt.Println(err)
		},
		Logger: zap.NewNop(),
	}
}
