package options

import (
	"github.com/alecthomas/units"
	coap "github.com/plgd-dev/go-libcoap"
	"github.com/plgd-dev/go-libcoap/options/config"
	"go.uber.org/zap"
)

type ErrorFunc = config.ErrorFunc

// HandlerFuncOpt handler function option.
type HandlerFuncOpt struct {
	h config.HandlerFunc
}

func (o HandlerFuncOpt) ContextApply(cfg *coap.Config) {
	cfg.Handler = o.h
}

// WithHandlerFunc sets the handler of received requests.
func WithHandlerFunc(h config.HandlerFunc) HandlerFuncOpt {
	return HandlerFuncOpt{h: h}
}

// ResponseHandlerOpt response handler option.
type ResponseHandlerOpt struct {
	h config.ResponseHandlerFunc
}

func (o ResponseHandlerOpt) ContextApply(cfg *coap.Config) {
	cfg.ResponseHandler = o.h
}

// WithResponseHandler sets the handler of received responses.
func WithResponseHandler(h config.ResponseHandlerFunc) ResponseHandlerOpt {
	return ResponseHandlerOpt{h: h}
}

// MaxMessageSizeOpt handler function option.
type MaxMessageSizeOpt struct {
	maxMessageSize units.Base2Bytes
}

func (o MaxMessageSizeOpt) ContextApply(cfg *coap.Config) {
	cfg.MaxMessageSize = o.maxMessageSize
}

// WithMaxMessageSize limits size of a message.
func WithMaxMessageSize(maxMessageSize units.Base2Bytes) MaxMessageSizeOpt {
	return MaxMessageSizeOpt{maxMessageSize: maxMessageSize}
}

// ErrorsOpt errors option.
type ErrorsOpt struct {
	errors ErrorFunc
}

func (o ErrorsOpt) ContextApply(cfg *coap.Config) {
	cfg.Errors = o.errors
}

// WithErrors set function for logging error.
func WithErrors(errors ErrorFunc) ErrorsOpt {
	return ErrorsOpt{errors: errors}
}

// LoggerOpt logger option.
type LoggerOpt struct {
	logger *zap.Logger
}

func (o LoggerOpt) ContextApply(cfg *coap.Config) {
	if o.logger == nil {
		cfg.Logger = zap.NewNop()
		return
	}
	cfg.Logger = o.logger
}

// WithLogger sets the structured logger, nil disables logging.
func WithLogger(logger *zap.Logger) LoggerOpt {
	return LoggerOpt{logger: logger}
}
