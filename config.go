package coap

import (
	"github.com/plgd-dev/go-libcoap/options/config"
)

// Option configures a Context, see package options.
type Option interface {
	ContextApply(cfg *Config)
}

// Config is the configuration of a Context.
type Config struct {
	config.Common
	Handler         config.HandlerFunc
	ResponseHandler config.ResponseHandlerFunc
}

// DefaultConfig answers every request with NotFound and ignores responses.
var DefaultConfig = func() Config {
	return Config{
		Common: config.NewCommon(),
	}
}()
