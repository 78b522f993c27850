package response

import (
	"fmt"

	"github.com/plgd-dev/go-libcoap/message"
	"github.com/plgd-dev/go-libcoap/message/uri"
)

// Location is the relative URI of a resource created by a request. It never carries a
// scheme, a host or a port.
type Location struct {
	uri uri.URI
}

// NewLocation fails with message.ErrIllegalValue when u is not relative.
func NewLocation(u uri.URI) (Location, error) {
	if !u.IsRelative() {
		return Location{}, fmt.Errorf("location %v: %w", u, message.ErrIllegalValue)
	}
	return Location{uri: u}, nil
}

// IntoOptions returns the Location-Path options followed by the Location-Query options.
func (l Location) IntoOptions() []message.Option {
	opts := make([]message.Option, 0, len(l.uri.Path)+len(l.uri.Query))
	for _, p := range l.uri.Path {
		opts = append(opts, message.LocationPathOption(p))
	}
	for _, q := range l.uri.Query {
		opts = append(opts, message.LocationQueryOption(q))
	}
	return opts
}

func (l Location) URI() uri.URI {
	return l.uri
}

func (l Location) String() string {
	return "Response Location: " + l.uri.String()
}
