// Package uri holds the restricted URI form used by CoAP options: a scheme, a host,
// a port and the path and query split into segments.
package uri

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/plgd-dev/go-libcoap/message"
)

var ErrInvalidURI = errors.New("invalid uri")

const (
	SchemeCoap      = "coap"
	SchemeCoaps     = "coaps"
	SchemeCoapTCP   = "coap+tcp"
	SchemeCoapsTCP  = "coaps+tcp"
	DefaultPort     = 5683
	DefaultSecPort  = 5684
	pathSeparator   = "/"
	querySeparator  = "&"
	schemeSeparator = "://"
)

// URI is a CoAP URI. Empty Scheme and Host and a zero Port mean absent. A nil Path or
// Query means absent, an empty segment is kept as "".
type URI struct {
	Scheme string
	Host   string
	Port   uint16
	Path   []string
	Query  []string
}

// Parse parses a CoAP URI. The path and query are split into their unescaped segments.
func Parse(s string) (URI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return URI{}, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Fragment != "" || u.User != nil || u.Opaque != "" {
		return URI{}, fmt.Errorf("%w: %v", ErrInvalidURI, s)
	}
	var r URI
	r.Scheme = u.Scheme
	r.Host = u.Hostname()
	if p := u.Port(); p != "" {
		port, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return URI{}, fmt.Errorf("%w: port %v: %v", ErrInvalidURI, p, err)
		}
		r.Port = uint16(port)
	}
	if path := strings.TrimPrefix(u.EscapedPath(), pathSeparator); path != "" {
		for _, seg := range strings.Split(path, pathSeparator) {
			v, err := url.PathUnescape(seg)
			if err != nil {
				return URI{}, fmt.Errorf("%w: path %v: %v", ErrInvalidURI, seg, err)
			}
			r.Path = append(r.Path, v)
		}
	}
	if u.RawQuery != "" {
		for _, seg := range strings.Split(u.RawQuery, querySeparator) {
			v, err := url.QueryUnescape(seg)
			if err != nil {
				return URI{}, fmt.Errorf("%w: query %v: %v", ErrInvalidURI, seg, err)
			}
			r.Query = append(r.Query, v)
		}
	}
	return r, nil
}

// IsRelative reports whether the URI has neither scheme, host nor port.
func (u URI) IsRelative() bool {
	return u.Scheme == "" && u.Host == "" && u.Port == 0
}

// PathString returns the path joined by "/" with a leading "/".
func (u URI) PathString() string {
	segs := make([]string, 0, len(u.Path))
	for _, s := range u.Path {
		segs = append(segs, url.PathEscape(s))
	}
	return pathSeparator + strings.Join(segs, pathSeparator)
}

func (u URI) String() string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString(schemeSeparator)
	}
	if u.Host != "" {
		host := u.Host
		if u.Port != 0 {
			host = net.JoinHostPort(host, strconv.FormatUint(uint64(u.Port), 10))
		} else if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
		b.WriteString(host)
	}
	if u.Path != nil || u.Host != "" {
		b.WriteString(u.PathString())
	}
	if u.Query != nil {
		segs := make([]string, 0, len(u.Query))
		for _, s := range u.Query {
			segs = append(segs, url.QueryEscape(s))
		}
		b.WriteString("?")
		b.WriteString(strings.Join(segs, querySeparator))
	}
	return b.String()
}

// RequestOptions returns the Uri-Host, Uri-Port, Uri-Path and Uri-Query options
// addressing the URI. The scheme is not expressed as an option.
func (u URI) RequestOptions() []message.Option {
	opts := make([]message.Option, 0, 2+len(u.Path)+len(u.Query))
	if u.Host != "" {
		opts = append(opts, message.URIHostOption(u.Host))
	}
	if u.Port != 0 {
		opts = append(opts, message.URIPortOption(u.Port))
	}
	for _, p := range u.Path {
		opts = append(opts, message.URIPathOption(p))
	}
	for _, q := range u.Query {
		opts = append(opts, message.URIQueryOption(q))
	}
	return opts
}
