package memory

import (
	"log"
	"net"

	"github.com/plgd-dev/go-libcoap/engine"
	coapNet "github.com/plgd-dev/go-libcoap/net"
	"go.uber.org/atomic"
)

// Session is an engine-owned session. The engine keeps one reference of its own
// until CloseSession is called.
type Session struct {
	typ      engine.SessionType
	endpoint coapNet.Endpoint
	cm       *coapNet.ControlMessage
	refs     atomic.Int64
	appData  atomic.Uint64
	freed    atomic.Bool
}

var _ engine.Session = (*Session)(nil)

func (s *Session) Type() engine.SessionType {
	return s.typ
}

func (s *Session) Reference() {
	if s.freed.Load() {
		log.Panicf("reference of freed session %v", s.endpoint)
	}
	s.refs.Inc()
}

func (s *Session) Release() {
	v := s.refs.Dec()
	switch {
	case v == 0:
		s.freed.Store(true)
	case v < 0:
		log.Panicf("release of freed session %v", s.endpoint)
	}
}

func (s *Session) AppData() uint64 {
	return s.appData.Load()
}

func (s *Session) SetAppData(v uint64) {
	s.appData.Store(v)
}

func (s *Session) IfIndex() int {
	return s.endpoint.IfIndex
}

func (s *Session) LocalAddr() net.Addr {
	return s.endpoint.Local
}

func (s *Session) RemoteAddr() net.Addr {
	return s.endpoint.Remote
}

// Endpoint returns the network identity of the session.
func (s *Session) Endpoint() coapNet.Endpoint {
	return s.endpoint
}

// ControlMessage returns the control message the session was created from, nil when
// the session was not created by NewUDPSession.
func (s *Session) ControlMessage() *coapNet.ControlMessage {
	return s.cm
}

// RefCount returns the engine-side reference count including the engine's own reference.
func (s *Session) RefCount() int64 {
	return s.refs.Load()
}

// Freed reports whether the reference count dropped to zero.
func (s *Session) Freed() bool {
	return s.freed.Load()
}
