// Package session wraps engine-owned server sessions into reference-counted handles.
//
// Every handle holds one engine-side reference of the native session. All handles of
// a native session share one state, and the native session stores a token of that state
// in its app data slot so the engine side can recover a handle. The slot is cleared
// when the last handle is closed.
package session

import (
	"errors"
	"log"
	"net"
	"sync"

	"github.com/plgd-dev/go-libcoap/engine"
	coapNet "github.com/plgd-dev/go-libcoap/net"
	pkgSync "github.com/plgd-dev/go-libcoap/pkg/sync"
	"go.uber.org/atomic"
)

var ErrClosed = errors.New("session handle is closed")

type state struct {
	mutex sync.Mutex
	raw   engine.Session
	token uint64
	refs  atomic.Int64
}

var (
	states    = pkgSync.NewMap[uint64, *state]()
	lastToken atomic.Uint64
)

// ServerSession is a handle of a server-side native session. Handles are not safe to
// be closed concurrently with their own use; clone a handle for every goroutine.
type ServerSession struct {
	state  *state
	closed atomic.Bool
}

func checkRaw(raw engine.Session) {
	if raw == nil {
		log.Panicf("provided raw session is nil")
	}
	switch typ := raw.Type(); typ {
	case engine.SessionTypeServer, engine.SessionTypeHello:
	case engine.SessionTypeNone:
		log.Panicf("provided raw session has no type")
	default:
		log.Panicf("cannot create server session from raw session of type %v", typ)
	}
}

// Initialize creates the first handle of a native server session and installs the
// back-reference into its app data slot. It panics if the slot is already used.
func Initialize(raw engine.Session) *ServerSession {
	checkRaw(raw)
	if raw.AppData() != 0 {
		log.Panicf("raw session %v already has app data", raw.RemoteAddr())
	}
	st := &state{
		raw:   raw,
		token: lastToken.Inc(),
	}
	st.refs.Store(1)
	if !states.StoreIfAbsent(st.token, st) {
		log.Panicf("session state %v already exists", st.token)
	}
	raw.SetAppData(st.token)
	raw.Reference()
	return &ServerSession{state: st}
}

// Recover returns a new handle of a native session previously passed to Initialize.
// It panics if the app data slot is empty.
func Recover(raw engine.Session) *ServerSession {
	checkRaw(raw)
	token := raw.AppData()
	if token == 0 {
		log.Panicf("raw session %v has no app data", raw.RemoteAddr())
	}
	st, ok := states.Load(token)
	if !ok {
		log.Panicf("raw session %v refers to unknown session state %v", raw.RemoteAddr(), token)
	}
	st.acquire()
	raw.Reference()
	return &ServerSession{state: st}
}

func (st *state) acquire() {
	for {
		n := st.refs.Load()
		if n <= 0 {
			log.Panicf("session state %v is already released", st.token)
		}
		if st.refs.CAS(n, n+1) {
			return
		}
	}
}

// release drops one application-side reference and tears down the back-reference
// with the last one.
func (st *state) release() {
	n := st.refs.Dec()
	if n > 0 {
		return
	}
	if n < 0 {
		log.Panicf("session state %v released too many times", st.token)
	}
	token := st.raw.AppData()
	if token == 0 {
		log.Panicf("raw session %v lost its app data", st.raw.RemoteAddr())
	}
	if token != st.token {
		log.Panicf("raw session %v app data %v does not belong to session state %v", st.raw.RemoteAddr(), token, st.token)
	}
	st.raw.SetAppData(0)
	states.Delete(token)
}

// Clone returns another handle of the same session.
func (s *ServerSession) Clone() *ServerSession {
	if s.closed.Load() {
		log.Panicf("clone of closed session handle")
	}
	s.state.acquire()
	s.state.raw.Reference()
	return &ServerSession{state: s.state}
}

// Close releases the handle. After the last handle of a native session is closed the
// back-reference is removed from the native session.
func (s *ServerSession) Close() error {
	if !s.closed.CAS(false, true) {
		return ErrClosed
	}
	raw := s.state.raw
	s.state.release()
	raw.Release()
	return nil
}

// Do runs f with exclusive access to the native session.
func (s *ServerSession) Do(f func(raw engine.Session) error) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.state.mutex.Lock()
	defer s.state.mutex.Unlock()
	return f(s.state.raw)
}

// Equal reports whether both handles refer to the same native session on the same
// interface and address pair.
func (s *ServerSession) Equal(o *ServerSession) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.state.raw == o.state.raw && s.Endpoint().Equal(o.Endpoint())
}

func (s *ServerSession) Type() engine.SessionType {
	return s.state.raw.Type()
}

func (s *ServerSession) IfIndex() int {
	return s.state.raw.IfIndex()
}

func (s *ServerSession) LocalAddr() net.Addr {
	return s.state.raw.LocalAddr()
}

func (s *ServerSession) RemoteAddr() net.Addr {
	return s.state.raw.RemoteAddr()
}

func (s *ServerSession) Endpoint() coapNet.Endpoint {
	return coapNet.Endpoint{
		IfIndex: s.IfIndex(),
		Local:   s.LocalAddr(),
		Remote:  s.RemoteAddr(),
	}
}

// Outstanding returns the number of native sessions with at least one open handle.
func Outstanding() int {
	return states.Length()
}
