// Package memory provides an in-process engine. It keeps sent messages instead of
// writing them to a socket and completes large payload transfers asynchronously.
package memory

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"

	"github.com/alecthomas/units"
	"github.com/hashicorp/go-multierror"
	"github.com/plgd-dev/go-libcoap/engine"
	"github.com/plgd-dev/go-libcoap/message/codes"
	coapNet "github.com/plgd-dev/go-libcoap/net"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMessageTooLarge = errors.New("message too large")
	ErrUnknownMessage  = errors.New("message does not belong to the engine")
)

// Op names an engine operation which can be made to fail.
type Op string

const (
	OpNewMessage Op = "NewMessage"
	OpAddToken   Op = "AddToken"
	OpAddOptions Op = "AddOptions"
	OpAddPayload Op = "AddPayload"
	OpSend       Op = "Send"
)

// Sent is a message handed over by Send.
type Sent struct {
	Session *Session
	Message *Message
	// Payload holds the small payload or the body of the large payload.
	Payload []byte
	// IPv4 and IPv6 hold the control message a socket would be written with when the
	// session was created by NewUDPSession. At most one of them is set.
	IPv4 *ipv4.ControlMessage
	IPv6 *ipv6.ControlMessage
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxPDUSize sets the size returned by MaxPDUSize.
func WithMaxPDUSize(size units.Base2Bytes) Option {
	return func(e *Engine) {
		e.maxPDUSize = size
	}
}

// Engine implements engine.Engine in memory.
type Engine struct {
	maxPDUSize units.Base2Bytes

	mutex    sync.Mutex
	live     map[*Message]struct{}
	sessions []*Session
	sent     []Sent
	faults   map[Op]error
	group    errgroup.Group
}

var _ engine.Engine = (*Engine)(nil)

func New(opts ...Option) *Engine {
	e := &Engine{
		maxPDUSize: units.KiB + 128,
		live:       make(map[*Message]struct{}),
		faults:     make(map[Op]error),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// NewSession creates a session holding the engine's own reference.
func (e *Engine) NewSession(typ engine.SessionType, ep coapNet.Endpoint) *Session {
	s := &Session{
		typ:      typ,
		endpoint: ep,
	}
	s.refs.Store(1)
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.sessions = append(e.sessions, s)
	return s
}

// NewUDPSession creates a session for a datagram received from remote on the socket
// bound to local. cm is the control message read together with the datagram.
func (e *Engine) NewUDPSession(typ engine.SessionType, local *net.UDPAddr, remote net.Addr, cm *coapNet.ControlMessage) *Session {
	s := e.NewSession(typ, coapNet.NewUDPEndpoint(local, remote, cm))
	s.cm = cm
	return s
}

// CloseSession drops the engine's own reference of s.
func (e *Engine) CloseSession(s *Session) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	for i, v := range e.sessions {
		if v == s {
			e.sessions = append(e.sessions[:i], e.sessions[i+1:]...)
			s.Release()
			return
		}
	}
}

// InjectFault makes op fail with err, nil removes the fault.
func (e *Engine) InjectFault(op Op, err error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err == nil {
		delete(e.faults, op)
		return
	}
	e.faults[op] = err
}

func (e *Engine) fault(op Op) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.faults[op]
}

func (e *Engine) MaxPDUSize(engine.Session) int {
	return int(e.maxPDUSize)
}

func (e *Engine) NewMessage(typ uint8, code codes.Code, mid uint16, maxSize int) (engine.NativeMessage, error) {
	if err := e.fault(OpNewMessage); err != nil {
		return nil, err
	}
	m := &Message{
		typ:     typ,
		code:    code,
		mid:     mid,
		maxSize: maxSize,
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.live[m] = struct{}{}
	return m, nil
}

func (e *Engine) toMessage(nm engine.NativeMessage) (*Message, error) {
	m, ok := nm.(*Message)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownMessage, nm)
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if _, ok := e.live[m]; !ok {
		return nil, ErrUnknownMessage
	}
	return m, nil
}

func (e *Engine) DeleteMessage(nm engine.NativeMessage) {
	m, err := e.toMessage(nm)
	if err != nil {
		return
	}
	e.mutex.Lock()
	delete(e.live, m)
	e.mutex.Unlock()
	if m.large != nil {
		e.complete(m.large)
	}
}

func (e *Engine) AddToken(nm engine.NativeMessage, token []byte) error {
	if err := e.fault(OpAddToken); err != nil {
		return err
	}
	m, err := e.toMessage(nm)
	if err != nil {
		return err
	}
	m.token = append([]byte(nil), token...)
	return nil
}

func (e *Engine) AddOptions(nm engine.NativeMessage, opts []engine.RawOption) error {
	if err := e.fault(OpAddOptions); err != nil {
		return err
	}
	m, err := e.toMessage(nm)
	if err != nil {
		return err
	}
	for _, o := range opts {
		m.options = append(m.options, engine.RawOption{Number: o.Number, Value: append([]byte(nil), o.Value...)})
	}
	sort.SliceStable(m.options, func(i, j int) bool {
		return m.options[i].Number < m.options[j].Number
	})
	return nil
}

func (e *Engine) AddPayload(nm engine.NativeMessage, payload []byte) error {
	if err := e.fault(OpAddPayload); err != nil {
		return err
	}
	m, err := e.toMessage(nm)
	if err != nil {
		return err
	}
	if m.size()+len(payload) > m.maxSize {
		return fmt.Errorf("%w: %v > %v", ErrMessageTooLarge, m.size()+len(payload), m.maxSize)
	}
	m.payload = append([]byte(nil), payload...)
	return nil
}

// AddLargePayload keeps the transfer until the message is sent or deleted.
func (e *Engine) AddLargePayload(_ engine.Session, nm engine.NativeMessage, payload *engine.Transfer) {
	m, err := e.toMessage(nm)
	if err != nil {
		e.complete(payload)
		return
	}
	if m.large != nil {
		e.complete(m.large)
	}
	m.large = payload
}

// Send records m. The engine owns m afterwards even when an error is returned.
func (e *Engine) Send(s engine.Session, nm engine.NativeMessage) error {
	m, err := e.toMessage(nm)
	if err != nil {
		return err
	}
	if err := e.fault(OpSend); err != nil {
		e.DeleteMessage(m)
		return err
	}
	sess, ok := s.(*Session)
	if !ok {
		e.DeleteMessage(m)
		return fmt.Errorf("invalid session type %T", s)
	}
	sent := Sent{
		Session: sess,
		Message: m,
		Payload: m.payload,
	}
	if m.large != nil {
		sent.Payload = m.large.Bytes()
	}
	if sess.cm != nil {
		if isIPv4(sess.endpoint.Remote) {
			sent.IPv4 = sess.cm.ToIPv4()
		} else {
			sent.IPv6 = sess.cm.ToIPv6()
		}
	}
	e.mutex.Lock()
	delete(e.live, m)
	e.sent = append(e.sent, sent)
	e.mutex.Unlock()
	if m.large != nil {
		e.complete(m.large)
	}
	return nil
}

func isIPv4(addr net.Addr) bool {
	a, ok := addr.(*net.UDPAddr)
	return ok && a.IP.To4() != nil
}

func (e *Engine) complete(t *engine.Transfer) {
	e.group.Go(func() error {
		t.Complete()
		return nil
	})
}

// Sent returns the messages handed over by Send in order.
func (e *Engine) Sent() []Sent {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return append([]Sent(nil), e.sent...)
}

// Live returns the number of created messages which were neither sent nor deleted.
func (e *Engine) Live() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return len(e.live)
}

// Flush waits until all pending transfers are completed.
func (e *Engine) Flush() error {
	return e.group.Wait()
}

// Close waits for pending transfers and reports leaked messages and sessions which
// are still referenced by someone else than the engine.
func (e *Engine) Close() error {
	var errs *multierror.Error
	if err := e.Flush(); err != nil {
		errs = multierror.Append(errs, err)
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	for m := range e.live {
		errs = multierror.Append(errs, fmt.Errorf("message %v (code %v) was not released", m.mid, m.code))
	}
	for _, s := range e.sessions {
		if refs := s.RefCount(); refs != 1 {
			errs = multierror.Append(errs, fmt.Errorf("session %v has %v references", s.endpoint, refs-1))
		}
		if s.AppData() != 0 {
			errs = multierror.Append(errs, fmt.Errorf("session %v has app data set", s.endpoint))
		}
	}
	return errs.ErrorOrNil()
}
