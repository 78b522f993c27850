// Package coap binds the message model to an engine. A Context creates and recovers
// server session handles, sends messages and responses and dispatches the messages
// received by the engine.
package coap

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/plgd-dev/go-libcoap/engine"
	"github.com/plgd-dev/go-libcoap/message"
	"github.com/plgd-dev/go-libcoap/message/codes"
	"github.com/plgd-dev/go-libcoap/message/noresponse"
	"github.com/plgd-dev/go-libcoap/message/response"
	"github.com/plgd-dev/go-libcoap/message/status"
	pkgSync "github.com/plgd-dev/go-libcoap/pkg/sync"
	"github.com/plgd-dev/go-libcoap/session"
	"go.uber.org/zap"
)

var ErrUnknownSession = errors.New("session is not registered")

// Context owns one handle of every server session registered by NewServerSession.
type Context struct {
	cfg      Config
	engine   engine.Engine
	sessions *pkgSync.Map[engine.Session, *session.ServerSession]
}

func NewContext(eng engine.Engine, opts ...Option) *Context {
	cfg := DefaultConfig
	for _, o := range opts {
		o.ContextApply(&cfg)
	}
	if cfg.Errors == nil {
		cfg.Errors = func(error) {
			// default no-op
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Context{
		cfg:      cfg,
		engine:   eng,
		sessions: pkgSync.NewMap[engine.Session, *session.ServerSession](),
	}
}

// NewServerSession registers a new native server session. The returned handle is
// owned by the caller and must be closed; the context keeps its own handle until
// RemoveSession.
func (c *Context) NewServerSession(raw engine.Session) *session.ServerSession {
	h := session.Initialize(raw)
	c.sessions.Store(raw, h)
	c.cfg.Logger.Debug("session initialized",
		zap.Stringer("type", raw.Type()),
		zap.Stringer("remote", raw.RemoteAddr()))
	return h.Clone()
}

// RemoveSession closes the context's handle of raw.
func (c *Context) RemoveSession(raw engine.Session) error {
	h, ok := c.sessions.PullOut(raw)
	if !ok {
		return ErrUnknownSession
	}
	c.cfg.Logger.Debug("session removed", zap.Stringer("remote", raw.RemoteAddr()))
	return h.Close()
}

// Close closes the handles of all registered sessions.
func (c *Context) Close() error {
	var errs *multierror.Error
	for raw := range c.sessions.CopyData() {
		if err := c.RemoveSession(raw); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// SendMessage converts msg into a native message and hands it to the engine. A message
// id is assigned when msg has none. A request payload is owned by the engine afterwards.
func (c *Context) SendMessage(h *session.ServerSession, msg *message.Message) error {
	if size := len(msg.Payload()); size > int(c.cfg.MaxMessageSize) {
		return fmt.Errorf("%w: %v > %v", message.ErrMaxMessageSizeLimitExceeded, size, c.cfg.MaxMessageSize)
	}
	msg.UpsertMessageID(uint16(message.GetMID()))
	mid := msg.MessageID()
	var onComplete func()
	if msg.Code().IsRequest() && msg.HasPayload() {
		size := len(msg.Payload())
		onComplete = func() {
			c.cfg.Logger.Debug("transfer completed", zap.Int32("mid", mid), zap.Int("size", size))
		}
	}
	return h.Do(func(raw engine.Session) error {
		nm, err := msg.ToNativeWithCompletion(c.engine, raw, onComplete)
		if err != nil {
			return fmt.Errorf("cannot convert message %v: %w", mid, err)
		}
		if err = c.engine.Send(raw, nm); err != nil {
			return fmt.Errorf("cannot send message %v: %w", mid, err)
		}
		return nil
	})
}

// SendResponse folds r into its message and sends it.
func (c *Context) SendResponse(h *session.ServerSession, r *response.Response) error {
	return c.SendMessage(h, r.IntoMessage())
}

// HandleMessage dispatches a message received by the engine over raw. Requests go to
// the handler and its response is sent back, responses go to the response handler.
// A request which cannot be decoded is answered with BadOption. Messages of sessions
// which are not registered are rejected with ErrUnknownSession.
func (c *Context) HandleMessage(raw engine.Session, nm engine.NativeMessage) error {
	if _, ok := c.sessions.Load(raw); !ok {
		return fmt.Errorf("%w: %v", ErrUnknownSession, raw.RemoteAddr())
	}
	h := session.Recover(raw)
	defer func() {
		if err := h.Close(); err != nil {
			c.cfg.Errors(err)
		}
	}()
	msg, err := message.FromNative(nm)
	if err != nil {
		if nm.Code().IsRequest() {
			req := message.NewMessage(message.Type(nm.Type()), nm.Code())
			req.SetMessageID(nm.MessageID())
			req.SetToken(nm.Token())
			if errSend := c.reply(h, req, nil, status.Error(codes.BadOption, err)); errSend != nil {
				c.cfg.Errors(errSend)
			}
		}
		return fmt.Errorf("cannot decode message %v: %w", nm.MessageID(), err)
	}
	switch {
	case msg.Code().IsRequest():
		return c.handleRequest(h, msg)
	case msg.Code().IsResponse():
		r, err := response.FromMessage(msg)
		if err != nil {
			return fmt.Errorf("cannot decode response %v: %w", nm.MessageID(), err)
		}
		if c.cfg.ResponseHandler != nil {
			c.cfg.ResponseHandler(h, r)
		}
		return nil
	}
	c.cfg.Logger.Debug("ignoring message", zap.Stringer("message", msg))
	return nil
}

func (c *Context) handleRequest(h *session.ServerSession, req *message.Message) error {
	var resp *response.Response
	var err error
	if c.cfg.Handler == nil {
		err = status.Errorf(codes.NotFound, "no handler for %v", req.Code())
	} else {
		resp, err = c.cfg.Handler(h, req)
	}
	if err != nil {
		c.cfg.Errors(fmt.Errorf("cannot handle request %v: %w", req.MessageID(), err))
	}
	if resp == nil && err == nil {
		return nil
	}
	return c.reply(h, req, resp, err)
}

// reply pairs resp with req and sends it. When resp is nil a response carrying the
// code of handlerErr is sent.
func (c *Context) reply(h *session.ServerSession, req *message.Message, resp *response.Response, handlerErr error) error {
	typ := message.NonConfirmable
	if req.Type() == message.Confirmable {
		typ = message.Acknowledgement
	}
	if resp == nil {
		var err error
		resp, err = response.New(typ, status.ResponseCode(handlerErr))
		if err != nil {
			return err
		}
	}
	for _, o := range req.Options() {
		if v, ok := o.(message.NoResponseOption); ok {
			if err := noresponse.IsNoResponseCode(resp.Code(), uint8(v)); err != nil {
				c.cfg.Logger.Debug("response suppressed", zap.Error(err))
				return nil
			}
		}
	}
	msg := resp.IntoMessage()
	msg.SetType(typ)
	if typ == message.Acknowledgement {
		msg.SetMessageID(uint16(req.MessageID()))
	} else {
		msg.ClearMessageID()
	}
	if token, ok := req.Token(); ok {
		msg.SetToken(token)
	}
	return c.SendMessage(h, msg)
}
