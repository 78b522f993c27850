package session_test

import (
	"net"
	"sync"
	"testing"

	"github.com/plgd-dev/go-libcoap/engine"
	"github.com/plgd-dev/go-libcoap/engine/memory"
	coapNet "github.com/plgd-dev/go-libcoap/net"
	"github.com/plgd-dev/go-libcoap/session"
	"github.com/stretchr/testify/require"
)

func newRawSession(t *testing.T, typ engine.SessionType, port int) (*memory.Engine, *memory.Session) {
	e := memory.New()
	s := e.NewSession(typ, coapNet.Endpoint{
		IfIndex: 1,
		Local:   &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5684},
		Remote:  &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port},
	})
	t.Cleanup(func() {
		e.CloseSession(s)
	})
	return e, s
}

func TestInitializeClose(t *testing.T) {
	e, raw := newRawSession(t, engine.SessionTypeServer, 10001)
	before := raw.RefCount()
	outstanding := session.Outstanding()

	s := session.Initialize(raw)
	require.NotZero(t, raw.AppData())
	require.Equal(t, before+1, raw.RefCount())
	require.Equal(t, outstanding+1, session.Outstanding())
	require.Equal(t, engine.SessionTypeServer, s.Type())
	require.Equal(t, 1, s.IfIndex())
	require.Equal(t, raw.LocalAddr(), s.LocalAddr())
	require.Equal(t, raw.RemoteAddr(), s.RemoteAddr())

	require.NoError(t, s.Close())
	require.Zero(t, raw.AppData())
	require.Equal(t, before, raw.RefCount())
	require.Equal(t, outstanding, session.Outstanding())
	require.ErrorIs(t, s.Close(), session.ErrClosed)
	require.ErrorIs(t, s.Do(func(engine.Session) error { return nil }), session.ErrClosed)
	require.NoError(t, e.Close())
}

func TestRecoverClone(t *testing.T) {
	e, raw := newRawSession(t, engine.SessionTypeHello, 10002)
	before := raw.RefCount()

	s := session.Initialize(raw)
	token := raw.AppData()
	recovered := session.Recover(raw)
	clone := recovered.Clone()
	require.Equal(t, before+3, raw.RefCount())
	require.True(t, s.Equal(recovered))
	require.True(t, s.Equal(clone))

	// the back-reference stays while any handle is open
	require.NoError(t, s.Close())
	require.Equal(t, token, raw.AppData())
	require.NoError(t, recovered.Close())
	require.Equal(t, token, raw.AppData())
	require.Equal(t, before+1, raw.RefCount())

	require.NoError(t, clone.Close())
	require.Zero(t, raw.AppData())
	require.Equal(t, before, raw.RefCount())
	require.NoError(t, e.Close())
}

func TestRecoverWithoutBackReference(t *testing.T) {
	_, raw := newRawSession(t, engine.SessionTypeServer, 10003)
	require.Panics(t, func() { session.Recover(raw) })

	s := session.Initialize(raw)
	require.NoError(t, s.Close())
	require.Panics(t, func() { session.Recover(raw) })
}

func TestInitializeTwice(t *testing.T) {
	_, raw := newRawSession(t, engine.SessionTypeServer, 10004)
	s := session.Initialize(raw)
	require.Panics(t, func() { session.Initialize(raw) })
	require.NoError(t, s.Close())
}

func TestInvalidSessionType(t *testing.T) {
	_, client := newRawSession(t, engine.SessionTypeClient, 10005)
	require.Panics(t, func() { session.Initialize(client) })
	_, none := newRawSession(t, engine.SessionTypeNone, 10006)
	require.Panics(t, func() { session.Initialize(none) })
	require.Panics(t, func() { session.Initialize(nil) })
}

func TestLostBackReference(t *testing.T) {
	_, raw := newRawSession(t, engine.SessionTypeServer, 10007)
	s := session.Initialize(raw)
	raw.SetAppData(0)
	require.Panics(t, func() { _ = s.Close() })
	// the engine-side reference of the handle was not returned
	raw.Release()
}

func TestEqual(t *testing.T) {
	_, a := newRawSession(t, engine.SessionTypeServer, 10008)
	_, b := newRawSession(t, engine.SessionTypeServer, 10009)
	sa := session.Initialize(a)
	sb := session.Initialize(b)
	defer func() {
		require.NoError(t, sa.Close())
		require.NoError(t, sb.Close())
	}()
	require.False(t, sa.Equal(sb))
	require.True(t, sa.Equal(sa))
	require.False(t, sa.Equal(nil))
}

func TestDoConcurrent(t *testing.T) {
	_, raw := newRawSession(t, engine.SessionTypeServer, 10010)
	s := session.Initialize(raw)
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		h := s.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				_ = h.Close()
			}()
			for j := 0; j < 100; j++ {
				_ = h.Do(func(engine.Session) error {
					counter++
					return nil
				})
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 800, counter)
	require.NoError(t, s.Close())
	require.Zero(t, raw.AppData())
}
