package response

import (
	"testing"

	"github.com/plgd-dev/go-libcoap/message"
	"github.com/plgd-dev/go-libcoap/message/codes"
	"github.com/plgd-dev/go-libcoap/message/uri"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	type args struct {
		typ  message.Type
		code codes.Code
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{name: "confirmable", args: args{typ: message.Confirmable, code: codes.Content}},
		{name: "nonConfirmable", args: args{typ: message.NonConfirmable, code: codes.NotFound}},
		{name: "acknowledgement", args: args{typ: message.Acknowledgement, code: codes.Changed}},
		{name: "reset", args: args{typ: message.Reset, code: codes.Content}, wantErr: message.ErrInvalidMessageType},
		{name: "requestCode", args: args{typ: message.Confirmable, code: codes.GET}, wantErr: message.ErrInvalidCodeForRole},
		{name: "emptyCode", args: args{typ: message.Acknowledgement, code: codes.Empty}, wantErr: message.ErrInvalidCodeForRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.args.typ, tt.args.code)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.args.typ, got.Type())
			require.Equal(t, tt.args.code, got.Code())
		})
	}
}

func TestSetCode(t *testing.T) {
	r, err := New(message.Acknowledgement, codes.Content)
	require.NoError(t, err)
	require.NoError(t, r.SetCode(codes.Created))
	require.Equal(t, codes.Created, r.Code())
	err = r.SetCode(codes.POST)
	require.ErrorIs(t, err, message.ErrInvalidCodeForRole)
	require.Equal(t, codes.Created, r.Code())
}

func newEnvelope(opts ...message.Option) *message.Message {
	m := message.NewMessage(message.Acknowledgement, codes.Content)
	for _, o := range opts {
		m.AddOption(o)
	}
	return m
}

func TestFromMessageErrors(t *testing.T) {
	tests := []struct {
		name    string
		opts    []message.Option
		wantErr error
		wantID  message.OptionID
	}{
		{name: "maxAgeRepeated", opts: []message.Option{message.MaxAgeOption(1), message.MaxAgeOption(2)}, wantErr: message.ErrNonRepeatableOptionRepeated, wantID: message.MaxAge},
		{name: "etagRepeated", opts: []message.Option{message.ETagOption{1}, message.ETagOption{2}}, wantErr: message.ErrNonRepeatableOptionRepeated, wantID: message.ETag},
		{name: "observeRepeated", opts: []message.Option{message.ObserveOption(1), message.ObserveOption(1)}, wantErr: message.ErrNonRepeatableOptionRepeated, wantID: message.Observe},
		{name: "contentFormatRepeated", opts: []message.Option{message.ContentFormatOption(0), message.ContentFormatOption(0)}, wantErr: message.ErrNonRepeatableOptionRepeated, wantID: message.ContentFormat},
		{name: "echoRepeated", opts: []message.Option{message.EchoOption{1}, message.EchoOption{1}}, wantErr: message.ErrNonRepeatableOptionRepeated, wantID: message.Echo},
		{name: "uriPath", opts: []message.Option{message.URIPathOption("a")}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.URIPath},
		{name: "ifMatch", opts: []message.Option{message.IfMatchOption{}}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.IfMatch},
		{name: "ifNoneMatch", opts: []message.Option{message.IfNoneMatchOption{}}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.IfNoneMatch},
		{name: "uriHost", opts: []message.Option{message.URIHostOption("h")}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.URIHost},
		{name: "uriPort", opts: []message.Option{message.URIPortOption(1)}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.URIPort},
		{name: "uriQuery", opts: []message.Option{message.URIQueryOption("q")}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.URIQuery},
		{name: "proxyURI", opts: []message.Option{message.ProxyURIOption("coap://h")}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.ProxyURI},
		{name: "proxyScheme", opts: []message.Option{message.ProxySchemeOption("coap")}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.ProxyScheme},
		{name: "accept", opts: []message.Option{message.AcceptOption(0)}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.Accept},
		{name: "size1", opts: []message.Option{message.Size1Option(1)}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.Size1},
		{name: "block1", opts: []message.Option{message.Block1Option(1)}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.Block1},
		{name: "hopLimit", opts: []message.Option{message.HopLimitOption(1)}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.HopLimit},
		{name: "noResponse", opts: []message.Option{message.NoResponseOption(0)}, wantErr: message.ErrInvalidOptionForMessageType, wantID: message.NoResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMessage(newEnvelope(tt.opts...))
			require.ErrorIs(t, err, tt.wantErr)
			var optErr *message.OptionError
			require.ErrorAs(t, err, &optErr)
			require.Equal(t, tt.wantID, optErr.ID)
		})
	}

	_, err := FromMessage(message.NewMessage(message.Confirmable, codes.GET))
	require.ErrorIs(t, err, message.ErrInvalidCodeForRole)
}

func TestFromMessage(t *testing.T) {
	env := newEnvelope(
		message.LocationPathOption("a"),
		message.MaxAgeOption(60),
		message.Block2Option(0x16),
		message.LocationQueryOption("q=1"),
		message.ContentFormatOption(message.AppCBOR),
		message.ETagOption{1, 2},
		message.EchoOption{9},
		message.ObserveOption(7),
		message.Other{Number: 2049, Value: []byte{1}},
		message.LocationPathOption("b"),
		message.Size2Option(1024),
	)
	env.SetPayload([]byte("body"))
	r, err := FromMessage(env)
	require.NoError(t, err)

	cf, ok := r.ContentFormat()
	require.True(t, ok)
	require.Equal(t, message.AppCBOR, cf)
	maxAge, ok := r.MaxAge()
	require.True(t, ok)
	require.Equal(t, uint32(60), maxAge)
	etag, ok := r.ETag()
	require.True(t, ok)
	require.Equal(t, []byte{1, 2}, etag)
	echo, ok := r.Echo()
	require.True(t, ok)
	require.Equal(t, []byte{9}, echo)
	observe, ok := r.Observe()
	require.True(t, ok)
	require.Equal(t, uint32(7), observe)
	loc, ok := r.Location()
	require.True(t, ok)
	require.Equal(t, uri.URI{Path: []string{"a", "b"}, Query: []string{"q=1"}}, loc.URI())
	require.Equal(t, []message.Option{message.Other{Number: 2049, Value: []byte{1}}}, r.AdditionalOptions())
	require.Equal(t, []byte("body"), r.Message().Payload())
	// interpreted options left the envelope, engine handled and unknown ones stay
	require.Equal(t, []message.Option{
		message.Block2Option(0x16),
		message.Other{Number: 2049, Value: []byte{1}},
		message.Size2Option(1024),
	}, r.Message().Options())

	msg := r.IntoMessage()
	require.Equal(t, []message.Option{
		message.Block2Option(0x16),
		message.Other{Number: 2049, Value: []byte{1}},
		message.Size2Option(1024),
		message.LocationPathOption("a"),
		message.LocationPathOption("b"),
		message.LocationQueryOption("q=1"),
		message.MaxAgeOption(60),
		message.ContentFormatOption(message.AppCBOR),
		message.ETagOption{1, 2},
		message.ObserveOption(7),
	}, msg.Options())
}

func TestFromMessageWithoutOptions(t *testing.T) {
	r, err := FromMessage(newEnvelope())
	require.NoError(t, err)
	_, ok := r.Location()
	require.False(t, ok)
	_, ok = r.MaxAge()
	require.False(t, ok)
	_, ok = r.ETag()
	require.False(t, ok)
	require.Empty(t, r.AdditionalOptions())
	require.Empty(t, r.IntoMessage().Options())
}

func TestLocationRoundTrip(t *testing.T) {
	loc, err := NewLocation(uri.URI{Path: []string{"a", "b"}})
	require.NoError(t, err)
	require.Equal(t, []message.Option{message.LocationPathOption("a"), message.LocationPathOption("b")}, loc.IntoOptions())

	r, err := FromMessage(newEnvelope(loc.IntoOptions()...))
	require.NoError(t, err)
	got, ok := r.Location()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, got.URI().Path)
	require.Nil(t, got.URI().Query)
	require.Equal(t, "Response Location: /a/b", got.String())
}

func TestSetLocation(t *testing.T) {
	r, err := New(message.Acknowledgement, codes.Created)
	require.NoError(t, err)
	err = r.SetLocation(uri.URI{Host: "example.com", Path: []string{"a"}})
	require.ErrorIs(t, err, message.ErrIllegalValue)
	_, ok := r.Location()
	require.False(t, ok)

	u, err := uri.Parse("/devices/1?ttl=30")
	require.NoError(t, err)
	require.NoError(t, r.SetLocation(u))
	r.SetMaxAge(30)
	r.SetContentFormat(message.TextPlain)
	r.SetETag([]byte{4})
	r.SetObserve(2)
	r.SetEcho([]byte{5})
	require.Equal(t, []message.Option{
		message.LocationPathOption("devices"),
		message.LocationPathOption("1"),
		message.LocationQueryOption("ttl=30"),
		message.MaxAgeOption(30),
		message.ContentFormatOption(message.TextPlain),
		message.ETagOption{4},
		message.ObserveOption(2),
	}, r.IntoMessage().Options())
}

func TestClearFields(t *testing.T) {
	r, err := New(message.NonConfirmable, codes.Content)
	require.NoError(t, err)
	r.SetMaxAge(1)
	r.SetContentFormat(message.AppJSON)
	r.SetObserve(3)
	r.SetETag([]byte{1})
	r.SetEcho([]byte{1})
	require.NoError(t, r.SetLocation(uri.URI{Path: []string{"x"}}))
	r.ClearMaxAge()
	r.ClearContentFormat()
	r.ClearObserve()
	r.SetETag(nil)
	r.SetEcho(nil)
	r.ClearLocation()
	require.Empty(t, r.IntoMessage().Options())
}
