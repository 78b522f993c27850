package uri

import (
	"testing"

	"github.com/plgd-dev/go-libcoap/message"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    URI
		wantErr bool
	}{
		{
			name: "full",
			args: "coaps://example.com:5684/a/b%20c?x=1&y",
			want: URI{Scheme: SchemeCoaps, Host: "example.com", Port: DefaultSecPort, Path: []string{"a", "b c"}, Query: []string{"x=1", "y"}},
		},
		{
			name: "ipv6",
			args: "coap://[fe80::1]/oic/res",
			want: URI{Scheme: SchemeCoap, Host: "fe80::1", Path: []string{"oic", "res"}},
		},
		{
			name: "relative",
			args: "a/b?q",
			want: URI{Path: []string{"a", "b"}, Query: []string{"q"}},
		},
		{
			name: "empty",
			args: "",
			want: URI{},
		},
		{
			name:    "fragment",
			args:    "coap://host/a#frag",
			wantErr: true,
		},
		{
			name:    "invalidPort",
			args:    "coap://host:70000/a",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidURI)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestURIString(t *testing.T) {
	require.Equal(t, "coaps://example.com:5684/a/b%20c?x%3D1&y", URI{Scheme: SchemeCoaps, Host: "example.com", Port: 5684, Path: []string{"a", "b c"}, Query: []string{"x=1", "y"}}.String())
	require.Equal(t, "coap://[fe80::1]/", URI{Scheme: SchemeCoap, Host: "fe80::1"}.String())
	require.Equal(t, "/a/b", URI{Path: []string{"a", "b"}}.String())
	require.Equal(t, "?q", URI{Query: []string{"q"}}.String())
	require.Equal(t, "", URI{}.String())
}

func TestURIRelative(t *testing.T) {
	require.True(t, URI{Path: []string{"a"}}.IsRelative())
	require.False(t, URI{Host: "h"}.IsRelative())
	require.False(t, URI{Port: 1}.IsRelative())
	require.False(t, URI{Scheme: SchemeCoap}.IsRelative())
}

func TestURIRequestOptions(t *testing.T) {
	u, err := Parse("coap://host:1234/a/b?c")
	require.NoError(t, err)
	require.Equal(t, []message.Option{
		message.URIHostOption("host"),
		message.URIPortOption(1234),
		message.URIPathOption("a"),
		message.URIPathOption("b"),
		message.URIQueryOption("c"),
	}, u.RequestOptions())
}
