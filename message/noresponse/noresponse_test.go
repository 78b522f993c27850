package noresponse

import (
	"errors"
	"testing"

	"github.com/plgd-dev/go-libcoap/message/codes"
	"github.com/stretchr/testify/require"
)

func TestNoResponse2XXCodes(t *testing.T) {
	got := decodeNoResponseOption(2)
	exp := resp2XXCodes
	require.Equal(t, exp, got)
}

func TestNoResponse4XXCodes(t *testing.T) {
	got := decodeNoResponseOption(8)
	exp := resp4XXCodes
	require.Equal(t, exp, got)
}

func TestNoResponse5XXCodes(t *testing.T) {
	got := decodeNoResponseOption(16)
	exp := resp5XXCodes
	require.Equal(t, exp, got)
}

func TestNoResponseCombinationXXCodes(t *testing.T) {
	got := decodeNoResponseOption(18)
	exp := append([]codes.Code(nil), resp2XXCodes...)
	exp = append(exp, resp5XXCodes...)
	require.Equal(t, exp, got)
}

func TestNoResponseAllCodes(t *testing.T) {
	allCodes := decodeNoResponseOption(0)
	exp := []codes.Code(nil)
	require.Equal(t, exp, allCodes)
}

func TestNoResponseBehaviour(t *testing.T) {
	err := IsNoResponseCode(codes.Content, 2)
	require.True(t, errors.Is(err, ErrMessageNotInterested))
	require.NoError(t, IsNoResponseCode(codes.NotFound, 2))
	require.Error(t, IsNoResponseCode(codes.NotFound, 26))
}
