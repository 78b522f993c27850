package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/plgd-dev/go-libcoap/message/codes"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test")

func TestStatus(t *testing.T) {
	s, ok := FromError(nil)
	require.True(t, ok)
	require.Equal(t, OK, s.Code())

	_, ok = FromError(fmt.Errorf("test"))
	require.False(t, ok)

	err := Errorf(codes.NotFound, "test %w", errTest)
	s, ok = FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.NotFound, s.Code())
	require.True(t, errors.Is(err, errTest))

	s = Convert(fmt.Errorf("wrapped: %w", err))
	require.Equal(t, codes.NotFound, s.Code())
	require.Equal(t, codes.NotFound, Code(err))

	require.Equal(t, OK, Code(nil))
	require.Equal(t, Unknown, Code(fmt.Errorf("test")))
	require.Equal(t, "coap error: code = NotFound desc = test test", err.Error())
}

func TestResponseCode(t *testing.T) {
	require.Equal(t, codes.BadRequest, ResponseCode(Error(codes.BadRequest, errTest)))
	require.Equal(t, codes.InternalServerError, ResponseCode(errTest))
	require.Equal(t, codes.InternalServerError, ResponseCode(Error(codes.GET, errTest)))
}
