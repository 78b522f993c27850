package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeUint32(t *testing.T) {
	type args struct {
		value uint32
	}
	tests := []struct {
		name string
		args args
		want []byte
	}{
		{
			name: "0",
			args: args{0},
			want: []byte{},
		},
		{
			name: "1",
			args: args{1},
			want: []byte{1},
		},
		{
			name: "256",
			args: args{256},
			want: []byte{1, 0},
		},
		{
			name: "16384",
			args: args{16384},
			want: []byte{0x40, 0},
		},
		{
			name: "5000000",
			args: args{5000000},
			want: []byte{0x4c, 0x4b, 0x40},
		},
		{
			name: "20000000",
			args: args{20000000},
			want: []byte{0x01, 0x31, 0x2d, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeUint32(tt.args.value)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.args.value, DecodeUint32(got))
		})
	}
}

func TestEncodeUint16(t *testing.T) {
	require.Empty(t, EncodeUint16(0))
	require.Equal(t, []byte{0xff}, EncodeUint16(255))
	require.Equal(t, []byte{0xff, 0xff}, EncodeUint16(0xffff))
	require.Equal(t, uint16(5683), DecodeUint16(EncodeUint16(5683)))
}

func TestEncodeUint8(t *testing.T) {
	require.Empty(t, EncodeUint8(0))
	require.Equal(t, []byte{0x1a}, EncodeUint8(0x1a))
}

func TestDecodeZeroExtends(t *testing.T) {
	require.Equal(t, uint32(0), DecodeUint32(nil))
	require.Equal(t, uint32(0x0102), DecodeUint32([]byte{1, 2}))
	require.Equal(t, uint16(0x07), DecodeUint16([]byte{7}))
	require.Equal(t, uint32(0), DecodeUint32([]byte{0, 0, 0}))
}
