package stream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)

	pkts := [][]byte{
		[]byte("hello"),
		{},
		[]byte{0, 1, 2, 3},
	}
	for _, pkt := range pkts {
		require.NoError(t, rw.WritePacket(pkt))
	}
	for _, pkt := range pkts {
		got, err := rw.ReadPacket()
		require.NoError(t, err)
		require.Equal(t, len(pkt), len(got))
		require.Equal(t, []byte(pkt), got[:len(pkt)])
	}
	_, err := rw.ReadPacket()
	require.Equal(t, io.EOF, err)
}

func TestReadWriterTruncated(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)
	require.NoError(t, rw.WritePacket([]byte("truncated")))
	buf.Truncate(buf.Len() - 2)
	_, err := rw.ReadPacket()
	require.Equal(t, io.ErrUnexpectedEOF, err)
}
