package transport

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/leaguestats/pkg/protocol"
)

func TestStreamTransportRead(t *testing.T) {
	in := strings.NewReader("\n" +
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n" +
		"{broken\n" +
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	tr := NewStreamTransport(in, io.Discard)

	req, err := tr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "tools/list", req.Method)

	_, err = tr.ReadRequest()
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "{broken", string(perr.Line))

	req, err = tr.ReadRequest()
	require.NoError(t, err)
	assert.True(t, req.IsNotification())

	_, err = tr.ReadRequest()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamTransportWrite(t *testing.T) {
	var out bytes.Buffer
	tr := NewStreamTransport(strings.NewReader(""), &out)

	resp, err := protocol.NewJsonRpcResponse(map[string]string{"ok": "yes"}, 4)
	require.NoError(t, err)
	require.NoError(t, tr.WriteResponse(resp))

	assert.Equal(t, `{"jsonrpc":"2.0","result":{"ok":"yes"},"id":4}`+"\n", out.String())
}
