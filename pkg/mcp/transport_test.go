package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMessage(t *testing.T) {
	in := strings.NewReader(`{"jsonrpc":"2.0","method":"ping","id":1}` + "\n")
	tr := NewTransport(in, io.Discard)

	req, err := tr.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "ping", req.Method)
	assert.Equal(t, json.RawMessage("1"), req.ID)

	_, err = tr.ReadMessage()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadMessage_SkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n\n" + `{"jsonrpc":"2.0","method":"ping","id":1}` + "\n")
	tr := NewTransport(in, io.Discard)

	req, err := tr.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "ping", req.Method)
}

func TestReadMessage_ParseError(t *testing.T) {
	in := strings.NewReader("{broken\n")
	tr := NewTransport(in, io.Discard)

	_, err := tr.ReadMessage()
	assert.ErrorIs(t, err, ErrParse)
}

func TestReadMessage_LastLineWithoutNewline(t *testing.T) {
	in := strings.NewReader(`{"jsonrpc":"2.0","method":"ping","id":1}`)
	tr := NewTransport(in, io.Discard)

	req, err := tr.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "ping", req.Method)
}

func TestWriteResponse(t *testing.T) {
	var out bytes.Buffer
	tr := NewTransport(strings.NewReader(""), &out)

	resp, err := NewResponse(json.RawMessage("1"), map[string]any{"ok": true})
	require.NoError(t, err)
	require.NoError(t, tr.WriteResponse(resp))

	assert.JSONEq(t, `{"jsonrpc":"2.0","result":{"ok":true},"id":1}`, strings.TrimSpace(out.String()))
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestNewErrorResponse_NullID(t *testing.T) {
	resp := NewErrorResponse(nil, ParseError, "Parse error")

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","error":{"code":-32700,"message":"Parse error"},"id":null}`, string(data))
}
