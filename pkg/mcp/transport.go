package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrParse marks an input line that could not be decoded as a JSON-RPC
// request. Callers should answer with a ParseError response and keep
// reading.
var ErrParse = errors.New("parse error")

// Transport handles line-oriented JSON-RPC communication over stdio.
// Writes are serialized so concurrent dispatches never interleave
// response bytes.
type Transport struct {
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex
}

// NewTransport creates a stdio transport over the given reader and writer.
func NewTransport(r io.Reader, w io.Writer) *Transport {
	return &Transport{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// ReadMessage reads the next JSON-RPC request. Blank lines are skipped.
// A malformed line yields ErrParse; io errors (including io.EOF) are
// returned as-is.
func (t *Transport) ReadMessage() (*Request, error) {
	for {
		line, err := t.reader.ReadBytes('\n')
		trimmed := bytes.TrimSpace(line)
		if err != nil && len(trimmed) == 0 {
			return nil, err
		}
		if len(trimmed) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return &req, nil
	}
}

// WriteResponse writes a JSON-RPC response followed by a newline.
func (t *Transport) WriteResponse(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err = fmt.Fprintf(t.writer, "%s\n", data)
	return err
}

// WriteNotification writes a JSON-RPC notification.
func (t *Transport) WriteNotification(method string, params any) error {
	var paramsData json.RawMessage
	if params != nil {
		var err error
		paramsData, err = json.Marshal(params)
		if err != nil {
			return err
		}
	}

	data, err := json.Marshal(Notification{
		JSONRPC: "2.0",
		Method:  method,
		Params:  paramsData,
	})
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err = fmt.Fprintf(t.writer, "%s\n", data)
	return err
}
