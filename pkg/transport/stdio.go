package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/protocol"
)

// ParseError is returned by ReadRequest for a line that is not a valid JSON-RPC request.
// The stream stays usable.
type ParseError struct {
	Line []byte
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse request: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StreamTransport exchanges newline delimited JSON-RPC messages over a reader and a writer.
type StreamTransport struct {
	reader *bufio.Reader
	mu     sync.Mutex
	writer *bufio.Writer
}

// NewStdioTransport creates a new transport that uses stdin/stdout
func NewStdioTransport() *StreamTransport {
	return NewStreamTransport(os.Stdin, os.Stdout)
}

func NewStreamTransport(r io.Reader, w io.Writer) *StreamTransport {
	return &StreamTransport{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

// ReadRequest blocks until the next request arrives. It returns io.EOF when the client goes away.
func (t *StreamTransport) ReadRequest() (*protocol.JsonRpcRequest, error) {
	for {
		line, err := t.reader.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			if err != nil {
				if errors.Is(err, io.EOF) {
					logger.Info("Received EOF on input, client disconnected")
				}
				return nil, err
			}
			continue
		}
		logger.Debug("Received raw request:", string(line))

		req, perr := protocol.ParseJsonRpcRequest(line)
		if perr != nil {
			logger.Error("Failed to parse JSON-RPC request:", perr)
			return nil, &ParseError{Line: line, Err: perr}
		}
		return req, nil
	}
}

// WriteResponse writes one response followed by a newline.
func (t *StreamTransport) WriteResponse(response *protocol.JsonRpcResponse) error {
	b, err := json.Marshal(response)
	if err != nil {
		logger.Error("Failed to marshal response:", err)
		return err
	}
	b = append(b, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.writer.Write(b); err != nil {
		logger.Error("Failed to write response:", err)
		return err
	}
	if err := t.writer.Flush(); err != nil {
		logger.Error("Failed to flush response:", err)
		return err
	}
	logger.Debug("Sent response:", string(bytes.TrimSpace(b)))
	return nil
}
