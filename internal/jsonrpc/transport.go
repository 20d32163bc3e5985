package jsonrpc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
)

// MaxFrameBytes bounds a single request frame. Evaluation requests carry
// whole legal documents inline, so the bound is generous; anything larger
// indicates a runaway client rather than a real contract.
const MaxFrameBytes = 32 << 20

// Transport frames JSON-RPC messages as newline-delimited JSON over a byte
// stream. Reads are single-consumer; writes are serialized so concurrent
// handlers cannot interleave response bytes.
type Transport struct {
	scanner *bufio.Scanner
	w       io.Writer
	writeMu sync.Mutex
}

// NewTransport wraps r and w as a JSON-RPC transport. The same framing is
// used for all three surfaces: MCP on stdio, plain JSON-RPC on stdio, and
// JSON-RPC over TCP.
func NewTransport(r io.Reader, w io.Writer) *Transport {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), MaxFrameBytes)
	return &Transport{scanner: sc, w: w}
}

// ReadRequest reads the next request frame. The raw bytes are returned
// alongside the decoded request so callers can distinguish notifications
// (no "id" key) from requests with a null id.
func (t *Transport) ReadRequest() (*Request, []byte, error) {
	if !t.scanner.Scan() {
		err := t.scanner.Err()
		if err == nil {
			return nil, nil, io.EOF
		}
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, nil, fmt.Errorf("request frame exceeds %d bytes", MaxFrameBytes)
		}
		return nil, nil, err
	}

	// Scanner reuses its buffer across frames.
	raw := append([]byte(nil), t.scanner.Bytes()...)

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &req, raw, nil
}

// WriteResponse sends one response frame.
func (t *Transport) WriteResponse(resp *Response) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = t.w.Write(data)
	return err
}

// TCPListener serves the JSON-RPC method set over TCP, one goroutine per
// connection. It exists as a debugging surface for the document tooling
// methods; production clients speak MCP on stdio.
type TCPListener struct {
	listener net.Listener
	server   *Server
}

// NewTCPListener starts listening on addr. The caller decides whether addr
// may be non-loopback.
func NewTCPListener(addr string, server *Server) (*TCPListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	return &TCPListener{listener: ln, server: server}, nil
}

// Addr returns the bound network address.
func (tl *TCPListener) Addr() net.Addr {
	return tl.listener.Addr()
}

// Serve accepts connections until the listener is closed. Each connection
// gets its own transport, so a stalled client cannot block the others.
func (tl *TCPListener) Serve() error {
	for {
		conn, err := tl.listener.Accept()
		if err != nil {
			return err
		}
		go func() {
			defer conn.Close() //nolint:errcheck
			tl.server.ServeTransport(NewTransport(conn, conn))
		}()
	}
}

// Close shuts down the listener; Serve returns after the current Accept fails.
func (tl *TCPListener) Close() error {
	return tl.listener.Close()
}
