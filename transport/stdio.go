package transport

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/kagi-mcp-server/protocol"
)

// Stdio implements MCP transport over newline-delimited JSON on a byte
// stream, conventionally the process stdin/stdout.
//
// Requests are processed strictly sequentially: the next line is not read
// until the previous response has been written and flushed. The counterpart
// host blocks waiting for exactly one line per request, so responses are
// never batched.
type Stdio struct {
	in  io.Reader
	out io.Writer
}

// StdioOption configures a Stdio transport.
type StdioOption func(*Stdio)

// WithStdin sets a custom input reader.
func WithStdin(r io.Reader) StdioOption {
	return func(s *Stdio) {
		s.in = r
	}
}

// WithStdout sets a custom output writer.
func WithStdout(w io.Writer) StdioOption {
	return func(s *Stdio) {
		s.out = w
	}
}

// NewStdio creates a new stdio transport.
func NewStdio(opts ...StdioOption) *Stdio {
	s := &Stdio{
		in:  os.Stdin,
		out: os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Addr returns the transport address.
func (s *Stdio) Addr() string {
	return "stdio"
}

// Serve runs the read-dispatch-write cycle until end-of-stream, which
// terminates cleanly with a nil error. Blank lines are skipped without a
// response; every other line produces exactly one response line. A write or
// flush failure is fatal: no partial line may ever reach the output stream.
//
// Cancellation is checked between cycles only; a blocked read or an
// in-flight tool call is not interrupted.
func (s *Stdio) Serve(ctx context.Context, handler Handler) error {
	reader := bufio.NewReader(s.in)
	writer := bufio.NewWriter(s.out)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, readErr := reader.ReadString('\n')

		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if err := s.serveLine(ctx, handler, writer, trimmed); err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

// serveLine decodes one line, dispatches it, and writes the response.
func (s *Stdio) serveLine(ctx context.Context, handler Handler, w *bufio.Writer, line string) error {
	req, err := protocol.DecodeRequest([]byte(line))
	if err != nil {
		resp := protocol.NewErrorResponse(protocol.NullID, protocol.NewParseError("Parse error: "+err.Error()))
		return s.writeResponse(w, resp)
	}

	resp, err := handler.HandleRequest(ctx, req)
	if err != nil {
		var mcpErr *protocol.Error
		if errors.As(err, &mcpErr) {
			resp = protocol.NewErrorResponse(req.ID, mcpErr)
		} else {
			resp = protocol.NewErrorResponse(req.ID, protocol.NewInternalError("Internal error: "+err.Error()))
		}
	}
	if resp == nil {
		resp = protocol.NewErrorResponse(req.ID, protocol.NewInternalError("Internal error: empty response"))
	}

	return s.writeResponse(w, resp)
}

// writeResponse emits one encoded response followed by a newline and flushes
// immediately so the line is visible to the consumer before the next read.
func (s *Stdio) writeResponse(w *bufio.Writer, resp *protocol.Response) error {
	data, err := protocol.EncodeResponse(resp)
	if err != nil {
		// Keep the request id so the host can still correlate the failure.
		fallback := protocol.NewErrorResponse(resp.ID, protocol.NewInternalError("Internal error: "+err.Error()))
		if data, err = protocol.EncodeResponse(fallback); err != nil {
			return err
		}
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return w.Flush()
}
