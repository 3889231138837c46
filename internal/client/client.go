// Package client implements the request/reply peer (C12): a single-shot
// request with a per-call timeout, matching Client::sendMessage in the
// original, which opens a fresh ZMQ context and REQ socket for every
// call rather than keeping one connection alive.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-zeromq/zmq4"
)

// ErrTimeout is returned when the server does not reply within the
// configured timeout, matching the original's "drop the reply without
// cancelling server-side work" semantics: the caller simply gets nothing
// back.
var ErrTimeout = fmt.Errorf("client: request timed out")

// Client sends one request and waits for one reply over a REQ socket
// dialed fresh for every call.
type Client struct {
	addr    string
	port    int
	timeout time.Duration
}

// New returns a Client targeting addr:port, with a per-call timeout.
func New(addr string, port int, timeout time.Duration) *Client {
	return &Client{addr: addr, port: port, timeout: timeout}
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("tcp://%s:%d", c.addr, c.port)
}

// Send dials a fresh REQ socket, sends req, and waits up to the
// configured timeout for exactly one reply.
func (c *Client) Send(req []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	sock := zmq4.NewReq(ctx)
	defer sock.Close()

	if err := sock.Dial(c.endpoint()); err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", c.endpoint(), err)
	}

	if err := sock.Send(zmq4.NewMsg(req)); err != nil {
		return nil, fmt.Errorf("client: send: %w", err)
	}

	msg, err := sock.Recv()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("client: recv: %w", err)
	}

	return msg.Bytes(), nil
}
