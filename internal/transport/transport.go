// Package transport performs the datagram exchange with the remote
// tuning service. One send, one receive, a hard deadline, and on any
// failure a silent hand-off to the local engine: the bridge never sees a
// transport error, only a response and where it came from.
package transport

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	"github.com/arvela/motion-bridge/internal/tuning"
	"github.com/arvela/motion-bridge/internal/wire"
)

// #region source

// Source reports which engine produced a response.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// #endregion source

// #region client

// DefaultTimeout bounds one remote exchange when the context carries no
// earlier deadline.
const DefaultTimeout = 100 * time.Millisecond

var errNoEndpoint = errors.New("transport: no endpoint established")

// Client holds the connected UDP socket to the tuning service.
type Client struct {
	conn    net.Conn
	timeout time.Duration
}

// Dial resolves the service endpoint. A failed dial is not fatal: the
// returned client answers every call from the local engine.
func Dial(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	conn, err := net.Dial("udp", addr)
	if err != nil {
		log.Printf("tuning service unreachable at %s, running local-only: %v", addr, err)
		return &Client{timeout: timeout}
	}
	return &Client{conn: conn, timeout: timeout}
}

// Close releases the socket. Safe on a local-only client.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion client

// #region call

// Call attempts exactly one remote exchange and degrades to the local
// engine on any failure: no endpoint, oversized request, send error,
// receive timeout, or an undecodable reply. No retries.
func (c *Client) Call(ctx context.Context, req tuning.Request) (tuning.Response, Source) {
	resp, err := c.exchange(ctx, req)
	if err != nil {
		return tuning.ComputeLocally(req), SourceLocal
	}
	return resp, SourceRemote
}

func (c *Client) exchange(ctx context.Context, req tuning.Request) (tuning.Response, error) {
	if c.conn == nil {
		return tuning.Response{}, errNoEndpoint
	}

	payload, err := wire.EncodeRequest(req)
	if err != nil {
		return tuning.Response{}, err
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return tuning.Response{}, err
	}

	if _, err := c.conn.Write(payload); err != nil {
		return tuning.Response{}, err
	}

	buf := make([]byte, wire.MaxResponseBytes)
	n, err := c.conn.Read(buf)
	if err != nil {
		return tuning.Response{}, err
	}
	return wire.DecodeResponse(buf[:n])
}

// #endregion call
