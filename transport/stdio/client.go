// Package stdio implements the child-process MCP transport: one NDJSON
// object per line on both directions over the child's stdin/stdout, with
// stderr forwarded to the logger at INFO. A local child is launched
// directly through os/exec so stdout and stderr can be read by two
// independent background loops; an optional remote child (WithHost) is
// launched through github.com/viant/gosh's ssh runner instead, which
// multiplexes both streams onto a single callback.
package stdio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arrowmcp/mcp-client-go/transport"
	"github.com/arrowmcp/mcp-client-go/transport/base"
	"github.com/viant/scy/cred/secret"
	cssh "golang.org/x/crypto/ssh"
)

// Client is the stdio transport. It satisfies transport.Transport.
type Client struct {
	command string
	args    []string
	env     map[string]string

	host      string
	secret    secret.Resource
	sshConfig *cssh.ClientConfig

	requestTimeout time.Duration
	handler        transport.Handler
	logger         transport.Logger
	listener       func(data []byte, outbound bool)

	base *base.Base

	mu     sync.Mutex
	local  *localProcess
	remote *remoteProcess
	ctx    context.Context
	cancel context.CancelFunc
	running atomic.Bool
}

// New launches command and returns a ready-to-use Client. The child is
// started synchronously; its reader loops run in the background for the
// lifetime of the transport.
func New(ctx context.Context, command string, options ...Option) (*Client, error) {
	c := &Client{
		command:        command,
		requestTimeout: 15 * time.Minute,
		logger:         transport.DefaultLogger,
	}
	for _, opt := range options {
		opt(c)
	}
	c.base = base.NewBase((*sender)(c), c.handler, c.logger, c.requestTimeout)
	c.base.Listener = c.listener
	return c, c.Start(ctx)
}

// Start spawns (or respawns) the child process and its reader loops.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	runCtx, cancel := context.WithCancel(ctx)
	c.ctx = runCtx
	c.cancel = cancel
	c.running.Store(true)
	return c.spawn()
}

// spawn must be called with c.mu held.
func (c *Client) spawn() error {
	if c.host != "" {
		rp, err := c.startRemote(c.ctx, c.onLine)
		if err != nil {
			return err
		}
		c.remote = rp
		c.local = nil
		return nil
	}

	lp, err := startLocalProcess(c.ctx, c.command, c.args, c.env)
	if err != nil {
		return err
	}
	c.local = lp
	c.remote = nil

	// cmd.Wait() must not run until both pipe readers have seen EOF, so the
	// reaper goroutine waits on this group before calling it; calling Wait
	// earlier races the still-reading pipes and leaking it (never calling
	// Wait at all) leaves the exited child a zombie.
	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		scanLines(lp.stdout, c.onLine, func() {})
	}()
	go func() {
		defer readers.Done()
		scanLines(lp.stderr, func(line []byte) {
			c.logger.Infof("%s", string(line))
		}, func() {})
	}()
	go func() {
		readers.Wait()
		c.onChildExit(lp.wait())
	}()
	return nil
}

func (c *Client) onLine(line []byte) {
	c.base.HandleMessage(c.ctx, line)
}

// onChildExit is invoked when the child/stream ends: by the local reaper
// goroutine once both pipe readers are done, or by the remote run goroutine
// when the SSH command returns. If the
// session is still running, it waits one second and restarts the process
// transparently; in-flight callers are not replayed and will eventually
// time out.
func (c *Client) onChildExit(err error) {
	if !c.running.Load() {
		return
	}
	if err != nil {
		c.logger.Errorf("stdio child exited: %v", err)
	}
	time.Sleep(time.Second)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running.Load() {
		return
	}
	if respawnErr := c.spawn(); respawnErr != nil {
		c.logger.Errorf("failed to restart stdio child: %v", respawnErr)
	}
}

// sender adapts *Client to base.Sender, dispatching to whichever of
// local/remote is currently active.
type sender Client

func (s *sender) SendData(ctx context.Context, data []byte) error {
	c := (*Client)(s)
	c.mu.Lock()
	local, remote := c.local, c.remote
	c.mu.Unlock()
	switch {
	case local != nil:
		return local.send(data)
	case remote != nil:
		return remote.send(ctx, data)
	default:
		return fmt.Errorf("stdio transport is not started")
	}
}

// Send implements transport.Transport.
func (c *Client) Send(ctx context.Context, method string, params []byte, waitForResponse bool) (*transport.Result, error) {
	return c.base.Send(ctx, method, params, waitForResponse)
}

// Notify implements transport.Transport.
func (c *Client) Notify(ctx context.Context, method string, params []byte) error {
	return c.base.Notify(ctx, method, params)
}

// Reply implements transport.Transport.
func (c *Client) Reply(ctx context.Context, response *transport.Response) error {
	return c.base.Reply(ctx, response)
}

// Alive implements transport.Transport.
func (c *Client) Alive() bool {
	return c.running.Load()
}

// SetProtocolVersion implements transport.Transport. Stdio does not attach
// it to anything on the wire; it is recorded for symmetry/introspection.
func (c *Client) SetProtocolVersion(v string) { c.base.SetProtocolVersion(v) }

// Close stops the reader loops and kills the child process (or closes the
// remote runner), failing every still-pending request.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	c.running.Store(false)
	if c.cancel != nil {
		c.cancel()
	}
	local, remote := c.local, c.remote
	c.mu.Unlock()

	c.base.Pending().FailAll(transport.NewTransportError("transport closed", nil))

	if local != nil {
		local.kill()
	}
	if remote != nil {
		return remote.close()
	}
	return nil
}
