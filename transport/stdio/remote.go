package stdio

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/ssh"
	"github.com/viant/scy/cred/secret"
)

// remoteProcess launches the command on c.host over SSH using gosh's ssh
// runner. It exposes a single combined output stream via runner.Listener;
// stderr is not separable through this primitive, so lines on it are still
// parsed as NDJSON on the assumption the remote server does not interleave
// stray stderr output with its replies (see DESIGN.md: known limitation of
// the remote path only).
type remoteProcess struct {
	client runner.Runner
}

func (c *Client) ensureSSHConfig(ctx context.Context) error {
	if c.sshConfig != nil || c.host == "" {
		return nil
	}
	if c.secret == "" {
		return fmt.Errorf("sshConfig is required but not provided for host: %s", c.host)
	}
	secrets := secret.New()
	cred, err := secrets.GetCredentials(ctx, string(c.secret))
	if err != nil {
		return fmt.Errorf("failed to resolve ssh credentials: %w", err)
	}
	cfg, err := cred.SSH.Config(ctx)
	if err != nil {
		return fmt.Errorf("failed to build ssh config: %w", err)
	}
	c.sshConfig = cfg
	return nil
}

func (c *Client) startRemote(ctx context.Context, onLine func(line []byte)) (*remoteProcess, error) {
	if err := c.ensureSSHConfig(ctx); err != nil {
		return nil, err
	}
	client := ssh.New(c.host, c.sshConfig, runner.AsPipeline())
	rp := &remoteProcess{client: client}

	cmd := c.command
	if len(c.args) > 0 {
		cmd = fmt.Sprintf("%s %s", c.command, strings.Join(c.args, " "))
	}
	go func() {
		_, _, err := client.Run(ctx, cmd,
			runner.WithEnvironment(c.env),
			runner.WithListener(lineAccumulator(onLine)),
		)
		if err != nil {
			c.onChildExit(err)
			return
		}
		c.onChildExit(nil)
	}()
	return rp, nil
}

func (r *remoteProcess) send(ctx context.Context, data []byte) error {
	_, err := r.client.Send(ctx, data)
	return err
}

func (r *remoteProcess) close() error {
	return r.client.Close()
}

// lineAccumulator adapts gosh's partial-chunk runner.Listener callback into
// complete-line delivery.
func lineAccumulator(onLine func(line []byte)) runner.Listener {
	var buf []byte
	return func(chunk string, hasMore bool) {
		buf = append(buf, chunk...)
		for {
			idx := indexByte(buf, '\n')
			if idx < 0 {
				break
			}
			line := buf[:idx]
			buf = buf[idx+1:]
			if len(line) > 0 {
				cp := make([]byte, len(line))
				copy(cp, line)
				onLine(cp)
			}
		}
	}
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
