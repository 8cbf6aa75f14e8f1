package probe

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"
)

// MessageTimeout is reported when the caller's context ends before the probe resolves
const MessageTimeout = "连接超时"

// SFTPSession is the part of an SFTP channel the probe uses
type SFTPSession interface {
	ReadDir(path string) ([]os.FileInfo, error)
	Close() error
}

// SSHConn is an authenticated SSH connection that can open an SFTP channel
type SSHConn interface {
	OpenSFTP() (SFTPSession, error)
	Close() error
}

// SSHDialer connects and authenticates. Returning without error is the "ready" event.
type SSHDialer func(ctx context.Context, addr string, cfg *ssh.ClientConfig) (SSHConn, error)

type sshClient struct {
	*ssh.Client
}

func (c sshClient) OpenSFTP() (SFTPSession, error) {
	session, err := sftp.NewClient(c.Client)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// DialSSH dials a real server. The handshake is bounded by the context deadline.
func DialSSH(ctx context.Context, addr string, cfg *ssh.ClientConfig) (SSHConn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})

	return sshClient{ssh.NewClient(c, chans, reqs)}, nil
}

// sshEvent is the single outcome of a connect attempt
type sshEvent struct {
	conn SSHConn
	err  error
}

func (p *Prober) probeSFTP(ctx context.Context, d *Descriptor) Result {
	cfg := &ssh.ClientConfig{
		User: d.Account,
		Auth: []ssh.AuthMethod{ssh.Password(d.Password)},
		// NDS hosts are configured by address only; there is no known_hosts to check against
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	events := make(chan sshEvent, 1)
	go func() {
		conn, err := p.dialSSH(ctx, d.addr(), cfg)
		events <- sshEvent{conn: conn, err: err}
	}()

	select {
	case <-ctx.Done():
		// A connection that becomes ready after we gave up still has to be released
		go func() {
			if ev := <-events; ev.conn != nil {
				_ = ev.conn.Close()
			}
		}()
		return timedOut(ctx)

	case ev := <-events:
		if ev.err != nil {
			return failure(ev.err)
		}
		defer func() {
			_ = ev.conn.Close()
		}()
		return p.checkSFTPPaths(ctx, ev.conn, d.paths())
	}
}

// checkSFTPPaths opens the SFTP channel and lists every path concurrently.
// The first listing error decides the result.
func (p *Prober) checkSFTPPaths(ctx context.Context, conn SSHConn, paths []string) Result {
	session, err := conn.OpenSFTP()
	if err != nil {
		return failure(err)
	}
	defer func() {
		_ = session.Close()
	}()

	if len(paths) == 0 {
		return success()
	}

	var g errgroup.Group
	for _, path := range paths {
		g.Go(func() error {
			_, err := session.ReadDir(path)
			return err
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	// Closing the session and connection on the way out unblocks any listing still running
	select {
	case err := <-done:
		if err != nil {
			return failure(err)
		}
		return success()
	case <-ctx.Done():
		return timedOut(ctx)
	}
}

func timedOut(ctx context.Context) Result {
	if ctx.Err() == context.DeadlineExceeded {
		return Result{Message: MessageTimeout}
	}
	return failure(ctx.Err())
}
