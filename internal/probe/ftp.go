package probe

import (
	"context"
	"net"

	"github.com/jlaffaye/ftp"
)

// FTPConn is the part of an FTP control connection the probe uses
type FTPConn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	Quit() error
}

// FTPDialer opens a plaintext FTP control connection to addr
type FTPDialer func(ctx context.Context, addr string) (FTPConn, error)

// DialFTP dials a real server with jlaffaye/ftp. When ctx has a deadline the
// control socket carries it too, so no read outlives the probe.
func DialFTP(ctx context.Context, addr string) (FTPConn, error) {
	opts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if deadline, ok := ctx.Deadline(); ok {
		opts = append(opts, ftp.DialWithDialFunc(func(network, address string) (net.Conn, error) {
			var dialer net.Dialer
			conn, err := dialer.DialContext(ctx, network, address)
			if err != nil {
				return nil, err
			}
			_ = conn.SetDeadline(deadline)
			return conn, nil
		}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (p *Prober) probeFTP(ctx context.Context, d *Descriptor) Result {
	dialed := make(chan FTPConn, 1)
	done := make(chan Result, 1)
	go func() {
		done <- p.ftpSession(ctx, d, dialed)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		// Quit closes the socket, which unblocks a session stuck in Login or ChangeDir
		go func() {
			select {
			case conn := <-dialed:
				_ = conn.Quit()
			case <-done:
			}
		}()
		return timedOut(ctx)
	}
}

// ftpSession logs in and changes into each configured path in order.
// The connection is handed to dialed before login and closed on every return.
func (p *Prober) ftpSession(ctx context.Context, d *Descriptor, dialed chan<- FTPConn) Result {
	conn, err := p.dialFTP(ctx, d.addr())
	if err != nil {
		return failure(err)
	}
	dialed <- conn
	defer func() {
		_ = conn.Quit()
	}()

	if err := conn.Login(d.Account, d.Password); err != nil {
		return failure(err)
	}

	for _, path := range d.paths() {
		if err := conn.ChangeDir(path); err != nil {
			return failure(err)
		}
	}

	return success()
}
