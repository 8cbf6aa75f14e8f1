// probe.go
//
// Management-plane data service for the MParser collection fleet
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of mparser-center.
// mparser-center is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// mparser-center is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with mparser-center.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/localnerve/mparser-center/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	MessageConnected     = "连接成功"
	MessageInvalidConfig = "无效的配置"
)

// Descriptor is what a probe needs to know about an NDS server
type Descriptor struct {
	Protocol string
	Address  string
	Port     int
	Account  string
	Password string
	MROPath  string
	MDTPath  string
}

// Result is the outcome of a single probe. Failures are results, not errors.
type Result struct {
	IsConnected bool   `json:"isConnected"`
	Message     string `json:"message"`
}

// FromNDS builds a descriptor from a stored NDS row
func FromNDS(nds *models.NDSServer) *Descriptor {
	if nds == nil {
		return nil
	}
	return &Descriptor{
		Protocol: nds.Protocol,
		Address:  nds.Address,
		Port:     nds.Port,
		Account:  nds.Account,
		Password: nds.Password,
		MROPath:  nds.MROPath,
		MDTPath:  nds.MDTPath,
	}
}

func (d *Descriptor) valid() bool {
	return d != nil && d.Address != "" && d.Port > 0 && d.Account != "" && d.Password != ""
}

func (d *Descriptor) addr() string {
	return net.JoinHostPort(d.Address, strconv.Itoa(d.Port))
}

// paths returns the configured remote paths, empty ones skipped
func (d *Descriptor) paths() []string {
	paths := make([]string, 0, 2)
	for _, p := range []string{d.MROPath, d.MDTPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Option configures a Prober
type Option func(*Prober)

// WithFTPDialer replaces the FTP dialer, mostly for tests
func WithFTPDialer(dial FTPDialer) Option {
	return func(p *Prober) { p.dialFTP = dial }
}

// WithSSHDialer replaces the SSH dialer, mostly for tests
func WithSSHDialer(dial SSHDialer) Option {
	return func(p *Prober) { p.dialSSH = dial }
}

// WithLogger sets the logger used for failed probes
func WithLogger(log *logrus.Logger) Option {
	return func(p *Prober) { p.log = log }
}

// WithRegisterer registers the outcome counter with reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(p *Prober) { p.registerer = reg }
}

// Prober checks that an NDS server accepts the configured credentials and
// that its configured paths are reachable. It performs a single attempt and
// never retries.
type Prober struct {
	dialFTP    FTPDialer
	dialSSH    SSHDialer
	log        *logrus.Logger
	registerer prometheus.Registerer
	outcomes   *prometheus.CounterVec
}

// New creates a Prober that dials real FTP and SSH servers unless overridden
func New(opts ...Option) *Prober {
	p := &Prober{
		dialFTP: DialFTP,
		dialSSH: DialSSH,
		log:     logrus.StandardLogger(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mparser_center",
			Name:      "nds_probes_total",
			Help:      "NDS connectivity probes by protocol and outcome.",
		}, []string{"protocol", "outcome"}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registerer != nil {
		if err := p.registerer.Register(p.outcomes); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				p.outcomes = are.ExistingCollector.(*prometheus.CounterVec)
			}
		}
	}
	return p
}

// Outcomes exposes the probe counter
func (p *Prober) Outcomes() *prometheus.CounterVec {
	return p.outcomes
}

// Probe runs one connectivity check. The context bounds the whole probe;
// when it ends first the probe resolves as failed and the connection is
// released in the background.
func (p *Prober) Probe(ctx context.Context, d *Descriptor) Result {
	if !d.valid() {
		return Result{Message: MessageInvalidConfig}
	}

	protocol := strings.ToUpper(d.Protocol)
	var res Result
	switch protocol {
	case models.ProtocolFTP:
		res = p.probeFTP(ctx, d)
	case models.ProtocolSFTP:
		res = p.probeSFTP(ctx, d)
	default:
		return Result{Message: fmt.Sprintf("不支持的连接类型: %s", d.Protocol)}
	}

	outcome := "connected"
	if !res.IsConnected {
		outcome = "failed"
		p.log.WithFields(logrus.Fields{
			"protocol": protocol,
			"address":  d.addr(),
		}).Warnf("NDS probe failed: %s", res.Message)
	}
	p.outcomes.WithLabelValues(protocol, outcome).Inc()

	return res
}

func success() Result {
	return Result{IsConnected: true, Message: MessageConnected}
}

func failure(err error) Result {
	return Result{Message: err.Error()}
}
