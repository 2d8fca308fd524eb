package manager

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"sync"
	"time"
)

// Reachability reports network availability. Subscribe delivers the current
// value right away and then every change.
type Reachability interface {
	Subscribe(fn func(online bool)) (unsubscribe func())
}

// Static is a Reachability driven by hand.
type Static struct {
	subs   map[uint64]func(bool)
	nextID uint64
	online bool
	mu     sync.Mutex
}

var _ Reachability = (*Static)(nil)

// NewStatic returns a Static reachability with the given initial value.
func NewStatic(online bool) *Static {
	return &Static{online: online, subs: make(map[uint64]func(bool))}
}

// Subscribe implements Reachability.
func (s *Static) Subscribe(fn func(online bool)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	online := s.online
	s.mu.Unlock()

	fn(online)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Set changes the value and notifies subscribers if it changed.
func (s *Static) Set(online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(online)
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Static) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// DialFunc opens a connection; net.Dialer.DialContext satisfies it.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Значения Probe по умолчанию
const (
	DefaultProbeInterval = 10 * time.Second
	DefaultProbeTimeout  = 3 * time.Second
)

// Probe considers the network online while a TCP connection to Address
// can be opened.
type Probe struct {
	Dial     DialFunc
	Logger   *slog.Logger
	Address  string
	Interval time.Duration
	Timeout  time.Duration
}

var _ Reachability = (*Probe)(nil)

// NewProbe creates a probe for host:port.
func NewProbe(address string, logger *slog.Logger) *Probe {
	d := &net.Dialer{}
	return &Probe{
		Address:  address,
		Interval: DefaultProbeInterval,
		Timeout:  DefaultProbeTimeout,
		Dial:     d.DialContext,
		Logger:   logger,
	}
}

// Subscribe probes immediately, then on every interval, and reports
// transitions only.
func (p *Probe) Subscribe(fn func(online bool)) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		last := p.check(ctx)
		fn(last)

		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				online := p.check(ctx)
				if ctx.Err() != nil {
					return
				}
				if online != last {
					p.Logger.Info("Network reachability changed", "address", p.Address, "online", online)
					last = online
					fn(online)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (p *Probe) check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	conn, err := p.Dial(ctx, "tcp", p.Address)
	if err != nil {
		p.Logger.Debug("Reachability probe failed", "address", p.Address, "error", err)
		return false
	}
	_ = conn.Close()
	return true
}

// HostPort extracts host:port from a URL, defaulting the port by scheme.
func HostPort(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			return "", fmt.Errorf("url %q has no port", rawURL)
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
