package manager

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	s := NewStatic(true)

	var got []bool
	unsubscribe := s.Subscribe(func(online bool) { got = append(got, online) })

	s.Set(true)
	s.Set(false)
	s.Set(false)
	s.Set(true)

	assert.Equal(t, []bool{true, false, true}, got)
	assert.Equal(t, 1, s.Subscribers())

	unsubscribe()
	s.Set(false)
	assert.Len(t, got, 3)
	assert.Zero(t, s.Subscribers())
}

func TestProbe_ReportsTransitions(t *testing.T) {
	var up atomic.Bool
	up.Store(true)

	p := NewProbe("example.test:443", testLogger())
	p.Interval = 5 * time.Millisecond
	p.Timeout = 50 * time.Millisecond
	p.Dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		if !up.Load() {
			return nil, errors.New("unreachable")
		}
		client, server := net.Pipe()
		_ = server.Close()
		return client, nil
	}

	values := make(chan bool, 16)
	unsubscribe := p.Subscribe(func(online bool) { values <- online })
	defer unsubscribe()

	next := func() bool {
		select {
		case v := <-values:
			return v
		case <-time.After(2 * time.Second):
			require.FailNow(t, "no reachability update")
			return false
		}
	}

	assert.True(t, next())

	up.Store(false)
	assert.False(t, next())

	up.Store(true)
	assert.True(t, next())
}

func TestProbe_UnsubscribeStops(t *testing.T) {
	var calls atomic.Int32

	p := NewProbe("example.test:80", testLogger())
	p.Interval = time.Millisecond
	p.Dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		calls.Add(1)
		return nil, errors.New("unreachable")
	}

	unsubscribe := p.Subscribe(func(bool) {})
	time.Sleep(10 * time.Millisecond)
	unsubscribe()
	unsubscribe()

	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestHostPort(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "https default", url: "https://sync.example.com", want: "sync.example.com:443"},
		{name: "http default", url: "http://localhost/api", want: "localhost:80"},
		{name: "explicit port", url: "http://127.0.0.1:8080", want: "127.0.0.1:8080"},
		{name: "ipv6", url: "http://[::1]:9000", want: "[::1]:9000"},
		{name: "no host", url: "/relative", wantErr: true},
		{name: "unknown scheme", url: "ftp://files.example.com", wantErr: true},
		{name: "malformed", url: "http://%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HostPort(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
