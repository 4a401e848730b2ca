package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/frontkit/internal/logger"
)

func busyPort(t *testing.T) (net.Listener, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln, ln.Addr().(*net.TCPAddr).Port
}

func TestListen_StrictPortInUse(t *testing.T) {
	_, port := busyPort(t)

	_, err := Listen("127.0.0.1", port, true)
	assert.ErrorIs(t, err, ErrPortInUse)
}

func TestListen_FallsBackToNextPort(t *testing.T) {
	_, port := busyPort(t)

	ln, err := Listen("127.0.0.1", port, false)
	if err != nil {
		// the following ports may be taken by other processes on busy hosts
		assert.ErrorIs(t, err, ErrNoFreePort)
		return
	}
	defer ln.Close()

	got := ln.Addr().(*net.TCPAddr).Port
	assert.Greater(t, got, port)
	assert.LessOrEqual(t, got, port+portAttempts-1)
}

func TestListen_EphemeralPort(t *testing.T) {
	ln, err := Listen("127.0.0.1", 0, true)
	require.NoError(t, err)
	defer ln.Close()
	assert.NotZero(t, ln.Addr().(*net.TCPAddr).Port)
}

func TestResolveURLs(t *testing.T) {
	saved := interfaceAddrs
	t.Cleanup(func() { interfaceAddrs = saved })
	interfaceAddrs = func() ([]net.Addr, error) {
		return []net.Addr{
			&net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(8, 32)},
			&net.IPNet{IP: net.IPv4(192, 168, 1, 20), Mask: net.CIDRMask(24, 32)},
			&net.IPNet{IP: net.IPv4(169, 254, 3, 4), Mask: net.CIDRMask(16, 32)},
			&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
			&net.IPNet{IP: net.IPv4(10, 0, 0, 5), Mask: net.CIDRMask(8, 32)},
		}, nil
	}

	tests := []struct {
		name string
		host string
		base string
		want URLs
	}{
		{
			name: "wildcard host",
			host: "0.0.0.0",
			base: "/",
			want: URLs{
				Local:   "http://localhost:3000/",
				Network: []string{"http://192.168.1.20:3000/", "http://10.0.0.5:3000/"},
			},
		},
		{
			name: "specific host",
			host: "127.0.0.1",
			base: "/app/",
			want: URLs{Local: "http://127.0.0.1:3000/app/"},
		},
		{
			name: "empty base",
			host: "localhost",
			want: URLs{Local: "http://localhost:3000/"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURLs(tt.host, 3000, tt.base))
		})
	}
}

func TestServer_RunUntilCanceled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hello")
	})

	shutdownCalled := make(chan struct{})
	srv, err := NewServer("dev", handler, Config{Host: "127.0.0.1", Port: 0, StrictPort: true}, logger.Nop(),
		WithOnShutdown(func() { close(shutdownCalled) }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	resp, err := http.Get(srv.URLs().Local)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "hello", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-shutdownCalled:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook was not called")
	}
}

func TestNewServer_StrictPortInUse(t *testing.T) {
	_, port := busyPort(t)

	_, err := NewServer("preview", http.NotFoundHandler(), Config{Host: "127.0.0.1", Port: port, StrictPort: true}, logger.Nop())
	assert.ErrorIs(t, err, ErrPortInUse)
}

func TestServer_URLsUseBoundPort(t *testing.T) {
	srv, err := NewServer("dev", http.NotFoundHandler(), Config{Host: "127.0.0.1", Port: 0, StrictPort: true}, logger.Nop())
	require.NoError(t, err)
	defer srv.Shutdown()

	assert.NotEqual(t, "http://127.0.0.1:"+strconv.Itoa(0)+"/", srv.URLs().Local)
}
