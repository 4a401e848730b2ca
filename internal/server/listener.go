package server

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"
)

// portAttempts is how many consecutive ports are tried without strictPort.
const portAttempts = 10

// Listen binds host:port. When the port is taken, strict fails with
// [ErrPortInUse]; otherwise the following ports are tried.
func Listen(host string, port int, strict bool) (net.Listener, error) {
	attempts := portAttempts
	if strict || port == 0 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port+i))
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("listen on %s: %w", addr, err)
		}
		if strict {
			return nil, fmt.Errorf("%w: %s", ErrPortInUse, addr)
		}
	}
	return nil, fmt.Errorf("%w: %d-%d", ErrNoFreePort, port, port+attempts-1)
}
