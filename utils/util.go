package utils

import (
	"fmt"
	"net"
	"strconv"
)

// Port returns the numeric port of a listen or listener address such as
// ":8081", "0.0.0.0:8081" or "[::]:8081".
func Port(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("port of %q: %w", addr, err)
	}
	return n, nil
}

// LocalURL is the browser URL for a server bound on addr. An address
// without a usable port is echoed back as is.
func LocalURL(addr string) string {
	n, err := Port(addr)
	if err != nil {
		return "http://" + addr
	}
	return fmt.Sprintf("http://localhost:%d", n)
}
