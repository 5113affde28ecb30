package utils

import (
	"context"
	"net"
)

// Listen opens a stream listener. With reusePort set, SO_REUSEPORT lets
// several server processes bind the same address and share its connections,
// so a new server can start before the old one stops.
func Listen(network, addr string, reusePort bool) (net.Listener, error) {
	var lc net.ListenConfig
	if reusePort {
		lc.Control = reusePortControl
	}
	return lc.Listen(context.Background(), network, addr)
}
