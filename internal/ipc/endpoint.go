package ipc

import (
	"fmt"
	"net"
	"strings"

	"github.com/example/appmenu/internal/config"
)

// Endpoint describes where the front-end bridge listens.
type Endpoint struct {
	Network string
	Address string
}

// NewEndpoint returns a TCP endpoint for addr, falling back to
// config.DefaultBridgeAddr.
func NewEndpoint(addr string) Endpoint {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = config.DefaultBridgeAddr
	}
	return Endpoint{Network: "tcp", Address: addr}
}

// Listen binds to the configured endpoint.
func (e Endpoint) Listen() (net.Listener, error) {
	return net.Listen(e.Network, e.Address)
}

// URL is the base HTTP URL served on the endpoint. Windows resolve relative
// content against it unless window.base_url is set.
func (e Endpoint) URL() string {
	return "http://" + e.Address
}

// String provides a readable representation for logs.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s", e.Network, e.Address)
}
