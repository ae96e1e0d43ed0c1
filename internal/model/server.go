package model

import (
	"context"
	"net"
)

// SecurityLayer opens listeners for the HTTP and gRPC servers.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running listener started by main.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
