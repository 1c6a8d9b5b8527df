package utils

import (
	"fmt"
	"net"
	"time"
)

// PingAddr checks if a host:port address (e.g. a Redis endpoint) is reachable
func PingAddr(addr string) error {
	conn, err := net.DialTimeout("tcp", addr, 1500*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()
	return nil
}
