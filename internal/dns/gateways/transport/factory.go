package transport

import (
	"fmt"

	"github.com/haukened/simple-dns/internal/dns/common/log"
	"github.com/haukened/simple-dns/internal/dns/services/resolver"
)

// networks lists the sockets each supported transport binds.
var networks = map[TransportType][]string{
	TransportDNS: {"udp", "tcp"},
	TransportUDP: {"udp"},
	TransportTCP: {"tcp"},
}

// NewTransport creates a new transport instance based on the specified type.
func NewTransport(transportType TransportType, addr string, logger log.Logger) (resolver.ServerTransport, error) {
	if !IsTransportSupported(transportType) {
		return nil, unsupported(transportType)
	}
	return NewServer(addr, networks[transportType], logger), nil
}

func unsupported(transportType TransportType) error {
	switch transportType {
	case TransportDoH:
		return fmt.Errorf("DNS over HTTPS transport not yet implemented")
	case TransportDoT:
		return fmt.Errorf("DNS over TLS transport not yet implemented")
	case TransportDoQ:
		return fmt.Errorf("DNS over QUIC transport not yet implemented")
	default:
		return fmt.Errorf("unsupported transport type: %s", transportType)
	}
}

// GetSupportedTransports returns a list of currently supported transport types.
func GetSupportedTransports() []TransportType {
	return []TransportType{
		TransportDNS,
		TransportUDP,
		TransportTCP,
	}
}

// IsTransportSupported checks if a given transport type is currently supported.
func IsTransportSupported(transportType TransportType) bool {
	for _, t := range GetSupportedTransports() {
		if t == transportType {
			return true
		}
	}
	return false
}
