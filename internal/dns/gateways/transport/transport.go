// Package transport serves DNS over the network. Requests are decoded by
// miekg/dns and handed to a resolver.DNSResponder; its reply is written back
// on the same connection.
package transport

// TransportType represents the different types of DNS transport protocols supported.
type TransportType string

const (
	// TransportDNS serves plain DNS on both UDP and TCP at the same address.
	TransportDNS TransportType = "dns"

	// TransportUDP represents standard DNS over UDP (RFC 1035)
	TransportUDP TransportType = "udp"

	// TransportTCP represents standard DNS over TCP (RFC 7766)
	TransportTCP TransportType = "tcp"

	// TransportDoH represents DNS over HTTPS (RFC 8484) - future implementation
	TransportDoH TransportType = "doh"

	// TransportDoT represents DNS over TLS (RFC 7858) - future implementation
	TransportDoT TransportType = "dot"

	// TransportDoQ represents DNS over QUIC (RFC 9250) - future implementation
	TransportDoQ TransportType = "doq"
)
