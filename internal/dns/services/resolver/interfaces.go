package resolver

import (
	"context"
	"net"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/gateways/authority"
)

// Router selects the authority responsible for a query name.
// *catalog.Catalog satisfies it.
type Router interface {
	Find(qname string) (authority.Authority, bool)
}

type DNSResponder interface {
	// HandleRequest processes a DNS query and returns the reply to send.
	// The transport handles all network protocol details.
	HandleRequest(ctx context.Context, req *dns.Msg, clientAddr net.Addr) *dns.Msg
}

// ServerTransport defines the interface for DNS server transport implementations.
type ServerTransport interface {
	// Start begins listening for requests and handling them via the provided handler.
	Start(ctx context.Context, handler DNSResponder) error

	// Stop gracefully shuts down the transport, closing connections and cleaning up resources.
	Stop() error

	// Address returns the network address the transport is bound to.
	Address() string
}
