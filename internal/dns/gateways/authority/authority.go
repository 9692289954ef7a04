// Package authority answers lookups for a single zone, either from the
// compiled records of a primary zone or by forwarding to upstream resolvers.
package authority

import (
	"context"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

// Authority answers name/type lookups for the names under Origin.
// Implementations are immutable after construction and safe for concurrent use.
type Authority interface {
	Origin() string
	ZoneType() domain.ZoneType
	Lookup(ctx context.Context, name string, qtype uint16) (Result, error)
}

// Result carries the sections of an answer and its response code.
type Result struct {
	Rcode         int
	Answer        []dns.RR
	Ns            []dns.RR
	Extra         []dns.RR
	Authoritative bool
}

// refused is returned for names an authority is not responsible for.
func refused() Result {
	return Result{Rcode: dns.RcodeRefused}
}
