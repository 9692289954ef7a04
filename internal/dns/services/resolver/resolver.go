// Package resolver turns DNS requests into replies by routing each question to
// the authority that owns its name.
package resolver

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/common/clock"
	"github.com/haukened/simple-dns/internal/dns/common/log"
	"github.com/haukened/simple-dns/internal/dns/domain"
)

var errNoTransport = errors.New("resolver has no transport")

type Resolver struct {
	catalog   Router
	clock     clock.Clock
	logger    log.Logger
	transport ServerTransport
}

type ResolverOptions struct {
	Catalog   Router
	Clock     clock.Clock
	Logger    log.Logger
	Transport ServerTransport
}

func NewResolver(opts ResolverOptions) *Resolver {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	return &Resolver{
		catalog:   opts.Catalog,
		clock:     opts.Clock,
		logger:    opts.Logger,
		transport: opts.Transport,
	}
}

// Start begins serving requests on the configured transport.
func (r *Resolver) Start(ctx context.Context) error {
	if r.transport == nil {
		return errNoTransport
	}
	return r.transport.Start(ctx, r)
}

// Stop shuts the transport down.
func (r *Resolver) Stop() error {
	if r.transport == nil {
		return errNoTransport
	}
	return r.transport.Stop()
}

// HandleRequest answers a single request.
//
// Requests without exactly one question get FORMERR, opcodes other than QUERY
// get NOTIMP, classes other than IN and zone transfers are refused. Lookup
// failures become SERVFAIL.
func (r *Resolver) HandleRequest(ctx context.Context, req *dns.Msg, clientAddr net.Addr) *dns.Msg {
	start := r.clock.Now()
	resp := new(dns.Msg)

	if req == nil {
		resp.Rcode = dns.RcodeFormatError
		return resp
	}
	resp.SetReply(req)
	if opt := req.IsEdns0(); opt != nil {
		resp.SetEdns0(opt.UDPSize(), false)
	}

	switch {
	case req.Response:
		resp.Rcode = dns.RcodeFormatError
		return resp
	case req.Opcode != dns.OpcodeQuery:
		resp.Rcode = dns.RcodeNotImplemented
		return resp
	case len(req.Question) != 1:
		resp.Rcode = dns.RcodeFormatError
		return resp
	}

	q := req.Question[0]
	fields := map[string]any{
		"name":  q.Name,
		"type":  domain.RRType(q.Qtype).String(),
		"class": dns.ClassToString[q.Qclass],
	}
	if clientAddr != nil {
		fields["client"] = clientAddr.String()
	}

	if q.Qclass != dns.ClassINET || q.Qtype == dns.TypeAXFR || q.Qtype == dns.TypeIXFR {
		resp.Rcode = dns.RcodeRefused
		r.logResult(fields, resp, start)
		return resp
	}

	auth, ok := r.catalog.Find(q.Name)
	if !ok {
		resp.Rcode = dns.RcodeRefused
		r.logResult(fields, resp, start)
		return resp
	}
	fields["zone"] = auth.Origin()

	res, err := auth.Lookup(ctx, q.Name, q.Qtype)
	if err != nil {
		fields["error"] = err
		fields["duration"] = clock.Since(r.clock, start)
		r.logger.Error(fields, "lookup failed")
		resp.Rcode = dns.RcodeServerFailure
		return resp
	}

	resp.Rcode = res.Rcode
	resp.Authoritative = res.Authoritative
	resp.RecursionAvailable = auth.ZoneType() == domain.ZoneTypeForward
	resp.Answer = append(resp.Answer, res.Answer...)
	resp.Ns = append(resp.Ns, res.Ns...)
	resp.Extra = append(append([]dns.RR(nil), res.Extra...), resp.Extra...)

	r.logResult(fields, resp, start)
	return resp
}

func (r *Resolver) logResult(fields map[string]any, resp *dns.Msg, start time.Time) {
	fields["rcode"] = dns.RcodeToString[resp.Rcode]
	fields["answers"] = len(resp.Answer)
	fields["duration"] = clock.Since(r.clock, start)
	r.logger.Debug(fields, "query answered")
}
