package authority

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/common/log"
	"github.com/haukened/simple-dns/internal/dns/common/utils"
	"github.com/haukened/simple-dns/internal/dns/domain"
)

// Error message constants for consistent error handling
const (
	errNoServersProvided = "no upstream DNS servers provided"
	errInvalidServer     = "invalid upstream server %q: %w"
	errZeroPort          = "invalid upstream server %q: port must be non-zero"
	errInvalidNet        = "unsupported upstream network %q"
	errServerFailed      = "server %s: %w"
	errAllServersFailed  = "all %d upstream servers failed"
	errQueryTimeout      = "query timeout after %v"
	errUpstreamRcode     = "upstream answered %s"
	errNoResponse        = "empty response"
)

// DefaultForwardServers is the upstream group used when none is configured:
// Google public DNS over IPv4 and IPv6.
var DefaultForwardServers = []string{
	"8.8.8.8:53",
	"8.8.4.4:53",
	"[2001:4860:4860::8888]:53",
	"[2001:4860:4860::8844]:53",
}

// Exchanger sends a DNS message to an upstream and waits for the reply.
// *dns.Client satisfies it.
type Exchanger interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, address string) (*dns.Msg, time.Duration, error)
}

// ForwardOptions defines the upstream resolver group of a Forward authority.
type ForwardOptions struct {
	// Servers are "ip:port" upstream addresses, tried in order. Empty means DefaultForwardServers.
	Servers []string
	// Timeout bounds a lookup when the caller's context has no deadline. Defaults to 5s.
	Timeout time.Duration
	// Net is "udp" (default) or "tcp".
	Net string
	// Parallel queries all servers at once and keeps the first answer.
	Parallel bool
	// options to inject for testing purposes
	Exchanger Exchanger
}

// Forward holds no records and sends every question to upstream recursive resolvers.
type Forward struct {
	origin   string
	servers  []string
	timeout  time.Duration
	parallel bool
	client   Exchanger
}

// NewForward validates the upstream configuration and builds a Forward
// authority for names under origin. Any failure is a *domain.ForwardSetupError.
func NewForward(ctx context.Context, origin string, opts ForwardOptions) (*Forward, error) {
	fail := func(err error) (*Forward, error) {
		return nil, &domain.ForwardSetupError{Origin: origin, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	fqOrigin, err := utils.CheckName(origin)
	if err != nil {
		return fail(err)
	}

	servers := opts.Servers
	if servers == nil {
		servers = DefaultForwardServers
	}
	if len(servers) == 0 {
		return fail(fmt.Errorf(errNoServersProvided))
	}
	for _, s := range servers {
		ap, err := netip.ParseAddrPort(s)
		if err != nil {
			return fail(fmt.Errorf(errInvalidServer, s, err))
		}
		if ap.Port() == 0 {
			return fail(fmt.Errorf(errZeroPort, s))
		}
	}

	switch opts.Net {
	case "":
		opts.Net = "udp"
	case "udp", "tcp":
	default:
		return fail(fmt.Errorf(errInvalidNet, opts.Net))
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Exchanger == nil {
		opts.Exchanger = &dns.Client{Net: opts.Net, Timeout: opts.Timeout}
	}

	return &Forward{
		origin:   fqOrigin,
		servers:  append([]string(nil), servers...),
		timeout:  opts.Timeout,
		parallel: opts.Parallel,
		client:   opts.Exchanger,
	}, nil
}

func (f *Forward) Origin() string            { return f.origin }
func (f *Forward) ZoneType() domain.ZoneType { return domain.ZoneTypeForward }

// Servers returns a copy of the upstream addresses.
func (f *Forward) Servers() []string { return append([]string(nil), f.servers...) }

// ensureContextDeadline ensures the context has a deadline, adding the default timeout if needed.
// Returns the context (potentially with added timeout) and a cancel function if one was created.
func (f *Forward) ensureContextDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, f.timeout)
	}
	return ctx, nil
}

// Lookup forwards the question upstream with recursion desired.
// Upstream answers are passed through and never marked authoritative.
func (f *Forward) Lookup(ctx context.Context, name string, qtype uint16) (Result, error) {
	qname := dns.CanonicalName(name)
	if !domain.IsInZone(qname, f.origin) {
		return refused(), nil
	}

	ctx, cancel := f.ensureContextDeadline(ctx)
	if cancel != nil {
		defer cancel()
	}

	query := new(dns.Msg)
	query.SetQuestion(qname, qtype)
	query.RecursionDesired = true

	var (
		resp *dns.Msg
		err  error
	)
	if f.parallel {
		resp, err = f.exchangeParallel(ctx, query)
	} else {
		resp, err = f.exchangeSerial(ctx, query)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		Rcode:  resp.Rcode,
		Answer: resp.Answer,
		Ns:     resp.Ns,
		Extra:  withoutOPT(resp.Extra),
	}, nil
}

// exchangeSerial tries each server in order until one answers.
func (f *Forward) exchangeSerial(ctx context.Context, query *dns.Msg) (*dns.Msg, error) {
	var lastErr error
	for _, server := range f.servers {
		resp, err := f.exchange(ctx, server, query)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf(errAllServersFailed+": %w", len(f.servers), lastErr)
}

// exchangeParallel queries every server at once and returns the first answer.
func (f *Forward) exchangeParallel(ctx context.Context, query *dns.Msg) (*dns.Msg, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	responseChan := make(chan *dns.Msg, 1)
	errorChan := make(chan error, len(f.servers))

	for _, server := range f.servers {
		go func(srv string) {
			resp, err := f.exchange(ctx, srv, query.Copy())
			if err != nil {
				errorChan <- err
				return
			}
			select {
			case responseChan <- resp:
			default:
				// another goroutine already answered
			}
		}(server)
	}

	var errs []error
	for i := 0; i < len(f.servers); i++ {
		select {
		case resp := <-responseChan:
			return resp, nil
		case err := <-errorChan:
			errs = append(errs, err)
		case <-ctx.Done():
			return nil, fmt.Errorf(errQueryTimeout, f.timeout)
		}
	}
	return nil, fmt.Errorf(errAllServersFailed+": %v", len(f.servers), errs)
}

// exchange sends query to one server. SERVFAIL and REFUSED replies count as failures
// so the next server gets a chance.
func (f *Forward) exchange(ctx context.Context, server string, query *dns.Msg) (*dns.Msg, error) {
	resp, _, err := f.client.ExchangeContext(ctx, query, server)
	if err == nil && resp == nil {
		err = fmt.Errorf(errNoResponse)
	}
	if err == nil && (resp.Rcode == dns.RcodeServerFailure || resp.Rcode == dns.RcodeRefused) {
		err = fmt.Errorf(errUpstreamRcode, dns.RcodeToString[resp.Rcode])
	}
	if err != nil {
		log.Debug(map[string]any{
			"server": server,
			"name":   query.Question[0].Name,
			"error":  err,
		}, "upstream exchange failed")
		return nil, fmt.Errorf(errServerFailed, server, err)
	}
	return resp, nil
}

func withoutOPT(rrs []dns.RR) []dns.RR {
	var out []dns.RR
	for _, rr := range rrs {
		if rr.Header().Rrtype == dns.TypeOPT {
			continue
		}
		out = append(out, rr)
	}
	return out
}
