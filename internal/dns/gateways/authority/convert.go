package authority

import (
	"net"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

// toRR converts a compiled record into its miekg/dns form, owned by owner.
// owner differs from rr.Name only for wildcard synthesis.
func toRR(rr domain.ResourceRecord, owner string) dns.RR {
	hdr := dns.RR_Header{
		Name:   owner,
		Rrtype: uint16(rr.Type()),
		Class:  dns.ClassINET,
		Ttl:    rr.TTL,
	}
	switch d := rr.Data.(type) {
	case domain.AData:
		return &dns.A{Hdr: hdr, A: net.IP(d.Addr.AsSlice())}
	case domain.AAAAData:
		return &dns.AAAA{Hdr: hdr, AAAA: net.IP(d.Addr.AsSlice())}
	case domain.CNAMEData:
		return &dns.CNAME{Hdr: hdr, Target: d.Target}
	case domain.SOAData:
		return &dns.SOA{
			Hdr:     hdr,
			Ns:      d.MName,
			Mbox:    d.RName,
			Serial:  d.Serial,
			Refresh: d.Refresh,
			Retry:   d.Retry,
			Expire:  d.Expire,
			Minttl:  d.Minimum,
		}
	default:
		return nil
	}
}

// setToRRs converts every record of set, keeping insertion order.
func setToRRs(set domain.RecordSet, owner string) []dns.RR {
	out := make([]dns.RR, 0, len(set.Records))
	for _, rr := range set.Records {
		if r := toRR(rr, owner); r != nil {
			out = append(out, r)
		}
	}
	return out
}
