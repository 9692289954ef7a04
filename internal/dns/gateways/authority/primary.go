package authority

import (
	"context"
	"errors"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/common/utils"
	"github.com/haukened/simple-dns/internal/dns/domain"
)

// maxCNAMEHops bounds how many CNAMEs are followed inside a zone for one answer.
const maxCNAMEHops = 8

var errNotPrimary = errors.New("primary authority requires a primary zone")

// Primary answers from the records of a compiled primary zone.
type Primary struct {
	zone *domain.Zone
	// names holds every owner plus the empty non-terminals above it.
	names map[string]struct{}
}

// NewPrimary wraps a primary zone.
func NewPrimary(zone *domain.Zone) (*Primary, error) {
	if zone == nil || zone.Type() != domain.ZoneTypePrimary {
		return nil, errNotPrimary
	}
	origin := zone.Origin()
	names := make(map[string]struct{})
	for _, key := range zone.Keys() {
		for n := key.Name; ; n = utils.ParentName(n) {
			names[n] = struct{}{}
			if n == origin || n == "." {
				break
			}
		}
	}
	return &Primary{zone: zone, names: names}, nil
}

func (p *Primary) Origin() string            { return p.zone.Origin() }
func (p *Primary) ZoneType() domain.ZoneType { return domain.ZoneTypePrimary }

// Zone returns the underlying zone.
func (p *Primary) Zone() *domain.Zone { return p.zone }

// Lookup answers a question from the zone's records.
//
// Names outside the zone are refused. A CNAME at the name is returned and, when
// its target is inside the zone, followed. Wildcards synthesize records owned by
// the query name. Negative answers carry the zone SOA in the authority section.
func (p *Primary) Lookup(ctx context.Context, name string, qtype uint16) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	origin := p.zone.Origin()
	qname := dns.CanonicalName(name)
	if !domain.IsInZone(qname, origin) {
		return refused(), nil
	}

	res := Result{Rcode: dns.RcodeSuccess, Authoritative: true}
	qt := domain.RRType(qtype)
	seen := make(map[string]bool)

	for cur, hop := qname, 0; ; hop++ {
		seen[cur] = true
		sets, exists := p.match(cur)
		if !exists {
			res.Rcode = dns.RcodeNameError
			res.Ns = p.negativeSOA()
			return res, nil
		}

		if qt == domain.RRTypeANY {
			for _, set := range sets {
				res.Answer = append(res.Answer, setToRRs(set, cur)...)
			}
			return res, nil
		}

		if set, ok := findSet(sets, qt); ok {
			res.Answer = append(res.Answer, setToRRs(set, cur)...)
			return res, nil
		}

		cname, ok := findSet(sets, domain.RRTypeCNAME)
		if !ok {
			// NODATA
			res.Ns = p.negativeSOA()
			return res, nil
		}
		res.Answer = append(res.Answer, setToRRs(cname, cur)...)

		target, ok := cnameTarget(cname)
		if !ok || hop+1 >= maxCNAMEHops || seen[target] || !domain.IsInZone(target, origin) {
			return res, nil
		}
		cur = target
	}
}

// match returns the record sets answering for name, using a wildcard when the
// name itself does not exist. exists is false when the name does not exist.
func (p *Primary) match(name string) (sets []domain.RecordSet, exists bool) {
	if _, ok := p.names[name]; ok {
		return p.zone.RecordSetsAt(name), true
	}

	origin := p.zone.Origin()
	for parent := utils.ParentName(name); domain.IsInZone(parent, origin); parent = utils.ParentName(parent) {
		if wild := wildcardOf(parent); p.zone.HasName(wild) {
			return p.zone.RecordSetsAt(wild), true
		}
		// closest encloser without a wildcard
		if _, ok := p.names[parent]; ok {
			return nil, false
		}
	}
	return nil, false
}

// negativeSOA returns the SOA for a negative answer, its TTL capped by the SOA minimum.
func (p *Primary) negativeSOA() []dns.RR {
	soa, ok := p.zone.SOA()
	if !ok {
		return nil
	}
	if data, ok := soa.Data.(domain.SOAData); ok && data.Minimum < soa.TTL {
		soa.TTL = data.Minimum
	}
	rr := toRR(soa, p.zone.Origin())
	if rr == nil {
		return nil
	}
	return []dns.RR{rr}
}

func findSet(sets []domain.RecordSet, t domain.RRType) (domain.RecordSet, bool) {
	for _, set := range sets {
		if set.Type == t && set.Len() > 0 {
			return set, true
		}
	}
	return domain.RecordSet{}, false
}

func cnameTarget(set domain.RecordSet) (string, bool) {
	if set.Len() == 0 {
		return "", false
	}
	data, ok := set.Records[0].Data.(domain.CNAMEData)
	if !ok {
		return "", false
	}
	return data.Target, true
}

func wildcardOf(name string) string {
	if name == "." {
		return "*."
	}
	return "*." + name
}
