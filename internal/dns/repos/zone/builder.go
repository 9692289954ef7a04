package zone

import (
	"github.com/haukened/simple-dns/internal/dns/common/rrdata"
	"github.com/haukened/simple-dns/internal/dns/common/utils"
	"github.com/haukened/simple-dns/internal/dns/domain"
)

// Options tune zone compilation. The zero value uses rrdata.DefaultSOA and
// domain.DefaultTTL.
type Options struct {
	SOA domain.SOAData
	TTL uint32
}

func (o Options) soa() domain.SOAData {
	if o.SOA == (domain.SOAData{}) {
		return rrdata.DefaultSOA
	}
	return o.SOA
}

func (o Options) ttl() uint32 {
	if o.TTL == 0 {
		return domain.DefaultTTL
	}
	return o.TTL
}

// Build compiles the records configured for origin into a primary zone.
//
// Every owner name is resolved against origin and every value compiled; entries
// sharing an (owner, type) key are merged into one record set. An SOA is then
// synthesized at the apex. Any failure aborts the zone and is returned as a
// *domain.ZoneConstructionError.
func Build(origin string, records []domain.RecordInfo, opts Options) (*domain.Zone, error) {
	apex, err := utils.ResolveName(domain.ApexName, origin)
	if err != nil {
		return nil, &domain.ZoneConstructionError{Zone: origin, Err: err}
	}

	ttl := opts.ttl()
	sets := make(map[domain.RRKey]*domain.RecordSet)

	for _, info := range records {
		if err := addRecords(sets, apex, info, ttl); err != nil {
			return nil, &domain.ZoneConstructionError{Zone: apex, Owner: info.Name, Type: info.Type, Err: err}
		}
	}

	soa, err := rrdata.NewSOAData(opts.soa())
	if err != nil {
		return nil, &domain.ZoneConstructionError{Zone: apex, Err: err}
	}
	soaSet := domain.NewRecordSet(apex, domain.RRTypeSOA, ttl)
	if _, err := soaSet.Insert(domain.ResourceRecord{Name: apex, TTL: ttl, Data: soa}); err != nil {
		return nil, &domain.ZoneConstructionError{Zone: apex, Err: err}
	}
	sets[soaSet.Key()] = soaSet

	zone, err := domain.NewZone(apex, domain.ZoneTypePrimary, sets)
	if err != nil {
		return nil, &domain.ZoneConstructionError{Zone: apex, Err: err}
	}
	return zone, nil
}

// addRecords compiles one configured entry and merges it into sets.
func addRecords(sets map[domain.RRKey]*domain.RecordSet, apex string, info domain.RecordInfo, ttl uint32) error {
	if !rrdata.Supported(info.Type) {
		return &domain.UnsupportedRecordTypeError{Type: info.Type.String()}
	}

	owner, err := utils.ResolveName(info.Name, apex)
	if err != nil {
		return err
	}

	key := domain.RRKey{Name: owner, Type: info.Type}
	set, ok := sets[key]
	if !ok {
		set = domain.NewRecordSet(owner, info.Type, ttl)
	}

	for _, value := range info.Records {
		data, err := rrdata.Compile(info.Type, value, apex)
		if err != nil {
			return err
		}
		if _, err := set.Insert(domain.ResourceRecord{Name: owner, TTL: ttl, Data: data}); err != nil {
			return err
		}
	}

	sets[key] = set
	return nil
}
