package zone

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

func TestBuild_ApexAddress(t *testing.T) {
	zone, err := Build("example.com.", []domain.RecordInfo{
		domain.NewRecordInfo("@", domain.RRTypeA, "1.2.3.4"),
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "example.com.", zone.Origin())
	assert.Equal(t, domain.ZoneTypePrimary, zone.Type())
	assert.Equal(t, 2, zone.Len())

	soa, ok := zone.SOA()
	require.True(t, ok)
	soaData, ok := soa.Data.(domain.SOAData)
	require.True(t, ok)
	assert.Equal(t, uint32(20), soaData.Serial)
	assert.Equal(t, "sns.dns.icann.org.", soaData.MName)
	assert.Equal(t, "noc.dns.icann.org.", soaData.RName)
	assert.Equal(t, uint32(7200), soaData.Refresh)
	assert.Equal(t, uint32(600), soaData.Retry)
	assert.Equal(t, uint32(3600000), soaData.Expire)
	assert.Equal(t, uint32(60), soaData.Minimum)
	assert.Equal(t, domain.DefaultTTL, soa.TTL)

	set, ok := zone.RecordSet("example.com.", domain.RRTypeA)
	require.True(t, ok)
	require.Len(t, set.Records, 1)
	assert.Equal(t, domain.AData{Addr: netip.MustParseAddr("1.2.3.4")}, set.Records[0].Data)
	assert.Equal(t, uint32(3600), set.Records[0].TTL)
}

func TestBuild_MergesSharedKey(t *testing.T) {
	zone, err := Build("example.com", []domain.RecordInfo{
		domain.NewRecordInfo("www", domain.RRTypeA, "10.0.0.1"),
		domain.NewRecordInfo("mail", domain.RRTypeA, "10.0.0.9"),
		domain.NewRecordInfo("www", domain.RRTypeA, "10.0.0.2", "10.0.0.1"),
	}, Options{})
	require.NoError(t, err)

	set, ok := zone.RecordSet("www.example.com.", domain.RRTypeA)
	require.True(t, ok)
	require.Len(t, set.Records, 2)
	assert.Equal(t, "10.0.0.1", set.Records[0].Data.String())
	assert.Equal(t, "10.0.0.2", set.Records[1].Data.String())

	// SOA, www A, mail A
	assert.Equal(t, 3, zone.Len())
}

func TestBuild_MixedTypes(t *testing.T) {
	zone, err := Build("Example.ORG", []domain.RecordInfo{
		domain.NewRecordInfo("@", domain.RRTypeAAAA, "2001:db8::1"),
		domain.NewRecordInfo("www", domain.RRTypeCNAME, "@"),
		domain.NewRecordInfo("ftp", domain.RRTypeCNAME, "files"),
		domain.NewRecordInfo("ext", domain.RRTypeCNAME, "target.example.net."),
		domain.NewRecordInfo("*", domain.RRTypeA, "192.0.2.1"),
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "example.org.", zone.Origin())

	cases := []struct {
		owner  string
		rrtype domain.RRType
		value  string
	}{
		{"example.org.", domain.RRTypeAAAA, "2001:db8::1"},
		{"www.example.org.", domain.RRTypeCNAME, "example.org."},
		{"ftp.example.org.", domain.RRTypeCNAME, "files.example.org."},
		{"ext.example.org.", domain.RRTypeCNAME, "target.example.net."},
		{"*.example.org.", domain.RRTypeA, "192.0.2.1"},
	}
	for _, tc := range cases {
		set, ok := zone.RecordSet(tc.owner, tc.rrtype)
		require.True(t, ok, "%s %s", tc.owner, tc.rrtype)
		require.Len(t, set.Records, 1)
		assert.Equal(t, tc.value, set.Records[0].Data.String())
	}
}

func TestBuild_Options(t *testing.T) {
	zone, err := Build("example.com.", nil, Options{
		SOA: domain.SOAData{
			MName:  "NS1.Example.com",
			RName:  "hostmaster.example.com.",
			Serial: 2024010101,
		},
		TTL: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, zone.Len())

	soa, ok := zone.SOA()
	require.True(t, ok)
	assert.Equal(t, uint32(300), soa.TTL)
	data := soa.Data.(domain.SOAData)
	assert.Equal(t, "ns1.example.com.", data.MName)
	assert.Equal(t, uint32(2024010101), data.Serial)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		records []domain.RecordInfo
		check   func(t *testing.T, err error)
	}{
		{
			name:   "invalid origin",
			origin: "exa mple.com",
			check: func(t *testing.T, err error) {
				var nameErr *domain.NameSyntaxError
				assert.ErrorAs(t, err, &nameErr)
			},
		},
		{
			name:    "malformed IPv4",
			origin:  "example.com.",
			records: []domain.RecordInfo{domain.NewRecordInfo("@", domain.RRTypeA, "256.0.0.1")},
			check: func(t *testing.T, err error) {
				var valErr *domain.RecordValueError
				assert.ErrorAs(t, err, &valErr)
			},
		},
		{
			name:    "IPv6 in A record",
			origin:  "example.com.",
			records: []domain.RecordInfo{domain.NewRecordInfo("@", domain.RRTypeA, "::1")},
			check: func(t *testing.T, err error) {
				var valErr *domain.RecordValueError
				assert.ErrorAs(t, err, &valErr)
			},
		},
		{
			name:    "unsupported type",
			origin:  "example.com.",
			records: []domain.RecordInfo{domain.NewRecordInfo("@", domain.RRTypeMX, "10 mail.example.com.")},
			check: func(t *testing.T, err error) {
				var typeErr *domain.UnsupportedRecordTypeError
				require.ErrorAs(t, err, &typeErr)
				assert.Equal(t, "MX", typeErr.Type)
				assert.ErrorIs(t, err, domain.ErrUnsupportedRecordType)
			},
		},
		{
			name:    "bad owner name",
			origin:  "example.com.",
			records: []domain.RecordInfo{domain.NewRecordInfo("bad name", domain.RRTypeA, "1.2.3.4")},
			check: func(t *testing.T, err error) {
				var nameErr *domain.NameSyntaxError
				assert.ErrorAs(t, err, &nameErr)
			},
		},
		{
			name:    "bad CNAME target",
			origin:  "example.com.",
			records: []domain.RecordInfo{domain.NewRecordInfo("www", domain.RRTypeCNAME, "a..b")},
			check: func(t *testing.T, err error) {
				var nameErr *domain.NameSyntaxError
				assert.ErrorAs(t, err, &nameErr)
			},
		},
		{
			name:    "owner outside zone",
			origin:  "example.com.",
			records: []domain.RecordInfo{domain.NewRecordInfo("www.example.net.", domain.RRTypeA, "1.2.3.4")},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrOutOfZone)
			},
		},
		{
			name:   "CNAME beside other data",
			origin: "example.com.",
			records: []domain.RecordInfo{
				domain.NewRecordInfo("www", domain.RRTypeA, "1.2.3.4"),
				domain.NewRecordInfo("www", domain.RRTypeCNAME, "@"),
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrCNAMEConflict)
			},
		},
		{
			name:    "CNAME at apex",
			origin:  "example.com.",
			records: []domain.RecordInfo{domain.NewRecordInfo("@", domain.RRTypeCNAME, "example.net.")},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrCNAMEConflict)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, err := Build(tt.origin, tt.records, Options{})
			assert.Nil(t, zone)
			require.Error(t, err)

			var zoneErr *domain.ZoneConstructionError
			require.True(t, errors.As(err, &zoneErr), "expected ZoneConstructionError, got %T", err)
			tt.check(t, err)
		})
	}
}

func TestBuild_ErrorNamesRecord(t *testing.T) {
	_, err := Build("example.com.", []domain.RecordInfo{
		domain.NewRecordInfo("www", domain.RRTypeA, "1.2.3.4"),
		domain.NewRecordInfo("api", domain.RRTypeA, "not-an-ip"),
	}, Options{})

	var zoneErr *domain.ZoneConstructionError
	require.ErrorAs(t, err, &zoneErr)
	assert.Equal(t, "example.com.", zoneErr.Zone)
	assert.Equal(t, "api", zoneErr.Owner)
	assert.Equal(t, domain.RRTypeA, zoneErr.Type)
	assert.Contains(t, err.Error(), "not-an-ip")
}

func TestBuild_Deterministic(t *testing.T) {
	records := []domain.RecordInfo{
		domain.NewRecordInfo("www", domain.RRTypeA, "10.0.0.2", "10.0.0.1"),
		domain.NewRecordInfo("@", domain.RRTypeAAAA, "2001:db8::1"),
		domain.NewRecordInfo("alias", domain.RRTypeCNAME, "www"),
		domain.NewRecordInfo("www", domain.RRTypeA, "10.0.0.3"),
	}

	first, err := Build("example.com.", records, Options{})
	require.NoError(t, err)
	second, err := Build("example.com.", records, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Keys(), second.Keys())
	assert.Equal(t, first, second)

	bad := append([]domain.RecordInfo{}, records...)
	bad = append(bad, domain.NewRecordInfo("x", domain.RRTypeTXT, "hello"))
	_, err1 := Build("example.com.", bad, Options{})
	_, err2 := Build("example.com.", bad, Options{})
	require.Error(t, err1)
	assert.Equal(t, err1.Error(), err2.Error())
}
