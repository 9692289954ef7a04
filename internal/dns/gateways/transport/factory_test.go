package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/simple-dns/internal/dns/common/log"
)

func TestNewTransport(t *testing.T) {
	logger := log.NewNoopLogger()

	tests := []struct {
		name          string
		transportType TransportType
		addr          string
		wantNets      []string
		wantErr       bool
		errContains   string
	}{
		{
			name:          "plain DNS serves udp and tcp",
			transportType: TransportDNS,
			addr:          "127.0.0.1:0",
			wantNets:      []string{"udp", "tcp"},
		},
		{
			name:          "UDP transport success",
			transportType: TransportUDP,
			addr:          "127.0.0.1:0",
			wantNets:      []string{"udp"},
		},
		{
			name:          "TCP transport success",
			transportType: TransportTCP,
			addr:          "127.0.0.1:0",
			wantNets:      []string{"tcp"},
		},
		{
			name:          "DoH transport not implemented",
			transportType: TransportDoH,
			addr:          "127.0.0.1:443",
			wantErr:       true,
			errContains:   "DNS over HTTPS transport not yet implemented",
		},
		{
			name:          "DoT transport not implemented",
			transportType: TransportDoT,
			addr:          "127.0.0.1:853",
			wantErr:       true,
			errContains:   "DNS over TLS transport not yet implemented",
		},
		{
			name:          "DoQ transport not implemented",
			transportType: TransportDoQ,
			addr:          "127.0.0.1:853",
			wantErr:       true,
			errContains:   "DNS over QUIC transport not yet implemented",
		},
		{
			name:          "unknown transport",
			transportType: TransportType("sctp"),
			addr:          "127.0.0.1:53",
			wantErr:       true,
			errContains:   "unsupported transport type: sctp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTransport(tt.transportType, tt.addr, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, tr)
				return
			}
			require.NoError(t, err)
			srv, ok := tr.(*Server)
			require.True(t, ok)
			assert.Equal(t, tt.wantNets, srv.nets)
			assert.Equal(t, tt.addr, tr.Address())
		})
	}
}

func TestNewTransport_OnlySupportedTypes(t *testing.T) {
	for _, tt := range []TransportType{TransportDNS, TransportUDP, TransportTCP, TransportDoH, TransportDoT, TransportDoQ, "bogus"} {
		_, err := NewTransport(tt, "127.0.0.1:0", log.NewNoopLogger())
		assert.Equal(t, IsTransportSupported(tt), err == nil, string(tt))
	}
}

func TestGetSupportedTransports(t *testing.T) {
	assert.Equal(t, []TransportType{TransportDNS, TransportUDP, TransportTCP}, GetSupportedTransports())
}

func TestIsTransportSupported(t *testing.T) {
	tests := []struct {
		transportType TransportType
		want          bool
	}{
		{TransportDNS, true},
		{TransportUDP, true},
		{TransportTCP, true},
		{TransportDoH, false},
		{TransportDoT, false},
		{TransportDoQ, false},
		{TransportType("invalid"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.transportType), func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransportSupported(tt.transportType))
		})
	}
}
