package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/common/log"
	"github.com/haukened/simple-dns/internal/dns/services/resolver"
)

const shutdownTimeout = 5 * time.Second

// Server implements resolver.ServerTransport for plain DNS on one address.
// Every listed network is bound to the same port, so "127.0.0.1:0" with both
// udp and tcp ends up on a single ephemeral port.
type Server struct {
	addr   string
	nets   []string
	logger log.Logger

	mu      sync.Mutex
	running bool
	bound   string
	servers []*dns.Server
	stopCh  chan struct{}
}

// NewServer creates a server for addr on the given networks ("udp", "tcp").
func NewServer(addr string, nets []string, logger log.Logger) *Server {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Server{
		addr:   addr,
		nets:   nets,
		logger: logger,
	}
}

// Start binds every network and begins serving requests with handler. The
// server stops on its own when ctx is done.
func (s *Server) Start(ctx context.Context, handler resolver.DNSResponder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("DNS transport already running on %s", s.bound)
	}

	servers, bound, err := s.listen()
	if err != nil {
		return err
	}

	logger := s.logger.With(map[string]any{"address": bound})
	h := serveDNS(ctx, handler, logger)
	for i, srv := range servers {
		srv.Handler = h
		if err := activate(srv, logger); err != nil {
			for _, started := range servers[:i] {
				_ = started.Shutdown()
			}
			closeListeners(servers[i:])
			return err
		}
	}

	s.servers = servers
	s.bound = bound
	s.running = true
	s.stopCh = make(chan struct{})

	logger.Info(map[string]any{
		"transport": strings.Join(s.nets, "+"),
	}, "DNS transport started")

	go s.watch(ctx, s.stopCh)
	return nil
}

// Stop gracefully shuts down every listener. Stopping a server that is not
// running is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, srv := range s.servers {
		if err := srv.ShutdownContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down %s listener: %w", srv.Net, err))
		}
	}
	close(s.stopCh)
	s.servers = nil
	s.running = false

	s.logger.Info(map[string]any{
		"address": s.bound,
	}, "DNS transport stopped")

	return errors.Join(errs...)
}

// Address returns the bound address while running and the configured one otherwise.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return s.bound
	}
	return s.addr
}

func (s *Server) listen() ([]*dns.Server, string, error) {
	if len(s.nets) == 0 {
		return nil, "", fmt.Errorf("no networks configured for %s", s.addr)
	}

	addr := s.addr
	servers := make([]*dns.Server, 0, len(s.nets))
	for _, network := range s.nets {
		switch network {
		case "udp":
			pc, err := net.ListenPacket("udp", addr)
			if err != nil {
				closeListeners(servers)
				return nil, "", fmt.Errorf("failed to bind UDP socket on %s: %w", addr, err)
			}
			addr = pc.LocalAddr().String()
			servers = append(servers, &dns.Server{PacketConn: pc, Net: "udp"})
		case "tcp":
			l, err := net.Listen("tcp", addr)
			if err != nil {
				closeListeners(servers)
				return nil, "", fmt.Errorf("failed to bind TCP socket on %s: %w", addr, err)
			}
			addr = l.Addr().String()
			servers = append(servers, &dns.Server{Listener: l, Net: "tcp"})
		default:
			closeListeners(servers)
			return nil, "", fmt.Errorf("unsupported network: %s", network)
		}
	}
	return servers, addr, nil
}

// activate runs srv in the background and waits until it is accepting requests.
func activate(srv *dns.Server, logger log.Logger) error {
	started := make(chan struct{})
	failed := make(chan error, 1)
	srv.NotifyStartedFunc = func() { close(started) }

	go func() {
		if err := srv.ActivateAndServe(); err != nil {
			failed <- err
			logger.Error(map[string]any{
				"transport": srv.Net,
				"error":     err.Error(),
			}, "DNS listener exited")
		}
	}()

	select {
	case <-started:
		return nil
	case err := <-failed:
		return fmt.Errorf("failed to start %s listener: %w", srv.Net, err)
	}
}

func (s *Server) watch(ctx context.Context, stopCh <-chan struct{}) {
	select {
	case <-ctx.Done():
		if err := s.Stop(); err != nil {
			s.logger.Error(map[string]any{"error": err.Error()}, "DNS transport shutdown failed")
		}
	case <-stopCh:
	}
}

// serveDNS adapts handler to miekg/dns. UDP replies are truncated to the
// client's advertised EDNS buffer, or 512 bytes without EDNS.
func serveDNS(ctx context.Context, handler resolver.DNSResponder, logger log.Logger) dns.HandlerFunc {
	return func(w dns.ResponseWriter, req *dns.Msg) {
		resp := handler.HandleRequest(ctx, req, w.RemoteAddr())
		if resp == nil {
			resp = new(dns.Msg)
			resp.SetRcode(req, dns.RcodeServerFailure)
		}

		if _, udp := w.RemoteAddr().(*net.UDPAddr); udp {
			size := dns.MinMsgSize
			if opt := req.IsEdns0(); opt != nil && int(opt.UDPSize()) > size {
				size = int(opt.UDPSize())
			}
			resp.Truncate(size)
		}

		if err := w.WriteMsg(resp); err != nil {
			logger.Error(map[string]any{
				"client":   w.RemoteAddr().String(),
				"query_id": resp.Id,
				"error":    err.Error(),
			}, "Failed to send DNS response")
			return
		}

		logger.Debug(map[string]any{
			"client":    w.RemoteAddr().String(),
			"query_id":  resp.Id,
			"rcode":     dns.RcodeToString[resp.Rcode],
			"answers":   len(resp.Answer),
			"truncated": resp.Truncated,
		}, "Sent DNS response")
	}
}

func closeListeners(servers []*dns.Server) {
	for _, srv := range servers {
		if srv.PacketConn != nil {
			_ = srv.PacketConn.Close()
		}
		if srv.Listener != nil {
			_ = srv.Listener.Close()
		}
	}
}
