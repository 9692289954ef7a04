package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/haukened/simple-dns/internal/dns/common/log"
	"github.com/haukened/simple-dns/internal/dns/common/utils"
	"github.com/haukened/simple-dns/internal/dns/domain"
	"github.com/haukened/simple-dns/internal/dns/gateways/authority"
	"github.com/haukened/simple-dns/internal/dns/repos/zone"
)

var (
	errRootConfigured = errors.New("the root zone is reserved for forwarding")
	errDuplicateZone  = errors.New("domain configured more than once")
)

// Options tune catalog assembly.
type Options struct {
	// Zone is applied to every primary zone.
	Zone zone.Options
	// Forward configures the root forwarder.
	Forward authority.ForwardOptions
	// RouteCacheSize bounds the query-name route memo; <= 0 disables it.
	RouteCacheSize int
}

// Assemble compiles every configured domain into a primary authority and adds
// the root forwarder under ".". Domains are compiled in lexicographic order and
// the first failure aborts assembly; no partial catalog is returned. The
// forwarder is set up concurrently with zone compilation. When both fail, the
// zone error is reported.
func Assemble(ctx context.Context, cfg domain.ZoneConfig, opts Options) (*Catalog, error) {
	g, gctx := errgroup.WithContext(ctx)

	var forward *authority.Forward
	g.Go(func() error {
		f, err := authority.NewForward(gctx, ".", opts.Forward)
		if err != nil {
			return err
		}
		forward = f
		return nil
	})

	authorities, zoneErr := compileZones(ctx, cfg, opts.Zone)
	fwdErr := g.Wait()

	if zoneErr != nil {
		return nil, zoneErr
	}
	if fwdErr != nil {
		return nil, fwdErr
	}

	authorities["."] = forward
	log.Info(map[string]any{
		"zones":     len(authorities) - 1,
		"upstreams": forward.Servers(),
	}, "catalog assembled")

	return newCatalog(authorities, opts.RouteCacheSize)
}

// compileZones builds a primary authority per configured domain, in domain order.
func compileZones(ctx context.Context, cfg domain.ZoneConfig, opts zone.Options) (map[string]authority.Authority, error) {
	authorities := make(map[string]authority.Authority, len(cfg.Domains)+1)
	configuredAs := make(map[string]string, len(cfg.Domains))

	for _, name := range cfg.DomainNames() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("catalog assembly interrupted: %w", err)
		}

		origin, err := utils.ResolveName(domain.ApexName, name)
		if err != nil {
			return nil, &domain.ZoneConstructionError{Zone: name, Err: err}
		}
		if origin == "." {
			return nil, &domain.ZoneConstructionError{Zone: name, Err: errRootConfigured}
		}
		if prev, dup := configuredAs[origin]; dup {
			return nil, &domain.ZoneConstructionError{
				Zone: origin,
				Err:  fmt.Errorf("%w: %q and %q", errDuplicateZone, prev, name),
			}
		}
		configuredAs[origin] = name

		zlog := log.GetLogger().With(map[string]any{"zone": origin})
		if utils.IsPublicSuffix(origin) {
			zlog.Warn(nil, "configured zone is a public suffix")
		}

		z, err := zone.Build(origin, cfg.Domains[name], opts)
		if err != nil {
			return nil, err
		}
		primary, err := authority.NewPrimary(z)
		if err != nil {
			return nil, &domain.ZoneConstructionError{Zone: origin, Err: err}
		}
		authorities[origin] = primary

		zlog.Info(map[string]any{"rrsets": z.Len()}, "zone compiled")
	}
	return authorities, nil
}
