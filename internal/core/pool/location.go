package pool

import (
	"context"
	"fmt"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// loadLocation discovers and parses every file under loc, consulting the
// cache first unless cache flags forbid it. A cache hit whose fingerprint
// matches the current directory listing skips parsing entirely (the
// staleness check).
func (p *Pool) loadLocation(ctx context.Context, loc entities.DataLocation) ([]*entities.Component, []entities.MergeOp, error) {
	source, ok := p.sources[loc.Kind]
	if !ok {
		return nil, nil, fmt.Errorf("pool: no metadata source registered for format kind %v", loc.Kind)
	}

	files, err := source.Discover(ctx, loc.Path)
	if err != nil {
		return nil, nil, &entities.Error{Kind: entities.KindFile, Op: "discover", Path: loc.Path, Err: err}
	}

	fingerprint := ""
	if p.cache != nil {
		fingerprint = p.cache.Fingerprint(files)
	}

	if p.cache != nil && !p.config.CacheFlags.RefreshAlways {
		record, hit, cacheErr := p.cache.Load(ctx, fingerprint)
		if cacheErr != nil {
			p.logger.Warn("cache load failed, forcing re-parse", "location", loc.Path, "err", cacheErr)
		}
		if hit && !p.config.CacheFlags.IgnoreAge {
			return record.Components, nil, nil
		}
	}

	pctx := entities.NewContext()
	pctx.Locale = p.config.Locale
	pctx.Origin = loc.Path

	var components []*entities.Component
	var mergeOps []entities.MergeOp

	for _, ref := range files {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		parsed, ops, perr := source.Parse(ctx, ref, pctx)
		if perr != nil {
			// File-level errors do not abort the load: skip and
			// continue with the rest of the location.
			p.logger.Warn("skipping file after parse error", "path", ref.Path, "err", perr)
			continue
		}
		components = append(components, parsed...)
		mergeOps = append(mergeOps, ops...)
	}

	if p.cache != nil && !p.config.CacheFlags.ReadOnly && !p.config.CacheFlags.NoWrite {
		record := &ports.CacheRecord{Fingerprint: fingerprint, Components: components}
		if werr := p.cache.Store(ctx, fingerprint, record); werr != nil {
			p.logger.Warn("cache write failed", "location", loc.Path, "err", werr)
		}
	}

	return components, mergeOps, nil
}

// allLocations returns every configured location: the caller-specified
// extras plus, when enabled, the default system/user search locations.
func (p *Pool) allLocations() []entities.DataLocation {
	locs := append([]entities.DataLocation(nil), p.config.ExtraLocations...)
	if p.config.LoadStdLocations {
		locs = append(locs, defaultLocations(p.config.PoolFlags)...)
	}
	return locs
}

// defaultLocations returns the system-scope default search locations,
// filtered by which sources PoolFlags enables.
func defaultLocations(flags entities.PoolFlags) []entities.DataLocation {
	var locs []entities.DataLocation
	if flags.LoadMetaInfo {
		locs = append(locs, entities.DataLocation{Path: "/usr/share/metainfo", Kind: entities.FormatKindXML})
	}
	if flags.LoadOSCollection {
		locs = append(locs,
			entities.DataLocation{Path: "/usr/share/swcatalog/xml", Kind: entities.FormatKindXML},
			entities.DataLocation{Path: "/usr/share/swcatalog/yaml", Kind: entities.FormatKindYAML},
			entities.DataLocation{Path: "/var/lib/swcatalog/xml", Kind: entities.FormatKindXML},
			entities.DataLocation{Path: "/var/lib/swcatalog/yaml", Kind: entities.FormatKindYAML},
		)
	}
	if flags.LoadDesktopFiles {
		locs = append(locs, entities.DataLocation{Path: "/usr/share/applications", Kind: entities.FormatKindDesktopEntry})
	}
	return locs
}
