package route

import (
	"context"
	"slices"

	"github.com/matzehuels/starroute/pkg/cache"
	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/config"
	"github.com/matzehuels/starroute/pkg/dag"
	"github.com/matzehuels/starroute/pkg/errors"
	"github.com/matzehuels/starroute/pkg/observability"
)

// Prerequisite graph output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Graph renders the prerequisite graph of cfg. Stars in selected, usually
// the stars of a computed route, are highlighted. SVG output is cached.
func (r *Runner) Graph(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, format string, selected []string) ([]byte, bool, error) {
	if format != FormatDOT && format != FormatSVG {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "unsupported graph format %q (want %s or %s)", format, FormatDOT, FormatSVG)
	}
	if err := cfg.Validate(cat); err != nil {
		return nil, false, err
	}

	dot := dag.ToDOT(dag.FromPrerequisites(cfg.Prerequisites), dag.DOTOptions{
		Alternates: cfg.Alternates(),
		Selected:   dag.NewSet(selected...),
	})
	if format == FormatDOT {
		return []byte(dot), false, nil
	}

	hash, err := cache.HashJSON(cfg)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash config")
	}
	sel := slices.Clone(selected)
	slices.Sort(sel)
	key := r.Keyer.GraphKey(hash, cache.GraphKeyOpts{Format: format, Selected: sel})

	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	} else if hit {
		observability.Cache().OnCacheHit(ctx, "graph")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	svg, err := dag.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	if err := r.Cache.Set(ctx, key, svg, cache.GraphTTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "graph", len(svg))
	}
	r.Logger.Debug("rendered graph", "bytes", len(svg))
	return svg, false, nil
}
