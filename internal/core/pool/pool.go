package pool

import (
	"context"
	"sort"
	"sync"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// Pool is the metadata index: it discovers metadata under its configured
// locations, parses it, applies merge operations, indexes the result, and
// answers queries. See the package doc comment for the freeze-then-share
// discipline the index follows.
type Pool struct {
	config  *entities.PoolConfig
	sources map[entities.FormatKind]ports.MetadataSource
	cache   ports.CacheStore
	watcher ports.FileWatcher
	logger  ports.Logger

	mu      sync.RWMutex
	idx     *index
	extends map[string][]*entities.Component
	loaded  bool
	loadErr error

	obsMu     sync.Mutex
	observers map[int]chan struct{}
	nextObs   int

	watchCancel context.CancelFunc
}

// New constructs a Pool. sources must contain an entry for every
// entities.FormatKind the configured locations use; cache and watcher may
// be nil (a nil cache disables persistence, a nil watcher disables
// PoolFlags.Monitor).
func New(config *entities.PoolConfig, sources map[entities.FormatKind]ports.MetadataSource, cache ports.CacheStore, watcher ports.FileWatcher, logger ports.Logger) *Pool {
	if config == nil {
		config = entities.NewPoolConfig()
	}
	return &Pool{
		config:    config,
		sources:   sources,
		cache:     cache,
		watcher:   watcher,
		logger:    logger,
		idx:       newIndex(),
		observers: make(map[int]chan struct{}),
	}
}

// LoadHandle is returned by LoadAsync: a suspension point the caller can
// wait on or cancel, using a channel+context shape rather than a bespoke
// future type.
type LoadHandle struct {
	done chan struct{}
	mu   sync.Mutex
	err  error
}

// Done returns a channel closed once the load completes (successfully,
// with an error, or via cancellation).
func (h *LoadHandle) Done() <-chan struct{} { return h.done }

// Err returns the load's outcome; valid only after Done() is closed.
func (h *LoadHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *LoadHandle) finish(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
	close(h.done)
}

// Load synchronously discovers, parses, merges, and indexes every
// configured location, then atomically installs the result. A failed load
// leaves any prior index installed; a first-load failure leaves
// the Pool empty.
func (p *Pool) Load(ctx context.Context) error {
	components, mergeOps, err := p.loadAll(ctx)
	if err != nil {
		p.mu.Lock()
		if !p.loaded {
			p.loadErr = err
		}
		p.mu.Unlock()
		return err
	}

	merged := applyMerges(components, mergeOps)
	idx := buildIndex(merged)
	var extends map[string][]*entities.Component
	if p.config.PoolFlags.ResolveAddons {
		extends = resolveAddons(idx)
	}

	p.mu.Lock()
	p.idx = idx
	p.extends = extends
	p.loaded = true
	p.loadErr = nil
	p.mu.Unlock()

	p.notifyChanged()

	if p.config.PoolFlags.Monitor && p.watcher != nil && p.watchCancel == nil {
		p.startMonitor(ctx)
	}
	return nil
}

// LoadAsync starts Load in the background and returns immediately. ctx
// governs cancellation: on cancel, any in-progress parse is abandoned, no
// cache is written for files not yet processed, the previous index is
// left installed, and LoadHandle.Err reports ctx.Err().
func (p *Pool) LoadAsync(ctx context.Context) *LoadHandle {
	h := &LoadHandle{done: make(chan struct{})}
	go func() {
		h.finish(p.Load(ctx))
	}()
	return h
}

// Refresh reloads a single location by path, merging its fresh result back
// into the existing index without re-parsing every other location. Used
// by the file-monitor change-coalescing path.
func (p *Pool) Refresh(ctx context.Context, path string) error {
	var target *entities.DataLocation
	for _, loc := range p.allLocations() {
		if loc.Path == path {
			l := loc
			target = &l
			break
		}
	}
	if target == nil {
		return nil // not a monitored location: nothing to do
	}

	components, mergeOps, err := p.loadLocation(ctx, *target)
	if err != nil {
		return err
	}

	p.mu.RLock()
	existing := p.idx.All()
	p.mu.RUnlock()

	replaced := replaceOrigin(existing, path, components)
	merged := applyMerges(replaced, mergeOps)
	idx := buildIndex(merged)
	var extends map[string][]*entities.Component
	if p.config.PoolFlags.ResolveAddons {
		extends = resolveAddons(idx)
	}

	p.mu.Lock()
	p.idx = idx
	p.extends = extends
	p.mu.Unlock()

	p.notifyChanged()
	return nil
}

// replaceOrigin drops every component previously sourced from origin and
// appends the freshly parsed replacements in its place.
func replaceOrigin(existing []*entities.Component, origin string, fresh []*entities.Component) []*entities.Component {
	out := make([]*entities.Component, 0, len(existing)+len(fresh))
	for _, c := range existing {
		if c.Origin != origin {
			out = append(out, c)
		}
	}
	return append(out, fresh...)
}

// loadAll runs loadLocation across every configured location and
// concatenates the results. Per-location errors are logged and skipped —
// file/location-level errors do not abort the whole load — except context
// cancellation, which propagates immediately.
func (p *Pool) loadAll(ctx context.Context) ([]*entities.Component, []entities.MergeOp, error) {
	var components []*entities.Component
	var mergeOps []entities.MergeOp

	for _, loc := range p.allLocations() {
		locComponents, locMerges, err := p.loadLocation(ctx, loc)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			if p.logger != nil {
				p.logger.Warn("skipping location after load error", "location", loc.Path, "err", err)
			}
			continue
		}
		components = append(components, locComponents...)
		mergeOps = append(mergeOps, locMerges...)
	}
	return components, mergeOps, nil
}

// Subscribe registers for the Pool's changed signal, emitted after a
// reload installs a new index — the signal fires only once the new index
// is already installed. The returned cancel func unregisters the
// subscription.
func (p *Pool) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	p.obsMu.Lock()
	id := p.nextObs
	p.nextObs++
	p.observers[id] = ch
	p.obsMu.Unlock()

	cancel := func() {
		p.obsMu.Lock()
		delete(p.observers, id)
		p.obsMu.Unlock()
	}
	return ch, cancel
}

func (p *Pool) notifyChanged() {
	p.obsMu.Lock()
	defer p.obsMu.Unlock()
	for _, ch := range p.observers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close releases the Pool's file-monitor watch handle, if any. Handles
// must be explicitly cancelled before the Pool is dropped.
func (p *Pool) Close() error {
	if p.watchCancel != nil {
		p.watchCancel()
		p.watchCancel = nil
	}
	if p.watcher != nil {
		return p.watcher.Stop()
	}
	return nil
}

// --- Query surface. Safe to call concurrently once Load has completed;
// see the package doc comment for the copy-on-reload discipline. ---

// ByID returns every Component registered under id, priority-descending,
// origin-lex order.
func (p *Pool) ByID(id string) []*entities.Component {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.idx.ByID(id)
}

// ByProvided returns every Component advertising the given provided-item.
func (p *Pool) ByProvided(kind entities.ProvidedKind, value string) []*entities.Component {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.idx.ByProvided(kind, value)
}

// ByLaunchable returns every Component exposing the given launchable.
func (p *Pool) ByLaunchable(kind entities.LaunchableKind, entry string) []*entities.Component {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.idx.ByLaunchable(kind, entry)
}

// ByCategory returns every Component tagged with the given category.
func (p *Pool) ByCategory(cat string) []*entities.Component {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.idx.ByCategory(cat)
}

// Extends returns the addon Components that extend targetID, resolved by
// the optional addons pass (empty/nil if PoolFlags.ResolveAddons is unset).
func (p *Pool) Extends(targetID string) []*entities.Component {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.extends[targetID]
}

// ByIDGlob returns every Component whose id matches the given glob
// pattern (wildcards * and ?), ordered by id and priority-descending
// within each id.
func (p *Pool) ByIDGlob(pattern string) []*entities.Component {
	p.mu.RLock()
	defer p.mu.RUnlock()
	matcher := entities.NewGlobMatcher(pattern)
	var out []*entities.Component
	for _, c := range p.idx.All() {
		if matcher.Match(c.ID) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Priority > out[j].Priority
	})
	return out
}

// All returns every indexed Component. Used by Search for its browse-all
// path, a query shorter than the minimum token length.
func (p *Pool) All() []*entities.Component {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.idx.All()
}

// Ready reports whether the Pool's first load has completed.
func (p *Pool) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}
