package pool

import (
	"context"

	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// startMonitor subscribes to the FileWatcher for every configured
// location and schedules a coalesced Refresh on each reported event: at
// most one reload per location in flight at a time.
func (p *Pool) startMonitor(ctx context.Context) {
	watchCtx, cancel := context.WithCancel(ctx)
	p.watchCancel = cancel

	for _, loc := range p.allLocations() {
		events, err := p.watcher.Watch(watchCtx, loc.Path)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("failed to start monitor for location", "location", loc.Path, "err", err)
			}
			continue
		}
		go p.consumeEvents(watchCtx, loc.Path, events)
	}
}

// consumeEvents drains one location's event channel, coalescing bursts of
// events into a single in-flight Refresh at a time.
func (p *Pool) consumeEvents(ctx context.Context, path string, events <-chan ports.FileChangeEvent) {
	reloading := false
	pending := false

	done := make(chan error, 1)
	triggerReload := func() {
		reloading = true
		go func() { done <- p.Refresh(ctx, path) }()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case _, ok := <-events:
			if !ok {
				return
			}
			if reloading {
				pending = true
				continue
			}
			triggerReload()

		case err := <-done:
			reloading = false
			if err != nil && p.logger != nil {
				p.logger.Warn("monitor-triggered refresh failed", "location", path, "err", err)
			}
			if pending {
				pending = false
				triggerReload()
			}
		}
	}
}
