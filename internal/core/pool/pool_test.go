package pool

import (
	"context"
	"testing"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// fakeSource is an in-memory ports.MetadataSource used to exercise the Pool
// without touching a real filesystem or XML/YAML decoder.
type fakeSource struct {
	files      map[string][]*entities.Component
	mergeFiles map[string][]entities.MergeOp
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		files:      make(map[string][]*entities.Component),
		mergeFiles: make(map[string][]entities.MergeOp),
	}
}

func (s *fakeSource) addComponent(path string, c *entities.Component) {
	s.files[path] = append(s.files[path], c)
}

func (s *fakeSource) addMerge(path string, op entities.MergeOp) {
	s.mergeFiles[path] = append(s.mergeFiles[path], op)
}

func (s *fakeSource) Discover(ctx context.Context, root string) ([]ports.FileRef, error) {
	var refs []ports.FileRef
	for path := range s.files {
		refs = append(refs, ports.FileRef{Path: path})
	}
	for path := range s.mergeFiles {
		if _, ok := s.files[path]; !ok {
			refs = append(refs, ports.FileRef{Path: path})
		}
	}
	return refs, nil
}

func (s *fakeSource) Parse(ctx context.Context, ref ports.FileRef, pctx *entities.Context) ([]*entities.Component, []entities.MergeOp, error) {
	return s.files[ref.Path], s.mergeFiles[ref.Path], nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)          {}
func (nopLogger) Info(string, ...any)           {}
func (nopLogger) Warn(string, ...any)           {}
func (nopLogger) Error(string, error, ...any)   {}
func (l nopLogger) WithContext(context.Context) ports.Logger { return l }
func (l nopLogger) WithFields(...any) ports.Logger           { return l }

func newTestComponent(id, name string) *entities.Component {
	c := entities.NewComponent(id, entities.NewContext())
	c.Kind = entities.KindDesktopApplication
	c.Scope = entities.ScopeSystem
	c.Name.Set("C", name)
	return c
}

func TestPool_SimpleQueryByID(t *testing.T) {
	source := newFakeSource()
	c := newTestComponent("org.inkscape.Inkscape", "Inkscape")
	c.URLs = map[string]string{"homepage": "https://inkscape.org/"}
	source.addComponent("collection.xml", c)

	cfg := entities.NewPoolConfig()
	cfg.LoadStdLocations = false
	cfg.ExtraLocations = []entities.DataLocation{{Path: "/data", Kind: entities.FormatKindXML}}

	p := New(cfg, map[entities.FormatKind]ports.MetadataSource{entities.FormatKindXML: source}, nil, nil, nopLogger{})
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	results := p.ByID("org.inkscape.Inkscape")
	if len(results) != 1 {
		t.Fatalf("ByID = %d results, want 1", len(results))
	}
	if got, _ := results[0].Name.Get("C"); got != "Inkscape" {
		t.Errorf("Name = %q, want Inkscape", got)
	}
	if results[0].URLs["homepage"] != "https://inkscape.org/" {
		t.Errorf("homepage URL = %q", results[0].URLs["homepage"])
	}
}

func TestPool_MergeReplace(t *testing.T) {
	source := newFakeSource()
	source.addComponent("a.xml", newTestComponent("kiki.desktop", "Kiki"))

	replacement := entities.NewComponent("kiki.desktop", entities.NewContext())
	replacement.Name.Set("C", "Kiki (merged)")
	source.addMerge("b.xml", entities.MergeOp{
		Kind:    entities.MergeReplace,
		Target:  "kiki.desktop",
		Payload: replacement,
	})

	cfg := entities.NewPoolConfig()
	cfg.LoadStdLocations = false
	cfg.ExtraLocations = []entities.DataLocation{{Path: "/data", Kind: entities.FormatKindXML}}

	p := New(cfg, map[entities.FormatKind]ports.MetadataSource{entities.FormatKindXML: source}, nil, nil, nopLogger{})
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	results := p.ByID("kiki.desktop")
	if len(results) != 1 {
		t.Fatalf("ByID = %d results, want 1", len(results))
	}
	if got, _ := results[0].Name.Get("C"); got != "Kiki (merged)" {
		t.Errorf("Name = %q, want %q", got, "Kiki (merged)")
	}
}

func TestPool_MergeRemoveComponent(t *testing.T) {
	source := newFakeSource()
	source.addComponent("a.xml", newTestComponent("org.example.DeleteMe", "Delete Me"))
	source.addMerge("b.xml", entities.MergeOp{Kind: entities.MergeRemoveComponent, Target: "org.example.DeleteMe"})

	cfg := entities.NewPoolConfig()
	cfg.LoadStdLocations = false
	cfg.ExtraLocations = []entities.DataLocation{{Path: "/data", Kind: entities.FormatKindXML}}

	p := New(cfg, map[entities.FormatKind]ports.MetadataSource{entities.FormatKindXML: source}, nil, nil, nopLogger{})
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if results := p.ByID("org.example.DeleteMe"); len(results) != 0 {
		t.Errorf("ByID after remove-component = %d results, want 0", len(results))
	}
}

func TestPool_MergeDiscardsUnknownTarget(t *testing.T) {
	source := newFakeSource()
	source.addMerge("b.xml", entities.MergeOp{Kind: entities.MergeRemoveComponent, Target: "no.such.Component"})

	cfg := entities.NewPoolConfig()
	cfg.LoadStdLocations = false
	cfg.ExtraLocations = []entities.DataLocation{{Path: "/data", Kind: entities.FormatKindXML}}

	p := New(cfg, map[entities.FormatKind]ports.MetadataSource{entities.FormatKindXML: source}, nil, nil, nopLogger{})
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(p.All()) != 0 {
		t.Errorf("expected empty index, got %d components", len(p.All()))
	}
}

func TestPool_PriorityResolvesCollision(t *testing.T) {
	source := newFakeSource()
	low := newTestComponent("org.example.App", "Low Priority")
	low.Priority = 0
	high := newTestComponent("org.example.App", "High Priority")
	high.Priority = 10
	source.addComponent("a.xml", low)
	source.addComponent("b.xml", high)

	cfg := entities.NewPoolConfig()
	cfg.LoadStdLocations = false
	cfg.ExtraLocations = []entities.DataLocation{{Path: "/data", Kind: entities.FormatKindXML}}

	p := New(cfg, map[entities.FormatKind]ports.MetadataSource{entities.FormatKindXML: source}, nil, nil, nopLogger{})
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	results := p.ByID("org.example.App")
	if len(results) != 1 {
		t.Fatalf("ByID = %d results, want 1", len(results))
	}
	if got, _ := results[0].Name.Get("C"); got != "High Priority" {
		t.Errorf("winner = %q, want High Priority", got)
	}
}

func TestPool_SubscribeReceivesChangedAfterLoad(t *testing.T) {
	source := newFakeSource()
	source.addComponent("a.xml", newTestComponent("org.example.App", "App"))

	cfg := entities.NewPoolConfig()
	cfg.LoadStdLocations = false
	cfg.ExtraLocations = []entities.DataLocation{{Path: "/data", Kind: entities.FormatKindXML}}

	p := New(cfg, map[entities.FormatKind]ports.MetadataSource{entities.FormatKindXML: source}, nil, nil, nopLogger{})
	ch, cancel := p.Subscribe()
	defer cancel()

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	select {
	case <-ch:
	default:
		t.Error("expected a changed signal after Load installed a new index")
	}
	if len(p.ByID("org.example.App")) != 1 {
		t.Error("query issued after the changed signal should see the new index")
	}
}

func TestPool_LoadAsync(t *testing.T) {
	source := newFakeSource()
	source.addComponent("a.xml", newTestComponent("org.example.App", "App"))

	cfg := entities.NewPoolConfig()
	cfg.LoadStdLocations = false
	cfg.ExtraLocations = []entities.DataLocation{{Path: "/data", Kind: entities.FormatKindXML}}

	p := New(cfg, map[entities.FormatKind]ports.MetadataSource{entities.FormatKindXML: source}, nil, nil, nopLogger{})
	handle := p.LoadAsync(context.Background())
	<-handle.Done()

	if err := handle.Err(); err != nil {
		t.Fatalf("LoadAsync result = %v", err)
	}
	if !p.Ready() {
		t.Error("Ready() should be true after LoadAsync completes")
	}
}
