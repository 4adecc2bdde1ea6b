package entities

import "testing"

func TestNewComponent_Defaults(t *testing.T) {
	ctx := NewContext()
	ctx.Origin = "example-origin"
	ctx.Architecture = "x86_64"
	ctx.DefaultPriority = 5

	c := NewComponent("org.example.App", ctx)
	if c.Origin != "example-origin" || c.Architecture != "x86_64" || c.Priority != 5 {
		t.Errorf("NewComponent did not inherit context defaults: %+v", c)
	}
	if c.Name == nil || c.Keywords == nil || c.URLs == nil {
		t.Error("NewComponent should initialize map fields")
	}
}

func TestComponent_IndexKey(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	c.Scope = ScopeSystem
	c.Origin = "my-origin"
	c.Architecture = "x86_64"
	c.Branch = "stable"
	c.Bundles = []Bundle{{Kind: "flatpak", Reference: "app/org.example.App/x86_64/stable"}}

	key := c.IndexKey()
	want := IndexKey{
		ID:           "org.example.App",
		Scope:        ScopeSystem,
		BundleKind:   "flatpak",
		Origin:       "my-origin",
		Architecture: "x86_64",
		Branch:       "stable",
	}
	if key != want {
		t.Errorf("IndexKey() = %+v, want %+v", key, want)
	}
}

func TestComponent_IndexKey_NoBundle(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	if key := c.IndexKey(); key.BundleKind != "" {
		t.Errorf("expected empty BundleKind with no bundles, got %q", key.BundleKind)
	}
}

func TestComponent_Validate(t *testing.T) {
	ctx := NewContext()
	c := NewComponent("org.example.app", ctx)
	c.Kind = KindDesktopApplication
	c.Scope = ScopeSystem
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestComponent_Validate_RejectsBadID(t *testing.T) {
	c := NewComponent("bad id", NewContext())
	c.Kind = KindDesktopApplication
	c.Scope = ScopeSystem
	if err := c.Validate(); err == nil {
		t.Error("expected error for invalid id")
	}
}

func TestComponent_Validate_RejectsUnknownKindAndScope(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown kind/scope")
	}
}

func TestComponent_LocalizedNameAndSummary(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	c.Name.Set("C", "Example App")
	c.Summary.Set("C", "Does things")

	if got := c.LocalizedName(); got != "Example App" {
		t.Errorf("LocalizedName() = %q", got)
	}
	if got := c.LocalizedSummary(); got != "Does things" {
		t.Errorf("LocalizedSummary() = %q", got)
	}
}

func TestComponent_CategoryHelpers(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	c.AddCategory("Utility")
	c.AddCategory("Utility")
	if len(c.Categories) != 1 {
		t.Errorf("AddCategory should dedup, got %v", c.Categories)
	}
	if !c.HasCategory("Utility") {
		t.Error("HasCategory(Utility) = false, want true")
	}
	if c.HasCategory("Game") {
		t.Error("HasCategory(Game) = true, want false")
	}
}

func TestComponent_ProvidesOfKind(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	c.Provides = []ProvidedItem{
		{Kind: ProvidedBinary, Value: "examplectl"},
		{Kind: ProvidedLibrary, Value: "libexample.so.1"},
		{Kind: ProvidedBinary, Value: "example-helper"},
	}
	bins := c.ProvidesOfKind(ProvidedBinary)
	if len(bins) != 2 || bins[0] != "examplectl" || bins[1] != "example-helper" {
		t.Errorf("ProvidesOfKind(ProvidedBinary) = %v", bins)
	}
}

func TestComponent_LaunchableOfKind(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	c.Launchables = []Launchable{{Kind: LaunchableDesktopID, Entry: "org.example.App.desktop"}}

	entry, ok := c.LaunchableOfKind(LaunchableDesktopID)
	if !ok || entry != "org.example.App.desktop" {
		t.Errorf("LaunchableOfKind = (%q, %v)", entry, ok)
	}
	if _, ok := c.LaunchableOfKind(LaunchableURL); ok {
		t.Error("expected ok=false for absent launchable kind")
	}
}

func TestComponent_Clone_Independence(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	c.Name.Set("C", "Example App")
	c.Categories = []string{"Utility"}
	c.Provides = []ProvidedItem{{Kind: ProvidedBinary, Value: "examplectl"}}

	clone := c.Clone()
	clone.Categories = append(clone.Categories, "Office")
	clone.Provides[0].Value = "mutated"
	clone.Name.Set("C", "Mutated App")

	if len(c.Categories) != 1 {
		t.Errorf("original Categories mutated by clone append: %v", c.Categories)
	}
	if c.Provides[0].Value != "examplectl" {
		t.Errorf("original Provides mutated by clone edit: %v", c.Provides)
	}
	if got, _ := c.Name.Get("C"); got != "Example App" {
		t.Errorf("original Name mutated by clone edit: %q", got)
	}
}

func TestComponent_SetContext_InvalidatesTokenCache(t *testing.T) {
	c := NewComponent("org.example.App", NewContext())
	c.tokens = map[string][]string{"C": {"stale"}}

	c.SetContext(NewContext())
	if c.tokens != nil {
		t.Error("SetContext should clear the token cache")
	}
}

func TestKeywords_All_DedupedAndSorted(t *testing.T) {
	kw := Keywords{}
	kw.Add("C", "zeta")
	kw.Add("de", "alpha")
	kw.Add("C", "alpha")

	all := kw.All()
	if len(all) != 2 || all[0] != "alpha" || all[1] != "zeta" {
		t.Errorf("All() = %v, want [alpha zeta]", all)
	}
}
