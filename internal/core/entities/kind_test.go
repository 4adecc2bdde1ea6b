package entities

import "testing"

func TestComponentKind_RoundTrip(t *testing.T) {
	kinds := []ComponentKind{
		KindGeneric, KindDesktopApplication, KindConsoleApplication, KindWebApplication,
		KindAddon, KindFont, KindCodec, KindInputMethod, KindFirmware, KindDriver,
		KindLocalization, KindService, KindRepository, KindOperatingSystem, KindRuntime, KindIconTheme,
	}
	for _, k := range kinds {
		got, ok := ParseComponentKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseComponentKind(%q) = (%v, %v), want (%v, true)", k.String(), got, ok, k)
		}
	}
	if _, ok := ParseComponentKind("bogus"); ok {
		t.Error("expected ok=false for unknown kind")
	}
}

func TestScope_RoundTrip(t *testing.T) {
	if got, ok := ParseScope("system"); !ok || got != ScopeSystem {
		t.Errorf("ParseScope(system) = (%v, %v)", got, ok)
	}
	if got, ok := ParseScope(""); !ok || got != ScopeSystem {
		t.Errorf("ParseScope(\"\") should default to system, got (%v, %v)", got, ok)
	}
	if got, ok := ParseScope("user"); !ok || got != ScopeUser {
		t.Errorf("ParseScope(user) = (%v, %v)", got, ok)
	}
	if _, ok := ParseScope("bogus"); ok {
		t.Error("expected ok=false for unknown scope")
	}
}

func TestMergeKind_RoundTrip(t *testing.T) {
	kinds := []MergeKind{MergeNone, MergeAppend, MergeReplace, MergeRemoveComponent}
	for _, k := range kinds {
		got, ok := ParseMergeKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseMergeKind(%q) = (%v, %v), want (%v, true)", k.String(), got, ok, k)
		}
	}
}

func TestProvidedKind_RoundTrip(t *testing.T) {
	kinds := []ProvidedKind{
		ProvidedBinary, ProvidedLibrary, ProvidedMediaType, ProvidedFirmwareRuntime,
		ProvidedFirmwareFlashed, ProvidedPython2, ProvidedPython3, ProvidedFont,
		ProvidedModalias, ProvidedDBusSystem, ProvidedDBusUser,
	}
	for _, k := range kinds {
		got, ok := ParseProvidedKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseProvidedKind(%q) = (%v, %v), want (%v, true)", k.String(), got, ok, k)
		}
	}
}

func TestLaunchableKind_RoundTrip(t *testing.T) {
	kinds := []LaunchableKind{LaunchableDesktopID, LaunchableService, LaunchableURL, LaunchableCockpitManifest}
	for _, k := range kinds {
		got, ok := ParseLaunchableKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseLaunchableKind(%q) = (%v, %v), want (%v, true)", k.String(), got, ok, k)
		}
	}
}

func TestIconKind_RoundTrip(t *testing.T) {
	kinds := []IconKind{IconKindCached, IconKindStock, IconKindLocal, IconKindRemote}
	for _, k := range kinds {
		got, ok := ParseIconKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseIconKind(%q) = (%v, %v), want (%v, true)", k.String(), got, ok, k)
		}
	}
}

func TestVersionComparator_RoundTrip(t *testing.T) {
	tests := map[string]VersionComparator{
		"eq": CompareEq, "ne": CompareNe, "lt": CompareLt,
		"le": CompareLe, "gt": CompareGt, "ge": CompareGe,
	}
	for s, want := range tests {
		got, ok := ParseVersionComparator(s)
		if !ok || got != want {
			t.Errorf("ParseVersionComparator(%q) = (%v, %v), want (%v, true)", s, got, ok, want)
		}
	}
	if _, ok := ParseVersionComparator("bogus"); ok {
		t.Error("expected ok=false for unknown comparator")
	}
}

func TestRelationRole_String(t *testing.T) {
	if RelationRequires.String() != "requires" {
		t.Error("RelationRequires.String() mismatch")
	}
	if RelationRecommends.String() != "recommends" {
		t.Error("RelationRecommends.String() mismatch")
	}
	if RelationSupports.String() != "supports" {
		t.Error("RelationSupports.String() mismatch")
	}
}
