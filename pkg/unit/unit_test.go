package unit

import (
	"slices"
	"testing"
)

// testUnit returns a fully populated unit for identity tests.
func testUnit(name, version string) Unit {
	cu := 16
	return Unit{
		PkgID:  PackageID{Name: name, Version: version, Source: "registry+https://example.com/index"},
		Target: Target{Kind: TargetLib, Name: name, SrcPath: "src/lib.rs", Edition: "2021"},
		Profile: Profile{
			Name:         "dev",
			OptLevel:     "0",
			LTO:          "false",
			CodegenUnits: &cu,
			Panic:        PanicUnwind,
			Strip:        "none",
		},
		Platform: Host,
		Mode:     ModeBuild,
		Features: []string{"default", "std"},
		DepHash:  0xdeadbeef,
	}
}

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()

	a := in.Intern(testUnit("serde", "1.0.0"))
	b := in.Intern(testUnit("serde", "1.0.0"))
	c := in.Intern(testUnit("serde", "1.0.1"))

	if a != b {
		t.Error("attribute-identical units interned to distinct pointers")
	}
	if a == c {
		t.Error("distinct units interned to the same pointer")
	}
	if in.Len() != 2 {
		t.Errorf("Len() = %d, want 2", in.Len())
	}
}

func TestKeyDistinguishesAttributes(t *testing.T) {
	base := testUnit("serde", "1.0.0")

	tests := []struct {
		name   string
		mutate func(*Unit)
	}{
		{"Mode", func(u *Unit) { u.Mode = ModeTest }},
		{"Platform", func(u *Unit) { u.Platform = ForTarget("x86_64-unknown-linux-gnu") }},
		{"Features", func(u *Unit) { u.Features = []string{"default"} }},
		{"Rustflags", func(u *Unit) { u.Rustflags = []string{"-Copt-level=3"} }},
		{"IsStd", func(u *Unit) { u.IsStd = true }},
		{"DepHash", func(u *Unit) { u.DepHash = 1 }},
		{"Artifact", func(u *Unit) { u.Artifact = true }},
		{"ArtifactTarget", func(u *Unit) {
			ct := CompileTarget("wasm32-unknown-unknown")
			u.ArtifactTargetForFeatures = &ct
		}},
		{"SkipFreshnessCheck", func(u *Unit) { u.SkipFreshnessCheck = true }},
		{"ProfileName", func(u *Unit) { u.Profile.Name = "release" }},
		{"TargetKind", func(u *Unit) { u.Target.Kind = TargetBin }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := base
			// Copy slice-valued fields so mutations do not alias base.
			mutated.Features = slices.Clone(base.Features)
			tt.mutate(&mutated)
			if mutated.Key() == base.Key() {
				t.Errorf("mutating %s did not change the structural key", tt.name)
			}
		})
	}
}

func TestCompareIsTotalAndStable(t *testing.T) {
	units := []*Unit{}
	for _, name := range []string{"zlib", "anyhow", "serde", "anyhow"} {
		u := testUnit(name, "1.0.0")
		units = append(units, &u)
	}
	test := testUnit("anyhow", "1.0.0")
	test.Mode = ModeTest
	units = append(units, &test)

	sorted := slices.Clone(units)
	slices.SortFunc(sorted, Compare)

	// Sorting a shuffled copy yields the same sequence of keys.
	shuffled := []*Unit{units[4], units[2], units[0], units[3], units[1]}
	slices.SortFunc(shuffled, Compare)
	for i := range sorted {
		if Compare(sorted[i], shuffled[i]) != 0 {
			t.Fatalf("sort order differs at %d: %s vs %s", i, sorted[i].PkgID, shuffled[i].PkgID)
		}
	}

	// Package name dominates the order.
	if sorted[0].PkgID.Name != "anyhow" || sorted[len(sorted)-1].PkgID.Name != "zlib" {
		t.Errorf("unexpected order: first=%s last=%s", sorted[0].PkgID, sorted[len(sorted)-1].PkgID)
	}

	for _, u := range units {
		if Compare(u, u) != 0 {
			t.Error("Compare(u, u) != 0")
		}
	}
}

func TestNormalizeFeatures(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"Nil", nil, nil},
		{"Sorted", []string{"std", "default", "std", "alloc"}, []string{"alloc", "default", "std"}},
		{"Single", []string{"derive"}, []string{"derive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeFeatures(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("NormalizeFeatures(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
