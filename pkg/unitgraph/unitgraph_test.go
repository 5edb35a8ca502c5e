package unitgraph

import (
	"github.com/jwollen/cargo/pkg/unit"
)

// testInterner builds the units shared by the serializer and loader tests.
type testGraph struct {
	interner *unit.Interner
	app      *unit.Unit
	lib      *unit.Unit
	script   *unit.Unit
	graph    Graph
	roots    []*unit.Unit
}

// newTestGraph builds a small realistic graph:
//
//	app (bin, root) ──normal──▶ lib (lib)
//	app (bin, root) ──build───▶ script (run-custom-build)
func newTestGraph() *testGraph {
	in := unit.NewInterner()

	mk := func(name string, kind unit.TargetKind, mode unit.Mode) *unit.Unit {
		return in.Intern(unit.Unit{
			PkgID:  unit.PackageID{Name: name, Version: "0.1.0", Source: "registry+https://example.com/index"},
			Target: unit.Target{Kind: kind, Name: name, SrcPath: "src/lib.rs", Edition: "2021"},
			Profile: unit.Profile{
				Name:     "dev",
				OptLevel: "0",
				LTO:      "false",
				Panic:    unit.PanicUnwind,
				Strip:    "none",
			},
			Platform: unit.Host,
			Mode:     mode,
			Features: unit.NormalizeFeatures([]string{"default"}),
			DepHash:  0x1234567890abcdef,
		})
	}

	app := mk("app", unit.TargetBin, unit.ModeBuild)
	lib := mk("lib", unit.TargetLib, unit.ModeBuild)
	script := mk("app-build-script", unit.TargetCustomBuild, unit.ModeRunCustomBuild)

	g := Graph{
		app: {
			{Unit: lib, For: PurposeNormal, ExternCrateName: "lib"},
			{Unit: script, For: PurposeBuild, ExternCrateName: "build_script_build"},
		},
		lib:    {},
		script: {},
	}

	return &testGraph{
		interner: in,
		app:      app,
		lib:      lib,
		script:   script,
		graph:    g,
		roots:    []*unit.Unit{app},
	}
}

// serUnit builds a minimal serialized unit for loader tests, depending on
// the given indices.
func serUnit(name string, deps ...int) SerializedUnit {
	sd := make([]SerializedDep, len(deps))
	for i, d := range deps {
		sd[i] = SerializedDep{
			Index:           d,
			ExternCrateName: name + "_dep",
			UnitFor:         PurposeNormal,
		}
	}
	return SerializedUnit{
		PkgID:             unit.PackageID{Name: name, Version: "1.0.0"},
		Target:            unit.Target{Kind: unit.TargetLib, Name: name, SrcPath: "src/lib.rs", Edition: "2021"},
		Profile:           unit.Profile{Name: "dev", Panic: unit.PanicUnwind},
		Mode:              unit.ModeBuild,
		Features:          []string{},
		Rustflags:         []string{},
		Rustdocflags:      []string{},
		ExtraCompilerArgs: []string{},
		Dependencies:      sd,
	}
}
