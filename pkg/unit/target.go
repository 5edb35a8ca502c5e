package unit

import "strings"

// TargetKind classifies what a target produces.
type TargetKind string

// Target kinds. CustomBuild is the build-script target compiled and run
// before its owning package.
const (
	TargetLib         TargetKind = "lib"
	TargetBin         TargetKind = "bin"
	TargetTest        TargetKind = "test"
	TargetBench       TargetKind = "bench"
	TargetExample     TargetKind = "example"
	TargetCustomBuild TargetKind = "custom-build"
)

// Target describes one buildable artifact within a package.
type Target struct {
	Kind    TargetKind `json:"kind"`
	Name    string     `json:"name"`
	SrcPath string     `json:"src_path"`
	Edition string     `json:"edition"`
}

// IsCustomBuild reports whether the target is a build script.
func (t Target) IsCustomBuild() bool { return t.Kind == TargetCustomBuild }

func (t Target) compare(o Target) int {
	if c := strings.Compare(string(t.Kind), string(o.Kind)); c != 0 {
		return c
	}
	if c := strings.Compare(t.Name, o.Name); c != 0 {
		return c
	}
	if c := strings.Compare(t.SrcPath, o.SrcPath); c != 0 {
		return c
	}
	return strings.Compare(t.Edition, o.Edition)
}

func (t Target) key() string {
	return keyJoin(string(t.Kind), t.Name, t.SrcPath, t.Edition)
}
