package unit

import (
	"slices"
	"strconv"
	"strings"
	"sync"
)

// keySep separates fields inside a structural key. Unit separator and
// record separator control characters cannot appear in any attribute value.
const (
	keySep  = "\x1f"
	listSep = "\x1e"
)

func keyJoin(parts ...string) string { return strings.Join(parts, keySep) }

// Unit is one discrete build action: a target of a package, compiled with
// a specific profile, for a specific platform, in a specific mode, with a
// resolved feature set. Identity is structural over every field below;
// build units with identical attributes are the same graph node.
type Unit struct {
	PkgID    PackageID
	Target   Target
	Profile  Profile
	Platform CompileKind
	Mode     Mode

	// Features is the resolved set of active feature names, sorted and
	// deduplicated by the resolver.
	Features []string

	// Rustflags and Rustdocflags are extra compiler and doc-compiler
	// flags scoped to this unit.
	Rustflags    []string
	Rustdocflags []string

	// IsStd marks units belonging to the standard library build.
	IsStd bool

	// DepHash is an opaque fingerprint of the unit's dependencies,
	// computed and consumed by the caching layer.
	DepHash uint64

	// Artifact marks units built for consumption as a build-time
	// artifact rather than linked output. ArtifactTargetForFeatures, when
	// non-nil, overrides the platform used to compute the artifact's
	// features.
	Artifact                  bool
	ArtifactTargetForFeatures *CompileTarget

	// SkipFreshnessCheck bypasses the up-to-date check so the unit is
	// always rebuilt.
	SkipFreshnessCheck bool
}

// Key returns the canonical structural key covering every identity field.
// Two units are the same graph node exactly when their keys are equal.
func (u *Unit) Key() string {
	artifactTarget := "-"
	if u.ArtifactTargetForFeatures != nil {
		artifactTarget = string(*u.ArtifactTargetForFeatures)
	}
	return keyJoin(
		u.PkgID.Name,
		u.PkgID.Version,
		u.PkgID.Source,
		u.Target.key(),
		u.Profile.key(),
		string(u.Platform.Target),
		string(u.Mode),
		strings.Join(u.Features, listSep),
		strings.Join(u.Rustflags, listSep),
		strings.Join(u.Rustdocflags, listSep),
		boolKey(u.IsStd),
		strconv.FormatUint(u.DepHash, 16),
		boolKey(u.Artifact),
		artifactTarget,
		boolKey(u.SkipFreshnessCheck),
	)
}

// Compare totally orders units for canonical output. Package identity
// sorts first so serialized documents group by package; the remaining
// fields break ties deterministically. Compare never consults pointer
// values, so the order is stable across process runs.
func Compare(a, b *Unit) int {
	if c := a.PkgID.compare(b.PkgID); c != 0 {
		return c
	}
	if c := a.Target.compare(b.Target); c != 0 {
		return c
	}
	if c := a.Profile.compare(b.Profile); c != 0 {
		return c
	}
	if c := a.Platform.compare(b.Platform); c != 0 {
		return c
	}
	if c := strings.Compare(string(a.Mode), string(b.Mode)); c != 0 {
		return c
	}
	return strings.Compare(a.Key(), b.Key())
}

// NormalizeFeatures sorts and deduplicates a feature list into the
// canonical ordered sequence stored on a unit. The input is not modified.
func NormalizeFeatures(features []string) []string {
	if len(features) == 0 {
		return nil
	}
	out := slices.Clone(features)
	slices.Sort(out)
	return slices.Compact(out)
}

// Interner deduplicates units structurally: it returns the same *Unit for
// every attribute-identical value, so a graph keyed on *Unit can never
// hold two separately-stored nodes with equal attributes.
//
// An Interner is safe for concurrent use.
type Interner struct {
	mu    sync.Mutex
	units map[string]*Unit
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{units: make(map[string]*Unit)}
}

// Intern returns the canonical *Unit for u's attribute values, storing a
// copy of u on first sight.
func (in *Interner) Intern(u Unit) *Unit {
	key := u.Key()
	in.mu.Lock()
	defer in.mu.Unlock()
	if canonical, ok := in.units[key]; ok {
		return canonical
	}
	stored := u
	in.units[key] = &stored
	return &stored
}

// Len returns the number of distinct units interned.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.units)
}
