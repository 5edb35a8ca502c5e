package unit

import (
	"encoding/json"
	"strings"

	"github.com/jwollen/cargo/pkg/errors"
)

// CompileTarget names an explicit compilation target triple,
// e.g. "x86_64-unknown-linux-gnu".
type CompileTarget string

// ParseCompileTarget validates a target triple name. Triples are
// opaque to this subsystem beyond basic well-formedness.
func ParseCompileTarget(s string) (CompileTarget, error) {
	if s == "" {
		return "", errors.New(errors.ErrCodeInvalidTriple, "target triple cannot be empty")
	}
	if strings.ContainsAny(s, " \t\n") {
		return "", errors.New(errors.ErrCodeInvalidTriple, "invalid target triple %q", s)
	}
	return CompileTarget(s), nil
}

// CompileKind is the platform a unit is built for: the host, or an
// explicit [CompileTarget]. The zero value is the host. The wire form is
// null for host and the triple string otherwise.
type CompileKind struct {
	// Target is empty for host builds.
	Target CompileTarget
}

// Host is the compile kind for units built for the build machine itself
// (build scripts, proc-macros, and host-mode builds).
var Host = CompileKind{}

// ForTarget returns the compile kind for an explicit target triple.
func ForTarget(t CompileTarget) CompileKind { return CompileKind{Target: t} }

// IsHost reports whether the unit builds for the host platform.
func (k CompileKind) IsHost() bool { return k.Target == "" }

// String returns the triple, or "host" for host builds.
func (k CompileKind) String() string {
	if k.IsHost() {
		return "host"
	}
	return string(k.Target)
}

// MarshalJSON encodes host as null and an explicit target as its triple.
func (k CompileKind) MarshalJSON() ([]byte, error) {
	if k.IsHost() {
		return []byte("null"), nil
	}
	return json.Marshal(string(k.Target))
}

// UnmarshalJSON decodes null as host and a string as an explicit target.
func (k *CompileKind) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = Host
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := ParseCompileTarget(s)
	if err != nil {
		return err
	}
	*k = ForTarget(t)
	return nil
}

func (k CompileKind) compare(o CompileKind) int {
	return strings.Compare(string(k.Target), string(o.Target))
}

// Mode is the kind of compilation performed for a unit.
type Mode string

// Compile modes.
const (
	ModeBuild          Mode = "build"
	ModeCheck          Mode = "check"
	ModeTest           Mode = "test"
	ModeBench          Mode = "bench"
	ModeDoc            Mode = "doc"
	ModeDoctest        Mode = "doctest"
	ModeRunCustomBuild Mode = "run-custom-build"
)

// Valid reports whether m is a known compile mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeBuild, ModeCheck, ModeTest, ModeBench, ModeDoc, ModeDoctest, ModeRunCustomBuild:
		return true
	}
	return false
}

// IsDoc reports whether the mode invokes the documentation compiler.
func (m Mode) IsDoc() bool { return m == ModeDoc || m == ModeDoctest }
