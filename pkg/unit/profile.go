package unit

import (
	"strconv"
	"strings"
)

// PanicStrategy selects the unwinding behavior compiled into a unit.
type PanicStrategy string

// Panic strategies.
const (
	PanicUnwind PanicStrategy = "unwind"
	PanicAbort  PanicStrategy = "abort"
)

// Profile holds the optimization and debug settings a unit is compiled
// with. CodegenUnits and Debuginfo are pointers so "not set" survives a
// serialization round trip as null rather than collapsing to zero.
type Profile struct {
	Name            string        `json:"name"`
	OptLevel        string        `json:"opt_level"`
	LTO             string        `json:"lto"`
	CodegenUnits    *int          `json:"codegen_units"`
	Debuginfo       *int          `json:"debuginfo"`
	DebugAssertions bool          `json:"debug_assertions"`
	OverflowChecks  bool          `json:"overflow_checks"`
	Rpath           bool          `json:"rpath"`
	Incremental     bool          `json:"incremental"`
	Panic           PanicStrategy `json:"panic"`
	Strip           string        `json:"strip"`
}

func (p Profile) compare(o Profile) int {
	if c := strings.Compare(p.Name, o.Name); c != 0 {
		return c
	}
	return strings.Compare(p.key(), o.key())
}

func (p Profile) key() string {
	return keyJoin(
		p.Name,
		p.OptLevel,
		p.LTO,
		optIntKey(p.CodegenUnits),
		optIntKey(p.Debuginfo),
		boolKey(p.DebugAssertions),
		boolKey(p.OverflowChecks),
		boolKey(p.Rpath),
		boolKey(p.Incremental),
		string(p.Panic),
		p.Strip,
	)
}

func optIntKey(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
