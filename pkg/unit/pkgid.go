package unit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwollen/cargo/pkg/errors"
)

// PackageID identifies a resolved package: name, version, and the source it
// was drawn from. The wire form is the canonical "name version (source)"
// string, or "name version" for packages without a source (e.g. local path
// development when the resolver leaves it blank).
type PackageID struct {
	Name    string // package name, e.g. "serde"
	Version string // resolved semantic version, e.g. "1.0.219"
	Source  string // source URL, e.g. "registry+https://github.com/rust-lang/crates.io-index"
}

// String returns the canonical wire form.
func (p PackageID) String() string {
	if p.Source == "" {
		return fmt.Sprintf("%s %s", p.Name, p.Version)
	}
	return fmt.Sprintf("%s %s (%s)", p.Name, p.Version, p.Source)
}

// ParsePackageID parses the canonical "name version (source)" form.
// The source component is optional.
func ParsePackageID(s string) (PackageID, error) {
	fields := strings.SplitN(s, " ", 3)
	if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
		return PackageID{}, errors.New(errors.ErrCodeInvalidPackageID, "invalid package id %q", s)
	}
	id := PackageID{Name: fields[0], Version: fields[1]}
	if len(fields) == 3 {
		src := fields[2]
		if !strings.HasPrefix(src, "(") || !strings.HasSuffix(src, ")") {
			return PackageID{}, errors.New(errors.ErrCodeInvalidPackageID, "invalid package id source %q", s)
		}
		id.Source = src[1 : len(src)-1]
		if id.Source == "" {
			return PackageID{}, errors.New(errors.ErrCodeInvalidPackageID, "empty package id source in %q", s)
		}
	}
	return id, nil
}

// MarshalJSON encodes the package id as its canonical string form.
func (p PackageID) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes the canonical string form.
func (p *PackageID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := ParsePackageID(s)
	if err != nil {
		return err
	}
	*p = id
	return nil
}

// compare orders package ids by name, then version, then source.
func (p PackageID) compare(o PackageID) int {
	if c := strings.Compare(p.Name, o.Name); c != 0 {
		return c
	}
	if c := strings.Compare(p.Version, o.Version); c != 0 {
		return c
	}
	return strings.Compare(p.Source, o.Source)
}
