package unit

import (
	"encoding/json"
	"testing"
)

func TestParsePackageID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PackageID
		wantErr bool
	}{
		{
			name:  "WithSource",
			input: "serde 1.0.219 (registry+https://github.com/rust-lang/crates.io-index)",
			want: PackageID{
				Name:    "serde",
				Version: "1.0.219",
				Source:  "registry+https://github.com/rust-lang/crates.io-index",
			},
		},
		{
			name:  "WithoutSource",
			input: "local-pkg 0.1.0",
			want:  PackageID{Name: "local-pkg", Version: "0.1.0"},
		},
		{
			name:    "Empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "NameOnly",
			input:   "serde",
			wantErr: true,
		},
		{
			name:    "UnbalancedSource",
			input:   "serde 1.0.0 (registry",
			wantErr: true,
		},
		{
			name:    "EmptySource",
			input:   "serde 1.0.0 ()",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePackageID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePackageID(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePackageID(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePackageID(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPackageIDStringRoundTrip(t *testing.T) {
	ids := []PackageID{
		{Name: "serde", Version: "1.0.219", Source: "registry+https://github.com/rust-lang/crates.io-index"},
		{Name: "local", Version: "0.0.1"},
	}
	for _, id := range ids {
		parsed, err := ParsePackageID(id.String())
		if err != nil {
			t.Fatalf("reparse %q: %v", id.String(), err)
		}
		if parsed != id {
			t.Errorf("round trip of %+v = %+v", id, parsed)
		}
	}
}

func TestPackageIDJSON(t *testing.T) {
	id := PackageID{Name: "anyhow", Version: "1.0.98", Source: "registry+https://example.com/index"}

	data, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `"anyhow 1.0.98 (registry+https://example.com/index)"`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var back PackageID
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != id {
		t.Errorf("unmarshal = %+v, want %+v", back, id)
	}

	if err := json.Unmarshal([]byte(`"garbage"`), &back); err == nil {
		t.Error("unmarshal of malformed id succeeded, want error")
	}
}
