package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwollen/cargo/pkg/errors"
)

func TestInspectCmdDot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "graph.dot")

	cmd := newInspectCmd()
	cmd.SetArgs([]string{"--format", "dot", "-o", out, writeDoc(t)})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	dot := string(data)
	if !strings.Contains(dot, "digraph units") {
		t.Errorf("output is not DOT:\n%s", dot)
	}
	if !strings.Contains(dot, "app v1.0.0") || !strings.Contains(dot, "lib v1.0.0") {
		t.Errorf("output missing unit labels:\n%s", dot)
	}
}

func TestInspectCmdUnknownFormat(t *testing.T) {
	cmd := newInspectCmd()
	cmd.SetArgs([]string{"--format", "yaml", writeDoc(t)})
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestInspectCmdRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit-graph.json")
	doc := `{"version": 1, "units": [], "roots": [5]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	cmd := newInspectCmd()
	cmd.SetArgs([]string{path})
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for dangling root")
	}
	if !errors.Is(err, errors.ErrCodeDanglingIndex) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeDanglingIndex)
	}
}
