package unitgraph

import (
	"bytes"
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	tg := newTestGraph()
	doc, err := Read(bytes.NewReader(emitToBytes(t, tg, &BuildContext{})))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	dot := ToDOT(doc, DotOptions{})

	if !strings.HasPrefix(dot, "digraph units {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	for _, want := range []string{"app v0.1.0", "lib v0.1.0", "app-build-script v0.1.0"} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing node label %q", want)
		}
	}
	// The root is drawn with a doubled outline, the build-script edge dashed.
	if !strings.Contains(dot, "peripheries=2") {
		t.Error("root unit not marked")
	}
	if !strings.Contains(dot, "style=dashed") {
		t.Error("build-script edge not dashed")
	}
	if strings.Contains(dot, "build_script_build") {
		t.Error("plain output should not include edge labels")
	}
}

func TestToDOTDetailed(t *testing.T) {
	tg := newTestGraph()
	doc, err := Read(bytes.NewReader(emitToBytes(t, tg, &BuildContext{})))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	dot := ToDOT(doc, DotOptions{Detailed: true})
	for _, want := range []string{"profile: dev", "features: default", "build_script_build"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed output missing %q", want)
		}
	}
}
