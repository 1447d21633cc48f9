package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dslyaml"
)

func TestReplaceExampleBlock(t *testing.T) {
	block := examplesStartMarker + "\n# new\n" + examplesEndMarker

	t.Run("replaces the marked block", func(t *testing.T) {
		in := "keep: 1\n" + examplesStartMarker + "\n# old\n" + examplesEndMarker + "\ntail: 2\n"
		out, changed := replaceExampleBlock([]byte(in), []byte(block))
		if !changed {
			t.Fatal("expected a change")
		}
		want := "keep: 1\n" + block + "\ntail: 2\n"
		if string(out) != want {
			t.Fatalf("expected %q, got %q", want, out)
		}
	})

	t.Run("unchanged block", func(t *testing.T) {
		in := "keep: 1\n" + block + "\n"
		if _, changed := replaceExampleBlock([]byte(in), []byte(block)); changed {
			t.Fatal("expected no change")
		}
	})

	t.Run("no markers", func(t *testing.T) {
		in := "keep: 1\n"
		out, changed := replaceExampleBlock([]byte(in), []byte(block))
		if changed || string(out) != in {
			t.Fatalf("expected content untouched, got %q", out)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		in := examplesEndMarker + "\n" + examplesStartMarker + "\n"
		if _, changed := replaceExampleBlock([]byte(in), []byte(block)); changed {
			t.Fatal("expected no change for a malformed block")
		}
	})
}

func TestEmbeddedLibrary(t *testing.T) {
	doc, err := dslyaml.Parse(initComponentsYAML)
	if err != nil {
		t.Fatalf("starter library does not parse: %v", err)
	}
	if _, ok := doc.Components["title"]; !ok {
		t.Fatalf("expected the starter library to define title, got %#v", doc.Components)
	}

	block := extractExampleBlock(initComponentsYAML)
	if block == nil {
		t.Fatal("expected an example block")
	}
	if !strings.HasPrefix(string(block), examplesStartMarker) || !strings.HasSuffix(string(block), examplesEndMarker) {
		t.Fatalf("block is not delimited by the markers: %q", block)
	}
}

func TestUpdateExampleBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), libraryFile)
	stale := "components: {}\n" + examplesStartMarker + "\n# stale\n" + examplesEndMarker + "\n"
	if err := os.WriteFile(path, []byte(stale), 0o644); err != nil {
		t.Fatal(err)
	}

	changed, err := updateExampleBlock(path, extractExampleBlock(initComponentsYAML))
	if err != nil || !changed {
		t.Fatalf("expected an update, got %v, %v", changed, err)
	}
	got, _ := os.ReadFile(path)
	if strings.Contains(string(got), "# stale") || !strings.Contains(string(got), "numbered:") {
		t.Fatalf("unexpected content:\n%s", got)
	}

	changed, err = updateExampleBlock(filepath.Join(t.TempDir(), "missing.yml"), []byte("x"))
	if err != nil || changed {
		t.Fatalf("expected a missing file to be skipped, got %v, %v", changed, err)
	}
}
