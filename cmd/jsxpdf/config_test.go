package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSplitColon(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a::b:", []string{"a", "b"}},
	}
	for _, c := range cases {
		if got := splitColon(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitColon(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("env wins", func(t *testing.T) {
		t.Setenv(envConfigDir, "/tmp/explicit")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := resolveConfigDir()
		if err != nil || dir != "/tmp/explicit" {
			t.Fatalf("expected /tmp/explicit, got %q, %v", dir, err)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := resolveConfigDir()
		if err != nil || dir != filepath.Join("/tmp/xdg", appName) {
			t.Fatalf("unexpected dir %q, %v", dir, err)
		}
	})
}

func TestResolveComponentDirs(t *testing.T) {
	t.Setenv(envComponents, "/a:/b")
	got := resolveComponentDirs("/cfg", []string{"/c"})
	want := []string{filepath.Join("/cfg", "components"), "/a", "/b", "/c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestLoadLibraries(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("lib.yml", "components:\n  hello: { body: { kind: text, children: [hi] } }\n")

	docs, err := loadLibraries([]string{dir, filepath.Join(dir, "missing")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 library, got %d", len(docs))
	}

	write("doc.yml", "document: { kind: document }\n")
	_, err = loadLibraries([]string{dir})
	if err == nil || !strings.Contains(err.Error(), "cannot define a document") {
		t.Fatalf("expected a document-in-library error, got %v", err)
	}
}
