package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dslyaml"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, maxBody int64) *httptest.Server {
	t.Helper()
	lib, err := dslyaml.Parse([]byte("components:\n  hello:\n    params: { name: ~ }\n    body: { kind: text, children: [\"Hello, {{ .params.name }}\"] }\n"))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(newServer(zerolog.Nop(), []dslyaml.Document{lib}, testOptions(1), maxBody))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/yaml", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return resp, out
}

const testDocument = `
document:
  kind: document
  children:
    - kind: footer
      page: "{{ .page }}/{{ .pages }}"
    - kind: content
      children:
        - kind: hello
          with: { name: Ada }
`

func TestServer_Render(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp, out := post(t, srv.URL+"/render?pages=2", testDocument)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, out)
	}
	if _, err := uuid.Parse(resp.Header.Get(renderIDHeader)); err != nil {
		t.Fatalf("expected a uuid render id, got %q", resp.Header.Get(renderIDHeader))
	}
	footer, ok := out["footer"].([]any)
	if !ok || len(footer) != 2 {
		t.Fatalf("expected two footer pages, got %#v", out["footer"])
	}
	content := out["content"].(map[string]any)["stack"].([]any)
	if text := content[0].(map[string]any)["text"]; text != "Hello, Ada" {
		t.Fatalf("expected library component output, got %#v", content)
	}
}

func TestServer_RenderErrors(t *testing.T) {
	srv := newTestServer(t, 256)

	t.Run("unknown kind", func(t *testing.T) {
		resp, out := post(t, srv.URL+"/render", "document:\n  kind: document\n  children: [{ kind: panel }]\n")
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", resp.StatusCode)
		}
		if out["family"] != "dsl" || out["id"] != resp.Header.Get(renderIDHeader) {
			t.Fatalf("unexpected error body %#v", out)
		}
	})

	t.Run("placement", func(t *testing.T) {
		resp, out := post(t, srv.URL+"/render", "document:\n  kind: document\n  children: [{ kind: stack }]\n")
		if resp.StatusCode != http.StatusUnprocessableEntity || out["family"] != "placement" {
			t.Fatalf("expected a placement error, got %d %#v", resp.StatusCode, out)
		}
	})

	t.Run("bad pages", func(t *testing.T) {
		resp, _ := post(t, srv.URL+"/render?pages=0", testDocument)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("body too large", func(t *testing.T) {
		resp, _ := post(t, srv.URL+"/render", testDocument+strings.Repeat("#", 512))
		if resp.StatusCode != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", resp.StatusCode)
		}
	})
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if health.Status != "ok" || health.Goroutines == 0 {
		t.Fatalf("unexpected health %#v", health)
	}

	post(t, srv.URL+"/render", testDocument)

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `jsxpdf_renders_total{outcome="ok"} 1`) {
		t.Fatalf("expected the render to be counted, got:\n%s", body)
	}
}
