package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dslyaml"
	"github.com/rs/zerolog"
)

func TestViewModel_Paging(t *testing.T) {
	doc, err := dslyaml.Parse(exampleSimpleYAML)
	if err != nil {
		t.Fatal(err)
	}
	def, err := resolveDocuments(context.Background(), zerolog.Nop(), 512, doc)
	if err != nil {
		t.Fatal(err)
	}

	var m tea.Model = newViewModel("simple.yml", def, testOptions(2))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	vm := m.(viewModel)
	if vm.page != 1 || !strings.Contains(vm.body, "1 / 2") {
		t.Fatalf("expected page 1, got page %d:\n%s", vm.page, vm.body)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	vm = m.(viewModel)
	if vm.page != 2 || !strings.Contains(vm.body, "2 / 2") {
		t.Fatalf("expected page 2, got page %d:\n%s", vm.page, vm.body)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if vm = m.(viewModel); vm.page != 2 {
		t.Fatalf("expected to stay on the last page, got %d", vm.page)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if vm = m.(viewModel); vm.page != 1 {
		t.Fatalf("expected page 1, got %d", vm.page)
	}
	if !strings.Contains(vm.View(), "page 1/2") {
		t.Fatalf("expected the header to show the page, got:\n%s", vm.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected q to quit")
	}
}
