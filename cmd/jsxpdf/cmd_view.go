package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
	"github.com/spf13/cobra"
)

var (
	styleViewTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleViewHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleViewErr = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse the rendered definition page by page",
	Long: "Render a document and open it in a pager. Header and footer bodies are\n" +
		"shown as they appear on the current page; use ←/→ to change page.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		opts, err := a.previewOptions(cmd)
		if err != nil {
			return err
		}
		docs, err := a.loadDocumentFile(args[0])
		if err != nil {
			return err
		}
		def, err := resolveDocuments(cmd.Context(), a.log, opts.MaxDepth, docs...)
		if err != nil {
			return err
		}

		m := newViewModel(args[0], def, opts)
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

// viewModel pages through a resolved definition.
type viewModel struct {
	file     string
	def      jsxpdf.Definition
	opts     renderOptions
	page     int
	body     string
	err      error
	viewport viewport.Model
	ready    bool
}

func newViewModel(file string, def jsxpdf.Definition, opts renderOptions) viewModel {
	m := viewModel{file: file, def: def, opts: opts, page: 1}
	m.renderPage()
	return m
}

// renderPage recomputes the JSON for the current page.
func (m *viewModel) renderPage() {
	m.body, m.err = "", nil
	shape, err := pageDefinition(m.def, m.page, m.opts.Pages, m.opts.PageSize.value())
	if err != nil {
		m.err = err
		return
	}
	out, err := marshalDefinition(shape, false)
	if err != nil {
		m.err = err
		return
	}
	m.body = string(out)
}

func (m viewModel) content() string {
	if m.err != nil {
		return styleViewErr.Render(m.err.Error())
	}
	return m.body
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.page > 1 {
				m.page--
				m.renderPage()
				m.viewport.SetContent(m.content())
			}
			return m, nil
		case "right", "l":
			if m.page < m.opts.Pages {
				m.page++
				m.renderPage()
				m.viewport.SetContent(m.content())
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.viewport.SetContent(m.content())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewModel) header() string {
	return styleViewTitle.Render(fmt.Sprintf("%s  page %d/%d", m.file, m.page, m.opts.Pages))
}

func (m viewModel) footer() string {
	return styleViewHelp.Render(fmt.Sprintf("←/→ page • ↑/↓ scroll • q quit  %3.f%%", m.viewport.ScrollPercent()*100))
}

func (m viewModel) View() string {
	if !m.ready {
		return "\n  loading..."
	}
	return strings.Join([]string{m.header(), m.viewport.View(), m.footer()}, "\n")
}

func init() {
	addPreviewFlags(viewCmd)
}
