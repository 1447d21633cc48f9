package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dsl"
	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dslyaml"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	styleName = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	styleSource = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleParam = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	styleRequired = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

var listCmd = &cobra.Command{
	Use:   "list [file ...]",
	Short: "List the components available to documents",
	Long: "List every component defined in the component libraries and in the given\n" +
		"files. Use --pick to choose one interactively and print a usage snippet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		docs, err := a.libraries()
		if err != nil {
			return err
		}
		for _, f := range args {
			doc, err := dslyaml.ParseFile(f)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		eng, err := dslyaml.NewEngineFromDocuments(a.log, docs...)
		if err != nil {
			return err
		}

		entries := collectComponents(eng.Registry())
		if intrinsics, _ := cmd.Flags().GetBool("intrinsics"); intrinsics {
			for _, name := range dsl.Intrinsics() {
				entries = append(entries, componentEntry{name: name, source: "intrinsic"})
			}
		}

		if pick, _ := cmd.Flags().GetBool("pick"); pick {
			e, err := pickComponent(entries)
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil
			}
			if err != nil {
				return err
			}
			return printUsage(os.Stdout, e)
		}
		printComponents(os.Stdout, entries)
		return nil
	},
}

// componentEntry describes one kind a document can use.
type componentEntry struct {
	name   string
	source string // "body", "script" or "intrinsic"
	params []paramEntry
}

type paramEntry struct {
	name     string
	def      any
	required bool
}

func collectComponents(reg *dsl.Registry) []componentEntry {
	var out []componentEntry
	for _, name := range reg.Names() {
		def, _ := reg.Get(name)
		e := componentEntry{name: name, source: "body"}
		if def.Script != "" {
			e.source = "script"
		}
		for p, v := range def.Params {
			e.params = append(e.params, paramEntry{name: p, def: v, required: v == nil})
		}
		sort.Slice(e.params, func(i, j int) bool { return e.params[i].name < e.params[j].name })
		out = append(out, e)
	}
	return out
}

// printComponents prints all entries aligned.
func printComponents(w io.Writer, entries []componentEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no components found")
		return
	}

	maxLen := 0
	for _, e := range entries {
		maxLen = max(maxLen, len(e.name))
	}

	for _, e := range entries {
		line := styleName.Width(maxLen).Render(e.name) + "  " +
			styleSource.Render(fmt.Sprintf("%-9s", "["+e.source+"]"))
		if params := formatParams(e.params); params != "" {
			line += "  " + params
		}
		fmt.Fprintln(w, line)
	}
}

func formatParams(params []paramEntry) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.required {
			parts = append(parts, styleRequired.Render(p.name+"*"))
			continue
		}
		parts = append(parts, styleParam.Render(fmt.Sprintf("%s=%v", p.name, p.def)))
	}
	return strings.Join(parts, " ")
}

func pickComponent(entries []componentEntry) (componentEntry, error) {
	if len(entries) == 0 {
		return componentEntry{}, fmt.Errorf("no components found")
	}
	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return entries[i].name
		},
		fuzzyfinder.WithPromptString("Select component: "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			var b strings.Builder
			_ = printUsage(&b, entries[i])
			return b.String()
		}),
	)
	if err != nil {
		return componentEntry{}, err
	}
	return entries[idx], nil
}

// printUsage writes a node snippet that uses e, with required params left as
// placeholders and optional ones set to their defaults.
func printUsage(w io.Writer, e componentEntry) error {
	node := map[string]any{"kind": e.name}
	if len(e.params) > 0 {
		with := make(map[string]any, len(e.params))
		for _, p := range e.params {
			if p.required {
				with[p.name] = "<required>"
			} else {
				with[p.name] = p.def
			}
		}
		node["with"] = with
	}
	out, err := yaml.Marshal([]any{node})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func init() {
	listCmd.Flags().Bool("pick", false, "select a component interactively and print a usage snippet")
	listCmd.Flags().Bool("intrinsics", false, "include intrinsic kinds")
}
