package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:embed example_simple.yml
var exampleSimpleYAML []byte

//go:embed example_full.yml
var exampleFullYAML []byte

const exampleSimpleHeader = `# jsxpdf: quick reference
# Run:          jsxpdf <this-file>
# Full example: jsxpdf example --full

`

const exampleFullHeader = `# jsxpdf: full reference
# ─────────────────────────────────────────────────────────────────────────────
# This file shows every feature of the component document format.
# Render it with:  jsxpdf <this-file> --pages 2
# Browse it with:  jsxpdf view <this-file>
# ─────────────────────────────────────────────────────────────────────────────

`

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a reference document covering all DSL features",
	Long: "Print a jsxpdf YAML document that demonstrates every DSL feature.\n" +
		"By default a concise quick-reference is printed. Use --full for the annotated\n" +
		"complete example. Use --output to write to a file instead of stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")

		header, body := exampleSimpleHeader, exampleSimpleYAML
		if full {
			header, body = exampleFullHeader, exampleFullYAML
		}

		output, _ := cmd.Flags().GetString("output")
		w := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		fmt.Fprint(w, header)
		if _, err := w.Write(body); err != nil {
			return err
		}

		if output != "" {
			fmt.Fprintf(os.Stderr, "written to %s\n", output)
		}
		return nil
	},
}

func init() {
	exampleCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	exampleCmd.Flags().Bool("full", false, "print the full annotated example instead of the quick reference")
}
