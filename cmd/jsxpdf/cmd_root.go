package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	flagPages       int
	flagPageSize    string
	flagOrientation string
	flagPageWidth   float64
	flagPageHeight  float64
	flagCompact     bool
	flagOutput      string
	flagWatch       bool
)

var rootCmd = &cobra.Command{
	Use:   appName + " [file]",
	Short: "Resolve component documents into pdfmake document definitions",
	Long: "Resolve a YAML component document into a pdfmake document definition and\n" +
		"print it as JSON.\n\n" +
		"Component libraries are loaded from ~/.config/" + appName + "/components, $" + envComponents + "\n" +
		"and --components. Header and footer bodies that depend on the page are\n" +
		"expanded for --pages pages.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runRender(cmd, args[0])
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a document file to JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args[0])
	},
}

func runRender(cmd *cobra.Command, file string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	opts, err := a.previewOptions(cmd)
	if err != nil {
		return err
	}

	render := func() error {
		def, err := a.renderFile(cmd.Context(), file, opts)
		if err != nil {
			return err
		}
		out, err := marshalDefinition(def, flagCompact)
		if err != nil {
			return err
		}
		return writeOutput(flagOutput, out)
	}

	if !flagWatch {
		return render()
	}
	dirs := append([]string{filepath.Dir(file)}, a.componentDirs...)
	a.log.Info().Str("file", file).Msg("watching for changes, press Ctrl+C to stop")
	return watch(cmd.Context(), a.log, dirs, render)
}

// previewOptions merges the page flags of cmd over the preview settings.
func (a *app) previewOptions(cmd *cobra.Command) (renderOptions, error) {
	opts := a.renderOptions()
	flags := cmd.Flags()

	if flags.Changed("pages") {
		opts.Pages = flagPages
	}

	size := opts.PageSize
	orientation := size.Orientation
	if flags.Changed("orientation") {
		orientation = flagOrientation
	}
	switch {
	case flags.Changed("page-size"):
		named, ok := namedPageSize(flagPageSize, orientation)
		if !ok {
			return opts, fmt.Errorf("unknown page size %q", flagPageSize)
		}
		size = named
	case orientation != size.Orientation:
		size.Width, size.Height = size.Height, size.Width
		size.Orientation = orientation
	}
	if flags.Changed("page-width") {
		size.Width = flagPageWidth
	}
	if flags.Changed("page-height") {
		size.Height = flagPageHeight
	}
	opts.PageSize = size

	check := a.settings
	check.Preview = PreviewSettings{Pages: opts.Pages, PageSize: opts.PageSize}
	if err := check.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func addPreviewFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&flagPages, "pages", 1, "number of pages to expand header and footer bodies for")
	f.StringVar(&flagPageSize, "page-size", "", "named page size: A3, A4, A5, LETTER or LEGAL")
	f.StringVar(&flagOrientation, "orientation", "", "page orientation: portrait or landscape")
	f.Float64Var(&flagPageWidth, "page-width", 0, "page width in points")
	f.Float64Var(&flagPageHeight, "page-height", 0, "page height in points")
}

func addRenderFlags(cmd *cobra.Command) {
	addPreviewFlags(cmd)
	f := cmd.Flags()
	f.BoolVar(&flagCompact, "compact", false, "print JSON on a single line")
	f.StringVarP(&flagOutput, "output", "o", "", "write to file instead of stdout")
	f.BoolVarP(&flagWatch, "watch", "w", false, "render again whenever a document or component file changes")
}

func init() {
	addRenderFlags(rootCmd)
	addRenderFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}
