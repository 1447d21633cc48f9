package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed config_init_components.yml
var initComponentsYAML []byte

const libraryFile = "library.yml"

const configInitSettingsHeader = "# jsxpdf settings\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n" +
	"# Command-line flags take precedence over these values.\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n\n"

const configInitComponentsHeader = "# jsxpdf component library\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n" +
	"# Components defined here are available to every document.\n" +
	"# Quick reference:  jsxpdf example\n" +
	"# Full docs:        jsxpdf example --full\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n\n"

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise the " + appName + " config directory with starter files",
	Long: "Create the " + appName + " config directory and populate it with a settings\n" +
		"file and a starter component library. A single concrete `title` component is\n" +
		"created so documents can use it immediately. All other examples are commented\n" +
		"out behind sentinel markers and can be refreshed later with\n" +
		"`" + appName + " config update`.\n\n" +
		"Files created:\n" +
		"  <config>/config.yml              settings\n" +
		"  <config>/components/library.yml  component library\n\n" +
		"The default config directory follows the same priority as the main command:\n" +
		"  $JSXPDF_CONFIG_DIR > $XDG_CONFIG_HOME/jsxpdf > ~/.config/jsxpdf",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		yes, _ := cmd.Flags().GetBool("yes")
		dir, _ := cmd.Flags().GetString("dir")

		if dir == "" {
			var err error
			dir, err = resolveConfigDir()
			if err != nil {
				return err
			}
		}

		settings := defaultSettings()
		if !yes {
			if err := promptSettings(&settings); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
		}
		if err := settings.Validate(); err != nil {
			return err
		}
		settingsYAML, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}

		componentsDir := filepath.Join(dir, "components")
		if err := os.MkdirAll(componentsDir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", componentsDir, err)
		}

		settingsPath := filepath.Join(dir, settingsFile)
		libraryPath := filepath.Join(componentsDir, libraryFile)

		if err := writeInitFile(settingsPath, configInitSettingsHeader, settingsYAML, force); err != nil {
			return err
		}
		if err := writeInitFile(libraryPath, configInitComponentsHeader, initComponentsYAML, force); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "initialised %s\n", dir)
		fmt.Fprintf(os.Stderr, "  %s\n", settingsPath)
		fmt.Fprintf(os.Stderr, "  %s\n", libraryPath)
		fmt.Fprintf(os.Stderr, "\nRun `%s list` to see available components.\n", appName)
		return nil
	},
}

// promptSettings asks for the values most users change.
func promptSettings(s *Settings) error {
	size := "A4"
	orientation := s.Preview.PageSize.Orientation
	format := s.LogFormat

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preview page size").
				Options(huh.NewOptions("A4", "A3", "A5", "LETTER", "LEGAL")...).
				Value(&size),
			huh.NewSelect[string]().
				Title("Orientation").
				Options(huh.NewOptions("portrait", "landscape")...).
				Value(&orientation),
			huh.NewSelect[string]().
				Title("Log format").
				Options(huh.NewOptions("console", "json")...).
				Value(&format),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	ps, ok := namedPageSize(size, orientation)
	if !ok {
		return fmt.Errorf("unknown page size %q", size)
	}
	s.Preview.PageSize = ps
	s.LogFormat = format
	return nil
}

func writeInitFile(path, header string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if header != "" {
		fmt.Fprint(f, header)
	}
	_, err = f.Write(content)
	return err
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite existing files")
	configInitCmd.Flags().BoolP("yes", "y", false, "skip the prompts and use the defaults")
	configInitCmd.Flags().String("dir", "", "target config directory (default: auto-resolved)")
}
