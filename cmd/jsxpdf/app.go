package main

import (
	"os"

	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dslyaml"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagComponentDirs []string
	flagLogLevel      string
	flagLogFormat     string
	flagMaxDepth      int
)

// app carries what every command needs once flags and settings are merged.
type app struct {
	configDir     string
	settings      Settings
	componentDirs []string
	log           zerolog.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}
	settings, err := loadSettings(configDir)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		settings.LogFormat = flagLogFormat
	}
	if flags.Changed("max-depth") {
		settings.MaxDepth = flagMaxDepth
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &app{
		configDir:     configDir,
		settings:      settings,
		componentDirs: resolveComponentDirs(configDir, flagComponentDirs),
		log:           newLogger(os.Stderr, settings.LogLevel, settings.LogFormat),
	}, nil
}

// libraries loads the component libraries visible to every document.
func (a *app) libraries() ([]dslyaml.Document, error) {
	docs, err := loadLibraries(a.componentDirs)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Strs("dirs", a.componentDirs).Int("files", len(docs)).Msg("component libraries loaded")
	return docs, nil
}

func (a *app) renderOptions() renderOptions {
	return renderOptions{
		Pages:    a.settings.Preview.Pages,
		PageSize: a.settings.Preview.PageSize,
		MaxDepth: a.settings.MaxDepth,
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringArrayVar(&flagComponentDirs, "components", nil,
		"additional component library directory (repeatable; default: ~/.config/"+appName+"/components)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flagLogFormat, "log-format", "", "log format: console or json")
	pf.IntVar(&flagMaxDepth, "max-depth", 0, "maximum tree depth, 0 disables the bound")
}
