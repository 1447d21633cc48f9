package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const settingsFile = "config.yml"

// Settings is the content of <config>/config.yml. Command-line flags take
// precedence over it.
type Settings struct {
	LogLevel  string          `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string          `yaml:"log_format" validate:"oneof=console json"`
	MaxDepth  int             `yaml:"max_depth" validate:"gte=0"`
	Serve     ServeSettings   `yaml:"serve"`
	Preview   PreviewSettings `yaml:"preview"`
}

type ServeSettings struct {
	Addr         string `yaml:"addr" validate:"hostname_port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" validate:"gt=0"`
}

// PreviewSettings controls how page-dependent sections are expanded when a
// definition is printed.
type PreviewSettings struct {
	Pages    int      `yaml:"pages" validate:"gte=1"`
	PageSize PageSize `yaml:"page_size"`
}

// PageSize is handed to header and footer bodies as pageSize.
type PageSize struct {
	Width       float64 `yaml:"width" validate:"gt=0"`
	Height      float64 `yaml:"height" validate:"gt=0"`
	Orientation string  `yaml:"orientation" validate:"oneof=portrait landscape"`
}

func (p PageSize) value() map[string]any {
	return map[string]any{
		"width":       p.Width,
		"height":      p.Height,
		"orientation": p.Orientation,
	}
}

var pageSizes = map[string]PageSize{
	"A3":     {Width: 841.89, Height: 1190.55},
	"A4":     {Width: 595.28, Height: 841.89},
	"A5":     {Width: 419.53, Height: 595.28},
	"LETTER": {Width: 612, Height: 792},
	"LEGAL":  {Width: 612, Height: 1008},
}

// namedPageSize returns the size called name in the given orientation.
func namedPageSize(name, orientation string) (PageSize, bool) {
	p, ok := pageSizes[strings.ToUpper(name)]
	if !ok {
		return PageSize{}, false
	}
	p.Orientation = orientation
	if orientation == "landscape" {
		p.Width, p.Height = p.Height, p.Width
	}
	return p, true
}

func defaultSettings() Settings {
	a4, _ := namedPageSize("A4", "portrait")
	return Settings{
		LogLevel:  "info",
		LogFormat: "console",
		MaxDepth:  512,
		Serve: ServeSettings{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Preview: PreviewSettings{
			Pages:    1,
			PageSize: a4,
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate reports every invalid field, named by its YAML path.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: %v does not satisfy %s", field, fe.Value(), rule))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// loadSettings reads <configDir>/config.yml over the defaults. A missing file
// yields the defaults.
func loadSettings(configDir string) (Settings, error) {
	s := defaultSettings()
	path := filepath.Join(configDir, settingsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := parseSettings(data, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func parseSettings(data []byte, s *Settings) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return s.Validate()
}
