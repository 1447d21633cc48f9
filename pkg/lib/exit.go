package lib

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
)

var (
	styleLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	styleFamily = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var families = []struct {
	target error
	name   string
}{
	{jsxpdf.ErrPlacement, "placement"},
	{jsxpdf.ErrRootType, "root"},
	{jsxpdf.ErrSuspended, "suspension"},
	{jsxpdf.ErrInvalidValue, "value"},
	{jsxpdf.ErrDepthExceeded, "depth"},
}

// Family names the resolution error family err belongs to, or "other".
func Family(err error) string {
	for _, f := range families {
		if errors.Is(err, f.target) {
			return f.name
		}
	}
	return "other"
}

// Exit prints the error labelled with its family and exits the program with
// code 1.
func Exit(family string, err error) {
	fmt.Fprintln(os.Stderr, Format(family, err))
	os.Exit(1)
}

// Format renders the line Exit prints.
func Format(family string, err error) string {
	label := styleLabel.Render("Error:")
	if family != "" && family != "other" {
		label += " " + styleFamily.Render("["+family+"]")
	}
	return label + " " + err.Error()
}
