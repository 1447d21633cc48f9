package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const examplesStartMarker = "# @" + appName + "-examples-start"
const examplesEndMarker = "# @" + appName + "-examples-end"

var configUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh commented examples and check settings in an existing config directory",
	Long: "Update the commented example block (between @jsxpdf-examples-start and\n" +
		"@jsxpdf-examples-end markers) in components/library.yml and check that\n" +
		"config.yml is still valid.\n\n" +
		"Only files that contain the sentinel markers are modified.\n" +
		"Files without markers are left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			var err error
			dir, err = resolveConfigDir()
			if err != nil {
				return err
			}
		}

		if _, err := loadSettings(dir); err != nil {
			return err
		}

		libraryPath := filepath.Join(dir, "components", libraryFile)
		changed, err := updateExampleBlock(libraryPath, extractExampleBlock(initComponentsYAML))
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(os.Stderr, "updated %s\n", libraryPath)
		} else {
			fmt.Fprintln(os.Stderr, "everything up to date")
		}
		return nil
	},
}

// exampleBounds returns the line indexes of the start and end markers, or
// -1, -1 when the block is missing or malformed.
func exampleBounds(lines [][]byte) (int, int) {
	start := -1
	for i, line := range lines {
		switch string(bytes.TrimRight(line, " \t")) {
		case examplesStartMarker:
			start = i
		case examplesEndMarker:
			if start == -1 {
				return -1, -1
			}
			return start, i
		}
	}
	return -1, -1
}

// extractExampleBlock returns the marker lines and everything between them,
// or nil if content has no block.
func extractExampleBlock(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	start, end := exampleBounds(lines)
	if start == -1 {
		return nil
	}
	return bytes.Join(lines[start:end+1], []byte("\n"))
}

// updateExampleBlock replaces the sentinel block in the file at path with newBlock.
// Returns true if the file was modified.
func updateExampleBlock(path string, newBlock []byte) (bool, error) {
	if newBlock == nil {
		return false, nil
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	updated, changed := replaceExampleBlock(existing, newBlock)
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// replaceExampleBlock swaps the marked block in content for newBlock and
// reports whether anything changed.
func replaceExampleBlock(content, newBlock []byte) ([]byte, bool) {
	lines := bytes.Split(content, []byte("\n"))
	start, end := exampleBounds(lines)
	if start == -1 || bytes.Equal(bytes.Join(lines[start:end+1], []byte("\n")), newBlock) {
		return content, false
	}

	out := make([][]byte, 0, len(lines))
	out = append(out, lines[:start]...)
	out = append(out, bytes.Split(newBlock, []byte("\n"))...)
	out = append(out, lines[end+1:]...)
	return bytes.Join(out, []byte("\n")), true
}

func init() {
	configUpdateCmd.Flags().String("dir", "", "target config directory (default: auto-resolved)")
}
