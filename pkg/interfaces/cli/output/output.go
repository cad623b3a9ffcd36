package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Formats supported by every writer
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string // when set, results are saved to files instead of Writer
	Verbose   bool
	Writer    io.Writer
}

// ValidateFormat reports whether a format name is supported
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (expected text, json or csv)", format)
	}
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// emit sends rendered content to the configured writer, or to OutputDir/name
func emit(config Config, name string, render func(w io.Writer) error) error {
	if config.OutputDir == "" {
		return render(config.writer())
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, name)
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	if err := render(file); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 Results saved to: %s\n", filename)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func dateOrEmpty(valid bool, t time.Time) string {
	if !valid {
		return ""
	}
	return t.Format(time.DateOnly)
}
