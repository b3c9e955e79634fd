package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/jdprep/internal/model"
)

// Format selects how Write renders a report.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts a format name case-insensitively. "md" and "yml" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q: %w", s, model.ErrInvalidInput)
}

// Options tune the text renderer.
type Options struct {
	Color bool
	Width int // wrap width for long lines; 0 uses a default
}

// Write renders r to w in the requested format.
func Write(w io.Writer, r *model.AnalysisResult, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return nil
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r))
		return err
	default:
		_, err := io.WriteString(w, Render(r, opts)+"\n")
		return err
	}
}
