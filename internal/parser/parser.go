package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/stagehand/internal/models"
)

// Format represents the format of a plan file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatYAML represents a YAML (.yaml, .yml) plan file
	FormatYAML
	// FormatMarkdown represents a Markdown (.md, .markdown) plan file
	FormatMarkdown
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Parser is the interface that all plan parsers implement
type Parser interface {
	// Parse reads from an io.Reader and returns a parsed plan spec
	Parse(r io.Reader) (*models.PlanSpec, error)
}

// DetectFormat automatically detects the plan format based on file extension
// Supported extensions:
//   - .yaml, .yml -> FormatYAML
//   - .md, .markdown -> FormatMarkdown
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// NewParser creates a new parser instance for the specified format
// Returns an error if the format is unknown or unsupported
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatYAML:
		return NewYAMLParser(), nil
	case FormatMarkdown:
		return NewMarkdownParser(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ParseFile detects the format of the given plan file, opens it, parses it,
// applies plan-level defaults, and validates the result. The plan name
// falls back to the file's base name.
func ParseFile(path string) (*models.PlanSpec, error) {
	format := DetectFormat(path)
	p, err := NewParser(format)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan file: %w", err)
	}
	defer f.Close()

	spec, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return spec, nil
}

// parseDuration converts an optional duration string ("500ms", "2m") from a
// plan file. An empty string means unset.
func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
