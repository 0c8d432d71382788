package markdown

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// PrintOptions configures where and how to print the markdown
type PrintOptions struct {
	ToTerminal bool   // Print to terminal with glamour rendering
	ToFile     string // File path to save raw markdown (empty string = don't save to file)
}

// Markdown represents a markdown document that can be built incrementally
type Markdown struct {
	content strings.Builder
}

// New creates a new Markdown instance
func New() *Markdown {
	return &Markdown{
		content: strings.Builder{},
	}
}

// AddHeading adds a heading with the specified level (1-6)
func (m *Markdown) AddHeading(text string, level int) *Markdown {
	if level < 1 || level > 6 {
		level = 1
	}
	m.content.WriteString(fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), text))
	return m
}

// AddParagraph adds a paragraph of text
func (m *Markdown) AddParagraph(text string) *Markdown {
	m.content.WriteString(fmt.Sprintf("%s\n\n", text))
	return m
}

// AddTable adds a table with the given headers and data rows. Rows shorter
// than the header are padded with empty cells.
func (m *Markdown) AddTable(headers []string, data [][]string) *Markdown {
	if len(headers) == 0 {
		return m
	}

	m.content.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = "---"
	}
	m.content.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range data {
		paddedRow := make([]string, len(headers))
		copy(paddedRow, row)
		m.content.WriteString("| " + strings.Join(paddedRow, " | ") + " |\n")
	}

	m.content.WriteString("\n")
	return m
}

// AddList adds a list of items
func (m *Markdown) AddList(items []string) *Markdown {
	for _, item := range items {
		m.content.WriteString(fmt.Sprintf("- %s\n", item))
	}
	m.content.WriteString("\n")
	return m
}

// String returns the markdown content as a string
func (m *Markdown) String() string {
	return m.content.String()
}

// WriteTo writes the raw markdown content to the provided io.Writer
func (m *Markdown) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte(m.content.String()))
	return int64(n), err
}

// Print outputs the document according to the given options: rendered to the
// terminal via glamour, saved raw to a file, or both.
func (m *Markdown) Print(opts PrintOptions) error {
	if opts.ToTerminal {
		rendered, err := glamour.Render(m.content.String(), "dark")
		if err != nil {
			// Fall back to raw markdown if rendering fails.
			if _, err := m.WriteTo(os.Stdout); err != nil {
				return fmt.Errorf("failed to write markdown to terminal: %v", err)
			}
		} else {
			fmt.Print(rendered)
		}
	}

	if opts.ToFile != "" {
		if err := os.WriteFile(opts.ToFile, []byte(m.content.String()), 0644); err != nil {
			return fmt.Errorf("failed to write markdown to file %s: %v", opts.ToFile, err)
		}
	}

	return nil
}
