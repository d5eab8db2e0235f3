// package formatter renders script transcripts to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/routerdrawer/internal/flow"
	"github.com/desertthunder/routerdrawer/internal/shared"
)

// Step is the state observed after one scripted operation.
type Step struct {
	Step    int           `json:"step"`
	Op      string        `json:"op"`
	Clock   string        `json:"clock"`
	Screen  flow.Screen   `json:"screen"`
	Stack   []flow.Screen `json:"stack"`
	Loading bool          `json:"loading"`
	Drawer  bool          `json:"drawer"`
	Dialog  string        `json:"dialog,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Format names a transcript output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat resolves a format name. "md" is accepted for Markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
}

// FormatStack renders a back stack bottom-first, e.g. "[Login ForgotPassword]".
func FormatStack(stack []flow.Screen) string {
	names := make([]string, len(stack))
	for i, s := range stack {
		names[i] = s.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// StepLine renders a single step as one line of plain text without a trailing newline.
func StepLine(s Step) string {
	line := fmt.Sprintf("%3d  %-8s %-28s %-15s %s", s.Step, s.Clock, s.Op, s.Screen, FormatStack(s.Stack))
	if s.Loading {
		line += " loading"
	}
	if s.Drawer {
		line += " drawer"
	}
	if s.Dialog != "" {
		line += fmt.Sprintf(" dialog=%q", s.Dialog)
	}
	if s.Error != "" {
		line += " error=" + s.Error
	}
	return line
}

// ExportToCSV converts a transcript to CSV with columns: Step, Clock, Op, Screen, Stack, Loading, Drawer, Dialog, Error
func ExportToCSV(steps []Step) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Step", "Clock", "Op", "Screen", "Stack", "Loading", "Drawer", "Dialog", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range steps {
		record := []string{
			strconv.Itoa(s.Step),
			s.Clock,
			s.Op,
			s.Screen.String(),
			FormatStack(s.Stack),
			strconv.FormatBool(s.Loading),
			strconv.FormatBool(s.Drawer),
			s.Dialog,
			s.Error,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a transcript to a Markdown table headed by title.
func ExportToMarkdown(title string, steps []Step) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Script"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Steps**: %d\n\n", len(steps))

	buf.WriteString("| # | Clock | Op | Screen | Stack | Notes |\n")
	buf.WriteString("|---|-------|----|--------|-------|-------|\n")
	for _, s := range steps {
		var notes []string
		if s.Loading {
			notes = append(notes, "loading")
		}
		if s.Drawer {
			notes = append(notes, "drawer open")
		}
		if s.Dialog != "" {
			notes = append(notes, "dialog: "+s.Dialog)
		}
		if s.Error != "" {
			notes = append(notes, "error: "+s.Error)
		}
		fmt.Fprintf(&buf, "| %d | %s | `%s` | %s | %s | %s |\n",
			s.Step, s.Clock, escapeCell(s.Op), s.Screen, FormatStack(s.Stack), escapeCell(strings.Join(notes, "; ")))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a transcript to plain text, one [StepLine] per step.
func ExportToText(steps []Step) ([]byte, error) {
	var buf bytes.Buffer
	for _, s := range steps {
		buf.WriteString(StepLine(s))
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Export renders steps in the given format. FormatJSON produces one object per line.
func Export(format Format, title string, steps []Step) ([]byte, error) {
	switch format {
	case FormatText:
		return ExportToText(steps)
	case FormatCSV:
		return ExportToCSV(steps)
	case FormatMarkdown:
		return ExportToMarkdown(title, steps)
	case FormatJSON:
		var buf bytes.Buffer
		for _, s := range steps {
			line, err := json.Marshal(s)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal JSON: %w", err)
			}
			buf.Write(line)
			buf.WriteString("\n")
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

// WriteExport renders steps and writes them to path.
func WriteExport(format Format, title string, steps []Step, path string) error {
	data, err := Export(format, title, steps)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
