package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#D66464", "#4E56A0", "#04B575", "#FF0000", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	button   lipgloss.Style
	focused  lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
	panel    lipgloss.Style
	dialog   lipgloss.Style
}

// NewPalette builds the stylesheet from an accent, a button, a success, an error and a muted color.
func NewPalette(accent, btn, s, e, muted string) *Palette {
	return &Palette{
		title:    NewBold(accent).MarginBottom(1),
		subtitle: NewEm(muted),
		button:   NewStyle("#FFFFFF").Background(lipgloss.Color(btn)).Padding(0, 2),
		focused:  NewBold("#FFFFFF").Background(lipgloss.Color(accent)).Padding(0, 2),
		ok:       NewBold(s),
		err:      NewBold(e),
		help:     NewEm(muted),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(btn)).Padding(1, 2),
		dialog:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(accent)).Padding(1, 3),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
