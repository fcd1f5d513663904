package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	emptyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
)

const (
	emptyCell  = "· "
	cursorCell = "[]"
)

// contrast picks black or white text for a background color.
func contrast(c colorful.Color) lipgloss.Color {
	l, _, _ := c.Lab()
	if l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

type cellStyles map[string]lipgloss.Style

func (s cellStyles) get(c colorful.Color, cursor bool) lipgloss.Style {
	key := c.Hex()
	if cursor {
		key += "+"
	}
	style, ok := s[key]
	if !ok {
		style = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
		if cursor {
			style = style.Foreground(contrast(c)).Bold(true)
		}
		s[key] = style
	}
	return style
}

// Render draws the grains visible through the camera. Every terminal cell
// pair is resolved with screenToGrain, the same mapping clicks use, so what
// is drawn under the pointer is what gets painted.
func (m model) renderCanvas(width, height int) []string {
	lines := make([]string, 0, height)
	styles := cellStyles{}
	grains := m.sync.Grains()

	cursor, cursorErr := m.cursorGrain()
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.pickedColor)).Bold(true)

	columns := width / columnsPerGrain
	for row := 0; row < height; row++ {
		var line strings.Builder
		for column := 0; column < columns; column++ {
			p, err := screenToGrain(m.camera, m.config.GrainSize, float64(column), float64(row))
			if err != nil {
				line.WriteString(strings.Repeat(" ", columnsPerGrain))
				continue
			}
			isCursor := cursorErr == nil && p == cursor

			grain, ok := grains.At(p.X, p.Y)
			switch {
			case ok && isCursor:
				line.WriteString(styles.get(grain.Color, true).Render(cursorCell))
			case ok:
				line.WriteString(styles.get(grain.Color, false).Render("  "))
			case isCursor:
				line.WriteString(cursorStyle.Render(cursorCell))
			default:
				line.WriteString(emptyCellStyle.Render(emptyCell))
			}
		}
		if pad := width - columns*columnsPerGrain; pad > 0 {
			line.WriteString(strings.Repeat(" ", pad))
		}
		lines = append(lines, line.String())
	}
	return lines
}

func (m model) statusLine(now time.Time) string {
	var parts []string

	parts = append(parts, m.modeString())
	status := m.sync.Status()
	parts = append(parts, "fetch: "+status.String())
	parts = append(parts, "grains: "+humanize.Comma(int64(m.sync.Grains().Len())))
	if last := m.sync.LastSuccess(); !last.IsZero() {
		parts = append(parts, "synced "+humanize.RelTime(last, now, "ago", "from now"))
	}

	if p, err := m.cursorGrain(); err == nil {
		hover := fmt.Sprintf("(%d,%d)", p.X, p.Y)
		if grain, ok := m.sync.Grains().At(p.X, p.Y); ok {
			hover += " " + grain.Color.Hex()
		}
		parts = append(parts, hover)
	}

	if m.mode == ModeHexInput {
		parts = append(parts, "color: #"+m.hexInput+"_")
	} else {
		parts = append(parts, "color: "+m.pickedColor)
	}

	line := statusStyle.Render(" "+strings.Join(parts, " | ")+" ") + " " + swatch(m.pickedColor)
	if m.errorMessage != "" {
		line += " " + errorStyle.Render(m.errorMessage)
	} else if m.successMessage != "" {
		line += " " + successStyle.Render(m.successMessage)
	}
	if m.mode == ModeConfirm {
		line += " " + errorStyle.Render(m.confirmPrompt())
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit? (y/n)"
	default:
		return "Confirm? (y/n)"
	}
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		if m.zPanMode {
			return "PAN"
		}
		return "NORMAL"
	case ModeHexInput:
		return "COLOR"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"grainview help",
	"==============",
	"",
	"Navigation:",
	"  h/j/k/l, arrows   Move the cursor (pan the view in pan mode)",
	"  Shift+h/j/k/l     Move 2x faster",
	"  z                 Toggle pan mode",
	"  right drag        Pan the view",
	"  +/-, wheel        Zoom in/out",
	"",
	"Painting:",
	"  space, left click Paint the grain under the cursor",
	"  [ / ]             Previous/next palette color",
	"  #                 Enter a hex color",
	"  P                 Use a hex color from the clipboard",
	"  y                 Copy the color under the cursor",
	"  u / U             Undo/redo your last paint",
	"",
	"Other:",
	"  S                 Save a PNG snapshot of the visible region",
	"  ?                 Toggle this help",
	"  q, ctrl+c         Quit",
}

func (m model) helpView() string {
	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	start := m.helpScroll
	if start > len(helpLines)-1 {
		start = len(helpLines) - 1
	}
	end := start + visible
	if end > len(helpLines) {
		end = len(helpLines)
	}

	var b strings.Builder
	for i, line := range helpLines[start:end] {
		if start+i == 0 {
			line = helpTitleStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
