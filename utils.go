package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// cellToScreen converts a terminal cell to camera screen units.
func cellToScreen(cellX, cellY int) (float64, float64) {
	return float64(cellX / columnsPerGrain), float64(cellY)
}

func (m *model) cursorGrain() (point, error) {
	sx, sy := cellToScreen(m.cursorX, m.cursorY)
	return screenToGrain(m.camera, m.config.GrainSize, sx, sy)
}

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// normalizeHex accepts rgb, rrggbb and rrggbbaa with or without a leading
// '#' and returns lower case "#rgb" or "#rrggbb". Alpha is dropped.
func normalizeHex(value string) (string, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	for _, r := range hex {
		if !isHexDigit(r) {
			return "", fmt.Errorf("color %q is not hex", value)
		}
	}
	switch len(hex) {
	case 3, 6:
	case 8:
		hex = hex[:6]
	default:
		return "", fmt.Errorf("color %q has %d digits", value, len(hex))
	}
	return "#" + strings.ToLower(hex), nil
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}
