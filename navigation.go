package main

import "math"

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

// handlePan moves the camera by whole screen units so the grain grid stays
// aligned with the terminal cells.
func (m *model) handlePan(key string, speed int) {
	step := float64(speed) * m.camera.Zoom
	switch key {
	case "h", "left", "H", "shift+left":
		m.camera.X -= step
	case "l", "right", "L", "shift+right":
		m.camera.X += step
	case "k", "up", "K", "shift+up":
		m.camera.Y += step
	case "j", "down", "J", "shift+down":
		m.camera.Y -= step
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed * columnsPerGrain
	case "l", "right", "L", "shift+right":
		m.cursorX += speed * columnsPerGrain
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// dragTo pans by the mouse movement since the last drag event. Content
// follows the pointer, so the camera moves the opposite way on x; screen y
// is already inverted relative to world y.
func (m *model) dragTo(cellX, cellY int) {
	dx := float64(cellX-m.dragX) / columnsPerGrain
	dy := float64(cellY - m.dragY)
	m.camera.X -= dx * m.camera.Zoom
	m.camera.Y += dy * m.camera.Zoom
	m.dragX = cellX
	m.dragY = cellY
}

func (m *model) zoom(in bool) {
	zoom := m.camera.Zoom * 2
	if in {
		zoom = m.camera.Zoom / 2
	}
	min := m.config.GrainSize * minZoomFactor
	max := m.config.GrainSize * maxZoomFactor
	m.camera.Zoom = math.Max(min, math.Min(max, zoom))
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	maxY := m.height - statusLines - 1
	if maxY < 0 {
		maxY = 0
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

// resize keeps the camera viewport in screen units in step with the terminal.
func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	canvasHeight := height - statusLines
	if canvasHeight < 0 {
		canvasHeight = 0
	}
	m.camera.Viewport = size{
		W: float64(width / columnsPerGrain),
		H: float64(canvasHeight),
	}
	m.ensureCursorInBounds()
}
