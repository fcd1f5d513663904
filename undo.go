package main

// recordPaint remembers an edit so it can be undone. The canvas service has
// no way to erase a grain, so edits over an unknown grain are not recorded.
func (m *model) recordPaint(p point, color string) {
	previous, ok := m.sync.Grains().At(p.X, p.Y)
	if !ok {
		return
	}
	m.recordAction(ActionPaint,
		PaintData{X: p.X, Y: p.Y, Color: color},
		PaintData{X: p.X, Y: p.Y, Color: previous.Color.Hex()},
	)
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	switch action.Type {
	case ActionPaint:
		data := action.Inverse.(PaintData)
		m.sync.submit(point{data.X, data.Y}, data.Color)
	}

	m.redoStack = append(m.redoStack, action)
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	switch action.Type {
	case ActionPaint:
		data := action.Data.(PaintData)
		m.sync.submit(point{data.X, data.Y}, data.Color)
	}

	m.undoStack = append(m.undoStack, action)
}
