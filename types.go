package main

type model struct {
	width          int
	height         int
	cursorX        int
	cursorY        int
	zPanMode       bool
	camera         Camera
	sync           *viewportSync
	config         *Config
	mode           Mode
	help           bool
	helpScroll     int
	dragging       bool
	dragX          int
	dragY          int
	paletteIndex   int
	pickedColor    string
	hexInput       string
	confirmAction  ConfirmAction
	undoStack      []Action
	redoStack      []Action
	errorMessage   string
	successMessage string
}

type point struct {
	X, Y int
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type PaintData struct {
	X, Y  int
	Color string
}
