package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeHexInput
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
)

type ActionType int

const (
	ActionPaint ActionType = iota
)

const (
	defaultBaseUrl       = "http://localhost:8080"
	defaultGrainSize     = 10.0
	defaultOverscan      = 3
	defaultPollInterval  = time.Second
	defaultFrameInterval = 50 * time.Millisecond
	defaultHttpTimeout   = 10 * time.Second
)

const (
	columnsPerGrain = 2 // a terminal cell is about twice as tall as it is wide
	statusLines     = 1
	minZoomFactor   = 0.25
	maxZoomFactor   = 8.0
)

var palette = []string{
	"#000000", "#ffffff", "#ff0000", "#00ff00",
	"#0000ff", "#ffff00", "#ff00ff", "#00ffff",
	"#808080", "#c0c0c0", "#800000", "#008000",
	"#000080", "#ff8000", "#8000ff", "#804000",
}
