package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:          "grainview",
		Short:        "View and paint a shared pixel canvas from the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindConfigFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rcPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			config, err := loadConfig(v, rcPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(config)
			if err != nil {
				return err
			}
			return run(cmd.Context(), config, logger)
		},
	}
	addConfigFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, config *Config, logger *logrus.Logger) error {
	logger.WithFields(logrus.Fields{
		"base_url":   config.BaseUrl,
		"grain_size": config.GrainSize,
		"overscan":   config.Overscan,
	}).Info("starting")

	client := newCanvasClient(ctx, config.BaseUrl, config.HttpTimeout, logger.WithField("component", "client"))
	sync := newViewportSync(config, client, logger.WithField("component", "sync"))
	defer sync.close()

	p := tea.NewProgram(
		initialModel(config, sync),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("stopped")
	return nil
}

type frameTickMsg time.Time

type pollTickMsg time.Time

func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func pollTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func initialModel(config *Config, sync *viewportSync) model {
	return model{
		camera:      newCamera(config.GrainSize),
		sync:        sync,
		config:      config,
		mode:        ModeNormal,
		pickedColor: palette[0],
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(frameTick(m.config.FrameInterval), pollTick(m.config.PollInterval))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		// the slot starts out failed, so the first sized frame fetches at once
		m.sync.pollTick(m.camera)
		return m, nil

	case frameTickMsg:
		m.sync.frameTick(m.camera, time.Time(msg))
		return m, frameTick(m.config.FrameInterval)

	case pollTickMsg:
		m.sync.pollTick(m.camera)
		return m, pollTick(m.config.PollInterval)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "j", "down":
				if m.helpScroll < len(helpLines)-1 {
					m.helpScroll++
				}
			case "k", "up":
				if m.helpScroll > 0 {
					m.helpScroll--
				}
			default:
				m.help = false
				m.helpScroll = 0
			}
			return m, nil
		}

		switch m.mode {
		case ModeHexInput:
			return m.handleHexInput(msg)
		case ModeConfirm:
			return m.handleConfirm(msg)
		}
		return m.handleNormalKey(msg)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseRight:
		if m.dragging {
			m.dragTo(msg.X, msg.Y)
		} else {
			m.dragging = true
			m.dragX = msg.X
			m.dragY = msg.Y
		}
	case tea.MouseMotion:
		if m.dragging {
			m.dragTo(msg.X, msg.Y)
			return m, nil
		}
		m.cursorX = msg.X
		m.cursorY = msg.Y
		m.ensureCursorInBounds()
	case tea.MouseRelease:
		m.dragging = false
	case tea.MouseLeft:
		m.cursorX = msg.X
		m.cursorY = msg.Y
		m.ensureCursorInBounds()
		m.paintAtCursor()
	case tea.MouseWheelUp:
		m.zoom(true)
	case tea.MouseWheelDown:
		m.zoom(false)
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		m.zPanMode = false
		m.errorMessage = ""
		m.successMessage = ""
		return m, nil
	}

	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		if !m.config.Confirmations {
			return m.quit()
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
		return m, nil
	case "?":
		m.help = !m.help
		return m, nil
	case "z":
		m.zPanMode = !m.zPanMode
		return m, nil
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
		return m, nil
	case "+", "=":
		m.zoom(true)
		return m, nil
	case "-":
		m.zoom(false)
		return m, nil
	case "0":
		m.camera.X = 0
		m.camera.Y = 0
		m.camera.Zoom = m.config.GrainSize
		return m, nil
	case " ":
		m.paintAtCursor()
		return m, nil
	case "[":
		m.cyclePalette(-1)
		return m, nil
	case "]":
		m.cyclePalette(1)
		return m, nil
	case "#":
		m.mode = ModeHexInput
		m.hexInput = ""
		m.errorMessage = ""
		return m, nil
	case "P":
		m.pasteColor()
		return m, nil
	case "y":
		m.copyColor()
		return m, nil
	case "u":
		m.undo()
		return m, nil
	case "U":
		m.redo()
		return m, nil
	case "S":
		m.snapshot(time.Now())
		return m, nil
	}
	return m, nil
}

func (m model) handleHexInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.hexInput = ""
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.setPickedColor(m.hexInput)
		m.hexInput = ""
	case tea.KeyBackspace:
		if len(m.hexInput) > 0 {
			m.hexInput = m.hexInput[:len(m.hexInput)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if isHexDigit(r) && len(m.hexInput) < 8 {
				m.hexInput += string(r)
			}
		}
	}
	return m, nil
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		switch m.confirmAction {
		case ConfirmQuit:
			return m.quit()
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.sync.close()
	return m, tea.Quit
}

func (m *model) paintAtCursor() {
	sx, sy := cellToScreen(m.cursorX, m.cursorY)
	p, err := m.sync.paint(m.camera, sx, sy, m.pickedColor)
	if err != nil {
		return
	}
	m.recordPaint(p, m.pickedColor)
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) cyclePalette(delta int) {
	m.paletteIndex = (m.paletteIndex + delta + len(palette)) % len(palette)
	m.pickedColor = palette[m.paletteIndex]
}

func (m *model) setPickedColor(value string) {
	hex, err := normalizeHex(value)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	c, err := decodeColor(hex)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	// the service expects #rrggbb
	m.pickedColor = c.Hex()
	m.errorMessage = ""
}

func (m *model) pasteColor() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = "clipboard: " + err.Error()
		return
	}
	m.setPickedColor(text)
}

func (m *model) copyColor() {
	p, err := m.cursorGrain()
	if err != nil {
		return
	}
	grain, ok := m.sync.Grains().At(p.X, p.Y)
	if !ok {
		m.errorMessage = fmt.Sprintf("no grain loaded at (%d,%d)", p.X, p.Y)
		return
	}
	if err := writeClipboardText(grain.Color.Hex()); err != nil {
		m.errorMessage = "clipboard: " + err.Error()
		return
	}
	m.successMessage = "copied " + grain.Color.Hex()
}

func (m *model) snapshot(now time.Time) {
	region, err := m.sync.region(m.camera)
	if err != nil {
		m.errorMessage = "nothing to export"
		return
	}
	filename := m.config.SnapshotPath(fmt.Sprintf("grainview-%d.png", now.Unix()))
	if err := exportSnapshot(filename, m.sync.Grains().Grains(), region); err != nil {
		m.errorMessage = "snapshot: " + err.Error()
		return
	}
	m.sync.log.WithFields(logrus.Fields{
		"file":   filename,
		"region": region.String(),
	}).Info("snapshot written")
	m.successMessage = "saved " + filename
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	renderHeight := m.height - statusLines
	if renderHeight < 1 {
		renderHeight = 1
	}
	renderWidth := m.width
	if renderWidth < 1 {
		renderWidth = 1
	}

	lines := m.renderCanvas(renderWidth, renderHeight)
	lines = append(lines, m.statusLine(time.Now()))
	return strings.Join(lines, "\n")
}
