// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scene

import (
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/constellation/internal/canvas"
	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/confetti"
	"github.com/jeranaias/constellation/internal/detect"
	"github.com/jeranaias/constellation/internal/field"
	"github.com/jeranaias/constellation/internal/quality"
	"github.com/jeranaias/constellation/internal/ui/styles"
)

const (
	noticeTTL        = 4 * time.Second
	statsLogInterval = 10 * time.Second
)

// Small shapes still need to light a half block.
var terminalRaster = canvas.RasterOptions{MinDotRadius: 0.6, MinLineWidth: 0.5}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configure the scene.
type Options struct {
	// Config is the effective configuration. Nil means defaults.
	Config *config.Config

	// Capabilities are the probed device signals.
	Capabilities detect.Capabilities

	// Overrides re-applies command line flags to a reloaded config.
	Overrides func(*config.Config)
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model hosting the particle field as a terminal
// backdrop.
type Model struct {
	cfg       *config.Config
	caps      detect.Capabilities
	overrides func(*config.Config)

	keys    KeyMap
	help    help.Model
	theme   *styles.Theme
	encoder *canvas.Encoder

	// Layers, bottom first.
	backdrop *canvas.Raster
	overlay  *canvas.Raster

	sim      *field.Simulation
	confetti *confetti.System

	cols, rows int
	showHUD    bool
	disposed   bool

	pulse uint64
	meter fpsMeter

	notice    string
	noticeErr bool
	noticeAt  time.Time
}

// New creates the scene. The field is initialized on the first window size
// message.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	tier, err := cfg.TierOverride()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	encoder, err := canvas.NewEncoder(styles.ProfileFor(cfg.UI.ColorMode), cfg.UI.Background)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	m := &Model{
		cfg:       cfg,
		caps:      opts.Capabilities,
		overrides: opts.Overrides,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     styles.NewTheme(encoder.Profile()),
		encoder:   encoder,
		backdrop:  canvas.NewRaster(1, 1, terminalRaster),
		overlay:   canvas.NewRaster(1, 1, terminalRaster),
		confetti:  confetti.New(uint64(cfg.Field.Seed)),
		showHUD:   cfg.UI.ShowHUD,
	}

	sim, err := field.New(m.backdrop, field.Options{
		Signals:          m.signals,
		Tier:             tier,
		Seed:             uint64(cfg.Field.Seed),
		StatsLogInterval: statsLogInterval,
	})
	if err != nil {
		log.Printf("SCENE_NO_FIELD | err=%v", err)
	}
	m.sim = sim
	return m, nil
}

// signals combines the probed capabilities with the configured preference.
func (m *Model) signals() quality.Signals {
	s := m.caps.Signals(0)
	s.ReducedMotion = s.ReducedMotion || m.cfg.Field.ReducedMotion
	return s
}

// Viewport maps the terminal to logical pixels. One cell is
// cell_width_px × cell_height_px and becomes one raster column and two
// raster rows.
func (m *Model) Viewport() field.Viewport {
	cw := float64(max(1, m.cfg.Field.CellWidthPx))
	ch := float64(max(1, m.cfg.Field.CellHeightPx))
	return field.Viewport{
		Width:       float64(m.cols) * cw,
		Height:      float64(m.rows) * ch,
		PixelRatioX: 1 / cw,
		PixelRatioY: 2 / ch,
	}
}

// cellCentre returns the logical position of the centre of a cell.
func (m *Model) cellCentre(col, row int) (float64, float64) {
	cw := float64(max(1, m.cfg.Field.CellWidthPx))
	ch := float64(max(1, m.cfg.Field.CellHeightPx))
	return (float64(col) + 0.5) * cw, (float64(row) + 0.5) * ch
}

// Interval is the scheduler period.
func (m *Model) Interval() time.Duration {
	hz := m.cfg.Field.RefreshHz
	if hz <= 0 {
		hz = config.Default().Field.RefreshHz
	}
	return time.Second / time.Duration(hz)
}

func (m *Model) reinitialize() {
	if m.disposed || m.cols <= 0 || m.rows <= 0 {
		return
	}
	vp := m.Viewport()
	rw, rh := vp.RasterSize()

	if m.sim != nil {
		m.sim.Initialize(vp)
	} else {
		m.backdrop.Resize(rw, rh)
	}
	m.overlay.Resize(rw, rh)
	m.overlay.SetTransform(vp.PixelRatioX, vp.PixelRatioY)
	m.meter = fpsMeter{}
}

func (m *Model) dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.sim != nil {
		m.sim.Dispose()
	}
	m.confetti.Reset()
}

func (m *Model) burst(x, y float64) {
	if m.disposed || !m.cfg.Field.Confetti {
		return
	}
	m.confetti.Burst(time.Now(), x, y)
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
	m.noticeAt = time.Now()
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the frame scheduler.
func (m *Model) Init() tea.Cmd {
	return frameCmd(m.Interval())
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.reinitialize()
		return m, nil

	case FrameMsg:
		return m, m.handleFrame(msg.Time)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.FocusMsg:
		if m.sim != nil {
			m.sim.SetVisible(true)
		}
		return m, nil

	case tea.BlurMsg:
		if m.sim != nil {
			m.sim.PointerLeave()
			m.sim.SetVisible(false)
		}
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, nil
	}

	return m, nil
}

// handleFrame runs one scheduler callback and schedules the next one.
func (m *Model) handleFrame(now time.Time) tea.Cmd {
	if m.disposed {
		return nil
	}

	if m.sim != nil && m.sim.Frame(now) == field.FrameExecuted {
		m.pulse++
		m.meter.record(now)
	}

	if m.cfg.Field.Confetti {
		vp := m.Viewport()
		m.confetti.Step(m.overlay, vp.Width, vp.Height)
	}

	if m.notice != "" && now.Sub(m.noticeAt) > noticeTTL {
		m.notice = ""
	}

	return frameCmd(m.Interval())
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.dispose()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reset):
		m.reinitialize()

	case key.Matches(msg, m.keys.Confetti):
		vp := m.Viewport()
		m.burst(vp.Width/2, vp.Height/2)

	case key.Matches(msg, m.keys.HUD):
		m.showHUD = !m.showHUD

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.disposed {
		return
	}
	x, y := m.cellCentre(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.sim != nil {
			m.sim.PointerMove(x, y)
		}
	case tea.MouseActionPress:
		if m.sim != nil {
			m.sim.PointerMove(x, y)
		}
		if msg.Button == tea.MouseButtonLeft {
			m.burst(x, y)
		}
	}
}

// applyConfig swaps in a reloaded configuration and re-initializes. A
// failed reload keeps the current configuration.
func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if m.disposed {
		return
	}
	if msg.Err != nil || msg.Config == nil {
		m.setNotice(fmt.Sprintf("config reload failed: %v", msg.Err), true)
		log.Printf("SCENE_CONFIG_REJECTED | err=%v", msg.Err)
		return
	}

	cfg := msg.Config.Clone()
	if m.overrides != nil {
		m.overrides(cfg)
	}

	tier, err := cfg.TierOverride()
	if err != nil {
		m.setNotice(err.Error(), true)
		log.Printf("SCENE_CONFIG_REJECTED | err=%v", err)
		return
	}
	encoder, err := canvas.NewEncoder(styles.ProfileFor(cfg.UI.ColorMode), cfg.UI.Background)
	if err != nil {
		m.setNotice(err.Error(), true)
		log.Printf("SCENE_CONFIG_REJECTED | err=%v", err)
		return
	}

	m.cfg = cfg
	m.encoder = encoder
	m.theme = styles.NewTheme(encoder.Profile())
	m.theme.SetSize(m.cols, m.rows)
	m.showHUD = cfg.UI.ShowHUD
	if m.sim != nil {
		m.sim.SetTier(tier)
	}
	m.reinitialize()

	m.setNotice("config reloaded", false)
	log.Printf("SCENE_CONFIG_APPLIED | tier=%s refresh_hz=%d confetti=%v", cfg.Field.Tier, cfg.Field.RefreshHz, cfg.Field.Confetti)
}

// View renders the backdrop with the HUD and help over its bottom lines.
func (m *Model) View() string {
	if m.disposed || m.cols <= 0 || m.rows <= 0 {
		return ""
	}

	layers := []image.Image{m.backdrop.Image()}
	if m.cfg.Field.Confetti {
		layers = append(layers, m.overlay.Image())
	}
	lines := strings.Split(m.encoder.Encode(layers...), "\n")

	var bottom []string
	if m.help.ShowAll {
		bottom = append(bottom, strings.Split(m.theme.Help.Width(m.cols).Render(m.help.View(m.keys)), "\n")...)
	}
	if m.showHUD {
		bottom = append(bottom, m.renderHUD())
	}

	if len(bottom) > 0 && len(bottom) <= len(lines) {
		copy(lines[len(lines)-len(bottom):], bottom)
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Simulation returns the hosted field, nil when it could not be created.
func (m *Model) Simulation() *field.Simulation { return m.sim }

// Confetti returns the confetti system.
func (m *Model) Confetti() *confetti.System { return m.confetti }

// Config returns the effective configuration.
func (m *Model) Config() *config.Config { return m.cfg }

// Disposed reports whether the scene has quit.
func (m *Model) Disposed() bool { return m.disposed }

// HUDVisible reports whether the HUD line is drawn.
func (m *Model) HUDVisible() bool { return m.showHUD }

// HelpVisible reports whether the full help is drawn.
func (m *Model) HelpVisible() bool { return m.help.ShowAll }

// FPS returns the measured executed-tick rate.
func (m *Model) FPS() float64 { return m.meter.fps }

// Notice returns the current notice, if any.
func (m *Model) Notice() string { return m.notice }
