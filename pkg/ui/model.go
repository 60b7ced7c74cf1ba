// Package ui is the terminal driver for the timeline engine: a bubbletea
// model that owns the frame clock, forwards key input to the engine, and
// renders each FrameResult as styled rows of cells. One terminal column maps
// to one engine pixel, so the render pipeline runs unmodified against a
// canvas the width of the window.
package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Geddart/linearcal/pkg/config"
	"github.com/Geddart/linearcal/pkg/metrics"
	"github.com/Geddart/linearcal/pkg/model"
	"github.com/Geddart/linearcal/pkg/timeline"
)

// tickInterval drives motion frames. 16ms ≈ 60 fps; the engine memoizes
// grid recomputation, so idle ticks are cheap and we stop ticking entirely
// once motion settles.
const tickInterval = 16 * time.Millisecond

// flingVelocity is the glide speed started by shift+arrow, in px/ms.
const flingVelocity = 1.2

type tickMsg time.Time

// ReloadMsg delivers a fresh event batch from the file watcher.
type ReloadMsg struct {
	Events []model.Event
	Err    error
}

// Model is the bubbletea model for the timeline view.
type Model struct {
	tl   *timeline.Timeline
	cfg  config.Config
	keys keyMap
	help help.Model

	width   int
	height  int
	frame   timeline.FrameResult
	status  string
	lastErr error

	ticking  bool
	showHelp bool
}

// NewModel wraps an engine for terminal display.
func NewModel(tl *timeline.Timeline, cfg config.Config) Model {
	return Model{
		tl:   tl,
		cfg:  cfg,
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func nowMs() float64 {
	return float64(time.Now().UnixMilli())
}

// Update implements tea.Model. All engine mutation happens here, and the
// frame is recomputed immediately after, so View never observes torn state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Reserve header, grid label row, and footer; the rest is lanes.
		m.tl.Resize(float64(msg.Width), float64(max(msg.Height-4, 1)))
		m.frame = m.tl.Frame(nowMs())
		return m, nil

	case tickMsg:
		m.ticking = false
		m.frame = m.tl.Frame(nowMs())
		if m.frame.Moving {
			m.ticking = true
			return m, tick()
		}
		return m, nil

	case ReloadMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		added := m.tl.Insert(msg.Events)
		m.status = fmt.Sprintf("reloaded: %d new events", added)
		m.frame = m.tl.Frame(nowMs())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := nowMs()
	step := m.cfg.Input.PanStepPx
	zoomStep := m.cfg.Input.KeyZoomDelta
	centerX := float64(m.width) / 2

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.PanLeft):
		m.tl.Pan(step)
	case key.Matches(msg, m.keys.PanRight):
		m.tl.Pan(-step)
	case key.Matches(msg, m.keys.PanFast):
		v := flingVelocity
		if msg.String() == "shift+right" {
			v = -flingVelocity
		}
		m.tl.Fling(v, now)
	case key.Matches(msg, m.keys.ZoomIn):
		m.tl.ZoomAt(centerX, zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.tl.ZoomAt(centerX, -zoomStep)
	case key.Matches(msg, m.keys.JumpNext):
		u := m.tl.Viewport.JumpToNextTimeUnit()
		m.status = "next " + u.String()
	case key.Matches(msg, m.keys.JumpPrev):
		u := m.tl.Viewport.JumpToPreviousTimeUnit()
		m.status = "previous " + u.String()
	case key.Matches(msg, m.keys.Now):
		m.tl.GoToNow(now)
		m.status = "now"
	case key.Matches(msg, m.keys.PresetDay):
		m.applyPreset("day")
	case key.Matches(msg, m.keys.PresetWk):
		m.applyPreset("week")
	case key.Matches(msg, m.keys.PresetMo):
		m.applyPreset("month")
	case key.Matches(msg, m.keys.PresetYr):
		m.applyPreset("year")
	case key.Matches(msg, m.keys.PresetDec):
		m.applyPreset("decade")
	case key.Matches(msg, m.keys.Yank):
		m.yankFocused()
	default:
		return m, nil
	}

	m.frame = m.tl.Frame(now)
	if m.frame.Moving && !m.ticking {
		m.ticking = true
		return m, tick()
	}
	return m, nil
}

func (m *Model) applyPreset(name string) {
	label, err := m.tl.SetZoomPreset(name)
	if err != nil {
		m.lastErr = err
		return
	}
	m.status = label
}

// yankFocused copies a summary of the event nearest the view center.
func (m *Model) yankFocused() {
	ev, ok := m.focusedEvent()
	if !ok {
		m.status = "nothing to copy"
		return
	}
	start := time.UnixMilli(ev.StartMs).In(m.tl.Viewport.Location())
	summary := fmt.Sprintf("%s  %s  (%s)", ev.ID, ev.Title, start.Format(time.RFC3339))
	if err := clipboard.WriteAll(summary); err != nil {
		m.lastErr = err
		return
	}
	m.status = "copied " + ev.ID
}

// focusedEvent returns the visible event whose midpoint is closest to the
// viewport center.
func (m *Model) focusedEvent() (model.Event, bool) {
	center := m.frame.State.CenterTime
	best := -1
	bestDist := math.Inf(1)
	for i, ev := range m.frame.Events {
		mid := float64(ev.StartMs) + float64(ev.DurationMs())/2
		if d := math.Abs(mid - center); d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return model.Event{}, false
	}
	return m.frame.Events[best], true
}

// View implements tea.Model.
func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()
	if m.width == 0 {
		return "loading..."
	}
	return m.render()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
