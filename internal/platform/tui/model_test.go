package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/robot-survival/internal/core"
	"github.com/vovakirdan/robot-survival/internal/storage"
)

// stubGame ends after overAt steps and records the last input.
type stubGame struct {
	steps  int
	resets int
	overAt int
	last   core.InputFrame
	state  core.GameState
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.state = core.GameState{Level: 1}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.last = in
	if g.state.GameOver {
		if in.Has(core.ActionRestart) {
			g.steps = 0
			g.state = core.GameState{Level: 1}
		}
		return core.StepResult{State: g.state}
	}
	g.steps++
	if g.overAt > 0 && g.steps >= g.overAt {
		g.state = core.GameState{Score: 42, GameOver: true, Won: true, Level: 5, Progress: 4}
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "STUB", core.ColorWhite)
}

func (g *stubGame) State() core.GameState { return g.state }

func newTestModel(t *testing.T, g *stubGame, store *storage.Store, opts Options) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}
	m := NewModel(g, store, cfg, opts)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	newTestModel(t, g, nil, Options{})
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestModelDirectionReachesGame(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{HoldTicks: 3})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !g.last.Has(core.ActionUp) {
		t.Errorf("game input = %v, want up", g.last.Actions)
	}

	// Held for the window, then released
	for range 3 {
		m, _ = update(t, m, TickMsg{})
	}
	if g.last.Has(core.ActionUp) {
		t.Error("up should be released after the hold window")
	}
}

func TestModelPauseStopsSimulation(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{})

	m, _ = update(t, m, runeKey('p'))
	if !m.Paused() {
		t.Fatal("p should pause")
	}

	m, cmd := update(t, m, TickMsg{})
	if g.steps != 0 {
		t.Errorf("steps while paused = %d, want 0", g.steps)
	}
	if cmd == nil {
		t.Error("paused model should keep the tick loop alive")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the pause banner")
	}

	m, _ = update(t, m, runeKey('p'))
	update(t, m, TickMsg{})
	if g.steps != 1 {
		t.Errorf("steps after resume = %d, want 1", g.steps)
	}
}

func TestModelRecordsRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := &stubGame{overAt: 2}
	m := newTestModel(t, g, store, Options{Player: "alice"})

	for range 5 {
		m, _ = update(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Player != "alice" || r.Outcome != storage.OutcomeVictory || r.Level != 5 || r.Seconds != 42 || r.Materials != 4 || r.Seed != 7 {
		t.Errorf("saved run = %+v", r)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := &stubGame{overAt: 1}
	m := newTestModel(t, g, store, Options{})
	m, _ = update(t, m, TickMsg{})

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if !g.last.Has(core.ActionRestart) {
		t.Fatal("restart should reach the game on the next tick")
	}
	if m.State().GameOver {
		t.Fatal("game should be running after restart")
	}

	// Second game over is recorded again
	update(t, m, TickMsg{})
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("saved %d runs, want 2", len(runs))
	}
}

func TestModelRestartIgnoredWhilePlaying(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{})

	m, _ = update(t, m, runeKey('r'))
	update(t, m, TickMsg{})
	if g.last.Has(core.ActionRestart) {
		t.Error("restart must not reach the game while playing")
	}
}

func TestModelBack(t *testing.T) {
	tests := []struct {
		name     string
		embedded bool
		wantBack bool
		wantQuit bool
	}{
		{"standalone quits", false, false, true},
		{"embedded returns to menu", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &stubGame{}
			m := newTestModel(t, g, nil, Options{Embedded: tt.embedded})

			// Ignored while playing
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			if m.BackToMenu() || m.IsQuitting() {
				t.Fatal("esc should do nothing during play")
			}

			m, _ = update(t, m, runeKey('p'))
			m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			if m.BackToMenu() != tt.wantBack || m.IsQuitting() != tt.wantQuit {
				t.Errorf("back=%v quit=%v, want back=%v quit=%v", m.BackToMenu(), m.IsQuitting(), tt.wantBack, tt.wantQuit)
			}
			if cmd == nil {
				t.Error("leaving should end the program")
			}
			if m.View() != "" {
				t.Error("view should be empty after leaving")
			}
		})
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &stubGame{}, nil, Options{})
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelResizeKeepsRunning(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resets != 1 {
		t.Errorf("resize reset the game (resets = %d)", g.resets)
	}

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 30 {
		t.Errorf("view has %d lines, want 30", len(lines))
	}
}
