package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/robot-survival/internal/core"
	"github.com/vovakirdan/robot-survival/internal/registry"
	"github.com/vovakirdan/robot-survival/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunRows(t *testing.T) {
	created := time.Date(2026, time.March, 4, 18, 30, 0, 0, time.UTC)
	rows := runRows([]storage.Run{
		{Outcome: storage.OutcomeVictory, Level: 5, Seconds: 312, Materials: 4, Player: "alice", CreatedAt: created},
		{Outcome: storage.OutcomeDefeat, Level: 2, Seconds: 40, Materials: 1, CreatedAt: created},
	})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := []string{"#1", "victory", "5", "312s", "4/4", "alice", "Mar 04 18:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][5] != "-" {
		t.Errorf("anonymous player = %q, want -", rows[1][5])
	}
}

func TestScoreboardToggleView(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.Run{
		{Outcome: storage.OutcomeVictory, Level: 5, Seconds: 300, Materials: 4},
		{Outcome: storage.OutcomeDefeat, Level: 2, Seconds: 50, Materials: 1},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 30)
	if m.view != viewTop || m.runs[0].Outcome != storage.OutcomeVictory {
		t.Fatalf("top view should rank the victory first, got %+v", m.runs)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("top view should be titled HIGH SCORES")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != viewRecent || m.runs[0].Outcome != storage.OutcomeDefeat {
		t.Fatalf("recent view should list the newest run first, got %+v", m.runs)
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("recent view should be titled RECENT RUNS")
	}
	if m.stats == nil || m.stats.Runs != 2 {
		t.Errorf("stats = %+v, want 2 runs", m.stats)
	}
}

func TestScoreboardEmptyAndBack(t *testing.T) {
	m := NewScoreboardModel(openTestStore(t), 60, 20)
	if m.showSidebar {
		t.Error("narrow scoreboard should hide the sidebar")
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty log should say so")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() || cmd == nil {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("missing store should be reported")
	}
}

func TestMenuNavigation(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
	m := NewMenuModel(nil, cfg)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first item: %d", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Choice() != ChoiceScores || cmd == nil {
		t.Errorf("choice = %v, want scores", m.Choice())
	}
}

func TestMenuShowsBestRun(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.Run{Outcome: storage.OutcomeDefeat, Level: 3, Seconds: 99, Materials: 2}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 24})
	view := m.View()
	if !strings.Contains(view, "R O B O T") || !strings.Contains(view, "level 3, 99s") {
		t.Errorf("menu view missing title or best run:\n%s", view)
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 132, Height: 40})
	cfg := next.(MenuModel).Config()
	if cfg.ScreenW != 132 || cfg.ScreenH != 40 {
		t.Errorf("config = %dx%d, want 132x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestSessionFlow(t *testing.T) {
	const id = "stub" // matches stubGame.ID
	registry.Register(id, func() registry.Game { return &stubGame{} })

	store := openTestStore(t)
	s := NewSessionModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}, id, Options{Player: "bob"})

	send := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	// Menu -> game
	send(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.game == nil {
		t.Fatal("enter on Play should start a game")
	}
	if !s.game.opts.Embedded {
		t.Error("session games are embedded")
	}

	// Pause, then Esc returns to the menu without ending the session
	send(runeKey('p'))
	send(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu || s.Quitting() {
		t.Fatalf("esc should return to the menu (screen=%v quitting=%v)", s.screen, s.Quitting())
	}

	// Stale ticks are dropped in the menu
	if cmd := send(TickMsg{}); cmd != nil {
		t.Error("menu should ignore ticks")
	}

	// Menu -> scoreboard -> menu
	send(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	send(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatal("esc should leave the scoreboard")
	}

	// Quit from the menu ends the session
	send(runeKey('q'))
	if !s.Quitting() || s.View() != "" {
		t.Error("q should end the session")
	}
}
