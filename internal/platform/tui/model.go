package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/robot-survival/internal/core"
	"github.com/vovakirdan/robot-survival/internal/registry"
	"github.com/vovakirdan/robot-survival/internal/storage"
)

// footerRows is the number of rows below the game screen.
const footerRows = 1

const footerHint = "arrows/WASD move+fire · P pause · R restart · Esc menu · Q quit"

// Options configures a game Model.
type Options struct {
	HoldTicks int         // key hold emulation window, in ticks
	Player    string      // recorded with each run; SSH user name
	Logger    *log.Logger // nil discards
	Embedded  bool        // launched from a menu: Esc returns to it instead of quitting
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	opts      Options
	logger    *log.Logger
	keyMapper *KeyMapper

	held   *HeldKeys
	edges  core.InputFrame // one-shot actions for the next tick
	tick   int
	paused bool

	gameState  core.GameState
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current game over has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 1)),
		store:     store,
		config:    cfg,
		opts:      opts,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		held:      NewHeldKeys(opts.HoldTicks),
		edges:     core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed, "player", m.opts.Player)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if !m.paused {
			m.held.Press(action, m.tick)
		}
	case core.ActionPause:
		if !m.gameState.GameOver {
			m.paused = !m.paused
			m.held.Release()
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.edges.Set(core.ActionRestart)
		}
	case core.ActionBack:
		if m.gameState.GameOver || m.paused {
			if m.opts.Embedded {
				m.backToMenu = true
			} else {
				m.quitting = true
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events. The arena scales to the new
// size, so the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerRows, 1))
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	if m.paused {
		return m, tickCmd(m.config.TickRate)
	}

	m.tick++
	input := m.held.Frame(m.tick)
	if m.edges.Has(core.ActionRestart) {
		input.Set(core.ActionRestart)
	}
	m.edges.Clear()

	wasOver := m.gameState.GameOver
	result := m.game.Step(input)
	m.gameState = result.State

	if wasOver && !m.gameState.GameOver {
		m.runSaved = false
		m.held.Release()
		m.logger.Debug("run restarted", "player", m.opts.Player)
	}

	// Record the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Storage errors are logged, not fatal.
func (m *Model) saveRun() {
	outcome := storage.OutcomeDefeat
	if m.gameState.Won {
		outcome = storage.OutcomeVictory
	}
	m.logger.Info("run finished",
		"player", m.opts.Player,
		"outcome", outcome,
		"level", m.gameState.Level,
		"seconds", m.gameState.Score,
		"materials", m.gameState.Progress,
	)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		Player:    m.opts.Player,
		Outcome:   outcome,
		Level:     m.gameState.Level,
		Seconds:   m.gameState.Score,
		Materials: m.gameState.Progress,
		Seed:      m.config.Seed,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".robots", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)

	footer := renderFooter(footerHint, m.screen.Width())
	if m.paused {
		footer = renderPaused(m.screen.Width())
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Paused reports whether the simulation clock is stopped.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
// Returns true if the user asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
