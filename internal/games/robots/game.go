// Package robots implements Robot Survival: a fixed-tick arena where the
// player evades pursuing robots, collects one material per level and finally
// fragments a boss with the weapon those materials build.
package robots

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/robot-survival/internal/core"
	"github.com/vovakirdan/robot-survival/internal/registry"
)

// GameID is the registry identifier of the simulation.
const GameID = "robots"

// Phase is the top-level state of a run.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseGo
	PhasePlaying
	PhaseVictory
	PhaseDefeat
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseGo:
		return "go"
	case PhasePlaying:
		return "playing"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Over reports whether the run has ended.
func (p Phase) Over() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Game is the simulation engine. It is single-writer: only Step mutates it,
// and hosts read snapshots between ticks.
type Game struct {
	rng    *rand.Rand
	logger *log.Logger
	tick   uint64

	phase     Phase
	countdown int
	goTicks   int

	player      Player
	enemies     []Enemy
	bosses      []BossRobot
	projectiles []Projectile
	material    *Material
	food        Food
	prog        Progression

	screenW int
	screenH int
}

// New creates a Robot Survival game. Call Reset before stepping it.
func New() *Game {
	return &Game{
		logger: log.New(io.Discard),
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Robot Survival"
}

// SetLogger routes simulation events (level-ups, boss splits, game over) to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// Reset starts a new run from the countdown.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.phase = PhaseCountdown
	g.countdown = CountdownTicks
	g.goTicks = GoFlashTicks
	g.newRun()
}

// newRun builds the initial entity set of a run.
func (g *Game) newRun() {
	g.player = newPlayer()
	g.prog = newProgression()
	g.bosses = nil
	g.projectiles = nil
	g.enemies = make([]Enemy, 0, EnemyCountForLevel(1))
	for range EnemyCountForLevel(1) {
		g.enemies = append(g.enemies, g.spawnEnemy(1))
	}
	g.resetFood()
	g.spawnMaterial()
}

// restart performs a full reset and goes straight to playing.
func (g *Game) restart() {
	g.newRun()
	g.phase = PhasePlaying
	g.logger.Debug("run restarted", "tick", g.tick)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	switch g.phase {
	case PhaseCountdown:
		g.countdown--
		if g.countdown <= 0 {
			g.phase = PhaseGo
		}
	case PhaseGo:
		g.goTicks--
		if g.goTicks <= 0 {
			g.phase = PhasePlaying
		}
	case PhasePlaying:
		g.stepPlaying(in)
	case PhaseVictory, PhaseDefeat:
		if in.Has(core.ActionRestart) {
			g.restart()
		}
	}

	return core.StepResult{State: g.State()}
}

// stepPlaying runs one playing tick in fixed order.
func (g *Game) stepPlaying(in core.InputFrame) {
	g.movePlayer(in)
	g.tickTimers()
	g.tryFire(in)
	g.updateProjectiles()

	if g.prog.IsBossLevel {
		g.advanceBosses()
	} else {
		g.advanceEnemies()
	}

	if g.checkGameOver() {
		return
	}

	g.collectFood()
	g.collectMaterial()
	g.updateFoodRespawn()

	g.prog.SurvivalTicks++
	g.checkLevelUp()
	g.mustBeValid()
}

// tickTimers decrements the invincibility, weapon and banner timers.
func (g *Game) tickTimers() {
	if g.player.Invincibility > 0 {
		g.player.Invincibility--
	}
	if g.player.WeaponCooldown > 0 {
		g.player.WeaponCooldown--
	}
	if g.prog.ShowLevelUp {
		g.prog.LevelUpTicks--
		if g.prog.LevelUpTicks <= 0 {
			g.prog.ShowLevelUp = false
		}
	}
}

// checkGameOver ends the run. Clearing the boss wins even when the final
// contact also cost the last life.
func (g *Game) checkGameOver() bool {
	switch {
	case g.prog.IsBossLevel && len(g.bosses) == 0:
		g.phase = PhaseVictory
	case g.player.Lives <= 0:
		g.phase = PhaseDefeat
	default:
		return false
	}
	g.logger.Debug("game over", "outcome", g.phase, "level", g.prog.Level,
		"seconds", g.prog.SurvivalTicks/TicksPerSecond, "materials", g.player.Materials.Count())
	return true
}

// mustBeValid panics when a run invariant is broken.
func (g *Game) mustBeValid() {
	if g.player.Lives < 0 || g.player.Lives > MaxLives {
		panic(fmt.Sprintf("robots: lives out of range: %d", g.player.Lives))
	}
	if g.prog.Level < 1 {
		panic(fmt.Sprintf("robots: level out of range: %d", g.prog.Level))
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.prog.SurvivalTicks / TicksPerSecond,
		GameOver: g.phase.Over(),
		Won:      g.phase == PhaseVictory,
		Level:    g.prog.Level,
		Progress: g.player.Materials.Count(),
	}
}
