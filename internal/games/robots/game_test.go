package robots

import (
	"strings"
	"testing"

	"github.com/vovakirdan/robot-survival/internal/core"
	"github.com/vovakirdan/robot-survival/internal/registry"
)

// playingGame returns a freshly reset game with the countdown skipped.
func playingGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 30})
	g.phase = PhasePlaying
	return g
}

// quietGame is a playing game with nothing that can touch the player.
func quietGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := playingGame(t, seed)
	g.enemies = nil
	g.bosses = nil
	g.material = nil
	g.food = Food{Pos: core.Vec2{X: 0, Y: 0}}
	return g
}

func materialsOf(ids ...MaterialID) MaterialSet {
	var s MaterialSet
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

func allMaterials() MaterialSet {
	return materialsOf(MaterialPowerCore, MaterialShieldModule, MaterialLaserEmitter, MaterialTurboEngine)
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create(%q): %v", GameID, err)
	}
	if g.Title() != "Robot Survival" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestResetInitialState(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})

	if g.Phase() != PhaseCountdown {
		t.Errorf("phase = %v, want countdown", g.Phase())
	}
	if g.player.Pos != (core.Vec2{X: 300, Y: 300}) || g.player.Lives != MaxLives {
		t.Errorf("player = %+v", g.player)
	}
	if len(g.enemies) != EnemyCountForLevel(1) {
		t.Errorf("enemies = %d, want %d", len(g.enemies), EnemyCountForLevel(1))
	}
	if g.prog.Level != 1 || g.prog.ScoreForNextLevel != BaseNextLevelScore || g.prog.IsBossLevel {
		t.Errorf("progression = %+v", g.prog)
	}
	if g.player.HasWeapon || g.player.Materials.Count() != 0 {
		t.Error("player starts armed or with materials")
	}
}

func TestCountdownAndGoFlash(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})
	snap := g.Snapshot()
	if snap.HUD.CountdownSec != 4 {
		t.Errorf("countdown display = %d, want 4", snap.HUD.CountdownSec)
	}

	in := core.InputFrameOf(core.ActionRight)
	for range CountdownTicks {
		g.Step(in)
	}
	if g.Phase() != PhaseGo {
		t.Fatalf("phase after countdown = %v, want go", g.Phase())
	}
	for range GoFlashTicks {
		g.Step(in)
	}
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase after go flash = %v, want playing", g.Phase())
	}
	if g.prog.SurvivalTicks != 0 || g.player.Pos.X != 300 {
		t.Error("simulation advanced before playing")
	}

	g.Step(in)
	if g.prog.SurvivalTicks != 1 || g.player.Pos.X != 305 {
		t.Errorf("first playing tick: ticks=%d x=%v", g.prog.SurvivalTicks, g.player.Pos.X)
	}
}

func TestDefeat(t *testing.T) {
	g := quietGame(t, 1)
	g.player.Lives = 1
	g.enemies = []Enemy{{Pos: g.player.Pos}}

	res := g.Step(core.NewInputFrame())

	if g.Phase() != PhaseDefeat || !res.State.GameOver || res.State.Won {
		t.Fatalf("phase = %v state = %+v, want defeat", g.Phase(), res.State)
	}
	if g.prog.SurvivalTicks != 0 {
		t.Error("survival time counted on the defeat tick")
	}

	before := g.Snapshot()
	g.Step(core.InputFrameOf(core.ActionLeft))
	after := g.Snapshot()
	if before.Player.Pos != after.Player.Pos || after.Phase != PhaseDefeat {
		t.Error("simulation kept running after game over")
	}
}

func TestBossDestructionLeadsToVictory(t *testing.T) {
	g := quietGame(t, 11)
	g.prog.Level = 4
	g.prog.ScoreForNextLevel = ScoreForLevel(4)
	g.prog.SurvivalTicks = ScoreForLevel(4) - 1
	g.player.Materials = allMaterials()
	g.Step(core.NewInputFrame())
	if !g.prog.IsBossLevel {
		t.Fatal("boss level not entered")
	}

	// 1 full boss + 2 + 4 + 8 fragments
	const wantHits = 15
	hits := 0
	for !g.Phase().Over() {
		if hits > wantHits {
			t.Fatalf("no victory after %d hits, %d bosses left", hits, len(g.bosses))
		}
		g.player.Invincibility = InvincibilityTicks
		g.bosses[0].Pos = core.Vec2{X: 200, Y: 200}
		c := g.bosses[0].Box().Center()
		g.projectiles = []Projectile{{Pos: core.Vec2{X: c.X - 5, Y: c.Y - 5}, DX: 1}}
		g.Step(core.NewInputFrame())
		hits++
	}

	if hits != wantHits {
		t.Errorf("victory after %d hits, want %d", hits, wantHits)
	}
	if g.Phase() != PhaseVictory || !g.State().Won {
		t.Errorf("phase = %v, want victory", g.Phase())
	}
}

func TestVictoryTakesPrecedence(t *testing.T) {
	g := quietGame(t, 1)
	g.prog.IsBossLevel = true
	g.player.Lives = 0

	if !g.checkGameOver() || g.Phase() != PhaseVictory {
		t.Errorf("phase = %v, want victory", g.Phase())
	}
}

func TestHasWeaponFixedAtEntry(t *testing.T) {
	g := quietGame(t, 1)
	g.prog.Level = 4
	g.prog.ScoreForNextLevel = ScoreForLevel(4)
	g.prog.SurvivalTicks = ScoreForLevel(4) - 1
	g.player.Materials = materialsOf(MaterialTurboEngine)
	g.Step(core.NewInputFrame())

	g.player.Materials = allMaterials()
	g.player.Invincibility = InvincibilityTicks
	g.Step(core.NewInputFrame())

	if g.player.HasWeapon {
		t.Error("weapon granted after boss-level entry")
	}
}

func TestRestart(t *testing.T) {
	g := quietGame(t, 1)
	g.player.Lives = 1
	g.prog.SurvivalTicks = 500
	g.enemies = []Enemy{{Pos: g.player.Pos}}
	g.Step(core.NewInputFrame())
	if g.Phase() != PhaseDefeat {
		t.Fatalf("phase = %v, want defeat", g.Phase())
	}

	g.Step(core.InputFrameOf(core.ActionRestart))

	if g.Phase() != PhasePlaying {
		t.Errorf("phase after restart = %v, want playing", g.Phase())
	}
	if g.player.Lives != MaxLives || g.prog.Level != 1 || g.prog.SurvivalTicks != 0 {
		t.Errorf("restart did not reset: lives=%d level=%d ticks=%d", g.player.Lives, g.prog.Level, g.prog.SurvivalTicks)
	}
	if len(g.enemies) != EnemyCountForLevel(1) || len(g.bosses) != 0 || len(g.projectiles) != 0 {
		t.Errorf("restart roster: enemies=%d bosses=%d projectiles=%d", len(g.enemies), len(g.bosses), len(g.projectiles))
	}
	if g.material == nil || g.material.ID != MaterialPowerCore {
		t.Error("restart did not place the first material")
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := quietGame(t, 1)
	g.prog.SurvivalTicks = 100
	g.Step(core.InputFrameOf(core.ActionRestart))
	if g.prog.SurvivalTicks != 101 {
		t.Errorf("restart signal acted during play: ticks=%d", g.prog.SurvivalTicks)
	}
}

func TestScoreIsSurvivalSeconds(t *testing.T) {
	g := quietGame(t, 1)
	g.prog.SurvivalTicks = 95
	if got := g.State().Score; got != 3 {
		t.Errorf("Score = %d, want 3", got)
	}
}

func TestDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		g := New()
		g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
		pilot := NewAutopilot()
		for range 3000 {
			snap := g.Snapshot()
			g.Step(pilot.Input(&snap))
		}
		return g.Snapshot()
	}

	s1 := run(12345)
	s2 := run(12345)
	if s1.Hash() != s2.Hash() {
		t.Errorf("same seed diverged: %d vs %d", s1.Hash(), s2.Hash())
	}

	s3 := run(54321)
	if s1.Hash() == s3.Hash() {
		t.Error("different seeds produced identical runs")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := playingGame(t, 1)
	snap := g.Snapshot()
	snap.Enemies[0].Pos = core.Vec2{X: -999, Y: -999}
	snap.Player.Lives = 0
	if snap.Material != nil {
		snap.Material.Pos = core.Vec2{}
	}

	if g.enemies[0].Pos.X == -999 || g.player.Lives != MaxLives {
		t.Error("snapshot shares state with the game")
	}
	if g.material != nil && g.material.Pos == (core.Vec2{}) {
		t.Error("snapshot shares the material")
	}
}

func TestObjectiveText(t *testing.T) {
	tests := []struct {
		name      string
		boss      bool
		weapon    bool
		materials MaterialSet
		want      string
	}{
		{"find", false, false, 0, "Find the Power Core!"},
		{"collected", false, false, materialsOf(MaterialPowerCore), "Power Core - COLLECTED!"},
		{"armed boss", true, true, allMaterials(), "BOSS LEVEL - WEAPON ACTIVE!"},
		{"unarmed boss", true, false, 0, "BOSS LEVEL - FIND MATERIALS!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := playingGame(t, 1)
			g.prog.IsBossLevel = tt.boss
			g.player.HasWeapon = tt.weapon
			g.player.Materials = tt.materials
			if got := g.Snapshot().HUD.Objective; got != tt.want {
				t.Errorf("objective = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	g := playingGame(t, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Level: 1") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Find the Power Core!") {
		t.Errorf("objective row = %q", screen.Row(1))
	}
	if !strings.Contains(screen.String(), "█") {
		t.Error("player not drawn")
	}

	g.phase = PhaseDefeat
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("defeat overlay missing")
	}

	tiny := core.NewScreen(10, 5)
	g.Render(tiny)
	if !strings.Contains(tiny.Row(0), "Window") {
		t.Errorf("tiny screen row = %q", tiny.Row(0))
	}
}

func TestAutopilotIdleOutsidePlay(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})
	snap := g.Snapshot()
	if NewAutopilot().Input(&snap).AnyDirection() {
		t.Error("autopilot pressed keys during the countdown")
	}
}

func TestAutopilotFleesNearbyEnemy(t *testing.T) {
	g := quietGame(t, 1)
	g.enemies = []Enemy{{Pos: core.Vec2{X: 360, Y: 300}}}
	snap := g.Snapshot()

	in := NewAutopilot().Input(&snap)
	if !in.Has(core.ActionLeft) || in.Has(core.ActionRight) {
		t.Errorf("autopilot did not flee left: %v", in.Actions)
	}
}
