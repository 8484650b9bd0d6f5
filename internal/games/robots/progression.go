package robots

import (
	"fmt"

	"github.com/vovakirdan/robot-survival/internal/core"
)

// Progression tracks survival time and level advancement.
type Progression struct {
	Level             int
	ScoreForNextLevel int // level-up fires at multiples of this many ticks
	SurvivalTicks     int
	IsBossLevel       bool
	ShowLevelUp       bool
	LevelUpTicks      int
}

func newProgression() Progression {
	return Progression{
		Level:             1,
		ScoreForNextLevel: ScoreForLevel(1),
	}
}

// Progress returns the fraction of the way to the next threshold multiple.
func (p Progression) Progress() float64 {
	if p.ScoreForNextLevel <= 0 {
		return 0
	}
	return float64(p.SurvivalTicks%p.ScoreForNextLevel) / float64(p.ScoreForNextLevel)
}

func mustLevel(level int) {
	if level < 1 {
		panic(fmt.Sprintf("robots: level must be >= 1, got %d", level))
	}
}

// EnemyCountForLevel returns 3+2*level regular enemies, none from the boss level on.
func EnemyCountForLevel(level int) int {
	mustLevel(level)
	if level >= BossLevel {
		return 0
	}
	return 3 + 2*level
}

// EnemySpeedForLevel returns 1.5 + 0.3*level + u, where u is uniform in [0,1).
func EnemySpeedForLevel(level int, u float64) float64 {
	mustLevel(level)
	return 1.5 + 0.3*float64(level) + u
}

// ScoreForLevel returns the tick threshold used while at level. The first
// level uses the base threshold; later levels add 150 ticks per level.
func ScoreForLevel(level int) int {
	mustLevel(level)
	if level == 1 {
		return BaseNextLevelScore
	}
	return BaseNextLevelScore + NextLevelScoreStep*level
}

// checkLevelUp fires a level-up on positive multiples of the threshold. Below
// the boss level it waits for the outgoing level's material; a miss is retried
// at the next multiple.
func (g *Game) checkLevelUp() {
	t := g.prog.SurvivalTicks
	if t <= 0 || t%g.prog.ScoreForNextLevel != 0 {
		return
	}
	if g.prog.Level < BossLevel && !g.player.Materials.Has(MaterialID(g.prog.Level)) {
		g.logger.Debug("level-up withheld, material missing", "level", g.prog.Level, "ticks", t)
		return
	}
	g.levelUp()
}

// levelUp advances one level and applies its effects.
func (g *Game) levelUp() {
	g.prog.Level++
	level := g.prog.Level
	g.prog.ShowLevelUp = true
	g.prog.LevelUpTicks = LevelUpBannerTicks

	switch {
	case level == BossLevel:
		g.enterBossLevel()
	case !g.prog.IsBossLevel:
		for len(g.enemies) < EnemyCountForLevel(level) {
			g.enemies = append(g.enemies, g.spawnEnemy(level))
		}
		for i := range g.enemies {
			g.enemies[i].Speed = EnemySpeedForLevel(level, g.rng.Float64())
		}
		g.spawnMaterial()
	}

	g.prog.ScoreForNextLevel = ScoreForLevel(level)
	g.restoreLife()
	g.logger.Debug("level up", "level", level, "boss", g.prog.IsBossLevel,
		"enemies", len(g.enemies), "next", g.prog.ScoreForNextLevel)
}

// enterBossLevel clears the regular enemies, spawns the full boss and arms
// the player if every material was collected.
func (g *Game) enterBossLevel() {
	g.prog.IsBossLevel = true
	g.enemies = nil
	g.bosses = append(g.bosses, g.spawnBoss())
	g.player.HasWeapon = g.player.Materials.Count() >= BossLevel-1
	g.logger.Debug("boss level", "weapon", g.player.HasWeapon, "materials", g.player.Materials.Count())
}

// edgePosition picks a spawn point just outside a random arena edge.
func (g *Game) edgePosition(size int) core.Vec2 {
	outside := func() float64 {
		if g.rng.Intn(2) == 0 {
			return -float64(size)
		}
		return ArenaSize
	}
	if g.rng.Intn(2) == 0 {
		x := outside()
		return core.Vec2{X: x, Y: float64(g.rng.Intn(ArenaSize))}
	}
	x := float64(g.rng.Intn(ArenaSize))
	return core.Vec2{X: x, Y: outside()}
}

func (g *Game) spawnEnemy(level int) Enemy {
	speed := EnemySpeedForLevel(level, g.rng.Float64())
	return Enemy{Pos: g.edgePosition(EnemySize), Speed: speed}
}

func (g *Game) spawnBoss() BossRobot {
	return BossRobot{
		Pos:   g.edgePosition(BossFullSize),
		Size:  BossFullSize,
		Speed: bossSpeed(BossFullSize),
	}
}

// innerPosition picks a point in [50,550) on both axes.
func (g *Game) innerPosition() core.Vec2 {
	x := float64(g.rng.Intn(spawnRange) + spawnMargin)
	y := float64(g.rng.Intn(spawnRange) + spawnMargin)
	return core.Vec2{X: x, Y: y}
}

// resetFood places fresh food at a random inner position.
func (g *Game) resetFood() {
	g.food = Food{Pos: g.innerPosition()}
}

// spawnMaterial places the current level's material if it is still missing,
// away from the player and the food. Otherwise the slot is cleared.
func (g *Game) spawnMaterial() {
	id := MaterialID(g.prog.Level)
	info, ok := id.Info()
	if g.prog.Level >= BossLevel || !ok || g.player.Materials.Has(id) {
		g.material = nil
		return
	}

	var pos core.Vec2
	for {
		pos = g.innerPosition()
		if core.Distance(pos, g.player.Pos) >= MaterialPlayerGap &&
			core.Distance(pos, g.food.Pos) >= MaterialFoodGap {
			break
		}
	}
	g.material = &Material{ID: id, Name: info.Name, Color: info.Color, Pos: pos}
}
