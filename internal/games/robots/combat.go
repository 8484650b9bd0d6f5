package robots

import (
	"slices"

	"github.com/vovakirdan/robot-survival/internal/core"
)

// SplitBoss returns the fragments left after destroying b: two children of
// size-20 offset diagonally, or none when b is at or below the minimum size.
func SplitBoss(b BossRobot) []BossRobot {
	if b.Size <= BossMinSize {
		return nil
	}
	size := b.Size - BossSplitStep
	off := core.Vec2{X: float64(size), Y: float64(size)}
	return []BossRobot{
		NewBoss(b.Pos.Sub(off), size),
		NewBoss(b.Pos.Add(off), size),
	}
}

// destroyBoss removes the boss at index i and appends its fragments.
func (g *Game) destroyBoss(i int) {
	b := g.bosses[i]
	children := SplitBoss(b)
	g.bosses = append(slices.Delete(g.bosses, i, i+1), children...)
	g.logger.Debug("boss destroyed", "size", b.Size, "fragments", len(children), "remaining", len(g.bosses))
}

// loseLife applies one hit. In the boss level the Shield Module blocks 30% of
// hits outright. Returns true when the hit was blocked.
func (g *Game) loseLife() bool {
	if g.prog.IsBossLevel && g.player.Materials.Has(MaterialShieldModule) &&
		g.rng.Intn(10) < ShieldBlockOdds {
		g.logger.Debug("hit blocked by shield", "tick", g.tick)
		return true
	}
	g.player.Lives--
	g.logger.Debug("life lost", "lives", g.player.Lives, "tick", g.tick)
	return false
}

// restoreLife grants one life up to the maximum.
func (g *Game) restoreLife() {
	if g.player.Lives < MaxLives {
		g.player.Lives++
	}
}

// fireDirection derives the shot axis from held keys. Opposite keys cancel;
// a vertical direction wins over a horizontal one.
func fireDirection(in core.InputFrame) (dx, dy int) {
	ax, ay := in.Axis()
	if ay != 0 {
		return 0, ay
	}
	return ax, 0
}

// projectileColor tints shots by the collected materials.
func (g *Game) projectileColor() core.Color {
	switch {
	case g.player.Materials.Has(MaterialPowerCore):
		return materialCatalog[MaterialPowerCore].Color
	case g.player.Materials.Has(MaterialLaserEmitter):
		return materialCatalog[MaterialLaserEmitter].Color
	default:
		return core.ColorRed
	}
}

// tryFire shoots when armed in the boss level, off cooldown and a direction is held.
func (g *Game) tryFire(in core.InputFrame) {
	p := &g.player
	if !g.prog.IsBossLevel || !p.HasWeapon || p.WeaponCooldown > 0 || !in.AnyDirection() {
		return
	}
	dx, dy := fireDirection(in)
	if dx == 0 && dy == 0 {
		return
	}
	center := p.Box().Center()
	g.projectiles = append(g.projectiles, Projectile{
		Pos:   core.Vec2{X: center.X - ProjectileSize/2, Y: center.Y - ProjectileSize/2},
		DX:    dx,
		DY:    dy,
		Color: g.projectileColor(),
	})
	p.WeaponCooldown = WeaponCooldownTicks
}

// updateProjectiles walks shots from newest to oldest, dropping those leaving
// the arena and letting each remaining shot destroy at most one boss.
func (g *Game) updateProjectiles() {
	for i := len(g.projectiles) - 1; i >= 0; i-- {
		p := &g.projectiles[i]
		p.Advance()
		if p.OutOfArena() {
			g.projectiles = slices.Delete(g.projectiles, i, i+1)
			continue
		}
		if j := g.bossHitBy(p.Box()); j >= 0 {
			g.destroyBoss(j)
			g.projectiles = slices.Delete(g.projectiles, i, i+1)
		}
	}
}

// bossHitBy returns the index of the last boss overlapping box, or -1.
// Fragments are appended, so the newest are found first.
func (g *Game) bossHitBy(box core.Box) int {
	for i := len(g.bosses) - 1; i >= 0; i-- {
		if g.bosses[i].Box().Overlaps(box) {
			return i
		}
	}
	return -1
}

// advanceEnemies steps each enemy toward the player and checks it against the
// forgiving (inset) hitbox right after it moves. The first hit ends the pass,
// so the enemies after it hold their position for this tick.
func (g *Game) advanceEnemies() {
	hitbox := g.player.Box().Inset(EnemyHitboxInset)
	for i := range g.enemies {
		e := &g.enemies[i]
		e.Pos = Seek(e.Pos, g.player.Pos, e.Speed)
		if g.player.Invincibility <= 0 && e.Box().Overlaps(hitbox) {
			g.loseLife()
			g.player.Invincibility = InvincibilityTicks
			return
		}
	}
}

// advanceBosses moves fragments newest first. The first one touching the
// player splits, costs a life and ends the pass.
func (g *Game) advanceBosses() {
	for i := len(g.bosses) - 1; i >= 0; i-- {
		b := &g.bosses[i]
		b.Pos = Seek(b.Pos, g.player.Pos, b.Speed)
		if g.player.Invincibility <= 0 && b.Box().Overlaps(g.player.Box()) {
			g.destroyBoss(i)
			g.loseLife()
			g.player.Invincibility = InvincibilityTicks
			return
		}
	}
}

// collectFood restores a life when the player touches uncollected food.
func (g *Game) collectFood() {
	if g.food.Collected || !g.player.Box().Overlaps(g.food.Box()) {
		return
	}
	g.food.Collected = true
	g.food.RespawnTicks = FoodRespawnTicks
	g.restoreLife()
}

// collectMaterial records the current level's material on contact.
func (g *Game) collectMaterial() {
	m := g.material
	if m == nil || !g.player.Box().Overlaps(m.Box()) {
		return
	}
	g.player.Materials = g.player.Materials.With(m.ID)
	g.material = nil
	g.logger.Debug("material collected", "material", m.Name, "level", g.prog.Level)
}

// updateFoodRespawn counts down the respawn timer of eaten food.
func (g *Game) updateFoodRespawn() {
	if !g.food.Collected {
		return
	}
	g.food.RespawnTicks--
	if g.food.RespawnTicks <= 0 {
		g.resetFood()
	}
}
