package robots

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strconv"
)

// HUD carries the counters and texts shown around the arena.
type HUD struct {
	SurvivalTicks int
	Seconds       int
	Level         int
	IsBossLevel   bool
	Progress      float64 // fraction of the way to the next threshold multiple
	Objective     string
	Materials     int
	Lives         int

	ShowLevelUp  bool
	BannerLines  []string
	CountdownSec int // countdown digit while in PhaseCountdown
}

// Snapshot is a read-only copy of the simulation for renderers and tests.
// Mutating it never affects the game.
type Snapshot struct {
	Tick  uint64
	Phase Phase

	Player      Player
	Enemies     []Enemy
	Bosses      []BossRobot
	Projectiles []Projectile
	Material    *Material
	Food        Food

	HUD HUD
}

// Snapshot returns the current state copy.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        g.tick,
		Phase:       g.phase,
		Player:      g.player,
		Enemies:     append([]Enemy(nil), g.enemies...),
		Bosses:      append([]BossRobot(nil), g.bosses...),
		Projectiles: append([]Projectile(nil), g.projectiles...),
		Food:        g.food,
		HUD: HUD{
			SurvivalTicks: g.prog.SurvivalTicks,
			Seconds:       g.prog.SurvivalTicks / TicksPerSecond,
			Level:         g.prog.Level,
			IsBossLevel:   g.prog.IsBossLevel,
			Progress:      g.prog.Progress(),
			Objective:     g.objective(),
			Materials:     g.player.Materials.Count(),
			Lives:         g.player.Lives,
			ShowLevelUp:   g.prog.ShowLevelUp,
		},
	}
	if g.material != nil {
		m := *g.material
		snap.Material = &m
	}
	if g.prog.ShowLevelUp {
		snap.HUD.BannerLines = g.bannerLines()
	}
	if g.phase == PhaseCountdown {
		snap.HUD.CountdownSec = g.countdown/TicksPerSecond + 1
	}
	return snap
}

// objective returns the status line under the level counter.
func (g *Game) objective() string {
	if g.prog.IsBossLevel {
		if g.player.HasWeapon {
			return "BOSS LEVEL - WEAPON ACTIVE!"
		}
		return "BOSS LEVEL - FIND MATERIALS!"
	}
	info, ok := MaterialID(g.prog.Level).Info()
	if !ok {
		return ""
	}
	if g.player.Materials.Has(MaterialID(g.prog.Level)) {
		return info.Name + " - COLLECTED!"
	}
	return "Find the " + info.Name + "!"
}

// bannerLines returns the level-up banner text.
func (g *Game) bannerLines() []string {
	lines := []string{"LEVEL UP!", "Level " + strconv.Itoa(g.prog.Level)}
	if g.prog.IsBossLevel {
		lines = append(lines, "BOSS LEVEL!")
		if g.player.HasWeapon {
			return append(lines, "All materials collected!", "Use arrows to fire your weapon!")
		}
		return append(lines, "Missing materials to build weapon!", "Try to survive the boss!")
	}
	lines = append(lines, "Enemies are faster!", "You got an extra life!")
	if g.material != nil {
		lines = append(lines, "Find the "+g.material.Name+"!")
	}
	return lines
}

// Hash returns an FNV-1a digest of the simulation state for determinism checks.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v)) //#nosec G115 -- hash computation
		h.Write(buf[:])                                 //nolint:errcheck
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:]) //nolint:errcheck
	}
	putBool := func(v bool) {
		if v {
			putInt(1)
		} else {
			putInt(0)
		}
	}

	putInt(int64(snap.Tick)) //#nosec G115 -- hash computation
	putInt(int64(snap.Phase))
	putInt(int64(snap.HUD.SurvivalTicks))
	putInt(int64(snap.HUD.Level))
	putBool(snap.HUD.IsBossLevel)

	p := snap.Player
	putFloat(p.Pos.X)
	putFloat(p.Pos.Y)
	putInt(int64(p.Lives))
	putInt(int64(p.Invincibility))
	putBool(p.HasWeapon)
	putInt(int64(p.WeaponCooldown))
	putInt(int64(p.Materials))

	putInt(int64(len(snap.Enemies)))
	for _, e := range snap.Enemies {
		putFloat(e.Pos.X)
		putFloat(e.Pos.Y)
		putFloat(e.Speed)
	}
	putInt(int64(len(snap.Bosses)))
	for _, b := range snap.Bosses {
		putFloat(b.Pos.X)
		putFloat(b.Pos.Y)
		putInt(int64(b.Size))
	}
	putInt(int64(len(snap.Projectiles)))
	for _, pr := range snap.Projectiles {
		putFloat(pr.Pos.X)
		putFloat(pr.Pos.Y)
		putInt(int64(pr.DX))
		putInt(int64(pr.DY))
	}
	if m := snap.Material; m != nil {
		putInt(int64(m.ID))
		putFloat(m.Pos.X)
		putFloat(m.Pos.Y)
	} else {
		putInt(0)
	}
	putFloat(snap.Food.Pos.X)
	putFloat(snap.Food.Pos.Y)
	putBool(snap.Food.Collected)
	putInt(int64(snap.Food.RespawnTicks))

	return h.Sum64()
}
