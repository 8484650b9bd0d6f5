package robots

import (
	"fmt"
	"math/bits"

	"github.com/vovakirdan/robot-survival/internal/core"
)

// Arena and entity dimensions.
const (
	ArenaSize      = 600
	PlayerSize     = 30
	EnemySize      = 30
	BossFullSize   = 90
	BossMinSize    = 30 // destroying a boss this size or smaller leaves nothing
	BossSplitStep  = 20
	ProjectileSize = 10
	MaterialSize   = 25
	FoodSize       = 20

	// PlayerMaxPos keeps the 30-unit hitbox inside the arena.
	PlayerMaxPos = ArenaSize - PlayerSize
)

// Gameplay constants. Durations are in ticks (30 per second).
const (
	TicksPerSecond      = 30
	MaxLives            = 3
	BossLevel           = 5
	PlayerBaseSpeed     = 5.0
	TurboSpeedFactor    = 1.5
	ProjectileSpeed     = 8
	EnemyHitboxInset    = 6
	InvincibilityTicks  = 60
	WeaponCooldownTicks = 30
	FoodRespawnTicks    = 90
	LevelUpBannerTicks  = 60
	CountdownTicks      = 90
	GoFlashTicks        = 30
	ShieldBlockOdds     = 3 // out of 10
	BaseNextLevelScore  = 300
	NextLevelScoreStep  = 150
	FullBossSpeed       = 1.0
	MaterialPlayerGap   = 100
	MaterialFoodGap     = 80
	spawnMargin         = 50
	spawnRange          = 500
)

// MaterialID identifies one of the four level materials.
type MaterialID int

const (
	MaterialPowerCore    MaterialID = 1
	MaterialShieldModule MaterialID = 2
	MaterialLaserEmitter MaterialID = 3
	MaterialTurboEngine  MaterialID = 4
)

// MaterialInfo is the static description of a material.
type MaterialInfo struct {
	Name  string
	Color core.Color
}

var materialCatalog = map[MaterialID]MaterialInfo{
	MaterialPowerCore:    {Name: "Power Core", Color: core.ColorBrightRed},
	MaterialShieldModule: {Name: "Shield Module", Color: core.ColorBrightBlue},
	MaterialLaserEmitter: {Name: "Laser Emitter", Color: core.ColorBrightGreen},
	MaterialTurboEngine:  {Name: "Turbo Engine", Color: core.ColorBrightYellow},
}

// Info returns the catalog entry for a material. ok is false for ids outside 1..4.
func (id MaterialID) Info() (info MaterialInfo, ok bool) {
	info, ok = materialCatalog[id]
	return info, ok
}

// MaterialSet is the set of collected material ids. It only ever grows.
type MaterialSet uint8

// Has reports whether the material was collected.
func (s MaterialSet) Has(id MaterialID) bool {
	return s&(1<<uint(id)) != 0
}

// With returns the set with id added.
func (s MaterialSet) With(id MaterialID) MaterialSet {
	return s | 1<<uint(id)
}

// Count returns the number of collected materials.
func (s MaterialSet) Count() int {
	return bits.OnesCount8(uint8(s))
}

// IDs returns the collected ids in ascending order.
func (s MaterialSet) IDs() []MaterialID {
	var ids []MaterialID
	for id := MaterialPowerCore; id <= MaterialTurboEngine; id++ {
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Player is the avatar controlled by the input collaborator.
type Player struct {
	Pos            core.Vec2
	Lives          int
	Invincibility  int // ticks of damage immunity left
	HasWeapon      bool
	WeaponCooldown int
	Materials      MaterialSet
}

func newPlayer() Player {
	return Player{
		Pos:   core.Vec2{X: 300, Y: 300},
		Lives: MaxLives,
	}
}

// Box returns the full player hitbox.
func (p Player) Box() core.Box {
	return core.Square(p.Pos.X, p.Pos.Y, PlayerSize)
}

// Visible reports the blink phase while invincible.
func (p Player) Visible() bool {
	return p.Invincibility == 0 || p.Invincibility%6 >= 3
}

// Enemy is a regular pursuer, present only outside the boss level.
type Enemy struct {
	Pos   core.Vec2
	Speed float64
}

// Box returns the enemy hitbox.
func (e Enemy) Box() core.Box {
	return core.Square(e.Pos.X, e.Pos.Y, EnemySize)
}

// BossRobot is a boss fragment. Smaller fragments move faster.
type BossRobot struct {
	Pos   core.Vec2
	Size  int
	Speed float64
}

// NewBoss creates a boss fragment of the given size, clamped so that at least
// half of it stays inside the arena. Panics on a non-positive size.
func NewBoss(pos core.Vec2, size int) BossRobot {
	if size <= 0 {
		panic(fmt.Sprintf("robots: boss size must be positive, got %d", size))
	}
	half := float64(size / 2)
	limit := float64(ArenaSize - size/2)
	return BossRobot{
		Pos: core.Vec2{
			X: core.ClampF(pos.X, -half, limit),
			Y: core.ClampF(pos.Y, -half, limit),
		},
		Size:  size,
		Speed: bossSpeed(size),
	}
}

// bossSpeed derives speed from size: the full boss crawls, fragments speed up.
func bossSpeed(size int) float64 {
	if size >= BossFullSize {
		return FullBossSpeed
	}
	return 1.2 + float64(BossFullSize-size)/30.0
}

// Box returns the boss hitbox.
func (b BossRobot) Box() core.Box {
	return core.Square(b.Pos.X, b.Pos.Y, float64(b.Size))
}

// Projectile is a weapon shot travelling along one axis.
type Projectile struct {
	Pos    core.Vec2
	DX, DY int
	Color  core.Color
}

// Advance moves the projectile one tick along its direction.
func (p *Projectile) Advance() {
	p.Pos.X += float64(p.DX * ProjectileSpeed)
	p.Pos.Y += float64(p.DY * ProjectileSpeed)
}

// OutOfArena reports whether the projectile left the arena.
func (p Projectile) OutOfArena() bool {
	return p.Pos.X < 0 || p.Pos.X > ArenaSize || p.Pos.Y < 0 || p.Pos.Y > ArenaSize
}

// Box returns the projectile hitbox.
func (p Projectile) Box() core.Box {
	return core.Square(p.Pos.X, p.Pos.Y, ProjectileSize)
}

// Material is the collectible for the current level.
type Material struct {
	ID    MaterialID
	Name  string
	Color core.Color
	Pos   core.Vec2
}

// Box returns the material hitbox.
func (m Material) Box() core.Box {
	return core.Square(m.Pos.X, m.Pos.Y, MaterialSize)
}

// Food restores one life and respawns elsewhere after a delay.
type Food struct {
	Pos          core.Vec2
	Collected    bool
	RespawnTicks int
}

// Box returns the food hitbox.
func (f Food) Box() core.Box {
	return core.Square(f.Pos.X, f.Pos.Y, FoodSize)
}
