package robots

import (
	"github.com/vovakirdan/robot-survival/internal/core"
)

// Seek steps from pos toward target by speed along the unit direction vector.
// A zero-length vector leaves pos unchanged.
func Seek(pos, target core.Vec2, speed float64) core.Vec2 {
	d := target.Sub(pos)
	length := d.Len()
	if length == 0 {
		return pos
	}
	return pos.Add(d.Scale(speed / length))
}

// playerSpeed is the base speed, boosted in the boss level by the Turbo Engine.
func (g *Game) playerSpeed() float64 {
	if g.prog.IsBossLevel && g.player.Materials.Has(MaterialTurboEngine) {
		return PlayerBaseSpeed * TurboSpeedFactor
	}
	return PlayerBaseSpeed
}

// movePlayer applies raw directional input and keeps the player in the arena.
func (g *Game) movePlayer(in core.InputFrame) {
	dx, dy := in.Axis()
	speed := g.playerSpeed()
	p := &g.player
	p.Pos.X = core.ClampF(p.Pos.X+float64(dx)*speed, 0, PlayerMaxPos)
	p.Pos.Y = core.ClampF(p.Pos.Y+float64(dy)*speed, 0, PlayerMaxPos)
}
