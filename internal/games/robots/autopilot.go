package robots

import (
	"math"

	"github.com/vovakirdan/robot-survival/internal/core"
)

// Autopilot is a scripted input source. It flees the nearest threat when it
// gets close, otherwise heads for the material, food or, when armed, lines up
// shots on the nearest boss.
type Autopilot struct {
	// DangerRadius is the center distance at which the pilot starts fleeing.
	DangerRadius float64
}

// NewAutopilot returns a pilot with a default danger radius.
func NewAutopilot() *Autopilot {
	return &Autopilot{DangerRadius: 110}
}

// Input computes the held keys for the next tick.
func (a *Autopilot) Input(snap *Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if snap.Phase != PhasePlaying {
		return in
	}

	me := snap.Player.Box().Center()
	threat, dist := nearestThreat(snap, me)
	switch {
	case dist < a.DangerRadius:
		steer(&in, me.Sub(threat))
	case snap.Material != nil:
		steer(&in, snap.Material.Box().Center().Sub(me))
	case !snap.Food.Collected && snap.Player.Lives < MaxLives:
		steer(&in, snap.Food.Box().Center().Sub(me))
	case snap.HUD.IsBossLevel && snap.Player.HasWeapon && len(snap.Bosses) > 0:
		aim(&in, threat.Sub(me))
	default:
		steer(&in, core.Vec2{X: ArenaSize / 2, Y: ArenaSize / 2}.Sub(me))
	}
	return in
}

// nearestThreat returns the center of the closest enemy or boss and its distance.
func nearestThreat(snap *Snapshot, from core.Vec2) (core.Vec2, float64) {
	best := math.Inf(1)
	var at core.Vec2
	consider := func(b core.Box) {
		c := b.Center()
		if d := core.Distance(from, c); d < best {
			best, at = d, c
		}
	}
	for _, e := range snap.Enemies {
		consider(e.Box())
	}
	for _, b := range snap.Bosses {
		consider(b.Box())
	}
	return at, best
}

// steer holds the keys pointing along d, ignoring components under one unit.
func steer(in *core.InputFrame, d core.Vec2) {
	switch {
	case d.X > 1:
		in.Set(core.ActionRight)
	case d.X < -1:
		in.Set(core.ActionLeft)
	}
	switch {
	case d.Y > 1:
		in.Set(core.ActionDown)
	case d.Y < -1:
		in.Set(core.ActionUp)
	}
}

// aim holds a single key along the dominant axis of d.
func aim(in *core.InputFrame, d core.Vec2) {
	if math.Abs(d.X) > math.Abs(d.Y) {
		if d.X > 0 {
			in.Set(core.ActionRight)
		} else {
			in.Set(core.ActionLeft)
		}
		return
	}
	if d.Y > 0 {
		in.Set(core.ActionDown)
	} else {
		in.Set(core.ActionUp)
	}
}
