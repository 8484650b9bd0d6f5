package robots

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/robot-survival/internal/core"
)

// hudRows is the number of screen rows above the arena frame.
const hudRows = 2

// arenaView maps arena coordinates onto the screen cells inside the frame.
type arenaView struct {
	frame core.Rect
	sx    float64 // cells per arena unit, horizontally
	sy    float64
}

func newArenaView(w, h int) arenaView {
	frame := core.NewRect(0, hudRows, w, h-hudRows)
	inner := core.NewRect(frame.X+1, frame.Y+1, frame.W-2, frame.H-2)
	return arenaView{
		frame: frame,
		sx:    float64(inner.W) / ArenaSize,
		sy:    float64(inner.H) / ArenaSize,
	}
}

// cells converts an arena box into the screen rect it covers, at least one cell.
func (v arenaView) cells(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y * v.sy))
	x1 := int(math.Ceil((b.X + b.W) * v.sx))
	y1 := int(math.Ceil((b.Y + b.H) * v.sy))
	w := max(x1-x0, 1)
	h := max(y1-y0, 1)
	return core.NewRect(v.frame.X+1+x0, v.frame.Y+1+y0, w, h)
}

// draw fills the part of an entity that falls inside the arena frame.
func (v arenaView) draw(dst *core.Screen, b core.Box, fill rune, c core.Color) {
	r := v.cells(b)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if x > v.frame.X && x < v.frame.Right()-1 && y > v.frame.Y && y < v.frame.Bottom()-1 {
				dst.SetColored(x, y, fill, c)
			}
		}
	}
}

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	snap := g.Snapshot()
	RenderSnapshot(dst, &snap)
}

// RenderSnapshot draws a snapshot into dst: the HUD on the top rows and the
// scaled arena below it.
func RenderSnapshot(dst *core.Screen, snap *Snapshot) {
	dst.Clear()
	if dst.Width() < 20 || dst.Height() < hudRows+6 {
		dst.DrawText(0, 0, "Window too small", core.ColorRed)
		return
	}

	view := newArenaView(dst.Width(), dst.Height())
	renderHUD(dst, snap)
	dst.DrawBox(view.frame, core.ColorBlue)

	switch snap.Phase {
	case PhaseCountdown:
		renderOverlay(dst, view, core.ColorWhite, fmt.Sprint(snap.HUD.CountdownSec))
		return
	case PhaseGo:
		renderOverlay(dst, view, core.ColorBrightGreen, "GO!")
		return
	case PhaseVictory:
		renderOverlay(dst, view, core.ColorGold,
			"VICTORY!",
			"You defeated the boss!",
			fmt.Sprintf("Survival Time: %d seconds", snap.HUD.Seconds),
			fmt.Sprintf("Materials collected: %d/%d", snap.HUD.Materials, BossLevel-1),
			"Press R to play again")
		return
	case PhaseDefeat:
		renderOverlay(dst, view, core.ColorRed,
			"GAME OVER",
			fmt.Sprintf("You survived %d seconds", snap.HUD.Seconds),
			fmt.Sprintf("Reached Level %d", snap.HUD.Level),
			fmt.Sprintf("Materials collected: %d/%d", snap.HUD.Materials, BossLevel-1),
			"Press R to play again")
		return
	}

	if !snap.Food.Collected {
		view.draw(dst, snap.Food.Box(), '+', core.ColorGreen)
	}
	if m := snap.Material; m != nil {
		view.draw(dst, m.Box(), '◆', m.Color)
	}
	for _, e := range snap.Enemies {
		view.draw(dst, e.Box(), '▓', core.ColorRed)
	}
	for _, b := range snap.Bosses {
		view.draw(dst, b.Box(), '█', core.ColorMagenta)
	}
	for _, p := range snap.Projectiles {
		view.draw(dst, p.Box(), '•', p.Color)
	}
	renderPlayer(dst, view, snap)

	if snap.HUD.ShowLevelUp {
		renderOverlay(dst, view, core.ColorYellow, snap.HUD.BannerLines...)
	}
}

func renderHUD(dst *core.Screen, snap *Snapshot) {
	hud := snap.HUD
	left := fmt.Sprintf(" Time: %ds  Level: %d  Materials: %d/%d", hud.Seconds, hud.Level, hud.Materials, BossLevel-1)
	dst.DrawText(0, 0, left, core.ColorWhite)

	hearts := strings.Repeat("♥", core.Clamp(hud.Lives, 0, MaxLives))
	dst.DrawText(dst.Width()-len([]rune(hearts))-1, 0, hearts, core.ColorBrightRed)

	objColor := core.ColorCyan
	if hud.IsBossLevel {
		objColor = core.ColorBrightRed
	} else if m := snap.Material; m != nil {
		objColor = m.Color
	}
	dst.DrawText(1, 1, hud.Objective, objColor)

	if hud.IsBossLevel {
		return
	}
	// progress bar toward the next threshold
	const barW = 12
	filled := core.Clamp(int(hud.Progress*barW), 0, barW)
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", barW-filled) + "]"
	dst.DrawText(dst.Width()-len(bar)-1, 1, bar, core.ColorGray)
}

// renderPlayer draws the avatar with its boss-level decorations.
func renderPlayer(dst *core.Screen, view arenaView, snap *Snapshot) {
	p := snap.Player
	if !p.Visible() {
		return
	}
	box := p.Box()
	if snap.HUD.IsBossLevel && p.Materials.Has(MaterialShieldModule) {
		view.draw(dst, box.Inset(-5), '░', core.ColorBlue)
	}
	if snap.HUD.IsBossLevel && p.HasWeapon {
		c := box.Center()
		view.draw(dst, core.NewBox(box.X-5, c.Y-2, 5, 4), '=', core.ColorBrightRed)
		view.draw(dst, core.NewBox(box.X+box.W, c.Y-2, 5, 4), '=', core.ColorBrightRed)
	}
	view.draw(dst, box, '█', playerColor(snap))
}

// playerColor brightens the avatar by material count in the boss level.
func playerColor(snap *Snapshot) core.Color {
	if !snap.HUD.IsBossLevel {
		return core.ColorBlue
	}
	switch n := snap.Player.Materials.Count(); {
	case n >= 4:
		return core.ColorBrightCyan
	case n >= 3:
		return core.ColorCyan
	case n >= 2:
		return core.ColorBrightBlue
	default:
		return core.ColorBlue
	}
}

// renderOverlay writes centered lines over the middle of the arena.
func renderOverlay(dst *core.Screen, view arenaView, c core.Color, lines ...string) {
	top := view.frame.Y + (view.frame.H-len(lines))/2
	for i, line := range lines {
		dst.DrawTextCentered(top+i, line, c)
	}
}
