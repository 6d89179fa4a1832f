package pang

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pang/internal/core"
)

// Visual characters for rendering
const (
	CeilingChar    = '─'
	FloorChar      = '▀'
	ProjectileChar = '|'
	PlayerHeadChar = '^'
)

// PlayerBody is drawn on the row above the floor.
const PlayerBody = "/#\\"

// BubbleGlyphs by division depth (cycling through)
var BubbleGlyphs = []rune{'@', 'O', 'o'}

// BubbleColors by division depth (cycling through)
var BubbleColors = []core.Color{core.ColorBrightRed, core.ColorOrange, core.ColorBrightYellow}

// viewport maps world coordinates onto the arena rows of the screen.
type viewport struct {
	left, right float64 // World x at the first and last column
	ceiling     float64 // World y at ceilingRow
	width       int
	ceilingRow  int
	floorRow    int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	halfW := g.cfg.Player.Width / 2
	return viewport{
		left:       g.cfg.Player.LeftLimit - halfW,
		right:      g.cfg.Player.RightLimit + halfW,
		ceiling:    g.cfg.Physics.CeilingY,
		width:      dst.Width(),
		ceilingRow: 1,
		floorRow:   dst.Height() - 1,
	}
}

// cell returns the screen cell for a world position.
func (v viewport) cell(p core.Vec2) (int, int) {
	x := (p.X - v.left) / (v.right - v.left) * float64(v.width-1)
	y := float64(v.floorRow) - p.Y/v.ceiling*float64(v.floorRow-v.ceilingRow)
	return int(math.Round(x)), int(math.Round(y))
}

// arena is the screen area between the ceiling and floor rows.
func (v viewport) arena() core.Rect {
	return core.NewRect(0, v.ceilingRow+1, v.width, v.floorRow-v.ceilingRow-1)
}

// cellsPerUnit returns the horizontal and vertical scale.
func (v viewport) cellsPerUnit() (float64, float64) {
	sx := float64(v.width-1) / (v.right - v.left)
	sy := float64(v.floorRow-v.ceilingRow) / v.ceiling
	return sx, sy
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	if g.startErr != nil {
		g.drawCenteredBox(dst, "CONFIG ERROR", g.startErr.Error())
		return
	}

	v := g.viewport(dst)
	g.renderBackground(dst, v)
	g.renderHUD(dst)
	g.renderBorders(dst, v)
	g.renderProjectiles(dst, v)
	g.renderBubbles(dst, v)
	g.renderPlayer(dst, v)
	g.renderOverlay(dst)
}

// renderHUD draws score, lives and level on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", g.livesShown))

	var levelText string
	if g.level.MaxLevel() == 0 {
		levelText = fmt.Sprintf("Level: %d", g.level.CurrentLevel())
	} else {
		levelText = fmt.Sprintf("Level: %d/%d", g.level.CurrentLevel(), g.level.MaxLevel())
	}
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)
}

// renderBackground scatters the current backdrop's glyph over the arena.
func (g *Game) renderBackground(dst *core.Screen, v viewport) {
	if g.background < 0 || g.background >= len(g.cfg.Backgrounds) {
		return
	}
	bg := g.cfg.Backgrounds[g.background]
	glyph := []rune(bg.Glyph)
	if len(glyph) == 0 {
		return
	}
	color, _ := core.ParseColor(bg.Color)

	arena := v.arena()
	for y := arena.Y; y < arena.Bottom(); y++ {
		for x := arena.X; x < arena.Right(); x++ {
			if (x*7+y*13)%11 == 0 {
				dst.SetColored(x, y, glyph[0], color)
			}
		}
	}
}

// renderBorders draws the ceiling and floor lines.
func (g *Game) renderBorders(dst *core.Screen, v viewport) {
	dst.DrawHLine(0, v.ceilingRow, dst.Width(), CeilingChar, core.ColorGray)
	dst.DrawHLine(0, v.floorRow, dst.Width(), FloorChar, core.ColorGray)
}

// renderBubbles draws each bubble as a filled ellipse matching its radius.
func (g *Game) renderBubbles(dst *core.Screen, v viewport) {
	sx, sy := v.cellsPerUnit()
	arena := v.arena()

	for _, b := range g.world.Bubbles() {
		cx, cy := v.cell(b.Pos)
		rx := b.Radius() * sx
		ry := b.Radius() * sy
		glyph := BubbleGlyphs[b.DivisionCount%len(BubbleGlyphs)]
		color := BubbleColors[b.DivisionCount%len(BubbleColors)]

		ix, iy := int(math.Ceil(rx)), int(math.Ceil(ry))
		for dy := -iy; dy <= iy; dy++ {
			for dx := -ix; dx <= ix; dx++ {
				if !insideEllipse(float64(dx), float64(dy), rx, ry) {
					continue
				}
				x, y := cx+dx, cy+dy
				if arena.Contains(x, y) {
					dst.SetColored(x, y, glyph, color)
				}
			}
		}
	}
}

func insideEllipse(dx, dy, rx, ry float64) bool {
	if dx == 0 && dy == 0 {
		return true
	}
	if rx <= 0 || ry <= 0 {
		return false
	}
	return (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1
}

// renderProjectiles draws every projectile in flight.
func (g *Game) renderProjectiles(dst *core.Screen, v viewport) {
	arena := v.arena()
	for _, p := range g.world.Projectiles() {
		x, y := v.cell(p.Pos)
		if arena.Contains(x, y) {
			dst.SetColored(x, y, ProjectileChar, core.ColorBrightYellow)
		}
	}
}

// renderPlayer draws the player standing on the floor.
func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	x, _ := v.cell(core.V2(g.player.X, 0))
	bodyRow := v.floorRow - 1
	body := []rune(PlayerBody)
	for i, r := range body {
		dst.SetColored(x-len(body)/2+i, bodyRow, r, core.ColorBrightCyan)
	}
	if bodyRow-1 > v.ceilingRow {
		dst.SetColored(x, bodyRow-1, PlayerHeadChar, core.ColorBrightCyan)
	}
}

// renderOverlay draws panels and pause messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.level.Finished():
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	case g.panels[PanelGameOver]:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case g.panels[PanelLevelComplete]:
		title := fmt.Sprintf("LEVEL %d COMPLETE", g.level.CurrentLevel())
		g.drawCenteredBox(dst, title, "Press ENTER to continue")
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subtitleLen := len([]rune(subtitle))

	boxW := core.Min(core.Max(titleLen, subtitleLen)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}
