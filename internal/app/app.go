//go:build ebiten

package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"floodplan/internal/core"
	"floodplan/internal/render"
	"floodplan/internal/session"
)

// waterFullDepth is the depth at which the water overlay reaches full
// opacity in the view.
const waterFullDepth = 3.0

// Game adapts a planning session to the ebiten.Game interface. The session
// only advances from Update, keeping the engines step-synchronous.
type Game struct {
	sess    *session.Session
	painter *render.GridPainter
	clock   *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
	status   string
}

// New constructs a Game for the provided session.
func New(sess *session.Session, scale, tps int) *Game {
	size := sess.Grid().Size()
	return &Game{
		sess:    sess,
		painter: render.NewGridPainter(size.W, size.H),
		clock:   core.NewFixedStep(tps),
		scale:   scale,
		status:  "setup: click to place drains, O to optimize",
	}
}

// Update handles input and advances the session at the configured tick rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sess.Reset()
		g.clock.Reset()
		g.status = "reset to setup"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.report(g.sess.StartOptimization())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.report(g.sess.BeginDefense())
	}
	g.handleDrainEdits()

	if (!g.paused && g.clock.ShouldStep()) || g.tickOnce {
		g.report(g.sess.Tick())
		g.tickOnce = false
	}
	return nil
}

// handleDrainEdits maps mouse clicks to drain placement during setup.
func (g *Game) handleDrainEdits() {
	if g.sess.Phase() != session.PhaseSetup {
		return
	}
	add := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	remove := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !add && !remove {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	if add {
		g.report(g.sess.AddDrain(x, y))
	} else {
		g.report(g.sess.RemoveDrain(x, y))
	}
}

func (g *Game) report(err error) {
	if err != nil {
		g.status = err.Error()
	}
}

// Draw renders the current session state with a one-line status readout.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sess.Snapshot()

	var volumes []float64
	if snap.Phase == session.PhaseDefending {
		volumes = g.sess.Water().Volumes()
	}
	var path []core.Point
	if len(snap.Optimizer.BestPath) > 0 {
		path = snap.Optimizer.BestPath
	}
	g.painter.Blit(screen, g.sess.Grid(), volumes, path, waterFullDepth, g.scale)

	line := fmt.Sprintf("%s it=%d best=%.1f stag=%d vol=%.1f drained=%.1f | %s",
		snap.Phase, snap.Optimizer.Iteration, snap.Optimizer.BestCost,
		snap.Optimizer.Stagnation, snap.TotalVolume, snap.DrainedTotal, g.status)
	ebitenutil.DebugPrint(screen, line)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.sess.Grid().Size()
	return size.W * g.scale, size.H * g.scale
}
