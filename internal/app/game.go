//go:build ebiten

package app

import (
	"time"

	"scroll-scene/internal/core"
	"scroll-scene/internal/event"
	"scroll-scene/internal/overlay"
	"scroll-scene/internal/render"
	"scroll-scene/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WheelScale converts wheel ticks into pixels.
const WheelScale = 60

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	canvas  *render.Canvas
	upload  render.CanvasImage
	painter *ui.Painter
	clock   *core.FrameClock
	start   time.Time

	cursorX, cursorY int
}

// New constructs a Game rendering into a fresh canvas.
func New(cfg *Config, opts Options) (*Game, error) {
	canvas := render.NewCanvas()
	opts.Surface = canvas
	if opts.PixelRatio == 0 {
		opts.PixelRatio = ebiten.DeviceScaleFactor()
	}
	ctrl, err := NewController(cfg, opts)
	if err != nil {
		return nil, err
	}
	return &Game{
		ctrl:    ctrl,
		canvas:  canvas,
		painter: ui.NewPainter(),
		clock:   core.NewFrameClock(100 * time.Millisecond),
		start:   time.Now(),
		cursorX: -1,
		cursorY: -1,
	}, nil
}

// Update maps input to the controller and advances one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.ctrl.Reinitialize(); err != nil && g.ctrl.log != nil {
			g.ctrl.log.Printf("reinitialize: %v", err)
		}
	}
	for key, name := range keyNames {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.Key(name)
		}
	}

	mx, my := ebiten.CursorPosition()
	if mx != g.cursorX || my != g.cursorY {
		g.cursorX, g.cursorY = mx, my
		g.ctrl.PointerMove(float64(mx), float64(my))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ctrl.Click(float64(mx), float64(my))
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.ctrl.Wheel(-dy * WheelScale)
	}

	now := time.Now()
	g.ctrl.Frame(g.clock.Tick(now), now.Sub(g.start).Seconds())
	return nil
}

var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  event.KeyLeft,
	ebiten.KeyArrowRight: event.KeyRight,
	ebiten.KeyEscape:     event.KeyEscape,
	ebiten.KeyHome:       event.KeyHome,
}

// Draw renders the visible view.
func (g *Game) Draw(screen *ebiten.Image) {
	tr := g.ctrl.Translator()
	if g.ctrl.State() == overlay.StateOverlay {
		g.painter.DrawGallery(screen, g.ctrl.Swap().Gallery(), g.ctrl.GalleryLayout(), tr)
		return
	}
	doc := g.ctrl.Doc()
	g.painter.DrawBackground(screen, doc.Style)
	if h := g.ctrl.Handle(); h != nil && h.Field != nil {
		if h.Field.NeedsUpload() {
			tx, ty := h.Parallax.Offset()
			render.PaintField(g.canvas, h.Field, h.Viewport, tx, ty)
		}
		g.upload.Draw(screen, g.canvas)
	}
	g.painter.DrawPage(screen, doc, g.ctrl.Layout(), g.ctrl.ScrollY(), tr)
}

// Layout tracks the window size; every change is a viewport resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ctrl.SetPixelRatio(ebiten.DeviceScaleFactor())
	g.ctrl.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
