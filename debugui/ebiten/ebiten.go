// Package ebiten runs a game inside an Ebiten window with the debug overlay
// drawn through the Dear ImGui Ebiten backend.
package ebiten

import (
	"image/color"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/scenecore/debugui"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/engine"
	"go.uber.org/zap"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	return ImguiBackend{EbitenBackend: backend}
}

// Host implements ebiten.Game. Each Ebiten tick polls the keyboard and mouse,
// runs one game frame and renders the overlay.
type Host struct {
	game    *engine.Game
	backend ImguiBackend
	overlay *debugui.Overlay
	log     *zap.Logger

	// ShowOverlay toggles with F1.
	ShowOverlay bool
	// PixelsPerUnit scales the top-down scene view.
	PixelsPerUnit float32

	input    ecs.InputSnapshot
	lastTick time.Time
	width    int
	height   int
}

// NewHost wires a host to game. Call Register before game.Create so the
// default scene's load reaches the host.
func NewHost(game *engine.Game, backend ImguiBackend) *Host {
	return &Host{
		game:          game,
		backend:       backend,
		overlay:       debugui.NewOverlay(game),
		log:           game.Logger().Named("host"),
		ShowOverlay:   true,
		PixelsPerUnit: 20,
	}
}

// Register installs the host's callbacks on the game.
func (h *Host) Register() error {
	return h.game.RegisterCallbacks(h.OnSceneLoaded, h.PollInput)
}

// OnSceneLoaded is the scene-load callback.
func (h *Host) OnSceneLoaded(ev engine.SceneLoaded) {
	h.log.Info("scene ready",
		zap.String("scene", ev.Name),
		zap.Stringer("id", ev.SceneID),
		zap.Int("objects", ev.Objects),
		zap.Int("render_objects", ev.RenderObjects),
		zap.Int("lights", ev.Lights),
	)
}

// PollInput is the input callback. Input captured by the overlay is withheld
// from the game.
func (h *Host) PollInput() ecs.InputSnapshot {
	x, y := ebiten.CursorPosition()
	var buttons uint8
	for i, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if ebiten.IsMouseButtonPressed(b) {
			buttons |= 1 << i
		}
	}

	state := h.overlay.Input
	keys := ebiten.IsKeyPressed
	if state.WantCaptureKeyboard {
		keys = func(ebiten.Key) bool { return false }
	}
	if state.WantCaptureMouse {
		buttons = 0
	}

	h.input = snapshot(keys, mgl32.Vec2{float32(x), float32(y)}, buttons, h.input)
	return h.input
}

func (h *Host) Update() error {
	now := time.Now()
	dt := float32(0)
	if !h.lastTick.IsZero() {
		dt = float32(now.Sub(h.lastTick).Seconds())
	}
	h.lastTick = now

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		h.ShowOverlay = !h.ShowOverlay
	}

	h.backend.BeginFrame()
	err := h.game.Update()
	if h.ShowOverlay {
		h.overlay.Render(dt)
	}
	h.backend.EndFrame()
	return err
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x18, G: 0x1b, B: 0x22, A: 0xff})

	if renderer := h.game.Renderer(); renderer != nil {
		for _, obj := range renderer.Objects() {
			x, y := h.toScreen(obj.World.Col(3).Vec3())
			vector.DrawFilledRect(screen, x-4, y-4, 8, 8, color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}, false)
		}
	}
	if lights := h.game.Lights(); lights != nil {
		for _, light := range lights.All() {
			x, y := h.toScreen(light.Position.Vec3())
			vector.DrawFilledCircle(screen, x, y, 5, emissionColor(light.Emission), true)
		}
	}
	if world := h.game.World(); world != nil {
		for _, camera := range ecs.Each[*ecs.Camera](world.Components) {
			x, y := h.toScreen(camera.Position)
			vector.DrawFilledRect(screen, x-3, y-3, 6, 6, color.White, false)
		}
	}

	if h.ShowOverlay {
		h.backend.Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.backend.Layout(outsideWidth, outsideHeight)
	h.width, h.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// toScreen projects the XZ plane onto the window, +X right and -Z up.
func (h *Host) toScreen(p mgl32.Vec3) (float32, float32) {
	return worldToScreen(p, h.PixelsPerUnit, h.width, h.height)
}

func worldToScreen(p mgl32.Vec3, pixelsPerUnit float32, width, height int) (float32, float32) {
	cx, cy := float32(width)/2, float32(height)/2
	return cx + p.X()*pixelsPerUnit, cy + p.Z()*pixelsPerUnit
}

func emissionColor(e mgl32.Vec4) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1) * 255)
	}
	return color.RGBA{R: channel(e[0]), G: channel(e[1]), B: channel(e[2]), A: 0xff}
}
