// Package debugui is a Dear ImGui developer overlay for a running game: an
// object browser, a component inspector, a scene viewer, a component summary
// and frame statistics.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecore/engine"
)

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Hosts use it to keep overlay clicks and typing out of the game's input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders every debug window for one game. Render must be called
// between the ImGui backend's BeginFrame and EndFrame.
type Overlay struct {
	game *engine.Game

	Browser   *ObjectBrowser
	Inspector *ComponentInspector
	Scenes    *SceneViewer
	Summary   *ComponentSummary
	Stats     *PerformanceStats
	Input     InputState
}

func NewOverlay(game *engine.Game) *Overlay {
	return &Overlay{
		game:      game,
		Browser:   NewObjectBrowser(100),
		Inspector: NewComponentInspector(),
		Scenes:    NewSceneViewer(),
		Summary:   NewComponentSummary(),
		Stats:     NewPerformanceStats(120),
	}
}

// Render draws the overlay for the frame that just ran. dt is in seconds.
func (o *Overlay) Render(dt float32) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	world := o.game.World()
	if world == nil {
		return
	}

	o.Browser.Render(world, o.game.Scenes())
	o.Inspector.Render(world, o.Browser.Selected())
	o.Scenes.Render(o.game.Scenes())
	o.Summary.Render(world)
	o.Stats.Render(o.game.Stats(), dt)
}
