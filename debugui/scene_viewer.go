package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecore/scene"
)

// SceneInfo is one row of the scene viewer.
type SceneInfo struct {
	Name    string
	ID      string
	Objects int
	Active  bool
	Started bool
	Loaded  bool
	Current bool
}

// SceneViewer lists the registered scenes. Selecting a row makes it current
// and the Active column pauses or resumes a scene's updates.
type SceneViewer struct {
	maxObjects int
}

func NewSceneViewer() *SceneViewer {
	return &SceneViewer{}
}

func (sv *SceneViewer) Render(scenes *scene.Manager) {
	if !imgui.BeginV("Scene Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	infos := collectScenes(scenes)
	for _, info := range infos {
		sv.maxObjects = max(sv.maxObjects, info.Objects)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SceneTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Active")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Objects")
		imgui.TableHeadersRow()

		for _, info := range infos {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(info.Name, info.Current, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				_ = scenes.SetCurrent(info.Name)
			}

			imgui.TableNextColumn()
			imgui.Text(info.ID)

			imgui.TableNextColumn()
			active := info.Active
			if imgui.Checkbox("##active"+info.Name, &active) {
				setSceneActive(scenes, info.Name, active)
			}

			imgui.TableNextColumn()
			imgui.Text(sceneState(info))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Objects))
			if sv.maxObjects > 0 {
				barWidth := float32(info.Objects) / float32(sv.maxObjects) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

func collectScenes(scenes *scene.Manager) []SceneInfo {
	if scenes == nil {
		return nil
	}
	current := scenes.Current()
	infos := make([]SceneInfo, 0, scenes.Len())
	for _, s := range scenes.Scenes() {
		infos = append(infos, SceneInfo{
			Name:    s.Name,
			ID:      s.ID.String()[:8],
			Objects: len(s.Objects),
			Active:  s.IsActive,
			Started: s.IsStarted,
			Loaded:  s.Loaded,
			Current: s == current,
		})
	}
	return infos
}

// setSceneActive flips the registry entry itself; scenes are held by reference.
func setSceneActive(scenes *scene.Manager, name string, active bool) {
	if s, err := scenes.Get(name); err == nil {
		s.IsActive = active
	}
}

func sceneState(info SceneInfo) string {
	switch {
	case info.Started:
		return "started"
	case info.Loaded:
		return "loaded"
	default:
		return "created"
	}
}
