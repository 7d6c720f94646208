package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecore/ecs"
)

// TypeSummary counts the components of one registered type.
type TypeSummary struct {
	Type    ecs.ComponentType
	Name    string
	Total   int
	Active  int
	Started int
	Owners  []ecs.ObjectID
}

// ComponentSummary shows per-type component counts. Ticking a type lists
// the objects that own one.
type ComponentSummary struct {
	selected map[ecs.ComponentType]bool
}

func NewComponentSummary() *ComponentSummary {
	return &ComponentSummary{
		selected: make(map[ecs.ComponentType]bool),
	}
}

func (cs *ComponentSummary) Render(world *ecs.World) {
	if !imgui.BeginV("Component Summary", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	summaries := summarizeComponents(world)
	imgui.Text(fmt.Sprintf("Components: %d", world.Components.Len()))
	if imgui.Button("Clear All") {
		clear(cs.selected)
	}
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("TypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Total")
		imgui.TableSetupColumn("Active")
		imgui.TableSetupColumn("Started")
		imgui.TableHeadersRow()

		for _, summary := range summaries {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			selected := cs.selected[summary.Type]
			if imgui.Checkbox(summary.Name, &selected) {
				cs.selected[summary.Type] = selected
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", summary.Total))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", summary.Active))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", summary.Started))
		}
		imgui.EndTable()
	}

	for _, summary := range summaries {
		if !cs.selected[summary.Type] {
			continue
		}
		if imgui.TreeNodeStr(fmt.Sprintf("%s owners (%d)", summary.Name, len(summary.Owners))) {
			for _, id := range summary.Owners {
				if obj, err := world.Objects.Get(id); err == nil {
					imgui.BulletText(fmt.Sprintf("%d %s", id, obj.NameString()))
				}
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// summarizeComponents returns one entry per registered type, ordered by tag.
func summarizeComponents(world *ecs.World) []TypeSummary {
	names := world.Registry.Names()
	summaries := make([]TypeSummary, 0, len(names))
	index := make(map[ecs.ComponentType]int, len(names))
	for _, name := range names {
		tag, _ := world.Registry.Lookup(name)
		index[tag] = len(summaries)
		summaries = append(summaries, TypeSummary{Type: tag, Name: name})
	}

	for _, c := range world.Components.All() {
		i, ok := index[c.CID]
		if !ok {
			continue
		}
		s := &summaries[i]
		s.Total++
		if c.IsActive {
			s.Active++
		}
		if c.IsStarted {
			s.Started++
		}
		s.Owners = append(s.Owners, c.GID)
	}
	return summaries
}
