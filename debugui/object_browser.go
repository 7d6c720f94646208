package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/scene"
)

// ObjectInfo is one row of the object browser.
type ObjectInfo struct {
	ID         ecs.ObjectID
	Name       string
	Scene      string
	Components []string
	RenderID   int32
	Active     bool
}

type objectBrowserCache struct {
	objects        []ObjectInfo
	lastObjects    int
	lastComponents int
	sortColumn     int
	sortAscending  bool
}

// ObjectBrowser lists every object in the world with filtering and paging.
type ObjectBrowser struct {
	cache             *objectBrowserCache
	selected          ecs.ObjectID
	filterText        string
	maxObjectsPerPage int
	currentPage       int
}

func NewObjectBrowser(maxObjectsPerPage int) *ObjectBrowser {
	return &ObjectBrowser{
		cache: &objectBrowserCache{
			lastObjects:   -1,
			sortAscending: true,
		},
		selected:          ecs.InvalidIndex,
		maxObjectsPerPage: maxObjectsPerPage,
	}
}

func (ob *ObjectBrowser) Render(world *ecs.World, scenes *scene.Manager) {
	if !imgui.BeginV("Object Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ob.rebuildCacheIfNeeded(world, scenes)

	imgui.InputTextWithHint("##search", "Search...", &ob.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		ob.filterText = ""
		ob.currentPage = 0
	}

	filtered := filterObjects(ob.cache.objects, ob.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ObjectTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Scene")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Render ID")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ob.cache.sortColumn = int(spec.ColumnIndex())
			ob.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortObjects(ob.cache.objects, ob.cache.sortColumn, ob.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start, end := pageBounds(len(filtered), ob.currentPage, ob.maxObjectsPerPage)
		for _, obj := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", obj.ID), ob.selected == obj.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ob.selected = obj.ID
			}

			imgui.TableNextColumn()
			if obj.Active {
				imgui.Text(obj.Name)
			} else {
				imgui.Text(obj.Name + " (inactive)")
			}

			imgui.TableNextColumn()
			imgui.Text(obj.Scene)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(obj.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", obj.RenderID))
		}

		imgui.EndTable()
	}

	if len(filtered) > ob.maxObjectsPerPage {
		totalPages := (len(filtered) + ob.maxObjectsPerPage - 1) / ob.maxObjectsPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d objects)", ob.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && ob.currentPage > 0 {
			ob.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && ob.currentPage < totalPages-1 {
			ob.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d objects", len(filtered)))
	}

	imgui.End()
}

// Selected returns the selected object, or ecs.InvalidIndex.
func (ob *ObjectBrowser) Selected() ecs.ObjectID {
	return ob.selected
}

// Select changes the selected object.
func (ob *ObjectBrowser) Select(id ecs.ObjectID) {
	ob.selected = id
}

// The world is append-only, so the row set only changes when a count grows.
func (ob *ObjectBrowser) rebuildCacheIfNeeded(world *ecs.World, scenes *scene.Manager) {
	objects, components := world.Objects.Len(), world.Components.Len()
	if ob.cache.lastObjects == objects && ob.cache.lastComponents == components {
		refreshActive(ob.cache.objects, world)
		return
	}
	ob.cache.lastObjects = objects
	ob.cache.lastComponents = components
	ob.cache.objects = collectObjects(world, scenes)
	sortObjects(ob.cache.objects, ob.cache.sortColumn, ob.cache.sortAscending)
}

func collectObjects(world *ecs.World, scenes *scene.Manager) []ObjectInfo {
	owner := make(map[ecs.ObjectID]string)
	if scenes != nil {
		for _, s := range scenes.Scenes() {
			for _, id := range s.Objects {
				owner[id] = s.Name
			}
		}
	}

	objects := make([]ObjectInfo, 0, world.Objects.Len())
	for id, obj := range world.Objects.All() {
		names := make([]string, 0, obj.ComponentCount)
		for _, slot := range obj.Slots() {
			names = append(names, slot.NameString())
		}
		objects = append(objects, ObjectInfo{
			ID:         id,
			Name:       obj.NameString(),
			Scene:      owner[id],
			Components: names,
			RenderID:   obj.RenderID,
			Active:     obj.Active(),
		})
	}
	return objects
}

func refreshActive(objects []ObjectInfo, world *ecs.World) {
	for i := range objects {
		if obj, err := world.Objects.Get(objects[i].ID); err == nil {
			objects[i].Active = obj.Active()
			objects[i].RenderID = obj.RenderID
		}
	}
}

func sortObjects(objects []ObjectInfo, column int, ascending bool) {
	sort.SliceStable(objects, func(i, j int) bool {
		a, b := objects[i], objects[j]
		if !ascending {
			a, b = b, a
		}
		switch column {
		case 1:
			return a.Name < b.Name
		case 2:
			return a.Scene < b.Scene
		case 3:
			return len(a.Components) < len(b.Components)
		case 4:
			return a.RenderID < b.RenderID
		default:
			return a.ID < b.ID
		}
	})
}

// filterObjects keeps rows whose id, name, scene or component names contain filter.
func filterObjects(objects []ObjectInfo, filter string) []ObjectInfo {
	if filter == "" {
		return objects
	}

	filterLower := strings.ToLower(filter)
	filtered := make([]ObjectInfo, 0, len(objects))
	for _, obj := range objects {
		idStr := fmt.Sprintf("%d", obj.ID)
		if strings.Contains(idStr, filterLower) ||
			strings.Contains(strings.ToLower(obj.Name), filterLower) ||
			strings.Contains(strings.ToLower(obj.Scene), filterLower) ||
			strings.Contains(strings.ToLower(strings.Join(obj.Components, " ")), filterLower) {
			filtered = append(filtered, obj)
		}
	}
	return filtered
}

func pageBounds(total, page, perPage int) (int, int) {
	start := min(page*perPage, total)
	end := min(start+perPage, total)
	return start, end
}
