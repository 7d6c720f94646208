package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecore/ecs"
)

// ComponentInspector shows the transform and the components of the selected
// object. Edits are written back through ecs.World.SetAttribute.
type ComponentInspector struct {
	selected ecs.ObjectID
	lastErr  error
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{selected: ecs.InvalidIndex}
}

func (ci *ComponentInspector) Render(world *ecs.World, selected ecs.ObjectID) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected != ci.selected {
		ci.selected = selected
		ci.lastErr = nil
	}

	if ci.selected == ecs.InvalidIndex {
		imgui.Text("No object selected")
		imgui.End()
		return
	}

	obj, err := world.Objects.Get(ci.selected)
	if err != nil {
		imgui.Text(fmt.Sprintf("Object %d not found", ci.selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Object ID: %d  Name: %s", obj.ID, obj.NameString()))
	imgui.Text(fmt.Sprintf("Render ID: %d  Entry: %d", obj.RenderID, obj.JID))
	active := obj.Active()
	if imgui.Checkbox("Active", &active) {
		obj.SetActive(active)
	}
	ci.renderTransform(obj)
	imgui.Separator()

	components, err := world.ComponentsOf(ci.selected)
	if err != nil {
		imgui.Text(err.Error())
		imgui.End()
		return
	}
	for _, c := range components {
		label := fmt.Sprintf("%s (%s #%d)", c.Name, c.CID, c.GlobalIndexID)
		if imgui.TreeNodeStr(label) {
			ci.renderComponent(world, c)
			imgui.TreePop()
		}
	}

	if ci.lastErr != nil {
		imgui.Separator()
		imgui.Text(ci.lastErr.Error())
	}
	imgui.End()
}

func (ci *ComponentInspector) renderTransform(obj *ecs.GameObject) {
	if !imgui.TreeNodeStr("Transform") {
		return
	}
	changed := false
	for axis, label := range [3]string{"X", "Y", "Z"} {
		v := obj.Transform.Position[axis]
		imgui.Text(fmt.Sprintf("Position %s:", label))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##pos%s", label), &v) {
			obj.Transform.Position[axis] = v
			changed = true
		}
	}
	for axis, label := range [3]string{"X", "Y", "Z"} {
		v := obj.Transform.Scale[axis]
		imgui.Text(fmt.Sprintf("Scale %s:", label))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##scale%s", label), &v) {
			obj.Transform.Scale[axis] = v
			changed = true
		}
	}
	if changed {
		obj.UpdateTransform()
	}
	imgui.TreePop()
}

func (ci *ComponentInspector) renderComponent(world *ecs.World, c *ecs.Component) {
	imgui.Text(fmt.Sprintf("Started: %t", c.IsStarted))
	isActive := c.IsActive
	if imgui.Checkbox(fmt.Sprintf("Enabled##%d", c.GlobalIndexID), &isActive) {
		ci.apply(world, c, "IsActive", isActive)
	}

	val := reflect.ValueOf(c.Data)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	for _, field := range globalReflectionCache.Fields(val.Type()) {
		ci.renderField(world, c, field, val.Field(field.Index))
	}
}

func (ci *ComponentInspector) renderField(world *ecs.World, c *ecs.Component, field FieldInfo, val reflect.Value) {
	id := fmt.Sprintf("##%d.%s", c.GlobalIndexID, field.Name)

	if field.VectorLen > 0 {
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		for i := 0; i < field.VectorLen; i++ {
			v := float32(val.Index(i).Float())
			imgui.SameLine()
			imgui.SetNextItemWidth(80)
			if imgui.InputFloat(fmt.Sprintf("%s.%d", id, i), &v) {
				ci.lastErr = setVectorElement(world, c, field.Name, i, v)
			}
		}
		return
	}
	if !field.Editable {
		imgui.Text(fmt.Sprintf("%s: %v", field.Name, val.Interface()))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var v int32
		if val.CanInt() {
			v = int32(val.Int())
		} else {
			v = int32(val.Uint())
		}
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			ci.apply(world, c, field.Name, int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			ci.apply(world, c, field.Name, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(field.Name+id, &v) {
			ci.apply(world, c, field.Name, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			ci.apply(world, c, field.Name, v)
		}
	}
}

func (ci *ComponentInspector) apply(world *ecs.World, c *ecs.Component, attribute string, value any) {
	ci.lastErr = world.SetAttribute(c.GID, c.Name, attribute, value)
}

// setVectorElement replaces one element of a float-array attribute such as
// a mgl32.Vec3 and writes the whole vector back.
func setVectorElement(world *ecs.World, c *ecs.Component, attribute string, index int, v float32) error {
	current, err := world.Attribute(c.GID, c.Name, attribute)
	if err != nil {
		return err
	}
	val := reflect.ValueOf(current)
	if val.Kind() != reflect.Array || index < 0 || index >= val.Len() {
		return fmt.Errorf("attribute %q is not a vector with element %d", attribute, index)
	}
	updated := reflect.New(val.Type()).Elem()
	updated.Set(val)
	updated.Index(index).SetFloat(float64(v))
	return world.SetAttribute(c.GID, c.Name, attribute, updated.Interface())
}
