package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/render"
	"gopkg.in/yaml.v3"
)

// Object type tags accepted in a description.
const (
	TypeMesh  = "Mesh"
	TypeLight = "Light"
	TypeEmpty = "Empty"
)

// Description is the on-disk form of a scene. JSON documents decode too,
// since JSON is a subset of YAML.
type Description struct {
	Name    string       `yaml:"name"`
	Objects []ObjectDesc `yaml:"objects"`
}

// ObjectDesc describes one game object. Position is world space, rotation is
// in degrees around X, Y and Z.
type ObjectDesc struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Position   []float32       `yaml:"position"`
	Rotation   []float32       `yaml:"rotation,omitempty"`
	Scale      []float32       `yaml:"scale,omitempty"`
	Emission   []float32       `yaml:"emission,omitempty"`
	Direction  []float32       `yaml:"direction,omitempty"`
	LightType  string          `yaml:"light_type,omitempty"`
	Components []ComponentDesc `yaml:"components,omitempty"`
}

// ComponentDesc attaches a component. An empty name uses the type name.
type ComponentDesc struct {
	Type string `yaml:"type"`
	Name string `yaml:"name,omitempty"`
}

// ParseDescription decodes and validates a description.
func ParseDescription(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	if err := desc.Validate(ecs.NewComponentRegistry()); err != nil {
		return nil, err
	}
	return &desc, nil
}

// LoadDescription reads and parses a description file.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene description: %w", err)
	}
	desc, err := ParseDescription(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// Validate rejects the first entry with a missing or malformed field.
// Nothing is allocated, so a failing description leaves no trace in the world.
func (d *Description) Validate(registry *ecs.ComponentRegistry) error {
	for i := range d.Objects {
		if err := d.Objects[i].validate(registry); err != nil {
			return fmt.Errorf("%w: object %d: %v", ErrInvalidDescription, i, err)
		}
	}
	return nil
}

func (o *ObjectDesc) validate(registry *ecs.ComponentRegistry) error {
	switch {
	case o.Name == "":
		return fmt.Errorf("missing name")
	case len(o.Name) > ecs.NameSize-1:
		return fmt.Errorf("name %q longer than %d bytes", o.Name, ecs.NameSize-1)
	case o.Type == "":
		return fmt.Errorf("%q: missing type", o.Name)
	case o.Position == nil:
		return fmt.Errorf("%q: missing position", o.Name)
	}

	if err := checkLen("position", o.Position, 3); err != nil {
		return fmt.Errorf("%q: %v", o.Name, err)
	}
	if err := checkLen("rotation", o.Rotation, 3); err != nil {
		return fmt.Errorf("%q: %v", o.Name, err)
	}
	if err := checkLen("scale", o.Scale, 3); err != nil {
		return fmt.Errorf("%q: %v", o.Name, err)
	}

	switch o.Type {
	case TypeMesh, TypeEmpty:
	case TypeLight:
		if o.Emission == nil {
			return fmt.Errorf("%q: light without emission", o.Name)
		}
		if err := checkLen("emission", o.Emission, 4); err != nil {
			return fmt.Errorf("%q: %v", o.Name, err)
		}
		if err := checkLen("direction", o.Direction, 3); err != nil {
			return fmt.Errorf("%q: %v", o.Name, err)
		}
		if o.LightType != "" {
			if _, ok := render.ParseLightType(o.LightType); !ok {
				return fmt.Errorf("%q: unknown light type %q", o.Name, o.LightType)
			}
		}
	default:
		return fmt.Errorf("%q: unknown type %q", o.Name, o.Type)
	}

	if len(o.Components) > ecs.MaxComponents {
		return fmt.Errorf("%q: %d components, at most %d", o.Name, len(o.Components), ecs.MaxComponents)
	}
	seen := make(map[string]struct{}, len(o.Components))
	for _, c := range o.Components {
		tag, ok := registry.Lookup(c.Type)
		if !ok {
			return fmt.Errorf("%q: unknown component %q", o.Name, c.Type)
		}
		name := c.Name
		if name == "" {
			name = tag.String()
		}
		if len(name) > ecs.ComponentNameSize-1 {
			return fmt.Errorf("%q: component name %q too long", o.Name, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%q: component %q listed twice", o.Name, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func checkLen(field string, v []float32, n int) error {
	if v != nil && len(v) != n {
		return fmt.Errorf("%s has %d values, want %d", field, len(v), n)
	}
	return nil
}

// transform builds the object's transform. Missing rotation means none,
// missing scale means (1, 1, 1).
func (o *ObjectDesc) transform() ecs.Transform {
	t := ecs.NewTransform(mgl32.Vec3{o.Position[0], o.Position[1], o.Position[2]})
	if o.Rotation != nil {
		t.Rotation = ecs.EulerToQuat(mgl32.Vec3{o.Rotation[0], o.Rotation[1], o.Rotation[2]})
	}
	if o.Scale != nil {
		t.Scale = mgl32.Vec3{o.Scale[0], o.Scale[1], o.Scale[2]}
	}
	return t
}

func (o *ObjectDesc) light() (mgl32.Vec4, mgl32.Vec3, render.LightType) {
	emission := mgl32.Vec4{o.Emission[0], o.Emission[1], o.Emission[2], o.Emission[3]}
	direction := mgl32.Vec3{0, -1, 0}
	if o.Direction != nil {
		direction = mgl32.Vec3{o.Direction[0], o.Direction[1], o.Direction[2]}
	}
	typ := render.LightPoint
	if o.LightType != "" {
		typ, _ = render.ParseLightType(o.LightType)
	}
	return emission, direction, typ
}
