package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/plus3/scenecore/ecs"
	"github.com/plus3/scenecore/render"
	"go.uber.org/zap"
)

// Manager is the scene registry. Scenes are stored by reference: the pointer
// returned by CreateScene and Get is the registry entry itself.
type Manager struct {
	log     *zap.Logger
	scenes  map[string]*Scene
	order   []*Scene
	current *Scene

	onLoaded func(*Scene)
}

// NewManager creates an empty registry. A nil logger disables logging.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:    log,
		scenes: make(map[string]*Scene),
	}
}

// Adopt adds child to the first registered scene that holds owner.
func (m *Manager) Adopt(owner, child ecs.ObjectID) bool {
	for _, s := range m.order {
		if slices.Contains(s.Objects, owner) {
			s.Objects = append(s.Objects, child)
			return true
		}
	}
	m.log.Debug("no scene holds owner", zap.Int32("owner", int32(owner)), zap.Int32("child", int32(child)))
	return false
}

// OnLoaded sets the hook called after a scene's content has been ingested.
func (m *Manager) OnLoaded(fn func(*Scene)) {
	m.onLoaded = fn
}

// CreateScene registers an empty, active scene. A second scene with the same
// name is rejected and the registry is left unchanged.
func (m *Manager) CreateScene(name string) (*Scene, error) {
	if _, exists := m.scenes[name]; exists {
		m.log.Warn("scene already exists", zap.String("scene", name))
		return nil, fmt.Errorf("create scene %q: %w", name, ErrSceneExists)
	}
	s := newScene(name)
	m.scenes[name] = s
	m.order = append(m.order, s)
	m.log.Debug("scene created", zap.String("scene", name), zap.Stringer("id", s.ID))
	return s, nil
}

// Get returns the registered scene called name.
func (m *Manager) Get(name string) (*Scene, error) {
	s, ok := m.scenes[name]
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", name, ErrSceneNotFound)
	}
	return s, nil
}

// Scenes returns the registered scenes in registration order.
func (m *Manager) Scenes() []*Scene {
	return m.order
}

// Len returns the number of registered scenes.
func (m *Manager) Len() int { return len(m.order) }

// SetCurrent selects the current scene. It does not affect which scenes are updated.
func (m *Manager) SetCurrent(name string) error {
	s, err := m.Get(name)
	if err != nil {
		return err
	}
	m.current = s
	return nil
}

// Current returns the selected scene, or nil.
func (m *Manager) Current() *Scene { return m.current }

// LoadScene ingests the description of a registered scene. Every entry is
// checked and the object capacity is reserved before anything is allocated,
// so a failed load leaves the world untouched.
//
// Each entry becomes one object whose JID is the entry index. Mesh and Light
// objects are forwarded to sink, Light objects are also added to lights.
func (m *Manager) LoadScene(name string, world *ecs.World, sink ecs.RenderSink, lights *render.LightTable) error {
	s, err := m.Get(name)
	if err != nil {
		return err
	}
	if s.Loaded {
		return fmt.Errorf("load scene %q: %w", name, ErrAlreadyLoaded)
	}

	desc, err := m.resolveDescription(s)
	if err != nil {
		return err
	}
	if err := desc.Validate(world.Registry); err != nil {
		m.log.Error("invalid scene description", zap.String("scene", name), zap.String("source", s.Source), zap.Error(err))
		return fmt.Errorf("load scene %q: %w", name, err)
	}
	if n := len(desc.Objects); n > world.Objects.Remaining() {
		err := fmt.Errorf("load scene %q: %d objects, %d free: %w", name, n, world.Objects.Remaining(), ecs.ErrCapacityExceeded)
		m.log.Error("scene does not fit", zap.String("scene", name), zap.Error(err))
		return err
	}

	for i := range desc.Objects {
		if err := m.ingest(s, i, &desc.Objects[i], world, sink, lights); err != nil {
			return fmt.Errorf("load scene %q: %w", name, err)
		}
	}

	s.Description = desc
	s.Loaded = true
	m.log.Info("scene loaded",
		zap.String("scene", name),
		zap.Stringer("id", s.ID),
		zap.Int("objects", len(desc.Objects)),
	)
	if m.onLoaded != nil {
		m.onLoaded(s)
	}
	return nil
}

func (m *Manager) resolveDescription(s *Scene) (*Description, error) {
	if s.Description != nil {
		return s.Description, nil
	}
	if s.Source == "" {
		// A scene without any content loads as empty.
		return &Description{Name: s.Name}, nil
	}
	desc, err := LoadDescription(s.Source)
	if err != nil {
		m.log.Error("scene description unreadable", zap.String("scene", s.Name), zap.String("source", s.Source), zap.Error(err))
		return nil, fmt.Errorf("load scene %q: %w", s.Name, err)
	}
	return desc, nil
}

func (m *Manager) ingest(s *Scene, index int, od *ObjectDesc, world *ecs.World, sink ecs.RenderSink, lights *render.LightTable) error {
	obj := ecs.NewGameObject(od.Name, od.transform())
	obj.JID = int32(index)
	obj.UpdateTransform()

	id, err := world.CreateObject(obj)
	if err != nil {
		return err
	}
	s.Objects = append(s.Objects, id)

	for _, c := range od.Components {
		tag, _ := world.Registry.Lookup(c.Type)
		if _, err := world.AddComponent(id, tag, c.Name); err != nil {
			return err
		}
	}

	stored, err := world.Objects.Get(id)
	if err != nil {
		return err
	}
	switch od.Type {
	case TypeMesh:
		if sink != nil {
			if _, err := sink.AddObject(stored); err != nil {
				return err
			}
		}
	case TypeLight:
		if sink != nil {
			if _, err := sink.AddObject(stored); err != nil {
				return err
			}
		}
		if lights != nil {
			emission, direction, typ := od.light()
			lights.Add(stored, emission, direction, typ)
		}
	}
	return nil
}

// Start starts every active, created scene that has not started yet.
func (m *Manager) Start(frame *ecs.UpdateFrame) error {
	var errs []error
	for _, s := range m.order {
		if err := s.Start(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update updates every active, created scene, whether or not it is current.
func (m *Manager) Update(frame *ecs.UpdateFrame) error {
	var errs []error
	for _, s := range m.order {
		if err := s.Update(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Cleanup deactivates every scene and empties the registry.
func (m *Manager) Cleanup() {
	for _, s := range m.order {
		s.IsActive = false
		s.IsStarted = false
		s.Objects = nil
	}
	m.log.Info("scenes cleaned up", zap.Int("scenes", len(m.order)))
	clear(m.scenes)
	m.order = nil
	m.current = nil
}
