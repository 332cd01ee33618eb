package gekkofx

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// EffectConfigKey is the UserData key under which a host object exposes the
// live config of its effect to the properties editor.
const EffectConfigKey = "effectConfig"

type ObjectId uint64

// SceneObject is a node the frame host knows about. OnFrame, when set, is
// called once per frame in scene order.
type SceneObject struct {
	ID       ObjectId
	Name     string
	Position mgl32.Vec3
	OnFrame  func()
	UserData map[string]any
	Effect   *Effect

	// Lifetime in seconds; zero keeps the object until it is removed.
	Lifetime float32
}

// NewEffectObject wraps e in a host object whose frame callback drives it.
func NewEffectObject(name string, e *Effect) *SceneObject {
	return &SceneObject{
		Name:     name,
		OnFrame:  e.Update,
		Effect:   e,
		UserData: map[string]any{EffectConfigKey: e.Config()},
	}
}

// EffectConfig returns the config stored in the object's metadata.
func (obj *SceneObject) EffectConfig() (*EffectConfig, bool) {
	cfg, ok := obj.UserData[EffectConfigKey].(*EffectConfig)
	return cfg, ok
}

// Scene keeps objects in insertion order, which is also callback order.
type Scene struct {
	objects []*SceneObject
	index   map[ObjectId]*SceneObject
	lastId  ObjectId
}

func NewScene() *Scene {
	return &Scene{index: make(map[ObjectId]*SceneObject)}
}

func (s *Scene) nextObjectId() ObjectId {
	s.lastId++
	return s.lastId
}

func (s *Scene) insert(obj *SceneObject) {
	if _, ok := s.index[obj.ID]; ok {
		return
	}
	s.objects = append(s.objects, obj)
	s.index[obj.ID] = obj
}

func (s *Scene) remove(id ObjectId) *SceneObject {
	obj, ok := s.index[id]
	if !ok {
		return nil
	}
	delete(s.index, id)
	s.objects = slices.DeleteFunc(s.objects, func(o *SceneObject) bool { return o.ID == id })
	return obj
}

func (s *Scene) Object(id ObjectId) (*SceneObject, bool) {
	obj, ok := s.index[id]
	return obj, ok
}

// Objects returns a snapshot; callers may queue removals while iterating it.
func (s *Scene) Objects() []*SceneObject {
	return slices.Clone(s.objects)
}

func (s *Scene) Len() int { return len(s.objects) }

// Effects returns the live effects in scene order.
func (s *Scene) Effects() []*Effect {
	var out []*Effect
	for _, obj := range s.objects {
		if obj.Effect != nil && !obj.Effect.Disposed() {
			out = append(out, obj.Effect)
		}
	}
	return out
}

// SceneDef lists the effects a scene starts with.
type SceneDef struct {
	Effects []EffectDef
}

// EffectDef describes one effect instantiation. A nil Config uses the kind
// defaults; Preset, when set, is loaded from disk instead.
type EffectDef struct {
	Name     string
	Kind     EffectKind
	Position mgl32.Vec3
	Config   *EffectConfig
	Preset   string
	Lifetime float32
}

// LoadScene spawns every effect of def and returns the new object ids.
// Effects that fail to build are logged and skipped.
func LoadScene(cmd *Commands, def *SceneDef) []ObjectId {
	var ids []ObjectId
	for _, effect := range def.Effects {
		id, err := SpawnEffect(cmd, effect)
		if err != nil {
			cmd.Logger().Errorf("scene: skipping effect %q: %v", effect.Name, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
