package gekkofx

import (
	"fmt"
)

const defaultTargetFPS = 60

// ParticlesModule drives every scene object's frame callback and provides
// what SpawnEffect needs. Effects advance one frame per tick; with DeltaTime
// set they advance by the elapsed time expressed in frames of TargetFPS.
type ParticlesModule struct {
	Seed       int64
	DeltaTime  bool
	TargetFPS  float64
	SpriteSize int
}

// ParticleSettings is the resource form of ParticlesModule.
type ParticleSettings struct {
	Seed       int64
	SpriteSize int

	spawned int64
}

// nextSeed keeps seeded runs reproducible per spawn order.
func (s *ParticleSettings) nextSeed() int64 {
	if s.Seed == 0 {
		return 0
	}
	s.spawned++
	return s.Seed + s.spawned
}

func (m ParticlesModule) Install(app *App, cmd *Commands) {
	if !app.hasResource((*Time)(nil)) {
		TimeModule{}.Install(app, cmd)
	}
	if !app.hasResource((*AssetServer)(nil)) {
		app.addResources(NewAssetServer())
	}

	spriteSize := m.SpriteSize
	if spriteSize == 0 {
		spriteSize = DefaultSpriteSize
	}
	fps := m.TargetFPS
	if fps <= 0 {
		fps = defaultTargetFPS
	}
	app.addResources(
		&ParticleSettings{Seed: m.Seed, SpriteSize: spriteSize},
		&FrameClock{DeltaTime: m.DeltaTime, TargetFPS: fps, MaxFrames: 4},
	)

	app.UseSystem(System(frameClockSystem).InStage(PreUpdate))
	app.UseSystem(System(frameCallbackSystem).InStage(Update))
}

// frameCallbackSystem invokes each object's callback once, in scene order.
func frameCallbackSystem(cmd *Commands) {
	for _, obj := range cmd.Scene().Objects() {
		if obj.OnFrame != nil {
			obj.OnFrame()
		}
	}
}

// SpawnEffect builds the effect described by def and queues its host object.
func SpawnEffect(cmd *Commands, def EffectDef) (ObjectId, error) {
	app := cmd.app
	kind := def.Kind
	var cfg *EffectConfig
	switch {
	case def.Preset != "":
		preset, err := LoadEffectPreset(def.Preset)
		if err != nil {
			return 0, fmt.Errorf("spawn %q: %w", def.Name, err)
		}
		kind = preset.Kind
		cfg = &preset.Config
	case def.Config != nil:
		cfg = def.Config
	}

	opts := []EffectOption{WithLogger(app.Logger())}
	if cfg != nil {
		opts = append(opts, WithConfig(*cfg))
	}
	if assets := Resource[AssetServer](app); assets != nil {
		opts = append(opts, WithAssets(assets))
	}
	if settings := Resource[ParticleSettings](app); settings != nil {
		opts = append(opts, WithSeed(settings.nextSeed()), WithSpriteSize(settings.SpriteSize))
	}
	if clock := Resource[FrameClock](app); clock != nil && clock.DeltaTime {
		opts = append(opts, WithFrameScale(clock.Scale))
	}

	e, err := NewEffect(kind, opts...)
	if err != nil {
		return 0, fmt.Errorf("spawn %q: %w", def.Name, err)
	}
	name := def.Name
	if name == "" {
		name = kind.String()
	}
	obj := NewEffectObject(name, e)
	obj.Position = def.Position
	obj.Lifetime = def.Lifetime
	return cmd.AddObject(obj), nil
}
