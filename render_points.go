package gekkofx

// BufferAttribute is a per-vertex attribute as handed to the renderer. Data
// aliases the particle arrays, so an integration step is visible to the
// renderer as soon as the attribute is marked dirty.
type BufferAttribute struct {
	Name        string
	Data        []float32
	ItemSize    int
	NeedsUpdate bool
	Version     uint64
}

func (a *BufferAttribute) MarkDirty() {
	a.NeedsUpdate = true
	a.Version++
}

func (a *BufferAttribute) Count() int {
	if a.ItemSize == 0 {
		return 0
	}
	return len(a.Data) / a.ItemSize
}

// PointGeometry is the vertex storage of one point cloud.
type PointGeometry struct {
	ID       AssetId
	Position *BufferAttribute
	Color    *BufferAttribute

	disposed  bool
	onDispose []func(AssetId)
}

func newPointGeometry(buf *ParticleBuffers) *PointGeometry {
	g := &PointGeometry{
		ID:       makeAssetId(),
		Position: &BufferAttribute{Name: "position", Data: buf.Positions, ItemSize: 3},
		Color:    &BufferAttribute{Name: "color", Data: buf.Colors, ItemSize: 3},
	}
	g.Position.MarkDirty()
	g.Color.MarkDirty()
	return g
}

func (g *PointGeometry) Count() int { return g.Position.Count() }

func (g *PointGeometry) Disposed() bool { return g.disposed }

// OnDispose registers fn to run once when the geometry is disposed.
func (g *PointGeometry) OnDispose(fn func(AssetId)) {
	g.onDispose = append(g.onDispose, fn)
}

func (g *PointGeometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	for _, fn := range g.onDispose {
		fn(g.ID)
	}
	g.onDispose = nil
	g.Position.Data = nil
	g.Color.Data = nil
}

// PointMaterial is the point-sprite material. Colors always come from the
// per-vertex color attribute.
type PointMaterial struct {
	ID           AssetId
	Style        Style
	Size         float32
	Opacity      float32
	DepthWrite   bool
	Blending     BlendingMode
	Map          *SpriteTexture
	VertexColors bool
	Transparent  bool
	NeedsUpdate  bool
	Version      uint64

	disposed bool
}

func newPointMaterial(cfg *EffectConfig, sprite *SpriteTexture) *PointMaterial {
	m := &PointMaterial{
		ID:           makeAssetId(),
		Style:        StylePoint,
		VertexColors: true,
		Transparent:  true,
	}
	if sprite != nil {
		m.Style = StyleTextured
		m.Map = sprite
	}
	m.apply(cfg)
	m.NeedsUpdate = true
	return m
}

// apply copies the scalar rendering parameters of cfg and reports whether
// anything changed.
func (m *PointMaterial) apply(cfg *EffectConfig) bool {
	changed := m.Size != cfg.Size ||
		m.Opacity != cfg.Opacity ||
		m.DepthWrite != cfg.UseDepthWrite ||
		m.Blending != cfg.BlendingMode
	m.Size = cfg.Size
	m.Opacity = cfg.Opacity
	m.DepthWrite = cfg.UseDepthWrite
	m.Blending = cfg.BlendingMode
	if changed {
		m.NeedsUpdate = true
		m.Version++
	}
	return changed
}

func (m *PointMaterial) Disposed() bool { return m.disposed }

// Dispose releases the material. The sprite texture is shared through the
// asset server and outlives the material.
func (m *PointMaterial) Dispose() {
	m.disposed = true
	m.Map = nil
}

// Points is the renderable handle of one effect.
type Points struct {
	Geometry *PointGeometry
	Material *PointMaterial
}

// Uploader pushes dirty point attributes to a rendering backend.
type Uploader interface {
	UploadPoints(p *Points) error
	ReleaseGeometry(id AssetId)
}
