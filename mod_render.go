package gekkofx

// RenderModule pushes every live effect's points through an Uploader once
// per frame, after the simulation stages.
type RenderModule struct {
	Uploader Uploader
}

type RenderTarget struct {
	Uploader Uploader
	Uploads  uint64
	Failures uint64

	tracked map[AssetId]bool
}

func (m RenderModule) Install(app *App, cmd *Commands) {
	app.addResources(&RenderTarget{
		Uploader: m.Uploader,
		tracked:  make(map[AssetId]bool),
	})
	app.UseSystem(System(renderUploadSystem).InStage(Render))
}

func renderUploadSystem(cmd *Commands, target *RenderTarget) {
	if target.Uploader == nil {
		return
	}
	for _, e := range cmd.Scene().Effects() {
		points := e.Points()
		g := points.Geometry
		if !target.tracked[g.ID] {
			target.tracked[g.ID] = true
			g.OnDispose(func(id AssetId) {
				target.Uploader.ReleaseGeometry(id)
				delete(target.tracked, id)
			})
		}
		if err := target.Uploader.UploadPoints(points); err != nil {
			target.Failures++
			cmd.Logger().Warnf("render: upload of effect %s failed: %v", e.ID, err)
			continue
		}
		target.Uploads++
	}
}
