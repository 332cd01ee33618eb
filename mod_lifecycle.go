package gekkofx

// LifecycleModule removes scene objects whose Lifetime runs out.
type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	if !app.hasResource((*Time)(nil)) {
		TimeModule{}.Install(app, cmd)
	}
	app.UseSystem(System(lifetimeSystem).InStage(PostUpdate))
}

func lifetimeSystem(t *Time, cmd *Commands) {
	dt := float32(t.Dt.Seconds())
	if dt <= 0 {
		return
	}
	for _, obj := range cmd.Scene().Objects() {
		if obj.Lifetime <= 0 {
			continue
		}
		obj.Lifetime -= dt
		if obj.Lifetime <= 0 {
			cmd.Logger().Debugf("lifecycle: object %d (%s) expired", obj.ID, obj.Name)
			cmd.RemoveObject(obj.ID)
		}
	}
}
