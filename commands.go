package gekkofx

// Commands is the handle systems use to change the app. Scene changes are
// buffered until the end of the current stage.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// AddObject queues obj for insertion and returns the id it will have.
func (cmd *Commands) AddObject(obj *SceneObject) ObjectId {
	if obj.ID == 0 {
		obj.ID = cmd.app.scene.nextObjectId()
	}
	cmd.app.pendingAdditions = append(cmd.app.pendingAdditions, obj)
	return obj.ID
}

func (cmd *Commands) RemoveObject(id ObjectId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, id)
}

func (cmd *Commands) Scene() *Scene { return cmd.app.scene }

func (cmd *Commands) Logger() Logger { return cmd.app.Logger() }

// Stop ends App.Run after the current frame.
func (cmd *Commands) Stop() {
	cmd.app.stopped = true
}
