package gekkofx

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"slices"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

// App is the frame host: it owns the scene, the resources and the systems
// that run once per frame. Everything runs on the calling goroutine.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	scene     *Scene
	frame     uint64
	stopped   bool

	pendingAdditions []*SceneObject
	pendingRemovals  []ObjectId
}

func NewApp() *App {
	app := &App{
		stages:    defaultStages(),
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		scene:     NewScene(),
	}
	for _, s := range app.stages {
		app.systems[s.Name] = nil
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, m := range modules {
		m.Install(app, cmd)
	}
	return app
}

func (app *App) Scene() *Scene { return app.scene }

// Frame is the number of completed ticks.
func (app *App) Frame() uint64 { return app.frame }

// Tick runs every stage once.
func (app *App) Tick() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
	app.frame++
}

func (app *App) RunFrames(n int) {
	for i := 0; i < n && !app.stopped; i++ {
		app.Tick()
	}
}

// Run ticks until a system calls Commands.Stop.
func (app *App) Run() {
	for !app.stopped {
		app.Tick()
	}
}

// Shutdown removes every scene object, including ones still waiting to be
// inserted, and closes closable resources.
func (app *App) Shutdown() {
	for _, obj := range app.scene.Objects() {
		app.pendingRemovals = append(app.pendingRemovals, obj.ID)
	}
	for _, obj := range app.pendingAdditions {
		app.pendingRemovals = append(app.pendingRemovals, obj.ID)
	}
	app.FlushCommands()
	for _, r := range app.resources {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				app.Logger().Warnf("closing %T: %v", r, err)
			}
		}
	}
	app.stopped = true
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

func (app *App) hasResource(ptr any) bool {
	_, ok := app.resources[reflect.TypeOf(ptr).Elem()]
	return ok
}

// Resource returns the resource of type *T, or nil.
func Resource[T any](app *App) *T {
	r, ok := app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return r.(*T)
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("system %s: argument %d must be a pointer, got %s", systemName(systemValue), i, argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				systemName(systemValue), systemType, argType)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

func systemName(v reflect.Value) string {
	return runtime.FuncForPC(v.Pointer()).Name()
}

func (app *App) isPendingAddition(id ObjectId) bool {
	for _, obj := range app.pendingAdditions {
		if obj.ID == id {
			return true
		}
	}
	return false
}

// takePendingAddition unqueues the object with the given id, if any.
func (app *App) takePendingAddition(id ObjectId) *SceneObject {
	i := slices.IndexFunc(app.pendingAdditions, func(o *SceneObject) bool { return o.ID == id })
	if i < 0 {
		return nil
	}
	obj := app.pendingAdditions[i]
	app.pendingAdditions = slices.Delete(app.pendingAdditions, i, i+1)
	return obj
}

// FlushCommands applies buffered scene changes. Removals go first and also
// cancel additions queued in the same stage. The frame callback is detached
// before the hosted effect is disposed.
func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 {
		return
	}

	for _, id := range app.pendingRemovals {
		obj := app.scene.remove(id)
		if obj == nil {
			obj = app.takePendingAddition(id)
		}
		if obj == nil {
			continue
		}
		obj.OnFrame = nil
		if obj.Effect != nil {
			obj.Effect.Dispose()
		}
		app.Logger().Debugf("removed scene object %d (%s)", obj.ID, obj.Name)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, obj := range app.pendingAdditions {
		app.scene.insert(obj)
	}
	app.pendingAdditions = app.pendingAdditions[:0]
}
