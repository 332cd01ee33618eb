package gekkofx

import (
	"fmt"
	"slices"
)

// Stage is a named slot in the frame. Systems of one stage run in
// registration order and pending commands are flushed after every stage.
type Stage struct {
	Name string
}

var (
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
	Render     = Stage{Name: "Render"}
)

func defaultStages() []Stage {
	return []Stage{PreUpdate, Update, PostUpdate, Render}
}

type systemScheduleBuilder struct {
	system  systemFn
	inStage Stage
}

// System wraps a system function. Its parameters must be pointers to
// resources or *Commands; they are resolved on every call.
func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{system: system, inStage: Update}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	sched.inStage = s
	return sched
}

type stagePosition int

const (
	stageBefore stagePosition = iota
	stageAfter
)

type stagePositionBuilder struct {
	position stagePosition
	target   Stage
}

func BeforeStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageBefore, target: s}
}

func AfterStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageAfter, target: s}
}

func (app *App) UseStage(stage Stage, where stagePositionBuilder) *App {
	idx := slices.IndexFunc(app.stages, func(s Stage) bool { return s.Name == where.target.Name })
	if idx == -1 {
		panic(fmt.Sprintf("Stage %v not found", where.target.Name))
	}
	if where.position == stageAfter {
		idx++
	}
	app.stages = slices.Insert(app.stages, idx, stage)
	app.systems[stage.Name] = nil
	return app
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	if _, ok := app.systems[system.inStage.Name]; !ok {
		panic(fmt.Sprintf("Stage %v doesn't exist", system.inStage.Name))
	}
	app.systems[system.inStage.Name] = append(app.systems[system.inStage.Name], system.system)
	return app
}
