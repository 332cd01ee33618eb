package gekkofx

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration

	fixed time.Duration
}

// TimeModule keeps the Time resource current. A non-zero Fixed step makes
// every frame exactly that long, which keeps runs reproducible.
type TimeModule struct {
	Fixed time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time:  time.Now(),
		Dt:    0,
		fixed: mod.Fixed,
	})
	app.UseSystem(System(timeSystem).InStage(PreUpdate))
}

func timeSystem(timeResource *Time) {
	if timeResource.fixed > 0 {
		timeResource.Dt = timeResource.fixed
		timeResource.Time = timeResource.Time.Add(timeResource.fixed)
		return
	}
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}

// FrameClock converts elapsed time into a frame multiplier for effects.
// Unless DeltaTime is set it always reports one frame per tick.
type FrameClock struct {
	DeltaTime bool
	TargetFPS float64
	// MaxFrames caps catch-up after a stall.
	MaxFrames float32

	scale float32
}

func (c *FrameClock) Scale() float32 {
	if c == nil || !c.DeltaTime || c.scale <= 0 {
		return 1
	}
	return c.scale
}

func frameClockSystem(t *Time, clock *FrameClock) {
	if !clock.DeltaTime || t.Dt <= 0 {
		clock.scale = 1
		return
	}
	s := float32(t.Dt.Seconds() * clock.TargetFPS)
	if clock.MaxFrames > 0 && s > clock.MaxFrames {
		s = clock.MaxFrames
	}
	clock.scale = s
}
