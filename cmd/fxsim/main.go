// Command fxsim runs particle effects headless and prints their statistics.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gekko3d/gekkofx"
	"github.com/gekko3d/gekkofx/gpu"
)

type options struct {
	effect string
	preset string
	save   string
	watch  bool
	frames int
	seed   int64
	count  int
	report int
	gpu    bool
	level  string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.effect, "effect", "fountain", "effect kind: fountain, fire, snow or dust")
	flag.StringVar(&o.preset, "preset", "", "load the effect from a .json, .toml or .yaml preset")
	flag.StringVar(&o.save, "save", "", "write the effect's final config to this preset file")
	flag.BoolVar(&o.watch, "watch", false, "reload -preset while running")
	flag.IntVar(&o.frames, "frames", 300, "frames to simulate")
	flag.Int64Var(&o.seed, "seed", 1, "random seed, 0 for a time based seed")
	flag.IntVar(&o.count, "count", 0, "override the particle count")
	flag.IntVar(&o.report, "report", 60, "print statistics every n frames, 0 for only the last frame")
	flag.BoolVar(&o.gpu, "gpu", false, "mirror particle buffers into WebGPU vertex buffers")
	flag.StringVar(&o.level, "log-level", "info", "debug, info, warn or error")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()
	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, "fxsim:", err)
		os.Exit(1)
	}
}

func run(o options) error {
	level, err := gekkofx.ParseLevel(o.level)
	if err != nil {
		return err
	}
	def := gekkofx.EffectDef{Name: o.effect, Preset: o.preset}
	if o.preset == "" {
		kind, err := gekkofx.ParseEffectKind(o.effect)
		if err != nil {
			return err
		}
		def.Kind = kind
		if o.count > 0 {
			cfg := gekkofx.DefaultConfig(kind)
			cfg.Count = o.count
			def.Config = &cfg
		}
	}

	modules := []gekkofx.Module{
		gekkofx.LoggingModule{Prefix: "fxsim", Level: level},
		gekkofx.TimeModule{Fixed: time.Second / 60},
		gekkofx.ParticlesModule{Seed: o.seed},
		gekkofx.PresetReloadModule{},
	}
	if o.gpu {
		device, err := gpu.NewHeadlessDevice()
		if err != nil {
			return err
		}
		defer device.Release()
		uploader := gpu.NewUploader(device)
		defer uploader.Release()
		modules = append(modules, gekkofx.RenderModule{Uploader: uploader})
	}

	app := gekkofx.NewAppBuilder().UseModule(modules...).Build()
	defer app.Shutdown()
	cmd := app.Commands()

	id, err := gekkofx.SpawnEffect(cmd, def)
	if err != nil {
		return err
	}
	app.FlushCommands()
	obj, _ := app.Scene().Object(id)
	e := obj.Effect

	if o.preset != "" && o.count > 0 {
		count := o.count
		if err := e.ApplyConfigUpdate(gekkofx.ConfigUpdate{Count: &count}); err != nil {
			return err
		}
	}
	if o.watch && o.preset != "" {
		if err := gekkofx.WatchEffectPreset(cmd, id, o.preset); err != nil {
			return err
		}
	}

	for f := 1; f <= o.frames; f++ {
		app.Tick()
		if (o.report > 0 && f%o.report == 0) || f == o.frames {
			printStats(e.Stats())
		}
	}

	if t := gekkofx.Resource[gekkofx.RenderTarget](app); t != nil {
		app.Logger().Infof("uploads %d, failures %d", t.Uploads, t.Failures)
	}
	if o.save != "" {
		if err := gekkofx.SaveEffectPreset(o.save, gekkofx.PresetOf(e)); err != nil {
			return err
		}
		app.Logger().Infof("preset written to %s", o.save)
	}
	return nil
}

func printStats(st gekkofx.EffectStats) {
	size := st.Bounds.Size()
	fmt.Printf("%-8s frame %5d  particles %6d  respawns %8d  extent %.2f x %.2f x %.2f  max speed %.4f  life %.2f\n",
		st.Kind, st.Frames, st.Count, st.Respawns, size.X(), size.Y(), size.Z(), st.MaxSpeed, st.MeanLife)
}
