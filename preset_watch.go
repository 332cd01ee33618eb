package gekkofx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// PresetWatcher re-decodes a preset file whenever it changes on disk. It
// never touches effects: decoded presets are handed over through Updates and
// applied on the frame thread. Only the latest pending preset is kept.
type PresetWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan EffectPreset
	done    chan struct{}
	logger  Logger
	wg      sync.WaitGroup
	once    sync.Once
}

// WatchPreset watches path. The parent directory is watched so that editors
// that save by rename are picked up too.
func WatchPreset(path string, logger Logger) (*PresetWatcher, error) {
	if _, err := PresetFormatFromPath(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &PresetWatcher{
		path:    abs,
		watcher: watcher,
		updates: make(chan EffectPreset, 1),
		done:    make(chan struct{}),
		logger:  logger,
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *PresetWatcher) Path() string { return w.path }

func (w *PresetWatcher) Updates() <-chan EffectPreset { return w.updates }

func (w *PresetWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("preset watcher %s: %v", w.path, err)
		}
	}
}

func (w *PresetWatcher) reload() {
	preset, err := LoadEffectPreset(w.path)
	if err != nil {
		// Half-written files and renamed-away originals show up here; the
		// next event brings the complete file.
		if !errors.Is(err, os.ErrNotExist) {
			w.logger.Warnf("preset %s not reloaded: %v", w.path, err)
		}
		return
	}
	select {
	case w.updates <- preset:
	default:
		select {
		case <-w.updates:
		default:
		}
		select {
		case w.updates <- preset:
		default:
		}
	}
	w.logger.Debugf("preset %s reloaded", w.path)
}

func (w *PresetWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

// PresetReloadModule applies reloaded presets to the effects bound with
// WatchEffectPreset.
type PresetReloadModule struct{}

type PresetReloads struct {
	watchers map[ObjectId]*PresetWatcher
}

func (PresetReloadModule) Install(app *App, cmd *Commands) {
	app.addResources(&PresetReloads{watchers: make(map[ObjectId]*PresetWatcher)})
	app.UseSystem(System(presetReloadSystem).InStage(PreUpdate))
}

// WatchEffectPreset binds the preset at path to the effect hosted by id.
func WatchEffectPreset(cmd *Commands, id ObjectId, path string) error {
	reloads := Resource[PresetReloads](cmd.app)
	if reloads == nil {
		return fmt.Errorf("watch preset: PresetReloadModule not installed")
	}
	w, err := WatchPreset(path, cmd.Logger())
	if err != nil {
		return err
	}
	if old, ok := reloads.watchers[id]; ok {
		old.Close()
	}
	reloads.watchers[id] = w
	return nil
}

func (r *PresetReloads) Close() error {
	var errs []error
	for id, w := range r.watchers {
		errs = append(errs, w.Close())
		delete(r.watchers, id)
	}
	return errors.Join(errs...)
}

func presetReloadSystem(cmd *Commands, reloads *PresetReloads) {
	for id, w := range reloads.watchers {
		obj, ok := cmd.Scene().Object(id)
		if !ok {
			if cmd.app.isPendingAddition(id) {
				continue
			}
			w.Close()
			delete(reloads.watchers, id)
			continue
		}
		select {
		case preset := <-w.Updates():
			if obj.Effect == nil || preset.Kind != obj.Effect.Kind {
				cmd.Logger().Warnf("preset %s describes a %v effect, object %d hosts %v; ignored",
					w.Path(), preset.Kind, id, effectKindOf(obj))
				continue
			}
			if err := ApplyConfigUpdate(obj, FullUpdate(preset.Config)); err != nil {
				cmd.Logger().Warnf("preset %s: %v", w.Path(), err)
			}
		default:
		}
	}
}

func effectKindOf(obj *SceneObject) string {
	if obj.Effect == nil {
		return "no"
	}
	return obj.Effect.Kind.String()
}
