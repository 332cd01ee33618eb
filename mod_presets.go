package gekkofx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type PresetFormat int

const (
	PresetJSON PresetFormat = iota
	PresetTOML
	PresetYAML
)

func PresetFormatFromPath(path string) (PresetFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return PresetJSON, nil
	case ".toml":
		return PresetTOML, nil
	case ".yaml", ".yml":
		return PresetYAML, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownPresetFormat)
}

// EffectPreset is an effect kind plus its resolved config.
type EffectPreset struct {
	Kind   EffectKind
	Config EffectConfig
}

type vec3Doc struct {
	X float32 `json:"x" toml:"x" yaml:"x"`
	Y float32 `json:"y" toml:"y" yaml:"y"`
	Z float32 `json:"z" toml:"z" yaml:"z"`
}

// lifetimeRangeDoc is the override spelling of the lifetime range.
type lifetimeRangeDoc struct {
	MinLifetime float32 `json:"minLifetime" toml:"minLifetime" yaml:"minLifetime"`
	MaxLifetime float32 `json:"maxLifetime" toml:"maxLifetime" yaml:"maxLifetime"`
}

type presetHeader struct {
	Effect string `json:"effect" toml:"effect" yaml:"effect"`
}

// presetDoc is the on-disk shape. Fields that share a name with
// EffectConfig are copied across by name; the *Doc fields differ in shape and
// are converted by hand.
type presetDoc struct {
	Effect            string       `json:"effect" toml:"effect" yaml:"effect"`
	Count             int          `json:"count" toml:"count" yaml:"count"`
	Size              float32      `json:"size" toml:"size" yaml:"size"`
	Opacity           float32      `json:"opacity" toml:"opacity" yaml:"opacity"`
	Gravity           float32      `json:"gravity" toml:"gravity" yaml:"gravity"`
	Turbulence        float32      `json:"turbulence" toml:"turbulence" yaml:"turbulence"`
	InitialBoost      float32      `json:"initialBoost" toml:"initialBoost" yaml:"initialBoost"`
	Color             HSL          `json:"color" toml:"color" yaml:"color"`
	ColorRange        ColorRange   `json:"colorRange" toml:"colorRange" yaml:"colorRange"`
	BlendingMode      BlendingMode `json:"blendingMode" toml:"blendingMode" yaml:"blendingMode"`
	UseDepthWrite     bool         `json:"useDepthWrite" toml:"useDepthWrite" yaml:"useDepthWrite"`
	Style             Style        `json:"style" toml:"style" yaml:"style"`
	SpeedFactor       float32      `json:"speedFactor" toml:"speedFactor" yaml:"speedFactor"`
	MaxSpeed          float32      `json:"maxSpeed" toml:"maxSpeed" yaml:"maxSpeed"`
	UnclampedVelocity bool         `json:"unclampedVelocity" toml:"unclampedVelocity" yaml:"unclampedVelocity"`

	SpreadDoc        vec3Doc           `json:"spread" toml:"spread" yaml:"spread"`
	LifetimeDoc      Range             `json:"lifetime" toml:"lifetime" yaml:"lifetime"`
	LifetimeRangeDoc *lifetimeRangeDoc `json:"lifetimeRange,omitempty" toml:"lifetimeRange,omitempty" yaml:"lifetimeRange,omitempty"`
}

func unmarshalPreset(data []byte, format PresetFormat, v any) error {
	switch format {
	case PresetJSON:
		return json.Unmarshal(data, v)
	case PresetTOML:
		return toml.Unmarshal(data, v)
	case PresetYAML:
		return yaml.Unmarshal(data, v)
	}
	return ErrUnknownPresetFormat
}

// DecodeEffectPreset parses a preset. Fields missing from the document keep
// the defaults of the named effect kind. When both lifetime and
// lifetimeRange are present, lifetimeRange wins; the result only carries the
// canonical Lifetime.
func DecodeEffectPreset(data []byte, format PresetFormat) (EffectPreset, error) {
	var header presetHeader
	if err := unmarshalPreset(data, format, &header); err != nil {
		return EffectPreset{}, fmt.Errorf("decode preset: %w", err)
	}
	kind := EffectFountain
	if header.Effect != "" {
		k, err := ParseEffectKind(header.Effect)
		if err != nil {
			return EffectPreset{}, fmt.Errorf("decode preset: %w", err)
		}
		kind = k
	}

	doc, err := presetDocFromConfig(kind, DefaultConfig(kind))
	if err != nil {
		return EffectPreset{}, err
	}
	if err := unmarshalPreset(data, format, &doc); err != nil {
		return EffectPreset{}, fmt.Errorf("decode preset: %w", err)
	}

	var cfg EffectConfig
	if err := copier.Copy(&cfg, &doc); err != nil {
		return EffectPreset{}, fmt.Errorf("decode preset: %w", err)
	}
	cfg.Spread = mgl32.Vec3{doc.SpreadDoc.X, doc.SpreadDoc.Y, doc.SpreadDoc.Z}
	cfg.Lifetime = doc.LifetimeDoc
	if doc.LifetimeRangeDoc != nil {
		cfg.Lifetime = Range{Min: doc.LifetimeRangeDoc.MinLifetime, Max: doc.LifetimeRangeDoc.MaxLifetime}
	}
	cfg.Normalize()
	return EffectPreset{Kind: kind, Config: cfg}, nil
}

func presetDocFromConfig(kind EffectKind, cfg EffectConfig) (presetDoc, error) {
	var doc presetDoc
	if err := copier.Copy(&doc, &cfg); err != nil {
		return doc, fmt.Errorf("encode preset: %w", err)
	}
	doc.Effect = kind.String()
	doc.SpreadDoc = vec3Doc{X: cfg.Spread.X(), Y: cfg.Spread.Y(), Z: cfg.Spread.Z()}
	doc.LifetimeDoc = cfg.Lifetime
	return doc, nil
}

func EncodeEffectPreset(preset EffectPreset, format PresetFormat) ([]byte, error) {
	doc, err := presetDocFromConfig(preset.Kind, preset.Config)
	if err != nil {
		return nil, err
	}
	switch format {
	case PresetJSON:
		return json.MarshalIndent(doc, "", "  ")
	case PresetTOML:
		return toml.Marshal(doc)
	case PresetYAML:
		return yaml.Marshal(doc)
	}
	return nil, ErrUnknownPresetFormat
}

func LoadEffectPreset(filename string) (EffectPreset, error) {
	format, err := PresetFormatFromPath(filename)
	if err != nil {
		return EffectPreset{}, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return EffectPreset{}, err
	}
	preset, err := DecodeEffectPreset(data, format)
	if err != nil {
		return EffectPreset{}, fmt.Errorf("%s: %w", filename, err)
	}
	return preset, nil
}

func SaveEffectPreset(filename string, preset EffectPreset) error {
	format, err := PresetFormatFromPath(filename)
	if err != nil {
		return err
	}
	data, err := EncodeEffectPreset(preset, format)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// PresetOf captures a running effect as a preset.
func PresetOf(e *Effect) EffectPreset {
	return EffectPreset{Kind: e.Kind, Config: *e.Config()}
}
