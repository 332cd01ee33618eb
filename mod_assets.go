package gekkofx

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

type AssetId string

type TextureFormat uint32

const (
	TextureFormatR8Uint     TextureFormat = 0x00000003
	TextureFormatRGBA8Unorm TextureFormat = 0x00000012
)

const (
	DefaultSpriteSize = 64
	maxSpriteSize     = 1024
	spriteBaseSize    = 16
)

type TextureAsset struct {
	version uint
	texels  []uint8
	width   uint32
	height  uint32
	format  TextureFormat
}

func (t TextureAsset) Size() (uint32, uint32) { return t.width, t.height }
func (t TextureAsset) Texels() []uint8        { return t.texels }
func (t TextureAsset) Format() TextureFormat  { return t.format }

// SpriteTexture is the radial-gradient point sprite used by textured styles.
type SpriteTexture struct {
	ID    AssetId
	Size  int
	Image *image.RGBA
}

// AssetServer owns textures shared between effects.
type AssetServer struct {
	textures map[AssetId]TextureAsset
	sprites  map[int]*SpriteTexture
}

type AssetServerModule struct{}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		textures: make(map[AssetId]TextureAsset),
		sprites:  make(map[int]*SpriteTexture),
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

func (server *AssetServer) CreateTexture(texels []uint8, texWidth uint32, texHeight uint32, format TextureFormat) AssetId {
	id := makeAssetId()

	server.textures[id] = TextureAsset{
		version: 0,
		texels:  texels,
		width:   texWidth,
		height:  texHeight,
		format:  format,
	}

	return id
}

func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", filename, err)
	}

	bounds := img.Bounds()
	rgbaImg, ok := img.(*image.RGBA)
	if !ok {
		rgbaImg = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.Draw(rgbaImg, rgbaImg.Bounds(), img, bounds.Min, xdraw.Src)
	}

	return server.CreateTexture(rgbaImg.Pix, uint32(bounds.Dx()), uint32(bounds.Dy()), TextureFormatRGBA8Unorm), nil
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	t, ok := server.textures[id]
	return t, ok
}

func (server *AssetServer) ReleaseTexture(id AssetId) {
	delete(server.textures, id)
	for size, s := range server.sprites {
		if s.ID == id {
			delete(server.sprites, size)
		}
	}
}

// SpriteTexture returns the point sprite of the given edge length, building
// it on first use. Every later call with the same size returns the same
// texture.
func (server *AssetServer) SpriteTexture(size int) (*SpriteTexture, error) {
	if server == nil {
		return nil, fmt.Errorf("no asset server: %w", ErrTextureUnavailable)
	}
	if s, ok := server.sprites[size]; ok {
		return s, nil
	}
	img, err := radialSprite(size)
	if err != nil {
		return nil, err
	}
	id := server.CreateTexture(img.Pix, uint32(size), uint32(size), TextureFormatRGBA8Unorm)
	sprite := &SpriteTexture{ID: id, Size: size, Image: img}
	server.sprites[size] = sprite
	return sprite, nil
}

// radialSprite paints a soft white disc at a small base resolution and
// upsamples it bilinearly to size.
func radialSprite(size int) (*image.RGBA, error) {
	if size <= 0 || size > maxSpriteSize {
		return nil, fmt.Errorf("sprite size %d: %w", size, ErrTextureUnavailable)
	}

	base := image.NewRGBA(image.Rect(0, 0, spriteBaseSize, spriteBaseSize))
	center := float64(spriteBaseSize) / 2
	for y := 0; y < spriteBaseSize; y++ {
		for x := 0; x < spriteBaseSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			t := math.Sqrt(dx*dx+dy*dy) / center
			base.SetRGBA(x, y, gradientAt(t))
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// gradientAt follows the usual canvas sprite stops: opaque white core,
// bluish falloff, transparent rim. Colors are premultiplied.
func gradientAt(t float64) color.RGBA {
	var a, tint float64
	switch {
	case t <= 0.2:
		a, tint = 1, 1
	case t <= 0.4:
		k := (t - 0.2) / 0.2
		a, tint = 1-0.2*k, 1-0.2*k
	case t < 1:
		k := (t - 0.4) / 0.6
		a, tint = 0.8*(1-k), 0.8-0.4*k
	default:
		return color.RGBA{}
	}
	rg := uint8(255 * a * tint)
	return color.RGBA{R: rg, G: rg, B: uint8(255 * a), A: uint8(255 * a)}
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
