package texture

import (
	"fmt"
	"image"

	// Stdlib decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Extra decoders for formats commonly used by environment maps.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kylittle/Crucible/asset"
	"github.com/kylittle/Crucible/types"
)

// A decoded texture image. Texels are stored as linear float32 RGB triplets
// so samplers never touch the original encoded form. The data is owned
// exclusively by the texture.
type Texture struct {
	Width  uint32
	Height uint32

	Data []float32
}

// Create a new texture by decoding a resource. Any format with a registered
// image decoder is accepted.
func New(res *asset.Resource) (*Texture, error) {
	img, format, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err.Error())
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("texture: empty %s image %s", format, res.Path())
	}

	tex := &Texture{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Data:   make([]float32, bounds.Dx()*bounds.Dy()*3),
	}

	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			tex.Data[offset] = float32(r) / 0xffff
			tex.Data[offset+1] = float32(g) / 0xffff
			tex.Data[offset+2] = float32(b) / 0xffff
			offset += 3
		}
	}

	return tex, nil
}

// Create a texture from raw float32 RGB texels. Used by tests and procedural
// generators.
func NewFromTexels(width, height uint32, data []float32) (*Texture, error) {
	if uint32(len(data)) != width*height*3 {
		return nil, fmt.Errorf("texture: texel count %d does not match %dx%d", len(data)/3, width, height)
	}
	return &Texture{Width: width, Height: height, Data: data}, nil
}

// Fetch the texel at a pixel coordinate. Coordinates outside the image are
// clamped to its edge.
func (t *Texture) Texel(x, y int) types.Vec3 {
	if x < 0 {
		x = 0
	} else if x >= int(t.Width) {
		x = int(t.Width) - 1
	}
	if y < 0 {
		y = 0
	} else if y >= int(t.Height) {
		y = int(t.Height) - 1
	}

	offset := (y*int(t.Width) + x) * 3
	return types.Vec3{t.Data[offset], t.Data[offset+1], t.Data[offset+2]}
}
