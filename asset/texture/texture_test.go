package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylittle/Crucible/asset"
	"github.com/kylittle/Crucible/types"
)

func encodePng(t *testing.T, img image.Image) *asset.Resource {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return asset.NewResourceFromStream("test.png", &buf)
}

func TestNewDecodesPng(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{255, 0, 0, 255})
	src.Set(1, 0, color.RGBA{0, 255, 0, 255})
	src.Set(0, 1, color.RGBA{0, 0, 255, 255})
	src.Set(1, 1, color.RGBA{255, 255, 255, 255})

	tex, err := New(encodePng(t, src))
	require.NoError(t, err)

	assert.Equal(t, uint32(2), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	require.Len(t, tex.Data, 12)

	assert.InDelta(t, 1.0, tex.Texel(0, 0)[0], 1e-3)
	assert.InDelta(t, 0.0, tex.Texel(0, 0)[1], 1e-3)
	assert.InDelta(t, 1.0, tex.Texel(1, 0)[1], 1e-3)
	assert.InDelta(t, 1.0, tex.Texel(0, 1)[2], 1e-3)
}

func TestNewRejectsGarbage(t *testing.T) {
	res := asset.NewResourceFromStream("bad.png", bytes.NewReader([]byte("not an image")))
	_, err := New(res)
	assert.Error(t, err)
}

func TestTexelClamping(t *testing.T) {
	tex, err := NewFromTexels(2, 1, []float32{1, 0, 0, 0, 0, 1})
	require.NoError(t, err)

	assert.Equal(t, types.XYZ(1, 0, 0), tex.Texel(-5, 0))
	assert.Equal(t, types.XYZ(0, 0, 1), tex.Texel(9, 0))
	assert.Equal(t, types.XYZ(1, 0, 0), tex.Texel(0, 7))
}

func TestNewFromTexelsValidatesSize(t *testing.T) {
	_, err := NewFromTexels(2, 2, []float32{1, 2, 3})
	assert.Error(t, err)
}
