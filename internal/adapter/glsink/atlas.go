package glsink

import (
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// swatchSize is the edge length, in pixels, of one material's checkerboard
// swatch inside the shared atlas texture.
const swatchSize = 16

// atlasSide is the number of swatches packed along one edge of the atlas.
// A section's distinct block kinds are expected to be few; this bounds
// AddMaterialAsset's capacity without needing a growable texture.
const atlasSide = 16

// atlasTexture is a single GL texture holding atlasSide*atlasSide
// procedural checkerboard swatches, one per distinct material color. It
// stands in for a real block texture atlas, caching one GL texture
// rather than loading swatches from disk: every swatch here is
// synthesized instead.
type atlasTexture struct {
	id       uint32
	img      *image.RGBA
	slots    map[mgl32.Vec3]int
	nextSlot int
}

func newAtlasTexture() (*atlasTexture, error) {
	side := swatchSize * atlasSide
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(side), int32(side), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &atlasTexture{id: id, img: img, slots: make(map[mgl32.Vec3]int)}, nil
}

// bindSwatch ensures color has a checkerboard swatch painted into the
// atlas, composing it with x/image/draw, and re-uploads the affected
// sub-region. Colors already present are a no-op.
func (a *atlasTexture) bindSwatch(c mgl32.Vec3) {
	if _, ok := a.slots[c]; ok {
		return
	}
	if a.nextSlot >= atlasSide*atlasSide {
		return // atlas full; further distinct materials get no swatch
	}
	slot := a.nextSlot
	a.nextSlot++
	a.slots[c] = slot

	sx := (slot % atlasSide) * swatchSize
	sy := (slot / atlasSide) * swatchSize

	light := color.RGBA{R: uint8(c.X() * 255), G: uint8(c.Y() * 255), B: uint8(c.Z() * 255), A: 255}
	dark := color.RGBA{R: light.R / 2, G: light.G / 2, B: light.B / 2, A: 255}

	for y := 0; y < swatchSize; y++ {
		for x := 0; x < swatchSize; x++ {
			cell := light
			if (x/4+y/4)%2 == 1 {
				cell = dark
			}
			rect := image.Rect(sx+x, sy+y, sx+x+1, sy+y+1)
			draw.Draw(a.img, rect, &image.Uniform{C: cell}, image.Point{}, draw.Src)
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, a.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(sx), int32(sy), swatchSize, swatchSize, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(subImage(a.img, sx, sy).Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (a *atlasTexture) bind() {
	gl.BindTexture(gl.TEXTURE_2D, a.id)
}

// subImage extracts the swatchSize square at (sx,sy) as its own tightly
// packed RGBA buffer, since TexSubImage2D needs contiguous pixel data
// rather than a stride-sliced view into the full atlas image.
func subImage(img *image.RGBA, sx, sy int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, swatchSize, swatchSize))
	draw.Draw(out, out.Bounds(), img, image.Point{X: sx, Y: sy}, draw.Src)
	return out
}
