// Package texture uploads CPU-side images as OpenGL textures.
package texture

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Filter selects texture sampling.
type Filter int32

const (
	Linear  Filter = gl.LINEAR
	Nearest Filter = gl.NEAREST
)

// UploadAlpha creates a single-channel (R8) texture from img. Shaders read
// the coverage from the red channel. Must be called with a current GL
// context.
func UploadAlpha(img *image.Alpha, filter Filter) uint32 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	pix := TightAlpha(img)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(w), int32(h), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int32(filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int32(filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Delete releases a texture created by UploadAlpha. Zero ids are ignored.
func Delete(tex *uint32) {
	if *tex != 0 {
		gl.DeleteTextures(1, tex)
		*tex = 0
	}
}

// TightAlpha returns img's pixels with rows packed back to back. Sub-images
// share their parent's stride, so their rows are copied out.
func TightAlpha(img *image.Alpha) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if img.Stride == w && len(img.Pix) == w*h {
		return img.Pix
	}
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out[y*w:(y+1)*w], img.Pix[src:src+w])
	}
	return out
}
