// Package framebuffer provides the offscreen render target the inspector
// shows inside its scene window and captures frames from.
package framebuffer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/scrollscene/internal/engine/texture"
)

// Framebuffer is an RGBA colour texture plus a depth buffer sized to the
// inspector's scene window in drawable pixels.
type Framebuffer struct {
	fbo, color, depth uint32
	width, height     int32
}

// New allocates the target. Must be called with a current GL context.
func New(width, height int32) (*Framebuffer, error) {
	fb := &Framebuffer{}
	fb.width, fb.height = clampSize(width, height)

	gl.GenFramebuffers(1, &fb.fbo)
	gl.GenTextures(1, &fb.color)
	gl.GenRenderbuffers(1, &fb.depth)
	fb.allocate()

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("framebuffer: incomplete (0x%x)", status)
	}
	return fb, nil
}

// allocate (re)creates attachment storage at the current size.
func (fb *Framebuffer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// BindWithViewport redirects drawing into the target. The returned func puts
// back the framebuffer and viewport ImGui was using.
func (fb *Framebuffer) BindWithViewport() func() {
	restore := bound()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
	return restore
}

func bound() func() {
	var prev int32
	var vp [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prev)
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prev))
		gl.Viewport(vp[0], vp[1], vp[2], vp[3])
	}
}

// ColorTexture is the texture the scene window displays.
func (fb *Framebuffer) ColorTexture() uint32 { return fb.color }

// Resize follows the scene window. Same-size calls do nothing.
func (fb *Framebuffer) Resize(width, height int32) {
	width, height = clampSize(width, height)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width, fb.height = width, height
	fb.allocate()
}

// Snapshot reads the last rendered frame for a capture.
func (fb *Framebuffer) Snapshot() *image.RGBA {
	pixels := make([]byte, fb.width*fb.height*4)
	restore := bound()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	restore()
	return FlipRows(pixels, int(fb.width), int(fb.height))
}

// FlipRows turns bottom-up RGBA rows, as ReadPixels returns them, into an
// image with the top row first.
func FlipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stride := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * stride
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], pixels[src:src+stride])
	}
	return img
}

// Destroy releases the GL objects. It is safe to call twice.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	texture.Delete(&fb.color)
	if fb.depth != 0 {
		gl.DeleteRenderbuffers(1, &fb.depth)
		fb.depth = 0
	}
}

// clampSize keeps both edges at least one pixel; a collapsed scene window
// reports zero.
func clampSize(width, height int32) (int32, int32) {
	return max(width, 1), max(height, 1)
}
