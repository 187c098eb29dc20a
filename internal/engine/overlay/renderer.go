// Package overlay draws the 2D page furniture over the 3D scene: the hero,
// region captions, the carousel, the ticker strip and the stats panel.
package overlay

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scrollscene/internal/engine/geom"
	"github.com/Faultbox/scrollscene/internal/engine/shader"
	"github.com/Faultbox/scrollscene/internal/engine/texture"
)

const solidVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `#version 410 core
in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

const textVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vUV;
out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vUV = aUV;
	vColor = aColor;
}
`

const textFragmentShader = `#version 410 core
in vec2 vUV;
in vec4 vColor;

uniform sampler2D uTexture;

out vec4 FragColor;

void main() {
	float a = texture(uTexture, vUV).r;
	FragColor = vec4(vColor.rgb, vColor.a * a);
}
`

// Renderer uploads and draws a Batch.
type Renderer struct {
	width, height int

	solid *shader.Program
	text  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32
	atlasTex           uint32

	atlas *geom.Atlas
}

// New creates the overlay renderer. Must be called with a current GL context.
func New(width, height int, atlas *geom.Atlas) (*Renderer, error) {
	r := &Renderer{width: width, height: height, atlas: atlas}

	var err error
	if r.solid, err = shader.Compile("overlay-solid", solidVertexShader, solidFragmentShader); err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	if r.text, err = shader.Compile("overlay-text", textVertexShader, textFragmentShader); err != nil {
		r.solid.Delete()
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	r.solidVAO, r.solidVBO = vertexArray(2, 4)
	r.textVAO, r.textVBO = vertexArray(2, 2, 4)

	r.atlasTex = texture.UploadAlpha(atlas.Image, texture.Nearest)

	return r, nil
}

func vertexArray(attribs ...int32) (vao, vbo uint32) {
	var stride int32
	for _, n := range attribs {
		stride += n
	}
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	var offset int32
	for loc, n := range attribs {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), n, gl.FLOAT, false, stride*4, uintptr(offset*4))
		offset += n
	}
	gl.BindVertexArray(0)
	return vao, vbo
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Flush draws the batch on top of whatever is in the framebuffer.
func (r *Renderer) Flush(b *Batch) {
	var prevDepth int32
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	proj := mgl32.Ortho(0, float32(r.width), float32(r.height), 0, -1, 1)

	if len(b.Solid) > 0 {
		r.solid.Use()
		r.solid.SetMat4("uProjection", proj)
		gl.BindVertexArray(r.solidVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(b.Solid)*4, gl.Ptr(b.Solid), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(b.SolidCount()))
	}

	if len(b.Glyphs) > 0 {
		r.text.Use()
		r.text.SetMat4("uProjection", proj)
		r.text.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
		gl.BindVertexArray(r.textVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(b.Glyphs)*4, gl.Ptr(b.Glyphs), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(b.TextCount()))
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	texture.Delete(&r.atlasTex)
	gl.DeleteVertexArrays(1, &r.solidVAO)
	gl.DeleteBuffers(1, &r.solidVBO)
	gl.DeleteVertexArrays(1, &r.textVAO)
	gl.DeleteBuffers(1, &r.textVBO)
	r.solid.Delete()
	r.text.Delete()
}
