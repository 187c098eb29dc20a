package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// buffer is a VAO with one interleaved float VBO and an optional index buffer.
// Uploads reuse the store while the data fits.
type buffer struct {
	vao, vbo, ebo uint32
	stride        int // floats per vertex
	count         int32
	capacity      int // bytes
	indices       int32
}

// newBuffer creates a buffer whose vertices have the given attribute sizes,
// bound to locations 0..n in order.
func newBuffer(attribs ...int) *buffer {
	b := &buffer{}
	for _, n := range attribs {
		b.stride += n
	}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	offset := 0
	for loc, n := range attribs {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), int32(n), gl.FLOAT, false, int32(b.stride*4), uintptr(offset*4))
		offset += n
	}
	gl.BindVertexArray(0)
	return b
}

// upload replaces the vertex data.
func (b *buffer) upload(data []float32) {
	b.count = int32(len(data) / b.stride)
	if len(data) == 0 {
		return
	}
	size := len(data) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if size > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(data), gl.DYNAMIC_DRAW)
		b.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// uploadIndices sets the element buffer. Indices are static for a mesh.
func (b *buffer) uploadIndices(idx []uint32) {
	if len(idx) == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	if b.ebo == 0 {
		gl.GenBuffers(1, &b.ebo)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*4, gl.Ptr(idx), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
	b.indices = int32(len(idx))
}

func (b *buffer) draw(mode uint32) {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	if b.ebo != 0 {
		gl.DrawElementsWithOffset(mode, b.indices, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(mode, 0, b.count)
	}
	gl.BindVertexArray(0)
}

func (b *buffer) delete() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}
