package hostgpu

import (
	"fmt"
	"image"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Blitter uploads a resolved host-side frame and draws it to the
// window's default framebuffer, the display half of the host/core
// split: everything upstream of resolve.Image runs as plain Go in
// package pathtrace and resolve, and Blitter is the only thing in the
// tree that calls into OpenGL.
//
// Grounded on the teacher's internal/opengl/renderer.go: a compiled
// program plus a single bound texture, swapped out for a fresh upload
// once per frame instead of per-mesh vertex buffers.
type Blitter struct {
	program  uint32
	vao      uint32
	texture  uint32
	texW     int
	texH     int
	frameLoc int32
}

// NewBlitter compiles the blit program and allocates the texture and
// dummy VAO the vertex shader's gl_VertexID trick needs bound (a
// full-screen triangle needs no vertex attributes, but core-profile GL
// refuses to draw with no VAO bound at all).
func NewBlitter() (*Blitter, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("hostgpu: init opengl: %w", err)
	}

	prog, err := newProgram(blitVertexShaderGLSL, blitFragmentShaderGLSL)
	if err != nil {
		return nil, fmt.Errorf("hostgpu: blit program: %w", err)
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	b := &Blitter{
		program:  prog,
		vao:      vao,
		texture:  tex,
		frameLoc: gl.GetUniformLocation(prog, gl.Str("frameTex\x00")),
	}

	gl.UseProgram(prog)
	gl.Uniform1i(b.frameLoc, 0)

	return b, nil
}

// Upload replaces the blit texture's contents with img, reallocating
// storage only when the dimensions change.
func (b *Blitter) Upload(img *image.NRGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	if w != b.texW || h != b.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		b.texW, b.texH = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw clears the default framebuffer and blits the uploaded texture
// across it as a single full-screen triangle.
func (b *Blitter) Draw(viewportW, viewportH int) {
	gl.Viewport(0, 0, int32(viewportW), int32(viewportH))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(b.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

// Destroy releases the GL objects the blitter owns.
func (b *Blitter) Destroy() {
	gl.DeleteTextures(1, &b.texture)
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteProgram(b.program)
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
