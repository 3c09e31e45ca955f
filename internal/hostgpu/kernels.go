package hostgpu

// Package hostgpu owns the one concern the core itself never touches:
// getting pixels onto a screen. The three per-frame kernels spec.md §6
// names (surface attributes, color, resolve) all run as CPU Go code in
// packages pathtrace and resolve (only color uses a goroutine pool;
// the other two are plain loops) — there is no
// GPU-resident reimplementation of that math here, since duplicating a
// path tracer's core integration loop in a second language, unable to
// be compiled or run in this exercise, would only invite the two
// versions to drift apart. What OpenGL adds on top is the boundary
// pass spec.md never describes: uploading the resolved 8-bit frame as
// a texture and blitting it to the window's default framebuffer each
// frame, the same "draw a single triangle to the swapchain" shape the
// teacher's post-process blit used for its own tone-map resolve.

// blitVertexShaderGLSL draws a single oversized triangle covering the
// viewport and derives UVs from clip position, the same full-screen
// triangle trick the teacher's PostProcessFBO.Blit shader uses instead
// of a two-triangle quad.
const blitVertexShaderGLSL = `
#version 410 core

out vec2 fragUV;

void main() {
    vec2 pos = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
    fragUV = pos;
    gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

// blitFragmentShaderGLSL samples the resolved frame texture directly;
// resolve.Image has already applied ACES tonemap, gamma, and dither on
// the CPU, so the fragment shader here does no further color work.
const blitFragmentShaderGLSL = `
#version 410 core

in vec2 fragUV;
out vec4 outColor;

uniform sampler2D frameTex;

void main() {
    outColor = texture(frameTex, vec2(fragUV.x, 1.0 - fragUV.y));
}
` + "\x00"
