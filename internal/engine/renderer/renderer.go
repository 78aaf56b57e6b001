// Package renderer draws mesh frames with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/engine/shader"
	"github.com/Faultbox/lowpoly/internal/logger"
	"github.com/Faultbox/lowpoly/internal/render"
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uProjection;
uniform float uPointSize;

out vec3 vertexColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	gl_PointSize = uPointSize;
	vertexColor = aColor;
}
`

const fragmentShader = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`

// layer is one streamed vertex buffer.
type layer struct {
	vao, vbo uint32
	capacity int // bytes allocated on the GPU
	count    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	log *zap.Logger

	program     uint32
	uProjection int32
	uPointSize  int32

	fill, lines, points layer

	width, height int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		log:    logger.Named("renderer"),
		width:  width,
		height: height,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	r.program, err = shader.CompileProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uProjection = shader.MustUniform(r.program, "uProjection")
	r.uPointSize = shader.MustUniform(r.program, "uPointSize")

	for _, l := range []*layer{&r.fill, &r.lines, &r.points} {
		l.init()
	}
	gl.Viewport(0, 0, int32(width), int32(height))

	r.log.Debug("renderer ready", zap.Uint32("program", r.program))
	return r, nil
}

func (l *layer) init() {
	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)

	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)

	stride := int32(render.Stride * 4)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// upload streams data into the layer, growing the GPU buffer when needed.
func (l *layer) upload(data []float32) {
	l.count = int32(len(data) / render.Stride)
	if len(data) == 0 {
		return
	}
	size := len(data) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	if size > l.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
		l.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&data[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (l *layer) draw(mode uint32) {
	if l.count == 0 {
		return
	}
	gl.BindVertexArray(l.vao)
	gl.DrawArrays(mode, 0, l.count)
	gl.BindVertexArray(0)
}

func (l *layer) release() {
	if l.vao != 0 {
		gl.DeleteVertexArrays(1, &l.vao)
	}
	if l.vbo != 0 {
		gl.DeleteBuffers(1, &l.vbo)
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, l := range []*layer{&r.fill, &r.lines, &r.points} {
		l.release()
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw clears the screen and draws the frame: fill first, then edges,
// then points on top. The canvas is letterboxed into the viewport with its
// origin at the bottom left.
func (r *Renderer) Draw(f render.Frame) {
	bg := f.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if f.Width <= 0 || f.Height <= 0 {
		return
	}

	proj := render.Projection(f.Width, f.Height, r.width, r.height)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uProjection, 1, false, proj.Ptr())
	gl.Uniform1f(r.uPointSize, f.PointSize)

	r.fill.upload(f.Fill)
	r.lines.upload(f.Lines)
	r.points.upload(f.Points)

	r.fill.draw(gl.TRIANGLES)
	// core profile drivers may clamp widths above 1
	gl.LineWidth(max(f.LineWidth, 1))
	r.lines.draw(gl.LINES)
	r.points.draw(gl.POINTS)

	gl.UseProgram(0)
}
