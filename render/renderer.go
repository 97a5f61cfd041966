// Package render draws one frame per call.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glchapters/gpu"
)

// Presenter shows the back buffer once a frame has been drawn.
type Presenter interface {
	SwapBuffers()
}

// Geometry is something the renderer can draw as a triangle strip.
// Its vertex array must already be bound.
type Geometry interface {
	VertexCount() int32
}

type Renderer struct {
	api      gpu.API
	geometry Geometry
}

// New sets the clear colour once and returns a renderer that clears every
// frame. When geometry is non-nil it is drawn as a triangle strip.
func New(api gpu.API, clear mgl32.Vec4, geometry Geometry) *Renderer {
	api.ClearColor(clear[0], clear[1], clear[2], clear[3])
	return &Renderer{
		api:      api,
		geometry: geometry,
	}
}

// Render clears colour and depth, draws the geometry and presents the frame.
// GL errors are not checked here.
func (r *Renderer) Render(p Presenter) {
	r.api.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	if r.geometry != nil {
		r.api.DrawArrays(gpu.TriangleStrip, 0, r.geometry.VertexCount())
	}

	p.SwapBuffers()
}
