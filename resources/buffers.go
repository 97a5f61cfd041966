// Package resources owns the GPU objects the quad demo uploads once at
// startup and releases once at shutdown.
package resources

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glchapters/gpu"
)

var ErrLifecycle = errors.New("invalid resource lifecycle transition")

type state int

const (
	uncreated state = iota
	created
	destroyed
)

func (s state) String() string {
	switch s {
	case uncreated:
		return "uncreated"
	case created:
		return "created"
	case destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Attribute locations, matching the layout qualifiers in the colour program.
const (
	PositionIndex uint32 = 0
	ColourIndex   uint32 = 1
)

// Quad corners in triangle strip order.
var Positions = [4]mgl32.Vec4{
	{-0.8, 0.8, 0, 1},
	{0.8, 0.8, 0, 1},
	{-0.8, -0.8, 0, 1},
	{0.8, -0.8, 0, 1},
}

var Colours = [4]mgl32.Vec4{
	{1, 0, 0, 1},
	{0, 1, 0, 1},
	{0, 0, 1, 1},
	{1, 1, 1, 1},
}

// VertexLayout describes where one vertex attribute reads its data from.
type VertexLayout struct {
	Index      uint32
	Buffer     uint32
	Components int32
	Type       gpu.Enum
	Normalized bool
	Stride     int32
	Offset     uintptr
}

// Buffers holds the vertex array object and the position and colour buffers.
// A Buffers value is created at most once and destroyed at most once.
type Buffers struct {
	api    gpu.API
	logger *slog.Logger
	state  state

	vao         uint32
	positionVBO uint32
	colourVBO   uint32
}

func NewBuffers(api gpu.API, logger *slog.Logger) *Buffers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Buffers{
		api:    api,
		logger: logger,
	}
}

// Create uploads Positions and Colours and enables both attributes on a new
// vertex array object. The vertex array stays bound.
//
// If Create fails, the handles it acquired are kept so Destroy can release them.
func (b *Buffers) Create() error {
	if b.state != uncreated {
		return fmt.Errorf("create buffers while %v: %w", b.state, ErrLifecycle)
	}
	b.state = created
	discardStale(b.api, b.logger, "create the VBO")

	b.vao = b.api.GenVertexArray()
	b.api.BindVertexArray(b.vao)

	b.positionVBO = b.upload(PositionIndex, Positions)
	b.colourVBO = b.upload(ColourIndex, Colours)

	if err := gpu.Check(b.api, "create the VBO"); err != nil {
		return err
	}

	b.logger.Debug("buffers created",
		"vao", b.vao,
		"positions", b.positionVBO,
		"colours", b.colourVBO,
	)
	return nil
}

func (b *Buffers) upload(index uint32, data [4]mgl32.Vec4) uint32 {
	vbo := b.api.GenBuffer()
	b.api.BindBuffer(gpu.ArrayBuffer, vbo)
	b.api.BufferData(gpu.ArrayBuffer, flatten(data), gpu.StaticDraw)
	b.api.VertexAttribPointer(index, 4, gpu.Float, false, 0, 0)
	b.api.EnableVertexAttribArray(index)
	return vbo
}

// Destroy disables the attributes and deletes both buffers and the vertex
// array, in the reverse order of Create.
func (b *Buffers) Destroy() error {
	if b.state != created {
		return fmt.Errorf("destroy buffers while %v: %w", b.state, ErrLifecycle)
	}
	b.state = destroyed
	discardStale(b.api, b.logger, "destroy the VBO")

	if b.vao != 0 {
		b.api.DisableVertexAttribArray(ColourIndex)
		b.api.DisableVertexAttribArray(PositionIndex)
	}

	b.api.BindBuffer(gpu.ArrayBuffer, 0)

	if b.colourVBO != 0 {
		b.api.DeleteBuffer(b.colourVBO)
	}
	if b.positionVBO != 0 {
		b.api.DeleteBuffer(b.positionVBO)
	}

	b.api.BindVertexArray(0)
	if b.vao != 0 {
		b.api.DeleteVertexArray(b.vao)
	}

	b.vao, b.positionVBO, b.colourVBO = 0, 0, 0

	if err := gpu.Check(b.api, "destroy the VBO"); err != nil {
		return err
	}
	b.logger.Debug("buffers destroyed")
	return nil
}

// VertexArray returns the vertex array object name, or 0 before Create and after Destroy.
func (b *Buffers) VertexArray() uint32 {
	return b.vao
}

// VertexCount is the number of vertices uploaded per attribute.
func (b *Buffers) VertexCount() int32 {
	return int32(len(Positions))
}

// Layouts returns the attribute bindings recorded in the vertex array.
func (b *Buffers) Layouts() []VertexLayout {
	return []VertexLayout{
		{Index: PositionIndex, Buffer: b.positionVBO, Components: 4, Type: gpu.Float},
		{Index: ColourIndex, Buffer: b.colourVBO, Components: 4, Type: gpu.Float},
	}
}

func flatten(vs [4]mgl32.Vec4) []float32 {
	out := make([]float32, 0, len(vs)*4)
	for i := range vs {
		out = append(out, vs[i][:]...)
	}
	return out
}

// discardStale clears error flags raised before op began, so the check at
// the end of op only reports its own failures.
func discardStale(api gpu.API, logger *slog.Logger, op string) {
	if codes := gpu.Drain(api); len(codes) > 0 {
		logger.Debug("discarding stale GL errors", "op", op, "errors", (&gpu.Error{Op: op, Codes: codes}).Error())
	}
}
