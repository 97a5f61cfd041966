// Package gpu describes the slice of the OpenGL API the tutorial programs use.
//
// Enum values match the OpenGL registry, so an API backed by go-gl can pass
// them straight through.
package gpu

type Enum = uint32

const (
	NoError                     Enum = 0
	InvalidEnum                 Enum = 0x0500
	InvalidValue                Enum = 0x0501
	InvalidOperation            Enum = 0x0502
	StackOverflow               Enum = 0x0503
	StackUnderflow              Enum = 0x0504
	OutOfMemory                 Enum = 0x0505
	InvalidFramebufferOperation Enum = 0x0506
)

const (
	False Enum = 0
	True  Enum = 1

	Float         Enum = 0x1406
	TriangleStrip Enum = 0x0005

	ArrayBuffer Enum = 0x8892
	StaticDraw  Enum = 0x88E4

	DepthBufferBit Enum = 0x00000100
	ColorBufferBit Enum = 0x00004000

	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	CompileStatus  Enum = 0x8B81
	LinkStatus     Enum = 0x8B82
	InfoLogLength  Enum = 0x8B84

	Vendor   Enum = 0x1F00
	Renderer Enum = 0x1F01
	Version  Enum = 0x1F02
)

// API is the set of GL entry points used by the resource manager and
// renderer. All calls must be made from the thread owning the context.
type API interface {
	GetError() Enum
	GetString(name Enum) string

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target Enum, buffer uint32)
	BufferData(target Enum, data []float32, usage Enum)
	DeleteBuffer(buffer uint32)

	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)

	CreateShader(kind Enum) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname Enum) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	DrawArrays(mode Enum, first, count int32)
}
