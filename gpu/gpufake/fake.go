// Package gpufake provides an in-memory gpu.API that tracks object lifetimes
// and binding state, and raises the error flags a core-profile driver would.
package gpufake

import (
	"fmt"
	"slices"

	"github.com/stewi1014/glchapters/gpu"
)

var _ gpu.API = (*API)(nil)

// maxAttribs mirrors the minimum GL_MAX_VERTEX_ATTRIBS guaranteed by GL 4.0.
const maxAttribs = 16

type Buffer struct {
	Data  []float32
	Usage gpu.Enum
}

type Attrib struct {
	VAO        uint32
	Buffer     uint32
	Size       int32
	Type       gpu.Enum
	Normalized bool
	Stride     int32
	Offset     uintptr
	Enabled    bool
}

type Shader struct {
	Kind     gpu.Enum
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
	attached int
}

type Program struct {
	Attached []uint32
	Linked   bool
	Log      string
	Deleted  bool
}

type Draw struct {
	Mode    gpu.Enum
	First   int32
	Count   int32
	Program uint32
	VAO     uint32
}

// API records every call. The zero value is not usable; call New.
type API struct {
	// CompileError, when set, is consulted on every CompileShader. A
	// non-empty return fails the compile with that info log.
	CompileError func(kind gpu.Enum, source string) string

	// LinkError fails every link with this info log when non-empty.
	LinkError string

	Strings map[gpu.Enum]string

	BoundVAO         uint32
	BoundArrayBuffer uint32
	CurrentProgram   uint32
	ViewportRect     [4]int32
	ClearColorValue  [4]float32
	Clears           []gpu.Enum
	Draws            []Draw
	Calls            []string

	next     uint32
	errors   []gpu.Enum
	vaos     map[uint32]bool
	buffers  map[uint32]*Buffer
	attribs  map[uint32]*Attrib
	shaders  map[uint32]*Shader
	programs map[uint32]*Program
}

func New() *API {
	return &API{
		Strings: map[gpu.Enum]string{
			gpu.Vendor:   "gpufake",
			gpu.Renderer: "gpufake",
			gpu.Version:  "4.0.0 gpufake",
		},
		vaos:     make(map[uint32]bool),
		buffers:  make(map[uint32]*Buffer),
		attribs:  make(map[uint32]*Attrib),
		shaders:  make(map[uint32]*Shader),
		programs: make(map[uint32]*Program),
	}
}

// RaiseError queues an error flag as if a call had failed.
func (a *API) RaiseError(code gpu.Enum) {
	a.errors = append(a.errors, code)
}

func (a *API) record(format string, args ...any) {
	a.Calls = append(a.Calls, fmt.Sprintf(format, args...))
}

func (a *API) gen() uint32 {
	a.next++
	return a.next
}

func (a *API) LiveVertexArrays() int { return len(a.vaos) }
func (a *API) LiveBuffers() int      { return len(a.buffers) }

func (a *API) LiveShaders() int {
	n := 0
	for _, s := range a.shaders {
		if !s.Deleted {
			n++
		}
	}
	return n
}

func (a *API) LivePrograms() int {
	n := 0
	for _, p := range a.programs {
		if !p.Deleted {
			n++
		}
	}
	return n
}

// Buffer returns the store behind a live buffer name.
func (a *API) Buffer(name uint32) (Buffer, bool) {
	b, ok := a.buffers[name]
	if !ok {
		return Buffer{}, false
	}
	return *b, true
}

// Attrib returns the vertex attribute state for index.
func (a *API) Attrib(index uint32) (Attrib, bool) {
	at, ok := a.attribs[index]
	if !ok {
		return Attrib{}, false
	}
	return *at, true
}

// Shader returns a shader object, including ones flagged for deletion.
func (a *API) Shader(name uint32) (Shader, bool) {
	s, ok := a.shaders[name]
	if !ok {
		return Shader{}, false
	}
	return *s, true
}

// Program returns a program object, including one flagged for deletion.
func (a *API) Program(name uint32) (Program, bool) {
	p, ok := a.programs[name]
	if !ok {
		return Program{}, false
	}
	return *p, true
}

// CallIndex returns the position of the first recorded call equal to call, or -1.
func (a *API) CallIndex(call string) int {
	return slices.Index(a.Calls, call)
}

func (a *API) GetError() gpu.Enum {
	if len(a.errors) == 0 {
		return gpu.NoError
	}
	code := a.errors[0]
	a.errors = a.errors[1:]
	return code
}

func (a *API) GetString(name gpu.Enum) string {
	s, ok := a.Strings[name]
	if !ok {
		a.RaiseError(gpu.InvalidEnum)
	}
	return s
}

func (a *API) GenVertexArray() uint32 {
	vao := a.gen()
	a.vaos[vao] = true
	a.record("GenVertexArray() = %d", vao)
	return vao
}

func (a *API) BindVertexArray(vao uint32) {
	a.record("BindVertexArray(%d)", vao)
	if vao != 0 && !a.vaos[vao] {
		a.RaiseError(gpu.InvalidOperation)
		return
	}
	a.BoundVAO = vao
}

func (a *API) DeleteVertexArray(vao uint32) {
	a.record("DeleteVertexArray(%d)", vao)
	if a.BoundVAO == vao {
		a.BoundVAO = 0
	}
	delete(a.vaos, vao)
}

func (a *API) GenBuffer() uint32 {
	b := a.gen()
	a.buffers[b] = &Buffer{}
	a.record("GenBuffer() = %d", b)
	return b
}

func (a *API) BindBuffer(target gpu.Enum, buffer uint32) {
	a.record("BindBuffer(0x%X, %d)", target, buffer)
	if target != gpu.ArrayBuffer {
		a.RaiseError(gpu.InvalidEnum)
		return
	}
	if _, ok := a.buffers[buffer]; buffer != 0 && !ok {
		a.RaiseError(gpu.InvalidOperation)
		return
	}
	a.BoundArrayBuffer = buffer
}

func (a *API) BufferData(target gpu.Enum, data []float32, usage gpu.Enum) {
	a.record("BufferData(0x%X, %d floats, 0x%X)", target, len(data), usage)
	if target != gpu.ArrayBuffer {
		a.RaiseError(gpu.InvalidEnum)
		return
	}
	b, ok := a.buffers[a.BoundArrayBuffer]
	if !ok {
		a.RaiseError(gpu.InvalidOperation)
		return
	}
	b.Data = slices.Clone(data)
	b.Usage = usage
}

func (a *API) DeleteBuffer(buffer uint32) {
	a.record("DeleteBuffer(%d)", buffer)
	if a.BoundArrayBuffer == buffer {
		a.BoundArrayBuffer = 0
	}
	delete(a.buffers, buffer)
}

func (a *API) VertexAttribPointer(index uint32, size int32, xtype gpu.Enum, normalized bool, stride int32, offset uintptr) {
	a.record("VertexAttribPointer(%d, %d, 0x%X, %t, %d, %d)", index, size, xtype, normalized, stride, offset)
	switch {
	case index >= maxAttribs, size < 1 || size > 4, stride < 0:
		a.RaiseError(gpu.InvalidValue)
		return
	case a.BoundVAO == 0, a.BoundArrayBuffer == 0:
		a.RaiseError(gpu.InvalidOperation)
		return
	}
	at := a.attrib(index)
	at.VAO = a.BoundVAO
	at.Buffer = a.BoundArrayBuffer
	at.Size = size
	at.Type = xtype
	at.Normalized = normalized
	at.Stride = stride
	at.Offset = offset
}

func (a *API) attrib(index uint32) *Attrib {
	at, ok := a.attribs[index]
	if !ok {
		at = &Attrib{}
		a.attribs[index] = at
	}
	return at
}

func (a *API) EnableVertexAttribArray(index uint32) {
	a.record("EnableVertexAttribArray(%d)", index)
	a.setAttribEnabled(index, true)
}

func (a *API) DisableVertexAttribArray(index uint32) {
	a.record("DisableVertexAttribArray(%d)", index)
	a.setAttribEnabled(index, false)
}

func (a *API) setAttribEnabled(index uint32, enabled bool) {
	if index >= maxAttribs {
		a.RaiseError(gpu.InvalidValue)
		return
	}
	if a.BoundVAO == 0 {
		a.RaiseError(gpu.InvalidOperation)
		return
	}
	a.attrib(index).Enabled = enabled
}

func (a *API) CreateShader(kind gpu.Enum) uint32 {
	if kind != gpu.VertexShader && kind != gpu.FragmentShader {
		a.record("CreateShader(0x%X) = 0", kind)
		a.RaiseError(gpu.InvalidEnum)
		return 0
	}
	s := a.gen()
	a.shaders[s] = &Shader{Kind: kind}
	a.record("CreateShader(0x%X) = %d", kind, s)
	return s
}

func (a *API) shader(name uint32) (*Shader, bool) {
	s, ok := a.shaders[name]
	if !ok || s.Deleted {
		a.RaiseError(gpu.InvalidValue)
		return nil, false
	}
	return s, true
}

func (a *API) ShaderSource(shader uint32, source string) {
	a.record("ShaderSource(%d)", shader)
	if s, ok := a.shader(shader); ok {
		s.Source = source
	}
}

func (a *API) CompileShader(shader uint32) {
	a.record("CompileShader(%d)", shader)
	s, ok := a.shader(shader)
	if !ok {
		return
	}
	s.Log = ""
	if a.CompileError != nil {
		s.Log = a.CompileError(s.Kind, s.Source)
	}
	s.Compiled = s.Log == ""
}

func (a *API) GetShaderiv(shader uint32, pname gpu.Enum) int32 {
	s, ok := a.shader(shader)
	if !ok {
		return 0
	}
	switch pname {
	case gpu.CompileStatus:
		if s.Compiled {
			return int32(gpu.True)
		}
		return int32(gpu.False)
	case gpu.InfoLogLength:
		return logLength(s.Log)
	}
	a.RaiseError(gpu.InvalidEnum)
	return 0
}

func (a *API) GetShaderInfoLog(shader uint32) string {
	if s, ok := a.shader(shader); ok {
		return s.Log
	}
	return ""
}

func (a *API) DeleteShader(shader uint32) {
	a.record("DeleteShader(%d)", shader)
	if shader == 0 {
		return
	}
	s, ok := a.shader(shader)
	if !ok {
		return
	}
	s.Deleted = true
	a.collectShader(shader)
}

// collectShader frees a shader flagged for deletion once nothing references it.
func (a *API) collectShader(shader uint32) {
	if s, ok := a.shaders[shader]; ok && s.Deleted && s.attached == 0 {
		delete(a.shaders, shader)
	}
}

func (a *API) CreateProgram() uint32 {
	p := a.gen()
	a.programs[p] = &Program{}
	a.record("CreateProgram() = %d", p)
	return p
}

func (a *API) program(name uint32) (*Program, bool) {
	p, ok := a.programs[name]
	if !ok || p.Deleted {
		a.RaiseError(gpu.InvalidValue)
		return nil, false
	}
	return p, true
}

func (a *API) AttachShader(program, shader uint32) {
	a.record("AttachShader(%d, %d)", program, shader)
	p, ok := a.program(program)
	if !ok {
		return
	}
	s, ok := a.shader(shader)
	if !ok {
		return
	}
	if slices.Contains(p.Attached, shader) {
		a.RaiseError(gpu.InvalidOperation)
		return
	}
	p.Attached = append(p.Attached, shader)
	s.attached++
}

func (a *API) DetachShader(program, shader uint32) {
	a.record("DetachShader(%d, %d)", program, shader)
	p, ok := a.program(program)
	if !ok {
		return
	}
	i := slices.Index(p.Attached, shader)
	if i < 0 {
		a.RaiseError(gpu.InvalidOperation)
		return
	}
	a.detach(p, i)
}

func (a *API) detach(p *Program, i int) {
	shader := p.Attached[i]
	p.Attached = slices.Delete(p.Attached, i, i+1)
	if s, ok := a.shaders[shader]; ok {
		s.attached--
		a.collectShader(shader)
	}
}

func (a *API) LinkProgram(program uint32) {
	a.record("LinkProgram(%d)", program)
	p, ok := a.program(program)
	if !ok {
		return
	}
	p.Linked, p.Log = false, ""

	var vertex, fragment bool
	for _, name := range p.Attached {
		s := a.shaders[name]
		if !s.Compiled {
			p.Log = fmt.Sprintf("shader %d not compiled", name)
			return
		}
		vertex = vertex || s.Kind == gpu.VertexShader
		fragment = fragment || s.Kind == gpu.FragmentShader
	}
	switch {
	case a.LinkError != "":
		p.Log = a.LinkError
	case !vertex || !fragment:
		p.Log = "program needs a vertex and a fragment shader"
	default:
		p.Linked = true
	}
}

func (a *API) GetProgramiv(program uint32, pname gpu.Enum) int32 {
	p, ok := a.program(program)
	if !ok {
		return 0
	}
	switch pname {
	case gpu.LinkStatus:
		if p.Linked {
			return int32(gpu.True)
		}
		return int32(gpu.False)
	case gpu.InfoLogLength:
		return logLength(p.Log)
	}
	a.RaiseError(gpu.InvalidEnum)
	return 0
}

func (a *API) GetProgramInfoLog(program uint32) string {
	if p, ok := a.program(program); ok {
		return p.Log
	}
	return ""
}

func (a *API) UseProgram(program uint32) {
	a.record("UseProgram(%d)", program)
	if program != 0 {
		p, ok := a.program(program)
		if !ok {
			return
		}
		if !p.Linked {
			a.RaiseError(gpu.InvalidOperation)
			return
		}
	}
	prev := a.CurrentProgram
	a.CurrentProgram = program
	a.collectProgram(prev)
}

func (a *API) DeleteProgram(program uint32) {
	a.record("DeleteProgram(%d)", program)
	if program == 0 {
		return
	}
	p, ok := a.program(program)
	if !ok {
		return
	}
	p.Deleted = true
	a.collectProgram(program)
}

// collectProgram frees a program flagged for deletion once it is no longer current.
func (a *API) collectProgram(program uint32) {
	p, ok := a.programs[program]
	if !ok || !p.Deleted || a.CurrentProgram == program {
		return
	}
	for len(p.Attached) > 0 {
		a.detach(p, 0)
	}
	delete(a.programs, program)
}

func (a *API) Viewport(x, y, width, height int32) {
	a.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
	if width < 0 || height < 0 {
		a.RaiseError(gpu.InvalidValue)
		return
	}
	a.ViewportRect = [4]int32{x, y, width, height}
}

func (a *API) ClearColor(r, g, b, alpha float32) {
	a.record("ClearColor(%g, %g, %g, %g)", r, g, b, alpha)
	a.ClearColorValue = [4]float32{r, g, b, alpha}
}

func (a *API) Clear(mask gpu.Enum) {
	a.record("Clear(0x%X)", mask)
	if mask&^(gpu.ColorBufferBit|gpu.DepthBufferBit) != 0 {
		a.RaiseError(gpu.InvalidValue)
		return
	}
	a.Clears = append(a.Clears, mask)
}

func (a *API) DrawArrays(mode gpu.Enum, first, count int32) {
	a.record("DrawArrays(0x%X, %d, %d)", mode, first, count)
	if first < 0 || count < 0 {
		a.RaiseError(gpu.InvalidValue)
		return
	}
	if a.BoundVAO == 0 {
		a.RaiseError(gpu.InvalidOperation)
		return
	}
	a.Draws = append(a.Draws, Draw{
		Mode:    mode,
		First:   first,
		Count:   count,
		Program: a.CurrentProgram,
		VAO:     a.BoundVAO,
	})
}

func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}
