// Package glnative implements gpu.API on top of go-gl.
package glnative

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stewi1014/glchapters/gpu"
)

var _ gpu.API = (*API)(nil)

// API forwards to the GL context current on the calling thread.
type API struct{}

// New loads GL function pointers for the current context.
// A context must be current before calling it.
func New() (*API, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}
	return &API{}, nil
}

// Extensions lists the extension names the context reports.
func (*API) Extensions() []string {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	exts := make([]string, 0, n)
	for i := int32(0); i < n; i++ {
		exts = append(exts, gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))))
	}
	return exts
}

// HasExtension reports whether the context exposes name.
func (a *API) HasExtension(name string) bool {
	for _, ext := range a.Extensions() {
		if ext == name {
			return true
		}
	}
	return false
}

func (*API) GetError() gpu.Enum { return gl.GetError() }

func (*API) GetString(name gpu.Enum) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (*API) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (*API) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (*API) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (*API) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (*API) BindBuffer(target gpu.Enum, buffer uint32) { gl.BindBuffer(target, buffer) }

func (*API) BufferData(target gpu.Enum, data []float32, usage gpu.Enum) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (*API) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (*API) VertexAttribPointer(index uint32, size int32, xtype gpu.Enum, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (*API) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (*API) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (*API) CreateShader(kind gpu.Enum) uint32 { return gl.CreateShader(kind) }

func (*API) ShaderSource(shader uint32, source string) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, cstring, nil)
}

func (*API) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*API) GetShaderiv(shader uint32, pname gpu.Enum) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (a *API) GetShaderInfoLog(shader uint32) string {
	l := a.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	if l == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(l+1))
	gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*API) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*API) CreateProgram() uint32 { return gl.CreateProgram() }

func (*API) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (*API) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }
func (*API) LinkProgram(program uint32)          { gl.LinkProgram(program) }

func (*API) GetProgramiv(program uint32, pname gpu.Enum) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (a *API) GetProgramInfoLog(program uint32) string {
	l := a.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	if l == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(l+1))
	gl.GetProgramInfoLog(program, l, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*API) UseProgram(program uint32)    { gl.UseProgram(program) }
func (*API) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*API) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (*API) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (*API) Clear(mask gpu.Enum)                { gl.Clear(mask) }

func (*API) DrawArrays(mode gpu.Enum, first, count int32) { gl.DrawArrays(mode, first, count) }
