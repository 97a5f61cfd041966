package resources

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stewi1014/glchapters/gpu"
	"github.com/stewi1014/glchapters/gpu/gpufake"
	"github.com/stewi1014/glchapters/programs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colourProgram(t *testing.T) programs.Program {
	t.Helper()
	p, err := programs.Lookup(programs.Colour)
	require.NoError(t, err)
	return p
}

func TestBuffersCreateDestroy(t *testing.T) {
	api := gpufake.New()
	b := NewBuffers(api, nil)

	require.NoError(t, b.Create())
	assert.Equal(t, 1, api.LiveVertexArrays())
	assert.Equal(t, 2, api.LiveBuffers())
	assert.Equal(t, b.VertexArray(), api.BoundVAO)
	assert.Equal(t, int32(4), b.VertexCount())

	require.NoError(t, b.Destroy())
	assert.Zero(t, api.LiveVertexArrays())
	assert.Zero(t, api.LiveBuffers())
	assert.Zero(t, api.BoundVAO)
	assert.Zero(t, api.BoundArrayBuffer)
	assert.Zero(t, b.VertexArray())
	assert.Equal(t, gpu.NoError, api.GetError())
}

func TestBuffersRepeatedCycles(t *testing.T) {
	api := gpufake.New()
	for i := 0; i < 3; i++ {
		b := NewBuffers(api, nil)
		require.NoError(t, b.Create(), "cycle %d", i)
		require.NoError(t, b.Destroy(), "cycle %d", i)

		assert.Zero(t, api.LiveVertexArrays(), "cycle %d", i)
		assert.Zero(t, api.LiveBuffers(), "cycle %d", i)
		assert.Empty(t, gpu.Drain(api), "cycle %d", i)
	}
}

func TestBuffersLayout(t *testing.T) {
	api := gpufake.New()
	b := NewBuffers(api, nil)
	require.NoError(t, b.Create())

	layouts := b.Layouts()
	require.Len(t, layouts, 2)

	want := map[uint32][]float32{
		PositionIndex: flatten(Positions),
		ColourIndex:   flatten(Colours),
	}
	for _, l := range layouts {
		at, ok := api.Attrib(l.Index)
		require.True(t, ok, "attribute %d", l.Index)

		assert.Equal(t, int32(4), at.Size)
		assert.Equal(t, gpu.Float, at.Type)
		assert.False(t, at.Normalized)
		assert.Zero(t, at.Stride)
		assert.Zero(t, at.Offset)
		assert.True(t, at.Enabled)
		assert.Equal(t, b.VertexArray(), at.VAO)
		assert.Equal(t, l.Buffer, at.Buffer)

		assert.Equal(t, int32(4), l.Components)
		assert.Equal(t, gpu.Float, l.Type)

		buf, ok := api.Buffer(l.Buffer)
		require.True(t, ok)
		assert.Equal(t, want[l.Index], buf.Data)
		assert.Equal(t, gpu.StaticDraw, buf.Usage)
	}
}

func TestBuffersDestroyOrder(t *testing.T) {
	api := gpufake.New()
	b := NewBuffers(api, nil)
	require.NoError(t, b.Create())
	layouts := b.Layouts()
	vao := b.VertexArray()
	api.Calls = nil

	require.NoError(t, b.Destroy())
	assert.Equal(t, []string{
		"DisableVertexAttribArray(1)",
		"DisableVertexAttribArray(0)",
		"BindBuffer(0x8892, 0)",
		"DeleteBuffer(" + itoa(layouts[1].Buffer) + ")",
		"DeleteBuffer(" + itoa(layouts[0].Buffer) + ")",
		"BindVertexArray(0)",
		"DeleteVertexArray(" + itoa(vao) + ")",
	}, api.Calls)
}

type failingUpload struct {
	*gpufake.API
}

func (f failingUpload) BufferData(target gpu.Enum, data []float32, usage gpu.Enum) {
	f.RaiseError(gpu.OutOfMemory)
}

func TestBuffersCreateReportsError(t *testing.T) {
	api := gpufake.New()
	b := NewBuffers(failingUpload{api}, nil)

	err := b.Create()
	var glErr *gpu.Error
	require.True(t, errors.As(err, &glErr))
	assert.Equal(t, "create the VBO", glErr.Op)
	assert.True(t, glErr.Has(gpu.OutOfMemory))

	require.NoError(t, b.Destroy())
	assert.Zero(t, api.LiveBuffers())
	assert.Zero(t, api.LiveVertexArrays())
}

func TestBuffersIgnoresStaleErrors(t *testing.T) {
	api := gpufake.New()
	api.RaiseError(gpu.InvalidEnum)

	b := NewBuffers(api, nil)
	assert.NoError(t, b.Create())
}

func TestBuffersLifecycle(t *testing.T) {
	api := gpufake.New()
	b := NewBuffers(api, nil)

	assert.ErrorIs(t, b.Destroy(), ErrLifecycle)
	require.NoError(t, b.Create())
	assert.ErrorIs(t, b.Create(), ErrLifecycle)
	require.NoError(t, b.Destroy())
	assert.ErrorIs(t, b.Destroy(), ErrLifecycle)
	assert.ErrorIs(t, b.Create(), ErrLifecycle)
}

func TestShadersCreateDestroy(t *testing.T) {
	api := gpufake.New()
	s := NewShaders(api, colourProgram(t), nil)

	require.NoError(t, s.Create())
	assert.NotZero(t, s.Program())
	assert.Equal(t, s.Program(), api.CurrentProgram)
	assert.Equal(t, 2, api.LiveShaders())
	assert.Equal(t, 1, api.LivePrograms())

	require.NoError(t, s.Destroy())
	assert.Zero(t, api.CurrentProgram)
	assert.Zero(t, api.LiveShaders())
	assert.Zero(t, api.LivePrograms())
	assert.Equal(t, gpu.NoError, api.GetError())
}

func TestShadersCompileError(t *testing.T) {
	api := gpufake.New()
	api.CompileError = func(kind gpu.Enum, source string) string {
		if kind == gpu.FragmentShader {
			return "0:4(1): error: syntax error"
		}
		return ""
	}
	s := NewShaders(api, colourProgram(t), nil)

	err := s.Create()
	var shaderErr *ShaderError
	require.True(t, errors.As(err, &shaderErr))
	assert.Equal(t, "fragment", shaderErr.Stage)
	assert.Equal(t, "fragment shader failed to compile: 0:4(1): error: syntax error", err.Error())
	assert.Zero(t, api.CurrentProgram)

	require.NoError(t, s.Destroy())
	assert.Zero(t, api.LiveShaders())
	assert.Zero(t, api.LivePrograms())
}

func TestShadersLinkError(t *testing.T) {
	api := gpufake.New()
	api.LinkError = "error: out_Color not written"
	s := NewShaders(api, colourProgram(t), nil)

	err := s.Create()
	var shaderErr *ShaderError
	require.True(t, errors.As(err, &shaderErr))
	assert.Equal(t, "program", shaderErr.Stage)
	assert.Equal(t, "failed to link program: error: out_Color not written", err.Error())

	require.NoError(t, s.Destroy())
	assert.Zero(t, api.LiveShaders())
	assert.Zero(t, api.LivePrograms())
}

func TestShadersLifecycle(t *testing.T) {
	api := gpufake.New()
	s := NewShaders(api, colourProgram(t), nil)

	assert.ErrorIs(t, s.Destroy(), ErrLifecycle)
	require.NoError(t, s.Create())
	assert.ErrorIs(t, s.Create(), ErrLifecycle)
	require.NoError(t, s.Destroy())
	assert.ErrorIs(t, s.Create(), ErrLifecycle)
}

func TestShadersDestroyOrder(t *testing.T) {
	api := gpufake.New()
	s := NewShaders(api, colourProgram(t), nil)
	require.NoError(t, s.Create())

	// A fresh fake names the vertex shader 1, the fragment shader 2 and the
	// program 3.
	require.Equal(t, uint32(3), s.Program())
	api.Calls = nil

	require.NoError(t, s.Destroy())
	assert.Equal(t, []string{
		"UseProgram(0)",
		"DetachShader(3, 1)",
		"DetachShader(3, 2)",
		"DeleteShader(2)",
		"DeleteShader(1)",
		"DeleteProgram(3)",
	}, api.Calls)
}

func TestManagerTeardownOrder(t *testing.T) {
	api := gpufake.New()
	m := NewManager(api, colourProgram(t), nil)

	require.NoError(t, m.Setup())
	assert.Less(t, api.CallIndex("CreateProgram() = 3"), api.CallIndex("GenVertexArray() = 4"))

	api.Calls = nil
	require.NoError(t, m.Teardown())

	useNone := api.CallIndex("UseProgram(0)")
	disable := api.CallIndex("DisableVertexAttribArray(1)")
	require.GreaterOrEqual(t, useNone, 0)
	require.GreaterOrEqual(t, disable, 0)
	assert.Less(t, useNone, disable, "shaders must be destroyed before buffers")

	calls := len(api.Calls)
	require.NoError(t, m.Teardown())
	assert.Len(t, api.Calls, calls, "second teardown must not touch the GPU")

	assert.Zero(t, api.LiveShaders())
	assert.Zero(t, api.LivePrograms())
	assert.Zero(t, api.LiveBuffers())
	assert.Zero(t, api.LiveVertexArrays())
}

func TestManagerTeardownAfterFailedSetup(t *testing.T) {
	api := gpufake.New()
	api.LinkError = "link failed"
	m := NewManager(api, colourProgram(t), nil)

	require.Error(t, m.Setup())
	assert.Zero(t, api.LiveBuffers(), "buffers must not be created after a shader failure")

	require.NoError(t, m.Teardown())
	assert.Zero(t, api.LiveShaders())
	assert.Zero(t, api.LivePrograms())
}

func itoa(v uint32) string {
	return fmt.Sprint(v)
}
