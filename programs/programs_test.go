package programs

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColourProgramRegistered(t *testing.T) {
	p, err := Lookup(Colour)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.VertexShader, "#version 400"))
	assert.Contains(t, p.VertexShader, "layout(location=0) in vec4 in_Position;")
	assert.Contains(t, p.VertexShader, "layout(location=1) in vec4 in_Color;")
	assert.Contains(t, p.FragmentShader, "out vec4 out_Color;")
	assert.Equal(t, Colour, p.Name)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("mandelbrot")
	assert.True(t, errors.Is(err, ErrUnknownProgram))
}

func TestNewProgramRejectsDuplicates(t *testing.T) {
	assert.Error(t, NewProgram(Program{Name: Colour}))
	assert.Error(t, NewProgram(Program{}))
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	assert.PanicsWithError(t, `program "colour" already registered`, func() {
		mustRegister(Program{Name: Colour})
	})
}
