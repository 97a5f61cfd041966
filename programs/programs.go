package programs

import (
	_ "embed"
	"errors"
	"fmt"
)

var ErrUnknownProgram = errors.New("unknown program")

// Colour is the name of the passthrough program used by chapter 3.
const Colour = "colour"

//go:embed shaders/colour.vert
var colourVertexShader string

//go:embed shaders/colour.frag
var colourFragmentShader string

func init() {
	mustRegister(Program{
		Name:           Colour,
		VertexShader:   colourVertexShader,
		FragmentShader: colourFragmentShader,
	})
}

func mustRegister(p Program) {
	if err := NewProgram(p); err != nil {
		panic(err)
	}
}

// Lookup finds a registered program by name.
func Lookup(name string) (Program, error) {
	for _, p := range programs {
		if p.Name == name {
			return p, nil
		}
	}
	return Program{}, fmt.Errorf("%w %q", ErrUnknownProgram, name)
}

func NewProgram(p Program) error {
	if p.Name == "" {
		return errors.New("program has no name")
	}
	if _, err := Lookup(p.Name); err == nil {
		return fmt.Errorf("program %q already registered", p.Name)
	}
	programs = append(programs, p)
	return nil
}

var programs []Program

// Program is a vertex/fragment source pair linked into one GPU program.
type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
}
