package resources

import (
	"fmt"
	"log/slog"

	"github.com/stewi1014/glchapters/gpu"
	"github.com/stewi1014/glchapters/programs"
)

// ShaderError carries the driver's info log for a failed compile or link.
type ShaderError struct {
	Stage string
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == "program" {
		return fmt.Sprintf("failed to link program: %v", e.Log)
	}
	return fmt.Sprintf("%v shader failed to compile: %v", e.Stage, e.Log)
}

// Shaders compiles a program's vertex and fragment stage, links them and
// makes the result the current program.
type Shaders struct {
	api      gpu.API
	logger   *slog.Logger
	source   programs.Program
	state    state
	vertex   uint32
	fragment uint32
	program  uint32
}

func NewShaders(api gpu.API, source programs.Program, logger *slog.Logger) *Shaders {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shaders{
		api:    api,
		logger: logger,
		source: source,
	}
}

// Create builds and activates the program.
//
// If Create fails, the handles it acquired are kept so Destroy can release them.
func (s *Shaders) Create() error {
	if s.state != uncreated {
		return fmt.Errorf("create shaders while %v: %w", s.state, ErrLifecycle)
	}
	s.state = created
	discardStale(s.api, s.logger, "create the shaders")

	var err error
	s.vertex, err = s.compile(gpu.VertexShader, "vertex", s.source.VertexShader)
	if err != nil {
		return err
	}

	s.fragment, err = s.compile(gpu.FragmentShader, "fragment", s.source.FragmentShader)
	if err != nil {
		return err
	}

	s.program = s.api.CreateProgram()
	s.api.AttachShader(s.program, s.vertex)
	s.api.AttachShader(s.program, s.fragment)
	s.api.LinkProgram(s.program)

	if s.api.GetProgramiv(s.program, gpu.LinkStatus) == int32(gpu.False) {
		return &ShaderError{Stage: "program", Log: s.api.GetProgramInfoLog(s.program)}
	}

	s.api.UseProgram(s.program)

	if err := gpu.Check(s.api, "create the shaders"); err != nil {
		return err
	}

	s.logger.Debug("shaders created",
		"name", s.source.Name,
		"program", s.program,
		"vertex", s.vertex,
		"fragment", s.fragment,
	)
	return nil
}

func (s *Shaders) compile(kind gpu.Enum, stage, source string) (uint32, error) {
	shader := s.api.CreateShader(kind)
	s.api.ShaderSource(shader, source)
	s.api.CompileShader(shader)

	if s.api.GetShaderiv(shader, gpu.CompileStatus) == int32(gpu.False) {
		return shader, &ShaderError{Stage: stage, Log: s.api.GetShaderInfoLog(shader)}
	}
	return shader, nil
}

// Destroy clears the current program, then detaches and deletes the shader
// objects and the program.
func (s *Shaders) Destroy() error {
	if s.state != created {
		return fmt.Errorf("destroy shaders while %v: %w", s.state, ErrLifecycle)
	}
	s.state = destroyed
	discardStale(s.api, s.logger, "destroy the shaders")

	s.api.UseProgram(0)

	if s.program != 0 {
		s.api.DetachShader(s.program, s.vertex)
		s.api.DetachShader(s.program, s.fragment)
	}

	if s.fragment != 0 {
		s.api.DeleteShader(s.fragment)
	}
	if s.vertex != 0 {
		s.api.DeleteShader(s.vertex)
	}
	if s.program != 0 {
		s.api.DeleteProgram(s.program)
	}

	s.program, s.vertex, s.fragment = 0, 0, 0

	if err := gpu.Check(s.api, "destroy the shaders"); err != nil {
		return err
	}
	s.logger.Debug("shaders destroyed", "name", s.source.Name)
	return nil
}

// Program returns the linked program name, or 0 before Create and after Destroy.
func (s *Shaders) Program() uint32 {
	return s.program
}
