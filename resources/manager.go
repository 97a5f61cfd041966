package resources

import (
	"errors"
	"log/slog"

	"github.com/stewi1014/glchapters/gpu"
	"github.com/stewi1014/glchapters/programs"
)

// Manager acquires the shader program and then the vertex buffers, and
// releases them in the same order: shaders before buffers.
type Manager struct {
	Shaders *Shaders
	Buffers *Buffers

	tornDown bool
}

func NewManager(api gpu.API, source programs.Program, logger *slog.Logger) *Manager {
	return &Manager{
		Shaders: NewShaders(api, source, logger),
		Buffers: NewBuffers(api, logger),
	}
}

// Setup creates the shaders, then the buffers. On error the caller should
// still call Teardown to release whatever was acquired.
func (m *Manager) Setup() error {
	if err := m.Shaders.Create(); err != nil {
		return err
	}
	return m.Buffers.Create()
}

// Teardown destroys the shaders, then the buffers. Only the first call does
// any work; later calls return nil.
func (m *Manager) Teardown() error {
	if m.tornDown {
		return nil
	}
	m.tornDown = true

	var errs []error
	if m.Shaders.state == created {
		errs = append(errs, m.Shaders.Destroy())
	}
	if m.Buffers.state == created {
		errs = append(errs, m.Buffers.Destroy())
	}
	return errors.Join(errs...)
}
