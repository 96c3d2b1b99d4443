package device

import (
	"fmt"
	"sync"

	"github.com/evarsim/core/internal/centerline"
	"github.com/evarsim/core/internal/models"
)

// Sink receives finished meshes. Slot 0 is the primary output and higher
// slots are numbered auxiliary outputs.
type Sink interface {
	Put(slot int, mesh *models.TubeMesh) error
}

// Regenerate rebuilds only tube active of set and hands it to sink under the
// same slot. Other slots are left untouched.
func Regenerate(src models.Source, set *models.TubeSet, active int, sink Sink, opts Options) error {
	if sink == nil {
		return ErrNoSink
	}
	if set == nil {
		return fmt.Errorf("%w: no tube set", models.ErrInvalidParameter)
	}
	params, err := set.At(active)
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("tube %d: %w", active, err)
	}

	path, err := centerline.Extract(src, params.BranchIndex())
	if err != nil {
		return fail("no valid centerline source", err)
	}
	mesh, err := BuildDevice(path, params, opts)
	if err != nil {
		return err
	}
	if err := sink.Put(active, mesh); err != nil {
		return fmt.Errorf("store tube %d: %w", active, err)
	}
	return nil
}

// MemorySink keeps the latest mesh per slot. It is safe for concurrent use.
type MemorySink struct {
	mu     sync.RWMutex
	meshes map[int]*models.TubeMesh
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{meshes: make(map[int]*models.TubeMesh)}
}

// Put replaces the mesh stored at slot.
func (s *MemorySink) Put(slot int, mesh *models.TubeMesh) error {
	if slot < 0 {
		return fmt.Errorf("%w: slot %d", models.ErrTubeIndexOutOfRange, slot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes[slot] = mesh
	return nil
}

// Get returns the mesh at slot, if any.
func (s *MemorySink) Get(slot int) (*models.TubeMesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meshes[slot]
	return m, ok
}

// Len returns the number of filled slots.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meshes)
}
