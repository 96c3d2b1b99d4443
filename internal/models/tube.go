package models

import (
	"errors"
	"fmt"
	"math"
)

// Allowed parameter ranges.
const (
	MinRadius     = 0.1
	MaxRadius     = 50.0
	MinLength     = 0.1
	MaxLength     = 200.0
	MinResolution = 6
	MaxResolution = 64
	MinTubes      = 1
	MaxTubes      = 10
)

// Defaults for a freshly created tube slot.
const (
	DefaultRadius          = 2.0
	DefaultLength          = 10.0
	DefaultResolution      = 16
	DefaultSmoothingFactor = 0.3
)

// TubeParameters controls the placement and shape of one tube.
type TubeParameters struct {
	Radius          float64 `json:"radius"`
	Length          float64 `json:"length"`
	Position        float64 `json:"position"`
	Resolution      int     `json:"resolution"`
	SmoothingFactor float64 `json:"smoothing_factor"`
	Branch          *int    `json:"branch,omitempty"`
}

// DefaultTubeParameters returns the parameters given to a new tube slot.
// Successive slots are spread along the centerline and cycle through the
// available branches.
func DefaultTubeParameters(slot, branchCount int) TubeParameters {
	p := TubeParameters{
		Radius:          DefaultRadius,
		Length:          DefaultLength,
		Position:        math.Min(1.0, 0.1+0.2*float64(slot)),
		Resolution:      DefaultResolution,
		SmoothingFactor: DefaultSmoothingFactor,
	}
	if branchCount > 0 {
		b := slot % branchCount
		p.Branch = &b
	}
	return p
}

// Validate checks every field against its allowed range and reports all
// violations at once.
func (p TubeParameters) Validate() error {
	var errs []error
	if err := checkRange("radius", p.Radius, MinRadius, MaxRadius); err != nil {
		errs = append(errs, err)
	}
	if err := checkRange("length", p.Length, MinLength, MaxLength); err != nil {
		errs = append(errs, err)
	}
	if err := checkRange("position", p.Position, 0, 1); err != nil {
		errs = append(errs, err)
	}
	if p.Resolution < MinResolution || p.Resolution > MaxResolution {
		errs = append(errs, fmt.Errorf("%w: resolution %d outside [%d, %d]",
			ErrInvalidParameter, p.Resolution, MinResolution, MaxResolution))
	}
	if err := checkRange("smoothing_factor", p.SmoothingFactor, 0, 1); err != nil {
		errs = append(errs, err)
	}
	if p.Branch != nil && *p.Branch < 0 {
		errs = append(errs, fmt.Errorf("%w: branch %d is negative", ErrInvalidParameter, *p.Branch))
	}
	return errors.Join(errs...)
}

// BranchIndex returns the selected branch, or 0 when none was chosen.
func (p TubeParameters) BranchIndex() int {
	if p.Branch == nil {
		return 0
	}
	return *p.Branch
}

func checkRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalidParameter, name, v, lo, hi)
	}
	return nil
}

// TubeSet is the ordered collection of per-tube parameters, indexed 0..N-1.
type TubeSet struct {
	tubes []TubeParameters
}

// NewTubeSet creates a set of count tubes with default parameters.
func NewTubeSet(count, branchCount int) (*TubeSet, error) {
	s := &TubeSet{}
	if err := s.Resize(count, branchCount); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of tubes.
func (s *TubeSet) Len() int {
	return len(s.tubes)
}

// Resize grows the set by appending default parameters, or shrinks it by
// discarding trailing entries. Existing entries are kept untouched.
func (s *TubeSet) Resize(count, branchCount int) error {
	if count < MinTubes || count > MaxTubes {
		return fmt.Errorf("%w: tube count %d outside [%d, %d]", ErrInvalidParameter, count, MinTubes, MaxTubes)
	}
	if count < len(s.tubes) {
		s.tubes = s.tubes[:count:count]
		return nil
	}
	for slot := len(s.tubes); slot < count; slot++ {
		s.tubes = append(s.tubes, DefaultTubeParameters(slot, branchCount))
	}
	return nil
}

// At returns the parameters of tube i.
func (s *TubeSet) At(i int) (TubeParameters, error) {
	if i < 0 || i >= len(s.tubes) {
		return TubeParameters{}, fmt.Errorf("%w: %d (have %d)", ErrTubeIndexOutOfRange, i, len(s.tubes))
	}
	return s.tubes[i], nil
}

// Set validates p and stores it as the parameters of tube i.
func (s *TubeSet) Set(i int, p TubeParameters) error {
	if i < 0 || i >= len(s.tubes) {
		return fmt.Errorf("%w: %d (have %d)", ErrTubeIndexOutOfRange, i, len(s.tubes))
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("tube %d: %w", i, err)
	}
	s.tubes[i] = p
	return nil
}

// All returns a copy of every tube's parameters in slot order.
func (s *TubeSet) All() []TubeParameters {
	out := make([]TubeParameters, len(s.tubes))
	copy(out, s.tubes)
	return out
}

// PlacementMode selects how several tubes along one centerline are laid out.
type PlacementMode string

const (
	// ModeMerged centres a span on the base position and returns one combined mesh.
	ModeMerged PlacementMode = "merged"
	// ModeSeparate uses a fixed spread and keeps every tube as its own mesh.
	ModeSeparate PlacementMode = "separate"
)

// Valid reports whether m is a known mode.
func (m PlacementMode) Valid() bool {
	return m == ModeMerged || m == ModeSeparate
}

// Placement describes count identical tubes laid out along one centerline.
type Placement struct {
	Radius          float64       `json:"radius"`
	Length          float64       `json:"length"`
	BasePosition    float64       `json:"base_position"`
	Count           int           `json:"count"`
	Resolution      int           `json:"resolution"`
	SmoothingFactor float64       `json:"smoothing_factor"`
	Mode            PlacementMode `json:"mode"`
}

// Validate checks the placement fields against the tube parameter ranges.
func (p Placement) Validate() error {
	errs := []error{
		TubeParameters{
			Radius:          p.Radius,
			Length:          p.Length,
			Position:        p.BasePosition,
			Resolution:      p.Resolution,
			SmoothingFactor: p.SmoothingFactor,
		}.Validate(),
	}
	if p.Count < MinTubes || p.Count > MaxTubes {
		errs = append(errs, fmt.Errorf("%w: tube count %d outside [%d, %d]",
			ErrInvalidParameter, p.Count, MinTubes, MaxTubes))
	}
	if !p.Mode.Valid() {
		errs = append(errs, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, p.Mode))
	}
	return errors.Join(errs...)
}
