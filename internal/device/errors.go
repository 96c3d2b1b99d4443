package device

import "errors"

var (
	// ErrNoTubesGenerated is returned when every tube of a request failed.
	ErrNoTubesGenerated = errors.New("no tubes generated")
	// ErrNoSink is returned when regeneration has nowhere to put the mesh.
	ErrNoSink = errors.New("no mesh sink")
)

// Failure is a geometry failure with a short message fit for users. The
// wrapped error keeps the full diagnostic chain for logs.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(message string, err error) error {
	return &Failure{Message: message, Err: err}
}
