package glyphrun

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphrun/text"
)

// ErrPipelineClosed is returned by a Pipeline after Close.
var ErrPipelineClosed = errors.New("glyphrun: pipeline closed")

// RunError reports an unrecoverable failure of one run. Layout returns it
// together with the LayoutResult assembled up to the failing run.
type RunError struct {
	// Index is the run's position in logical order.
	Index int

	// Run is the run that failed.
	Run text.Run

	Err error
}

func (e *RunError) Error() string {
	font := ""
	if e.Run.Font != nil {
		font = e.Run.Font.Name()
	}
	return fmt.Sprintf("glyphrun: run %d (%q, font %q): %v", e.Index, e.Run.Text, font, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
