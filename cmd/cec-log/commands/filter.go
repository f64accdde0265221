package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/cec-go/cec-go/pkg/log"
)

// FilterResult describes a finished filter run.
type FilterResult struct {
	// Kept is the number of events written to the output capture.
	Kept int
	// Skipped is the number of events the selection rejected.
	Skipped int
}

// RunFilter copies the selected events of the trace at path into a new
// capture at output. Output is appended to when it already exists, so
// several selections can be collected into one file.
func RunFilter(path string, sel Selection, output string, warn io.Writer) (FilterResult, error) {
	reader, err := openTrace(path, sel)
	if err != nil {
		return FilterResult{}, err
	}
	defer reader.Close()

	capture, err := log.NewFileLogger(output)
	if err != nil {
		return FilterResult{}, fmt.Errorf("failed to create output trace: %w", err)
	}

	err = each(reader, warn, func(event log.Event) error {
		capture.Log(event)
		return nil
	})
	closeErr := capture.Close()
	if err == nil {
		if werr := errors.Join(capture.Err(), closeErr); werr != nil {
			err = fmt.Errorf("failed to write output trace: %w", werr)
		}
	}

	written, _ := capture.Counts()
	return FilterResult{Kept: int(written), Skipped: reader.Skipped()}, err
}
