package pkg

import (
	"fmt"
	"io"
	"slices"

	"go.uber.org/multierr"
)

// CombinedWriter fans each write out to all of its writers, so the logs keep
// reaching stdout when the rotated log file can't be written, and vice versa.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: slices.DeleteFunc(slices.Clone(writers), func(w io.Writer) bool {
			return w == nil
		}),
	}
}

func (cw *CombinedWriter) Len() int {
	return len(cw.writers)
}

// Write reports len(p) when at least one writer took the whole message.
// Errors of the failing writers are combined and returned either way.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		err       error
		delivered bool
	)
	for i, w := range cw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, fmt.Errorf("writer %d: %w", i, werr))
			continue
		}
		delivered = true
	}

	if !delivered {
		return 0, err
	}
	return len(p), err
}
