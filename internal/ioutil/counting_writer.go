// Package ioutil provides writer helpers used by rendering methods.
package ioutil

import (
	"io"
	"sync"

	"braces.dev/errtrace"
)

// CountingWriter wraps an io.Writer, sums written bytes and remembers the first write error.
// Once an error occurred, all following writes are skipped.
type CountingWriter struct {
	w   io.Writer
	num int
	err error
}

// NewCountingWriter creates a new CountingWriter wrapping the given writer.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// WriteString writes all strings one by one.
func (cw *CountingWriter) WriteString(ss ...string) *CountingWriter {
	for _, s := range ss {
		if cw.err != nil {
			return cw
		}
		n, err := io.WriteString(cw.w, s)
		cw.num += n
		if err != nil {
			cw.err = errtrace.Wrap(err)
		}
	}
	return cw
}

// WriteStringIf writes strings only when cond is true.
func (cw *CountingWriter) WriteStringIf(cond bool, ss ...string) *CountingWriter {
	if !cond {
		return cw
	}
	return cw.WriteString(ss...)
}

// Call executes a RenderTo-style function and tracks bytes written.
func (cw *CountingWriter) Call(fn func(io.Writer) (int, error)) *CountingWriter {
	if cw.err != nil {
		return cw
	}
	n, err := fn(cw.w)
	cw.num += n
	if err != nil {
		cw.err = errtrace.Wrap(err)
	}
	return cw
}

// Result returns the total number of bytes written and the first error encountered.
func (cw *CountingWriter) Result() (num int, err error) {
	return cw.num, errtrace.Wrap(cw.err)
}

var cntWrtPool = &sync.Pool{
	New: func() any { return &CountingWriter{} },
}

func GetCountingWriter(w io.Writer) *CountingWriter {
	cw := cntWrtPool.Get().(*CountingWriter) //nolint:forcetypeassert
	cw.w = w
	return cw
}

func FreeCountingWriter(cw *CountingWriter) {
	cw.w = nil
	cw.num = 0
	cw.err = nil
	cntWrtPool.Put(cw)
}
