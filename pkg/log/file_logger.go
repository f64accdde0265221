package log

import (
	"bufio"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// traceBufferSize bounds how much encoded trace is held before it reaches
// the file. A follower polling CEC_RECEIVE logs an ioctl event per poll, so
// writes are batched.
const traceBufferSize = 16 * 1024

// FileLogger writes trace events to a CBOR stream file. Events are
// buffered but never split across underlying writes, so a rotated capture
// always ends on an event boundary. It is safe for concurrent use.
type FileLogger struct {
	mu      sync.Mutex
	out     io.WriteCloser
	buf     *bufio.Writer
	pending uint64
	written uint64
	dropped uint64
	err     error
	closed  bool
}

// NewFileLogger opens path for appending, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return newFileLogger(f), nil
}

// NewRotatingFileLogger writes to path, starting a new file once the
// current one would exceed maxSizeMB. At most maxBackups rotated captures
// are kept; 0 keeps all of them. Every rotated file is a complete stream
// readable with NewReader.
func NewRotatingFileLogger(path string, maxSizeMB, maxBackups int) *FileLogger {
	return newFileLogger(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	})
}

func newFileLogger(w io.WriteCloser) *FileLogger {
	return &FileLogger{
		out: w,
		buf: bufio.NewWriterSize(w, traceBufferSize),
	}
}

// Log encodes an event into the trace. Errors and state changes are
// flushed at once so they survive a crash of the follower; other events
// wait for the buffer to fill, Flush or Close.
func (l *FileLogger) Log(event Event) {
	data, err := EncodeEvent(event)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err != nil {
		l.dropped++
		l.fail(err)
		return
	}
	if l.buf.Available() < len(data) && l.buf.Buffered() > 0 {
		l.flush()
	}
	l.pending++
	if _, err := l.buf.Write(data); err != nil {
		l.discard(err)
		return
	}
	if event.Category == CategoryError || event.Category == CategoryState {
		l.flush()
	}
}

func (l *FileLogger) flush() error {
	if err := l.buf.Flush(); err != nil {
		l.discard(err)
		return err
	}
	l.written += l.pending
	l.pending = 0
	return nil
}

// discard drops the buffered events after a failed write. A bufio.Writer
// that saw an error refuses all further writes, so the buffer is reset to
// keep tracing the rest of the session.
func (l *FileLogger) discard(err error) {
	l.dropped += l.pending
	l.pending = 0
	l.buf.Reset(l.out)
	l.fail(err)
}

func (l *FileLogger) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// Flush writes buffered events to the file.
func (l *FileLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	return l.flush()
}

// Counts returns the number of events that reached the file and the
// number lost to encoding or write failures. Events still buffered are in
// neither count.
func (l *FileLogger) Counts() (written, dropped uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written, l.dropped
}

// Err returns the first encoding or write failure, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close flushes and closes the trace file. Subsequent Log calls are
// ignored and further Close calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	flushErr := l.flush()
	if err := l.out.Close(); err != nil {
		return err
	}
	return flushErr
}

var _ Logger = (*FileLogger)(nil)
