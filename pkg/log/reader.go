package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects trace events. Zero-valued criteria match everything; a
// criterion on a message or ioctl field never matches events without that
// payload.
type Filter struct {
	SessionID string
	Device    string

	Direction *Direction
	Layer     *Layer
	Category  *Category

	// Initiator, Destination and Opcode select CEC messages. A poll has no
	// opcode and never matches Opcode.
	Initiator   *uint8
	Destination *uint8
	Opcode      *uint8

	// Request selects adapter calls by kernel request name, e.g. CEC_TRANSMIT.
	Request string

	// Events are kept when TimeStart <= Timestamp < TimeEnd.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

// Matches reports whether event satisfies every criterion of f.
func (f *Filter) Matches(event Event) bool {
	return f.matchesEnvelope(event) && f.matchesMessage(event.Message) && f.matchesIoctl(event.Ioctl)
}

func (f *Filter) matchesEnvelope(event Event) bool {
	switch {
	case f.SessionID != "" && event.SessionID != f.SessionID,
		f.Device != "" && event.Device != f.Device,
		f.Direction != nil && event.Direction != *f.Direction,
		f.Layer != nil && event.Layer != *f.Layer,
		f.Category != nil && event.Category != *f.Category,
		f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart),
		f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd):
		return false
	}
	return true
}

func (f *Filter) matchesMessage(msg *MessageEvent) bool {
	if f.Initiator == nil && f.Destination == nil && f.Opcode == nil {
		return true
	}
	if msg == nil {
		return false
	}
	switch {
	case f.Initiator != nil && msg.Initiator != *f.Initiator,
		f.Destination != nil && msg.Destination != *f.Destination,
		f.Opcode != nil && (msg.Opcode == nil || *msg.Opcode != *f.Opcode):
		return false
	}
	return true
}

func (f *Filter) matchesIoctl(ioc *IoctlEvent) bool {
	return f.Request == "" || (ioc != nil && ioc.Request == f.Request)
}

// StdinPath names standard input in place of a trace file path.
const StdinPath = "-"

// Reader streams trace events from a CBOR-encoded capture.
type Reader struct {
	src       io.ReadCloser
	decoder   *cbor.Decoder
	filter    Filter
	skipped   int
	truncated bool
}

// NewReader creates a Reader that reads all events from the specified trace
// file, or from standard input when path is StdinPath.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that returns only events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	if path == StdinPath {
		return NewStreamReader(io.NopCloser(os.Stdin), filter), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStreamReader(f, filter), nil
}

// NewStreamReader reads events from src, which Close closes.
func NewStreamReader(src io.ReadCloser, filter Filter) *Reader {
	return &Reader{
		src:     src,
		decoder: NewDecoder(src),
		filter:  filter,
	}
}

// Next returns the next event that matches the filter, or io.EOF at the end
// of the capture. A capture cut off inside its last event, as left by a
// follower that was killed while writing, also ends with io.EOF and sets
// Truncated.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		err := r.decoder.Decode(&event)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			if errors.Is(err, io.ErrUnexpectedEOF) || r.leftover() {
				r.truncated = true
			}
			return Event{}, io.EOF
		default:
			return Event{}, err
		}

		if r.filter.Matches(event) {
			return event, nil
		}
		r.skipped++
	}
}

// leftover reports whether undecoded bytes remain after the last event.
func (r *Reader) leftover() bool {
	n, _ := io.Copy(io.Discard, r.decoder.Buffered())
	return n > 0
}

// Skipped returns the number of events the filter has rejected so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Truncated reports whether the capture ended inside an event.
func (r *Reader) Truncated() bool {
	return r.truncated
}

// Close releases the underlying source.
func (r *Reader) Close() error {
	return r.src.Close()
}
