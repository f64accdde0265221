package log

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Captures are encoded with canonical key order, definite lengths and
// nanosecond RFC3339 timestamps. Decoding also accepts indefinite lengths
// and duplicate keys so hand-edited or foreign captures still load.
var (
	encMode = mustMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode())

	decMode = mustMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode())
)

func mustMode[M any](mode M, err error) M {
	if err != nil {
		panic("log: invalid CBOR options: " + err.Error())
	}
	return mode
}

// EncodeEvent encodes one event as a self-contained CBOR item.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes a single CBOR item into an Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewDecoder returns a decoder for a stream of events read from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
