// Package log records protocol traces of the CEC follower.
//
// A trace is a machine-readable record of the adapter boundary (every
// ioctl with its result), of the CEC messages that crossed it and of the
// follower's own state changes and failures. It is separate from
// operational logging through slog, and is read back with the cec-log tool.
//
//	capture := log.NewRotatingFileLogger("/var/log/cec/follower.clog", 16, 3)
//	defer capture.Close()
//	cfg.ProtocolLogger = log.Tee(capture, log.NewSlogAdapter(slog.Default()))
//
// Captures are a stream of CBOR items, one per event, with integer map
// keys. Each item stands alone, so captures can be concatenated, rotated
// or cut at an event boundary and still be read with NewReader.
package log
