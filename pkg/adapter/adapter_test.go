package adapter

import (
	"bytes"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/log"
)

// fakeDriver records requests and lets each test script the result.
type fakeDriver struct {
	calls  []Request
	handle func(req Request, arg any) error
	closed bool
}

func (f *fakeDriver) Ioctl(req Request, arg any) error {
	f.calls = append(f.calls, req)
	if f.handle != nil {
		return f.handle(req, arg)
	}
	return nil
}

func (f *fakeDriver) Close() error {
	f.closed = true
	return nil
}

type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) { c.events = append(c.events, e) }

func TestCallForwardsExactlyOnce(t *testing.T) {
	drv := &fakeDriver{handle: func(Request, any) error { return syscall.EBUSY }}
	a := New(drv, Config{})

	err := a.Call(GetCaps, &cec.Caps{})
	require.Error(t, err)
	assert.Equal(t, []Request{GetCaps}, drv.calls, "failed calls must not be retried")
}

func TestCallReturnsErrno(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"success", nil, 0},
		{"busy", syscall.EBUSY, int(syscall.EBUSY)},
		{"no device", syscall.ENODEV, int(syscall.ENODEV)},
		{"wrapped errno", errors.Join(errors.New("ctx"), syscall.EINVAL), int(syscall.EINVAL)},
		{"non-errno", errors.New("boom"), int(syscall.EIO)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := &fakeDriver{handle: func(Request, any) error { return tt.err }}
			a := New(drv, Config{})

			err := a.Call(GetPhysAddr, new(cec.PhysicalAddress))
			assert.Equal(t, tt.status, Status(err))
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestCallUpdatesTrackerOnTransmit(t *testing.T) {
	drv := &fakeDriver{handle: func(req Request, arg any) error {
		msg := arg.(*cec.Msg)
		msg.TxStatus = cec.TxStatusOK
		msg.TxTimestamp = 1000
		return nil
	}}
	a := New(drv, Config{})

	msg := cec.NewMsg(cec.LogAddrPlayback1, cec.LogAddrTV)
	msg.SetOpcode(cec.MsgGiveDevicePowerStatus)
	require.NoError(t, a.Transmit(msg))

	ts, ok := a.Tracker().LastSeen(cec.LogAddrTV)
	assert.True(t, ok)
	assert.Equal(t, uint64(1000), ts)
}

func TestCallUpdatesTrackerOnReceive(t *testing.T) {
	drv := &fakeDriver{handle: func(req Request, arg any) error {
		msg := arg.(*cec.Msg)
		msg.Msg[0] = 0x54 // audio system -> playback 1
		msg.Msg[1] = cec.MsgGiveOSDName
		msg.Len = 2
		msg.RxStatus = cec.RxStatusOK
		msg.RxTimestamp = 2000
		return nil
	}}
	a := New(drv, Config{})

	var msg cec.Msg
	require.NoError(t, a.Receive(&msg))

	ts, ok := a.Tracker().LastSeen(cec.LogAddrAudioSystem)
	assert.True(t, ok)
	assert.Equal(t, uint64(2000), ts)
}

func TestCallSkipsTrackerOnFailure(t *testing.T) {
	drv := &fakeDriver{handle: func(req Request, arg any) error {
		msg := arg.(*cec.Msg)
		msg.TxStatus = cec.TxStatusOK
		msg.TxTimestamp = 1000
		return syscall.EINVAL
	}}
	a := New(drv, Config{})

	msg := cec.NewMsg(cec.LogAddrPlayback1, cec.LogAddrTV)
	msg.SetOpcode(cec.MsgGiveDevicePowerStatus)
	require.Error(t, a.Transmit(msg))

	assert.Equal(t, [cec.NumLogicalAddresses]uint64{}, a.Tracker().Snapshot())
}

func TestCallIgnoresNonMessageRequests(t *testing.T) {
	drv := &fakeDriver{}
	a := New(drv, Config{})

	// A message block passed to an unrelated request is not tracked.
	msg := cec.NewMsg(cec.LogAddrPlayback1, cec.LogAddrTV)
	msg.TxStatus = cec.TxStatusOK
	msg.TxTimestamp = 5
	require.NoError(t, a.Call(GetMode, msg))

	assert.Equal(t, [cec.NumLogicalAddresses]uint64{}, a.Tracker().Snapshot())
}

func TestCallTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	drv := &fakeDriver{handle: func(req Request, arg any) error {
		if req == GetConnectorInfo {
			return syscall.ENOTTY
		}
		return nil
	}}
	a := New(drv, Config{Trace: true, Logger: logger})

	_, _ = a.Caps()
	_, _ = a.ConnectorInfo()

	out := buf.String()
	assert.Contains(t, out, "CEC_ADAP_G_CAPS returned 0 (Success)")
	assert.Contains(t, out, "CEC_ADAP_G_CONNECTOR_INFO returned "+strconv.Itoa(int(syscall.ENOTTY))+" ("+syscall.ENOTTY.Error()+")")
	assert.Equal(t, 2, strings.Count(out, "returned"))
}

func TestCallTraceIgnoresLoggerLevel(t *testing.T) {
	var logBuf, traceBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelError}))
	tracer := slog.New(slog.NewTextHandler(&traceBuf, nil))

	a := New(&fakeDriver{}, Config{Trace: true, Logger: logger, TraceLogger: tracer})
	_, _ = a.Caps()

	assert.Contains(t, traceBuf.String(), "CEC_ADAP_G_CAPS returned 0 (Success)")
	assert.Empty(t, logBuf.String())
}

func TestCallWithoutTraceIsSilent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	a := New(&fakeDriver{}, Config{Logger: logger})
	_, _ = a.Caps()

	assert.Empty(t, buf.String())
}

func TestCallEmitsProtocolEvents(t *testing.T) {
	capture := &captureLogger{}
	drv := &fakeDriver{handle: func(req Request, arg any) error {
		if msg, ok := arg.(*cec.Msg); ok {
			msg.TxStatus = cec.TxStatusOK
		}
		return nil
	}}
	a := New(drv, Config{Device: "/dev/cec3", ProtocolLogger: capture, SessionID: "sess"})

	_, err := a.Caps()
	require.NoError(t, err)

	msg := cec.NewMsg(cec.LogAddrPlayback1, cec.LogAddrBroadcast)
	msg.SetOpcode(cec.MsgReportPhysicalAddr, 0x10, 0x00, 0x04)
	require.NoError(t, a.Transmit(msg))

	require.Len(t, capture.events, 3)

	assert.Equal(t, log.CategoryIoctl, capture.events[0].Category)
	assert.Equal(t, "CEC_ADAP_G_CAPS", capture.events[0].Ioctl.Request)
	assert.Equal(t, "/dev/cec3", capture.events[0].Device)
	assert.Equal(t, "sess", capture.events[0].SessionID)

	assert.Equal(t, "CEC_TRANSMIT", capture.events[1].Ioctl.Request)

	ev := capture.events[2]
	assert.Equal(t, log.CategoryMessage, ev.Category)
	assert.Equal(t, log.DirectionOut, ev.Direction)
	require.NotNil(t, ev.Message)
	assert.Equal(t, "REPORT_PHYSICAL_ADDR", ev.Message.OpcodeName)
}

func TestNewGeneratesSessionID(t *testing.T) {
	a := New(&fakeDriver{}, Config{})
	b := New(&fakeDriver{}, Config{})

	assert.Len(t, a.SessionID(), 36)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestTypedHelpers(t *testing.T) {
	drv := &fakeDriver{handle: func(req Request, arg any) error {
		switch p := arg.(type) {
		case *cec.Caps:
			copy(p.Driver[:], "vivid")
			p.Capabilities = cec.CapPhysAddr | cec.CapLogAddrs
		case *cec.PhysicalAddress:
			*p = 0x1000
		case *cec.LogAddrs:
			p.NumLogAddrs = 1
			p.LogAddr[0] = 4
		case *uint32:
			if req == GetMode {
				*p = cec.ModeInitiator | cec.ModeFollower
			}
		}
		return nil
	}}
	a := New(drv, Config{})

	caps, err := a.Caps()
	require.NoError(t, err)
	assert.Equal(t, "vivid", caps.DriverName())

	pa, err := a.PhysAddr()
	require.NoError(t, err)
	assert.Equal(t, cec.PhysicalAddress(0x1000), pa)

	laddrs, err := a.LogAddrs()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), laddrs.NumLogAddrs)

	mode, err := a.Mode()
	require.NoError(t, err)
	assert.Equal(t, cec.ModeInitiator|cec.ModeFollower, mode)

	require.NoError(t, a.SetMode(cec.ModeFollower))

	assert.Equal(t, []Request{GetCaps, GetPhysAddr, GetLogAddrs, GetMode, SetMode}, drv.calls)

	require.NoError(t, a.Close())
	assert.True(t, drv.closed)
}

func TestPhysAddrDefaultsToInvalidOnError(t *testing.T) {
	a := New(&fakeDriver{handle: func(Request, any) error { return syscall.ENOTTY }}, Config{})

	pa, err := a.PhysAddr()
	assert.Error(t, err)
	assert.Equal(t, cec.PhysAddrInvalid, pa)
}

func TestFindIsUnsupported(t *testing.T) {
	_, err := Find("vivid", "vivid-000-vid-cap0")
	assert.ErrorIs(t, err, ErrEnumerationUnsupported)
}
