package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/log"
)

var testTime = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

const testSession = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func ioctlEvent(ts time.Time, req string, result int, reason string) log.Event {
	return log.Event{
		Timestamp: ts,
		SessionID: testSession,
		Direction: log.DirectionOut,
		Layer:     log.LayerDriver,
		Category:  log.CategoryIoctl,
		Device:    "/dev/cec0",
		Ioctl:     &log.IoctlEvent{Request: req, Result: result, Reason: reason},
	}
}

func receivedEvent(ts time.Time, from, to cec.LogicalAddress, opcode uint8, payload ...byte) log.Event {
	msg := cec.NewMsg(from, to)
	msg.SetOpcode(opcode, payload...)
	msg.RxStatus = cec.RxStatusOK
	msg.RxTimestamp = 153001027650
	msg.Sequence = 3
	return log.Event{
		Timestamp: ts,
		SessionID: testSession,
		Direction: log.DirectionIn,
		Layer:     log.LayerMessage,
		Category:  log.CategoryMessage,
		Device:    "/dev/cec0",
		Message:   log.NewMessageEvent(msg),
	}
}

func powerEvent(ts time.Time, oldState, newState string) log.Event {
	return log.Event{
		Timestamp: ts,
		SessionID: testSession,
		Layer:     log.LayerFollower,
		Category:  log.CategoryState,
		Device:    "/dev/cec0",
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityPower,
			OldState: oldState,
			NewState: newState,
			Reason:   "toggle-power-status",
		},
	}
}

// sampleTrace is a short follower session: discovery, two received
// messages (one a poll), a quiet receive and a power toggle.
func sampleTrace() []log.Event {
	poll := cec.NewMsg(cec.LogAddrTV, cec.LogAddrPlayback1)
	poll.RxStatus = cec.RxStatusOK
	pollEvent := log.Event{
		Timestamp: testTime.Add(3 * time.Second),
		SessionID: testSession,
		Direction: log.DirectionIn,
		Layer:     log.LayerMessage,
		Category:  log.CategoryMessage,
		Device:    "/dev/cec0",
		Message:   log.NewMessageEvent(poll),
	}

	return []log.Event{
		ioctlEvent(testTime, "CEC_ADAP_G_CAPS", 0, "Success"),
		ioctlEvent(testTime.Add(time.Second), "CEC_RECEIVE", 0, "Success"),
		receivedEvent(testTime.Add(time.Second), cec.LogAddrTV, cec.LogAddrPlayback1, cec.MsgGiveOSDName),
		ioctlEvent(testTime.Add(2*time.Second), "CEC_RECEIVE", 110, "connection timed out"),
		pollEvent,
		ioctlEvent(testTime.Add(4*time.Second), "CEC_TRANSMIT", 19, "no such device"),
		powerEvent(testTime.Add(5*time.Second), "On", "Standby"),
	}
}
