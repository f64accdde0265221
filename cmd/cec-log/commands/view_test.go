package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/log"
)

func TestFormatIoctlEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, ioctlEvent(testTime, "CEC_TRANSMIT", 19, "no such device"))
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[session:1b4e28ba]",
		"OUT DRIVER CEC_TRANSMIT",
		"  Result: 19 (no such device)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatMessageEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, receivedEvent(testTime, cec.LogAddrTV, cec.LogAddrPlayback1, cec.MsgReportPowerStatus, 0x01))
	output := buf.String()

	for _, want := range []string{
		"IN  MESSAGE REPORT_POWER_STATUS",
		"  From: TV (0) To: Playback Device 1 (4)",
		"  Opcode: 0x90",
		"  Data: 04 90 01",
		"  Sequence: 3",
		"  Rx Status: 0x01 (OK)",
		"  Rx Timestamp: 153.001027650s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Tx Status") {
		t.Errorf("unexpected Tx Status for a received message:\n%s", output)
	}
}

func TestFormatBroadcastAndPoll(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, receivedEvent(testTime, cec.LogAddrTV, cec.LogAddrBroadcast, cec.MsgStandby))
	if !strings.Contains(buf.String(), "To: all (15)") {
		t.Errorf("expected broadcast destination, got:\n%s", buf.String())
	}

	buf.Reset()
	formatEvent(&buf, sampleTrace()[4])
	output := buf.String()
	if !strings.Contains(output, "MESSAGE POLL") {
		t.Errorf("expected POLL label, got:\n%s", output)
	}
	if strings.Contains(output, "Opcode:") {
		t.Errorf("poll has no opcode line, got:\n%s", output)
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, powerEvent(testTime, "On", "Standby"))
	output := buf.String()

	for _, want := range []string{
		"FOLLOWER State",
		"  Entity: POWER",
		"  On -> Standby",
		"  Reason: toggle-power-status",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatErrorEvent(t *testing.T) {
	code := 19
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{
		Timestamp: testTime,
		SessionID: "short",
		Layer:     log.LayerDriver,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerDriver,
			Message: "adapter disappeared",
			Code:    &code,
			Context: "receive",
		},
	})
	output := buf.String()

	for _, want := range []string{
		"[session:short]",
		"DRIVER Error",
		"  Message: adapter disappeared",
		"  Code: 19",
		"  Context: receive",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestTxStatusString(t *testing.T) {
	got := txStatusString(cec.TxStatusNack | cec.TxStatusMaxRetries)
	if got != "Not Acknowledged, Max Retries" {
		t.Errorf("txStatusString = %q", got)
	}
	if got := rxStatusString(cec.RxStatusOK | cec.RxStatusFeatureAbort); got != "OK, Feature Abort" {
		t.Errorf("rxStatusString = %q", got)
	}
}

func TestRunViewFiltered(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())

	var buf bytes.Buffer
	if err := RunView(path, Selection{Layer: "message"}, &buf, nil); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	output := buf.String()

	if n := strings.Count(output, "[session:"); n != 2 {
		t.Errorf("expected 2 message events, got %d:\n%s", n, output)
	}
	if strings.Contains(output, "CEC_RECEIVE") {
		t.Errorf("driver events should be filtered out:\n%s", output)
	}
}

func TestRunViewByInitiator(t *testing.T) {
	events := []log.Event{
		receivedEvent(testTime, cec.LogAddrTV, cec.LogAddrPlayback1, cec.MsgGiveOSDName),
		receivedEvent(testTime, cec.LogAddrAudioSystem, cec.LogAddrPlayback1, cec.MsgGiveOSDName),
		powerEvent(testTime, "On", "Standby"),
	}
	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunView(path, Selection{Initiator: "5"}, &buf, nil); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	output := buf.String()

	if n := strings.Count(output, "[session:"); n != 1 {
		t.Errorf("expected 1 event, got %d:\n%s", n, output)
	}
	if !strings.Contains(output, "From: Audio System (5)") {
		t.Errorf("expected the audio system message:\n%s", output)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	if err := RunView("/nonexistent/trace.clog", Selection{}, &bytes.Buffer{}, nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunViewInvalidSelection(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())
	err := RunView(path, Selection{Layer: "wire"}, &bytes.Buffer{}, nil)
	if err == nil || !strings.Contains(err.Error(), "invalid layer") {
		t.Errorf("RunView error = %v, want invalid layer", err)
	}
}

func TestRunViewWarnsOnTruncatedTrace(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0644); err != nil {
		t.Fatalf("truncate trace: %v", err)
	}

	var out, warn bytes.Buffer
	if err := RunView(path, Selection{}, &out, &warn); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if n := strings.Count(out.String(), "[session:"); n != 6 {
		t.Errorf("expected 6 complete events, got %d", n)
	}
	if !strings.Contains(warn.String(), "trace ends inside an event") {
		t.Errorf("missing truncation warning: %q", warn.String())
	}
}
