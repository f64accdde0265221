package interactive

import (
	"bytes"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cec-go/cec-go/pkg/adapter"
	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/follower"
	"github.com/cec-go/cec-go/pkg/ignore"
	"github.com/cec-go/cec-go/pkg/peer"
)

type nullDriver struct{}

func (nullDriver) Ioctl(adapter.Request, any) error { return nil }

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	a := adapter.New(nullDriver{}, adapter.Config{Device: "/dev/cec0"})
	n := follower.New(a, follower.DefaultConfig())

	var out bytes.Buffer
	s := newShell(n, &out)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC) }
	return s, &out
}

func TestExecEmptyAndUnknown(t *testing.T) {
	s, out := newTestShell(t)

	assert.True(t, s.Exec("   "))
	assert.Empty(t, out.String())

	assert.True(t, s.Exec("frobnicate"))
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestExecQuit(t *testing.T) {
	for _, cmd := range []string{"quit", "exit", "q", "QUIT"} {
		s, out := newTestShell(t)
		assert.False(t, s.Exec(cmd), cmd)
		assert.Contains(t, out.String(), "Exiting...")
	}
}

func TestExecHelp(t *testing.T) {
	s, out := newTestShell(t)
	assert.True(t, s.Exec("help"))
	assert.Contains(t, out.String(), "CEC Follower Commands:")
	assert.Contains(t, out.String(), "ignore <la,opcode>")
}

func TestExecPower(t *testing.T) {
	s, out := newTestShell(t)

	s.Exec("on")
	assert.Contains(t, out.String(), "Power status already On")

	out.Reset()
	s.Exec("standby")
	assert.Equal(t, "Power status: Standby\n", out.String())
	assert.Equal(t, cec.PowerStatusStandby, s.node.State().PowerStatus)

	out.Reset()
	s.Exec("toggle")
	assert.Equal(t, "Power status: On\n", out.String())

	out.Reset()
	s.Exec("status")
	status := out.String()
	assert.Contains(t, status, "Follower:           IDLE")
	assert.Contains(t, status, "Power status:       On")
	assert.Contains(t, status, "changed from Standby at 09:30:00")
	assert.Contains(t, status, "Menu language:      eng")
	assert.Contains(t, status, "Volume:             50 (mute: off)")
}

type modeDriver struct {
	mode uint32
	err  error
}

func (d modeDriver) Ioctl(req adapter.Request, arg any) error {
	if req != adapter.GetMode {
		return nil
	}
	if d.err != nil {
		return d.err
	}
	*arg.(*uint32) = d.mode
	return nil
}

func TestExecStatusAdapterMode(t *testing.T) {
	tests := []struct {
		name string
		drv  modeDriver
		want string
	}{
		{"initiator and follower", modeDriver{mode: cec.ModeInitiator | cec.ModeFollower}, "Adapter mode:       initiator, follower"},
		{"monitor", modeDriver{mode: cec.ModeMonitorAll}, "Adapter mode:       no initiator, monitor all"},
		{"query fails", modeDriver{err: syscall.ENOTTY}, "Adapter mode:       unavailable (" + syscall.ENOTTY.Error() + ")"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := adapter.New(tt.drv, adapter.Config{Device: "/dev/cec0"})
			var out bytes.Buffer
			s := newShell(follower.New(a, follower.DefaultConfig()), &out)

			s.Exec("status")
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestExecIgnore(t *testing.T) {
	s, out := newTestShell(t)

	s.Exec("ignore")
	assert.Equal(t, "No ignore rules\n", out.String())

	out.Reset()
	s.Exec("ignore 0,give_osd_name all,0x36 5 all,all")
	lines := out.String()
	assert.Contains(t, lines, "Ignoring 0,give_osd_name")
	assert.Contains(t, lines, "Ignoring all,0x36")
	assert.Contains(t, lines, "Ignoring 5")
	assert.Contains(t, lines, "Error: all,all is invalid")

	assert.True(t, s.node.Ignore().Ignored(cec.LogAddrTV, cec.MsgGiveOSDName))

	out.Reset()
	s.Exec("ig")
	assert.Equal(t, "  5,all\n  all,standby\n  0,give_osd_name\n", out.String())
}

func TestListRulesSkipsShadowedLA(t *testing.T) {
	tbl := &ignore.Table{}
	require.NoError(t, tbl.ApplyAll([]string{"3", "3,0x8f", "4,0x8f"}))

	assert.Equal(t, []string{"3,all", "4,give_device_power_status"}, listRules(tbl))
}

func TestExecPeers(t *testing.T) {
	s, out := newTestShell(t)

	s.Exec("peers")
	assert.Equal(t, "No transactions yet\n", out.String())

	msg := cec.NewMsg(cec.LogAddrTV, cec.LogAddrPlayback1)
	msg.RxStatus = cec.RxStatusOK
	msg.RxTimestamp = 1
	_, ok := s.node.Tracker().Update(peer.Receive, msg)
	require.True(t, ok)

	out.Reset()
	s.Exec("p")
	assert.True(t, strings.HasPrefix(out.String(), "   0 TV "), out.String())
	assert.Contains(t, out.String(), " ago\n")
}

func TestExecStatsAndInfo(t *testing.T) {
	s, out := newTestShell(t)

	s.Exec("stats")
	assert.Equal(t, "Received: 0\nIgnored:  0\nWarnings: 0\n", out.String())

	out.Reset()
	s.Exec("info")
	assert.Contains(t, out.String(), "Driver Info:")
}
