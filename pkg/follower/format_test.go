package follower

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cec-go/cec-go/pkg/cec"
)

func TestMonotonic(t *testing.T) {
	assert.Equal(t, "0.000000000s", Monotonic(0))
	assert.Equal(t, "153.001027650s", Monotonic(153001027650))
}

func TestWallClock(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 10, 0, time.UTC)
	format := WallClock(now, 20e9)

	assert.Equal(t, "12:00:10.000000", format(20e9))
	assert.Equal(t, "12:00:08.500000", format(18500000000))
}

func TestFormatReceived(t *testing.T) {
	tests := []struct {
		name string
		msg  cec.Msg
		want string
	}{
		{
			name: "no payload",
			msg: func() cec.Msg {
				m := rxMsg(cec.LogAddrTV, cec.LogAddrPlayback1, 153001027650, cec.MsgGiveOSDName)
				m.Sequence = 3
				return m
			}(),
			want: "Received from TV to Playback Device 1 (0 to 4): GIVE_OSD_NAME (0x46)\n" +
				"\tSequence: 3 Rx Timestamp: 153.001027650s\n",
		},
		{
			name: "payload",
			msg:  rxMsg(cec.LogAddrTV, cec.LogAddrPlayback1, 1e9, cec.MsgReportPowerStatus, 0x01),
			want: "Received from TV to Playback Device 1 (0 to 4): REPORT_POWER_STATUS (0x90): 0x01\n" +
				"\tSequence: 0 Rx Timestamp: 1.000000000s\n",
		},
		{
			name: "broadcast",
			msg:  rxMsg(cec.LogAddrTV, cec.LogAddrBroadcast, 2e9, cec.MsgStandby),
			want: "Received from TV to all (0 to 15): STANDBY (0x36)\n" +
				"\tSequence: 0 Rx Timestamp: 2.000000000s\n",
		},
		{
			name: "report short audio descriptor",
			msg:  rxMsg(cec.LogAddrAudioSystem, cec.LogAddrTV, 3e9, cec.MsgReportShortAudioDescriptor, 0x09, 0x07, 0x07),
			want: "Received from Audio System to TV (5 to 0): REPORT_SHORT_AUDIO_DESCRIPTOR (0xa3): 0x09 0x07 0x07\n" +
				"\tSequence: 0 Rx Timestamp: 3.000000000s\n" +
				"\tShort Audio Descriptor: L-PCM, 2 channels, 32, 44.1, 48 kHz\n",
		},
		{
			name: "request short audio descriptor",
			msg:  rxMsg(cec.LogAddrTV, cec.LogAddrAudioSystem, 4e9, cec.MsgRequestShortAudioDescriptor, 0x02, 0x4c, 0x8a),
			want: "Received from TV to Audio System (0 to 5): REQUEST_SHORT_AUDIO_DESCRIPTOR (0xa4): 0x02 0x4c 0x8a\n" +
				"\tSequence: 0 Rx Timestamp: 4.000000000s\n" +
				"\tAudio Format: AC-3\n" +
				"\tAudio Format: AC-4\n" +
				"\tAudio Format: Invalid\n",
		},
		{
			name: "poll",
			msg: func() cec.Msg {
				m := cec.NewMsg(cec.LogAddrTV, cec.LogAddrPlayback1)
				return *m
			}(),
			want: "Received from TV to Playback Device 1 (0 to 4): POLL\n" +
				"\tSequence: 0 Rx Timestamp: 0.000000000s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReceived(&tt.msg, Monotonic))
		})
	}
}
