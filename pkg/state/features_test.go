package state

import (
	"testing"

	"github.com/cec-go/cec-go/pkg/cec"
)

func TestParseDeviceFeatures(t *testing.T) {
	tests := []struct {
		name     string
		features []byte
		want     DeviceFeatures
	}{
		{
			name:     "empty",
			features: nil,
			want:     DeviceFeatures{},
		},
		{
			name:     "single terminal group",
			features: []byte{0x80, 0x80, 0x7e},
			want:     DeviceFeatures{},
		},
		{
			name:     "arc rx and deck control",
			features: []byte{0x00, 0x12},
			want:     DeviceFeatures{SourceHasARCRx: true, HasDeckControl: true},
		},
		{
			name:     "extended rc profile",
			features: []byte{0x80, 0x80, 0x01, 0x44},
			want:     DeviceFeatures{SinkHasARCTx: true, HasRecordTVScreen: true},
		},
		{
			name:     "all flags with extension bit",
			features: []byte{0x00, 0xff, 0x00},
			want: DeviceFeatures{
				SourceHasARCRx:         true,
				SinkHasARCTx:           true,
				HasSetAudioRate:        true,
				HasDeckControl:         true,
				HasRecordTVScreen:      true,
				HasSetOSDString:        true,
				HasSetAudioVolumeLevel: true,
			},
		},
		{
			name:     "osd string and audio rate",
			features: []byte{0x02, 0x28},
			want:     DeviceFeatures{HasSetOSDString: true, HasSetAudioRate: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDeviceFeatures(tt.features); got != tt.want {
				t.Errorf("ParseDeviceFeatures(% x) = %+v, want %+v", tt.features, got, tt.want)
			}
		})
	}
}

func TestFeaturesForVersion(t *testing.T) {
	var laddrs cec.LogAddrs
	laddrs.Features[0][0] = 0x00
	laddrs.Features[0][1] = cec.FeatDevSinkHasARCTx

	laddrs.CECVersion = cec.Version1_4
	if got := FeaturesFor(&laddrs); got != (DeviceFeatures{}) {
		t.Errorf("CEC 1.4: got %+v, want no features", got)
	}

	laddrs.CECVersion = cec.Version2_0
	if got := FeaturesFor(&laddrs); !got.SinkHasARCTx || got.SourceHasARCRx {
		t.Errorf("CEC 2.0: got %+v", got)
	}
}
