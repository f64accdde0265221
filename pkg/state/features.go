package state

import (
	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/version"
)

// DeviceFeatures are the capability flags advertised in the device
// features operand.
type DeviceFeatures struct {
	SourceHasARCRx         bool
	SinkHasARCTx           bool
	HasSetAudioRate        bool
	HasDeckControl         bool
	HasRecordTVScreen      bool
	HasSetOSDString        bool
	HasSetAudioVolumeLevel bool
}

// ParseDeviceFeatures extracts the device feature flags from a features
// operand: the RC profile bytes, terminated by the first byte without the
// extension bit, followed by the device features byte. A sequence that ends
// before the device features byte yields no flags.
func ParseDeviceFeatures(features []byte) DeviceFeatures {
	var f DeviceFeatures

	devFeat := false
	for _, b := range features {
		if devFeat {
			f.SourceHasARCRx = b&cec.FeatDevSourceHasARCRx != 0
			f.SinkHasARCTx = b&cec.FeatDevSinkHasARCTx != 0
			f.HasSetAudioRate = b&cec.FeatDevHasSetAudioRate != 0
			f.HasDeckControl = b&cec.FeatDevHasDeckControl != 0
			f.HasRecordTVScreen = b&cec.FeatDevHasRecordTVScreen != 0
			f.HasSetOSDString = b&cec.FeatDevHasSetOSDString != 0
			f.HasSetAudioVolumeLevel = b&cec.FeatDevHasSetAudioVolumeLevel != 0
			break
		}
		if b&cec.FeatExt == 0 {
			devFeat = true
		}
	}
	return f
}

// FeaturesFor returns the device features of the first logical address when
// the adapter runs CEC 2.0 or later. Older versions have no features operand.
func FeaturesFor(laddrs *cec.LogAddrs) DeviceFeatures {
	if !version.CECVersion(laddrs.CECVersion).HasFeatures() {
		return DeviceFeatures{}
	}
	return ParseDeviceFeatures(laddrs.Features[0][:])
}
