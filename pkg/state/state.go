package state

import (
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
)

// Startup defaults of the emulated device.
const (
	DefaultMenuLanguage        = "eng"
	DefaultVideoLatency        = 10
	DefaultAudioOutCompensated = 3
	DefaultAudioOutDelay       = 20
	DefaultVolume              = 50
)

// DeviceState is the emulated device state answered to peers.
type DeviceState struct {
	PowerStatus            cec.PowerStatus
	OldPowerStatus         cec.PowerStatus
	PowerStatusChangedTime time.Time

	MenuLanguage        string
	VideoLatency        uint8
	LowLatencyMode      bool
	AudioOutCompensated uint8
	AudioOutDelay       uint8

	ARCActive bool
	SACActive bool
	Volume    uint8
	Mute      bool

	// ServiceByDigID reports digital services by digital ID instead of by
	// channel number.
	ServiceByDigID bool

	// TogglePowerStatus is the interval of the periodic power toggle; 0
	// disables it.
	TogglePowerStatus time.Duration

	Tuner TunerState
}

// Options are the startup inputs to Init.
type Options struct {
	// Standby starts the device in standby instead of on.
	Standby bool

	ServiceByDigID    bool
	TogglePowerStatus time.Duration

	// TunerInit fills in the tuner sub-state. Defaults to DefaultTuner.
	TunerInit func(*DeviceState)
}

// Init builds the startup device state.
func Init(opts Options) *DeviceState {
	s := &DeviceState{
		PowerStatus:         cec.PowerStatusOn,
		OldPowerStatus:      cec.PowerStatusOn,
		MenuLanguage:        DefaultMenuLanguage,
		VideoLatency:        DefaultVideoLatency,
		LowLatencyMode:      true,
		AudioOutCompensated: DefaultAudioOutCompensated,
		AudioOutDelay:       DefaultAudioOutDelay,
		Volume:              DefaultVolume,
		ServiceByDigID:      opts.ServiceByDigID,
		TogglePowerStatus:   opts.TogglePowerStatus,
	}
	if opts.Standby {
		s.PowerStatus = cec.PowerStatusStandby
	}

	tunerInit := opts.TunerInit
	if tunerInit == nil {
		tunerInit = DefaultTuner
	}
	tunerInit(s)

	return s
}

// SetPowerStatus records a power status change at now. Setting the current
// status again is a no-op and returns false.
func (s *DeviceState) SetPowerStatus(ps cec.PowerStatus, now time.Time) bool {
	if s.PowerStatus == ps {
		return false
	}
	s.OldPowerStatus = s.PowerStatus
	s.PowerStatus = ps
	s.PowerStatusChangedTime = now
	return true
}

// TogglePower flips between On and Standby. A device in transition is
// treated as being in its target state.
func (s *DeviceState) TogglePower(now time.Time) cec.PowerStatus {
	next := cec.PowerStatusStandby
	switch s.PowerStatus {
	case cec.PowerStatusStandby, cec.PowerStatusToStandby:
		next = cec.PowerStatusOn
	}
	s.SetPowerStatus(next, now)
	return next
}
