package follower

import (
	"sync"
	"syscall"
	"time"

	"github.com/cec-go/cec-go/pkg/adapter"
	"github.com/cec-go/cec-go/pkg/cec"
)

// scriptedDriver answers discovery queries from fixed values and replays a
// queue of received messages. When the queue is empty, Receive calls
// onDrained once and then times out.
type scriptedDriver struct {
	mu sync.Mutex

	caps     cec.Caps
	physAddr cec.PhysicalAddress
	laddrs   cec.LogAddrs
	conn     cec.ConnectorInfo

	errs map[adapter.Request]error

	rx        []cec.Msg
	onDrained func()
	drained   bool

	mode  uint32
	calls []adapter.Request
}

func newScriptedDriver() *scriptedDriver {
	d := &scriptedDriver{
		physAddr: 0x1000,
		errs:     make(map[adapter.Request]error),
	}
	copy(d.caps.Driver[:], "vivid")
	copy(d.caps.Name[:], "vivid-000-vid-out0")
	d.caps.AvailableLogAddrs = 4
	d.caps.Capabilities = cec.CapPhysAddr | cec.CapLogAddrs | cec.CapTransmit
	d.caps.Version = 6<<16 | 1<<8

	d.laddrs.NumLogAddrs = 1
	d.laddrs.LogAddr[0] = uint8(cec.LogAddrPlayback1)
	d.laddrs.LogAddrMask = 1 << cec.LogAddrPlayback1
	d.laddrs.CECVersion = cec.Version2_0
	d.laddrs.VendorID = cec.VendorIDNone
	d.laddrs.PrimaryDeviceType[0] = cec.PrimaryTypePlayback
	copy(d.laddrs.OSDName[:], "Playback")
	d.laddrs.Features[0][0] = 0x00
	d.laddrs.Features[0][1] = cec.FeatDevHasDeckControl
	return d
}

func (d *scriptedDriver) queue(msgs ...cec.Msg) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rx = append(d.rx, msgs...)
}

func (d *scriptedDriver) Ioctl(req adapter.Request, arg any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, req)
	if err := d.errs[req]; err != nil {
		return err
	}

	switch req {
	case adapter.GetCaps:
		*arg.(*cec.Caps) = d.caps
	case adapter.GetPhysAddr:
		*arg.(*cec.PhysicalAddress) = d.physAddr
	case adapter.GetLogAddrs:
		*arg.(*cec.LogAddrs) = d.laddrs
	case adapter.GetConnectorInfo:
		*arg.(*cec.ConnectorInfo) = d.conn
	case adapter.SetMode:
		d.mode = *arg.(*uint32)
	case adapter.Receive:
		if len(d.rx) == 0 {
			if !d.drained && d.onDrained != nil {
				d.drained = true
				d.onDrained()
			}
			time.Sleep(time.Millisecond)
			return syscall.ETIMEDOUT
		}
		*arg.(*cec.Msg) = d.rx[0]
		d.rx = d.rx[1:]
	}
	return nil
}

func rxMsg(from, to cec.LogicalAddress, ts uint64, opcode uint8, payload ...byte) cec.Msg {
	m := cec.NewMsg(from, to)
	m.SetOpcode(opcode, payload...)
	m.RxStatus = cec.RxStatusOK
	m.RxTimestamp = ts
	return *m
}
