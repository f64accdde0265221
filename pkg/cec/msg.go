package cec

// MaxMsgSize is the largest CEC message in bytes (header, opcode, payload).
const MaxMsgSize = 16

// Message flags.
const (
	MsgFlagReplyToFollowers uint32 = 1 << 0
	MsgFlagRaw              uint32 = 1 << 1
)

// Transmit status bits reported in Msg.TxStatus.
const (
	TxStatusOK         uint8 = 1 << 0
	TxStatusArbLost    uint8 = 1 << 1
	TxStatusNack       uint8 = 1 << 2
	TxStatusLowDrive   uint8 = 1 << 3
	TxStatusError      uint8 = 1 << 4
	TxStatusMaxRetries uint8 = 1 << 5
	TxStatusAborted    uint8 = 1 << 6
	TxStatusTimeout    uint8 = 1 << 7
)

// Receive status bits reported in Msg.RxStatus.
const (
	RxStatusOK           uint8 = 1 << 0
	RxStatusTimeout      uint8 = 1 << 1
	RxStatusFeatureAbort uint8 = 1 << 2
	RxStatusAborted      uint8 = 1 << 3
)

// Msg is the message block exchanged with the adapter for both transmit and
// receive. Layout matches struct cec_msg.
type Msg struct {
	// TxTimestamp is the kernel monotonic time (ns) the transmit completed.
	TxTimestamp uint64

	// RxTimestamp is the kernel monotonic time (ns) the message or reply arrived.
	RxTimestamp uint64
	Len         uint32

	// Timeout in ms to wait for a reply after transmit; 0 means no reply wait.
	Timeout  uint32
	Sequence uint32
	Flags    uint32
	Msg      [MaxMsgSize]byte

	// Reply is the opcode of the expected reply when Timeout is set.
	Reply         uint8
	RxStatus      uint8
	TxStatus      uint8
	TxArbLostCnt  uint8
	TxNackCnt     uint8
	TxLowDriveCnt uint8
	TxErrorCnt    uint8
}

// NewMsg returns a header-only message from initiator to destination.
func NewMsg(initiator, destination LogicalAddress) *Msg {
	m := &Msg{Len: 1}
	m.Msg[0] = byte(initiator&0xf)<<4 | byte(destination&0xf)
	return m
}

// Initiator returns the sender's logical address.
func (m *Msg) Initiator() LogicalAddress {
	return LogicalAddress(m.Msg[0] >> 4)
}

// Destination returns the addressee's logical address.
func (m *Msg) Destination() LogicalAddress {
	return LogicalAddress(m.Msg[0] & 0xf)
}

// IsBroadcast reports whether the message is addressed to all devices.
func (m *Msg) IsBroadcast() bool {
	return m.Destination() == LogAddrBroadcast
}

// Opcode returns the opcode byte and false for a header-only (poll) message.
func (m *Msg) Opcode() (uint8, bool) {
	if m.Len < 2 {
		return 0, false
	}
	return m.Msg[1], true
}

// SetOpcode sets the opcode and payload, truncating to MaxMsgSize.
func (m *Msg) SetOpcode(opcode uint8, payload ...byte) {
	m.Msg[1] = opcode
	n := copy(m.Msg[2:], payload)
	m.Len = uint32(2 + n)
}

// Payload returns the bytes following the opcode.
func (m *Msg) Payload() []byte {
	if m.Len <= 2 || m.Len > MaxMsgSize {
		return nil
	}
	return m.Msg[2:m.Len]
}

// Bytes returns the valid portion of the message.
func (m *Msg) Bytes() []byte {
	n := m.Len
	if n > MaxMsgSize {
		n = MaxMsgSize
	}
	return m.Msg[:n]
}

// TxOK reports a transmit that completed with an OK status.
func (m *Msg) TxOK() bool {
	return m.TxStatus&TxStatusOK != 0
}

// RxOK reports a receive (or reply) with an OK status.
func (m *Msg) RxOK() bool {
	return m.RxStatus&RxStatusOK != 0
}
