package follower

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/cec-go/cec-go/pkg/cec"
)

// DefaultPollInterval bounds each receive so cancellation is noticed.
const DefaultPollInterval = 500 * time.Millisecond

// Monitor receives messages and applies the ignore rules without replying.
type Monitor struct {
	// PollInterval is the receive timeout. Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// Mode is the adapter mode to claim. Defaults to initiator and
	// follower.
	Mode uint32
}

// Process implements Processor.
func (m *Monitor) Process(ctx context.Context, n *Node) error {
	mode := m.Mode
	if mode == 0 {
		mode = cec.ModeInitiator | cec.ModeFollower
	}
	if err := n.Adapter().SetMode(mode); err != nil {
		return fmt.Errorf("set mode: %w", err)
	}

	poll := m.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := cec.Msg{Timeout: uint32(poll.Milliseconds())}
		err := n.Adapter().Receive(&msg)
		switch {
		case err == nil:
			n.HandleReceived(&msg)
		case errors.Is(err, syscall.ETIMEDOUT), errors.Is(err, syscall.EINTR):
		default:
			return fmt.Errorf("receive: %w", err)
		}
	}
}

var _ Processor = (*Monitor)(nil)
