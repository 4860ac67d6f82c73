package protocol

import (
	"fmt"
	"io"
	"sync"
)

// HostTransport is the sending end of the link. The display firmware
// does not acknowledge, so sending is a framed write.
type HostTransport struct {
	port io.Writer

	mu  sync.Mutex
	seq uint8
}

// NewHostTransport creates a new host-side transport
func NewHostTransport(port io.Writer) *HostTransport {
	return &HostTransport{port: port}
}

// SendCommand frames cmdID with its arguments and writes it in one call
func (t *HostTransport) SendCommand(cmdID uint16, args ...uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	output := NewScratchOutput()
	EncodeCommand(output, t.seq, cmdID, args...)
	t.seq = (t.seq + 1) & MessageSeqMask

	msg := output.Result()
	n, err := t.port.Write(msg)
	if err != nil {
		return fmt.Errorf("write command %d: %w", cmdID, err)
	}
	if n != len(msg) {
		return fmt.Errorf("write command %d: short write %d/%d", cmdID, n, len(msg))
	}
	return nil
}

// Sequence returns the sequence number the next command will carry
func (t *HostTransport) Sequence() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}
