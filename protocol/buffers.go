package protocol

// MessageMax bounds both link buffers: room for four maximum-length blocks
const MessageMax = 4 * MessageLengthMax

// InputBuffer is what Transport.Receive parses from
type InputBuffer interface {
	// Data returns the unread bytes as one contiguous slice
	Data() []byte

	// Available returns the number of unread bytes
	Available() int

	// Pop discards n bytes from the front
	Pop(n int)
}

// OutputBuffer is what EncodeFrame writes into. The length byte and the
// CRC are patched in after the payload, hence Update and DataSince.
type OutputBuffer interface {
	Output(data []byte)
	CurPosition() int
	Update(pos int, val byte)
	DataSince(pos int) []byte
}

// ScratchOutput collects outgoing blocks in a fixed array. Output past
// MessageMax is dropped.
type ScratchOutput struct {
	buf [MessageMax]byte
	pos int
}

// NewScratchOutput creates an empty ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	s.pos += copy(s.buf[s.pos:], data)
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < s.pos {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns everything written so far
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// FifoBuffer queues raw link bytes between the USB reader and the
// transport. It holds up to MessageMax bytes and never allocates.
type FifoBuffer struct {
	ring [MessageMax]byte
	head int
	n    int

	// flat holds the unread bytes in order when they wrap the ring
	flat [MessageMax]byte
}

// NewFifoBuffer creates an empty FifoBuffer
func NewFifoBuffer() *FifoBuffer {
	return &FifoBuffer{}
}

// Write queues as much of data as fits and returns how much that was
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for written < len(data) && f.n < MessageMax {
		chunk := data[written:]
		if free := MessageMax - f.n; len(chunk) > free {
			chunk = chunk[:free]
		}
		c := copy(f.ring[(f.head+f.n)%MessageMax:], chunk)
		f.n += c
		written += c
	}
	return written
}

// Available returns the number of unread bytes
func (f *FifoBuffer) Available() int {
	return f.n
}

// Free returns how many more bytes Write would accept
func (f *FifoBuffer) Free() int {
	return MessageMax - f.n
}

// Data returns the unread bytes. The slice is only valid until the next
// Write or Pop.
func (f *FifoBuffer) Data() []byte {
	if f.head+f.n <= MessageMax {
		return f.ring[f.head : f.head+f.n]
	}
	first := copy(f.flat[:], f.ring[f.head:])
	copy(f.flat[first:], f.ring[:f.n-first])
	return f.flat[:f.n]
}

// Pop discards n unread bytes
func (f *FifoBuffer) Pop(n int) {
	if n > f.n {
		n = f.n
	}
	f.head = (f.head + n) % MessageMax
	f.n -= n
}
