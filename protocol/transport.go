package protocol

import "errors"

const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
)

var (
	ErrBadFrame = errors.New("malformed message block")
	ErrBadCRC   = errors.New("message block CRC mismatch")
)

// CommandHandler is a function type for handling decoded commands
type CommandHandler func(cmdID uint16, data *[]byte) error

// Transport is the receiving end of the link. It resynchronizes on the
// sync byte after any framing error and hands each command to handler.
type Transport struct {
	synchronized bool
	handler      CommandHandler

	// Counters for diagnostics
	Frames   uint32
	Errors   uint32
	Discards uint32
}

// NewTransport creates a new Transport instance
func NewTransport(handler CommandHandler) *Transport {
	return &Transport{
		synchronized: true,
		handler:      handler,
	}
}

// Receive processes incoming data from the input buffer and pops what it
// consumed. A trailing partial block is left in place for the next call.
func (t *Transport) Receive(input InputBuffer) {
	data := input.Data()

	for len(data) > 0 {
		if !t.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}

			if syncPos >= 0 {
				data = data[syncPos+1:]
				t.synchronized = true
			} else {
				t.Discards += uint32(len(data))
				data = nil
			}
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			t.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			t.desync()
			continue
		}

		if len(data) < msgLen {
			break
		}

		frame, err := ParseFrame(data[:msgLen])
		if err != nil {
			t.desync()
			continue
		}
		data = data[msgLen:]
		t.Frames++

		if err := t.dispatch(frame); err != nil {
			t.Errors++
		}
	}

	consumed := input.Available() - len(data)
	if consumed > 0 {
		input.Pop(consumed)
	}
}

// dispatch decodes every command packed into one frame
func (t *Transport) dispatch(frame []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrBadFrame
		}
	}()

	for len(frame) > 0 {
		cmdID, err := DecodeVLQUint(&frame)
		if err != nil {
			return err
		}
		if t.handler == nil {
			continue
		}
		if err := t.handler(uint16(cmdID), &frame); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transport) desync() {
	t.synchronized = false
	t.Errors++
}

// ParseFrame validates one complete message block and returns its payload
func ParseFrame(block []byte) ([]byte, error) {
	if len(block) < MessageLengthMin || int(block[MessagePositionLen]) != len(block) {
		return nil, ErrBadFrame
	}
	msgLen := len(block)
	if block[msgLen-MessageTrailerSync] != MessageValueSync {
		return nil, ErrBadFrame
	}

	frameCRC := uint16(block[msgLen-MessageTrailerCRC])<<8 |
		uint16(block[msgLen-MessageTrailerCRC+1])
	if frameCRC != CRC16(block[:msgLen-MessageTrailerSize]) {
		return nil, ErrBadCRC
	}
	return block[MessageHeaderSize : msgLen-MessageTrailerSize], nil
}

// EncodeFrame writes one message block with sequence number seq
func EncodeFrame(output OutputBuffer, seq uint8, frameData func(output OutputBuffer)) {
	cursor := output.CurPosition()

	output.Output([]byte{0, MessageDest | (seq & MessageSeqMask)})

	frameData(output)

	changed := len(output.DataSince(cursor))
	output.Update(cursor, uint8(changed+MessageTrailerSize))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
}

// EncodeCommand writes one message block carrying a single command
func EncodeCommand(output OutputBuffer, seq uint8, cmdID uint16, args ...uint32) {
	EncodeFrame(output, seq, func(output OutputBuffer) {
		EncodeVLQUint(output, uint32(cmdID))
		for _, a := range args {
			EncodeVLQUint(output, a)
		}
	})
}
