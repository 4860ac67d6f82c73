package display

import (
	"errors"
	"testing"

	"segmux/core"
	"segmux/protocol"
	"segmux/segment"
)

func args(values ...uint32) []byte {
	out := protocol.NewScratchOutput()
	for _, v := range values {
		protocol.EncodeVLQUint(out, v)
	}
	return append([]byte(nil), out.Result()...)
}

func newCommandDisplay(t *testing.T) (*Display, *core.CommandRegistry) {
	t.Helper()
	d, _, _, _ := newTestDisplay(t, 10)
	r := core.NewCommandRegistry()
	if err := RegisterCommands(r, d); err != nil {
		t.Fatalf("RegisterCommands failed: %v", err)
	}
	return d, r
}

func TestRegisterCommandsIDs(t *testing.T) {
	d, r := newCommandDisplay(t)
	defer d.Close()

	tests := []struct {
		name string
		id   uint16
	}{
		{"set_number", protocol.CmdSetNumber},
		{"set_segments", protocol.CmdSetSegments},
		{"clear_display", protocol.CmdClearDisplay},
	}
	if r.Count() != len(tests) {
		t.Errorf("Expected %d commands, got %d", len(tests), r.Count())
	}
	for _, tt := range tests {
		cmd, ok := r.GetCommand(tt.id)
		if !ok {
			t.Errorf("Command %s not registered", tt.name)
			continue
		}
		if cmd.Name != tt.name {
			t.Errorf("ID %d is %s, want %s", tt.id, cmd.Name, tt.name)
		}
	}

	want := "set_number n=%u\nset_segments d0=%c d1=%c d2=%c d3=%c\nclear_display\n"
	if got := r.GetDictionary(); got != want {
		t.Errorf("Dictionary = %q, want %q", got, want)
	}
}

func TestRegisterCommandsOnUsedRegistry(t *testing.T) {
	d, _, _, _ := newTestDisplay(t, 10)
	defer d.Close()

	r := core.NewCommandRegistry()
	r.Register("identify", "", func(*[]byte) error { return nil })
	if err := RegisterCommands(r, d); !errors.Is(err, ErrCommandOrder) {
		t.Errorf("Expected ErrCommandOrder, got %v", err)
	}
}

func TestSetNumberCommand(t *testing.T) {
	d, r := newCommandDisplay(t)
	defer d.Close()

	for _, n := range []uint32{0, 7, 42, 1005, 9999} {
		data := args(n)
		if err := r.Dispatch(protocol.CmdSetNumber, &data); err != nil {
			t.Fatalf("set_number %d failed: %v", n, err)
		}
		if got, want := d.Buffer(), segment.EncodeNumber(int(n)); got != want {
			t.Errorf("set_number %d: buffer %v, want %v", n, got, want)
		}
	}
}

func TestSetNumberCommandRejects(t *testing.T) {
	d, r := newCommandDisplay(t)
	defer d.Close()
	d.SetNumber(12)

	data := args(10000)
	if err := r.Dispatch(protocol.CmdSetNumber, &data); !errors.Is(err, ErrNumberRange) {
		t.Errorf("Expected ErrNumberRange, got %v", err)
	}
	data = args(0xFFFFFFFF)
	if err := r.Dispatch(protocol.CmdSetNumber, &data); !errors.Is(err, ErrNumberRange) {
		t.Errorf("Wrapped negative number: expected ErrNumberRange, got %v", err)
	}
	data = nil
	if err := r.Dispatch(protocol.CmdSetNumber, &data); !errors.Is(err, protocol.ErrBufferTooSmall) {
		t.Errorf("Empty args: expected ErrBufferTooSmall, got %v", err)
	}

	if got := d.Buffer(); got != segment.EncodeNumber(12) {
		t.Errorf("Rejected commands changed the buffer to %v", got)
	}
}

func TestSetSegmentsCommand(t *testing.T) {
	d, r := newCommandDisplay(t)
	defer d.Close()

	data := args(0x01, 0x7F, 0x00, 0x30)
	if err := r.Dispatch(protocol.CmdSetSegments, &data); err != nil {
		t.Fatalf("set_segments failed: %v", err)
	}
	want := segment.Buffer{0x01, 0x7F, 0x00, 0x30}
	if got := d.Buffer(); got != want {
		t.Errorf("Buffer = %v, want %v", got, want)
	}

	data = args(0x01, 0x80, 0x00, 0x00)
	if err := r.Dispatch(protocol.CmdSetSegments, &data); !errors.Is(err, ErrPatternRange) {
		t.Errorf("Expected ErrPatternRange, got %v", err)
	}
	data = args(0x01, 0x02)
	if err := r.Dispatch(protocol.CmdSetSegments, &data); !errors.Is(err, protocol.ErrBufferTooSmall) {
		t.Errorf("Short args: expected ErrBufferTooSmall, got %v", err)
	}
	if got := d.Buffer(); got != want {
		t.Errorf("Rejected commands changed the buffer to %v", got)
	}
}

func TestClearDisplayCommand(t *testing.T) {
	d, r := newCommandDisplay(t)
	defer d.Close()
	d.SetNumber(8888)

	var data []byte
	if err := r.Dispatch(protocol.CmdClearDisplay, &data); err != nil {
		t.Fatalf("clear_display failed: %v", err)
	}
	if got := d.Buffer(); got != (segment.Buffer{}) {
		t.Errorf("Buffer = %v after clear", got)
	}
}

// Frames received on the link reach the display through the transport
func TestCommandsOverTransport(t *testing.T) {
	d, r := newCommandDisplay(t)
	defer d.Close()

	out := protocol.NewScratchOutput()
	protocol.EncodeCommand(out, 0, protocol.CmdSetSegments, 0x01, 0x02, 0x04, 0x08)
	protocol.EncodeCommand(out, 1, protocol.CmdSetNumber, 314)

	tr := protocol.NewTransport(r.Dispatch)
	fifo := protocol.NewFifoBuffer()
	fifo.Write(out.Result())
	tr.Receive(fifo)

	if tr.Frames != 2 || tr.Errors != 0 {
		t.Errorf("Frames=%d Errors=%d, want 2 and 0", tr.Frames, tr.Errors)
	}
	if got := d.Buffer(); got != segment.EncodeNumber(314) {
		t.Errorf("Buffer = %v, want 314", got)
	}
}
