package display

import (
	"errors"

	"segmux/core"
	"segmux/protocol"
	"segmux/segment"
)

var (
	ErrNumberRange  = errors.New("display: number outside [0, 9999]")
	ErrPatternRange = errors.New("display: pattern uses bits outside the 7 segments")
	ErrCommandOrder = errors.New("display: command IDs do not match the link table")
)

// RegisterCommands adds the link commands that drive d to r. r must not
// already hold other commands, since IDs are fixed by protocol.
func RegisterCommands(r *core.CommandRegistry, d *Display) error {
	table := []struct {
		id      uint16
		name    string
		format  string
		handler core.CommandHandler
	}{
		{protocol.CmdSetNumber, "set_number", "n=%u", d.handleSetNumber},
		{protocol.CmdSetSegments, "set_segments", "d0=%c d1=%c d2=%c d3=%c", d.handleSetSegments},
		{protocol.CmdClearDisplay, "clear_display", "", d.handleClear},
	}
	if r.Count() != 0 {
		return ErrCommandOrder
	}
	for _, cmd := range table {
		if id := r.Register(cmd.name, cmd.format, cmd.handler); id != cmd.id {
			return ErrCommandOrder
		}
	}
	return nil
}

// handleSetNumber decodes set_number n=%u
func (d *Display) handleSetNumber(data *[]byte) error {
	n, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}
	if n > segment.MaxNumber {
		return ErrNumberRange
	}
	d.SetNumber(int(n))
	return nil
}

// handleSetSegments decodes set_segments d0=%c d1=%c d2=%c d3=%c
func (d *Display) handleSetSegments(data *[]byte) error {
	var b segment.Buffer
	for i := range b {
		v, err := protocol.DecodeVLQUint(data)
		if err != nil {
			return err
		}
		if v > uint32(segment.Mask) {
			return ErrPatternRange
		}
		b[i] = segment.Pattern(v)
	}
	d.SetBuffer(b)
	return nil
}

// handleClear decodes clear_display
func (d *Display) handleClear(data *[]byte) error {
	d.SetBuffer(segment.Buffer{})
	return nil
}
