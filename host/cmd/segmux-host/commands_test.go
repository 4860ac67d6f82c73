package main

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	"segmux/segment"
)

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) SetNumber(n int) error {
	r.calls = append(r.calls, "set "+strconv.Itoa(n))
	return r.err
}

func (r *recorder) SetSegments(b segment.Buffer) error {
	r.calls = append(r.calls, "raw "+segment.DecodeBuffer(b))
	return r.err
}

func (r *recorder) Clear() error {
	r.calls = append(r.calls, "clear")
	return r.err
}

func (r *recorder) Countdown(ctx context.Context, from int, step time.Duration) error {
	r.calls = append(r.calls, "count "+strconv.Itoa(from)+" "+step.String())
	return r.err
}

func TestExecute(t *testing.T) {
	tests := []struct {
		line string
		want []string
		quit bool
	}{
		{"", nil, false},
		{"set 42", []string{"set 42"}, false},
		{"  set   7 ", []string{"set 7"}, false},
		{"raw 0x30 0x6d 0 0", []string{"raw 12  "}, false},
		{"clear", []string{"clear"}, false},
		{"count 3", []string{"count 3 1s"}, false},
		{"quit", nil, true},
		{"q", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r := &recorder{}
			var out bytes.Buffer
			quit, err := execute(context.Background(), r, tt.line, &out)
			assert.NilError(t, err)
			assert.Equal(t, quit, tt.quit)
			assert.DeepEqual(t, r.calls, tt.want)
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	for _, line := range []string{"set", "set x", "raw 1 2 3", "raw 1 2 3 0x100", "count", "count -"} {
		r := &recorder{}
		_, err := execute(context.Background(), r, line, &bytes.Buffer{})
		assert.Assert(t, errors.Is(err, errUsage), "line %q: %v", line, err)
		assert.Equal(t, len(r.calls), 0)
	}

	_, err := execute(context.Background(), &recorder{}, "blink", &bytes.Buffer{})
	assert.Assert(t, is.ErrorContains(err, "unknown command"))

	linkErr := errors.New("port closed")
	_, err = execute(context.Background(), &recorder{err: linkErr}, "clear", &bytes.Buffer{})
	assert.Assert(t, errors.Is(err, linkErr))
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := execute(context.Background(), &recorder{}, "help", &out)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out.String(), "count N"))
}

func TestRepl(t *testing.T) {
	r := &recorder{}
	var out bytes.Buffer
	in := strings.NewReader("set 1\nbogus\nclear\nquit\nset 2\n")

	assert.NilError(t, repl(context.Background(), r, in, &out))
	assert.DeepEqual(t, r.calls, []string{"set 1", "clear"})
	assert.Assert(t, is.Contains(out.String(), "Error: unknown command"))
}
