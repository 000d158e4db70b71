package stream

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

type fakePort struct {
	bytes.Buffer
	closed bool
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

func TestSend(t *testing.T) {
	port := &fakePort{}
	s := NewSender(port, time.Nanosecond, nil, golog.NewTestLogger(t))

	program := "G0 X0 Y0\n\n  \nG1 X10 Y10\nG1 X0 Y10\n"
	err := s.Send(context.Background(), strings.NewReader(program))
	test.That(t, err, test.ShouldBeNil)

	// Blank lines are skipped, real lines arrive newline-terminated.
	test.That(t, port.String(), test.ShouldEqual, "G0 X0 Y0\nG1 X10 Y10\nG1 X0 Y10\n")
}

func TestSendEmptyProgram(t *testing.T) {
	port := &fakePort{}
	s := NewSender(port, time.Nanosecond, nil, golog.NewTestLogger(t))

	err := s.Send(context.Background(), strings.NewReader("\n\n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, port.Len(), test.ShouldEqual, 0)
}

func TestSendCanceled(t *testing.T) {
	port := &fakePort{}
	// A long pacing delay so cancellation wins the pacing select.
	s := NewSender(port, time.Hour, nil, golog.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Send(ctx, strings.NewReader("G0 X0 Y0\nG1 X10 Y10\n"))
	test.That(t, err, test.ShouldBeError, context.Canceled)

	// The first line goes out before any pacing wait applies.
	test.That(t, port.String(), test.ShouldEqual, "G0 X0 Y0\n")
}

func TestClose(t *testing.T) {
	port := &fakePort{}
	s := NewSender(port, 0, nil, golog.NewTestLogger(t))
	test.That(t, s.Close(), test.ShouldBeNil)
	test.That(t, port.closed, test.ShouldBeTrue)
}
